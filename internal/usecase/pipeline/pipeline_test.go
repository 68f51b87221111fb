package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
	"github.com/inkedmayhem/content-pipeline/internal/repo"
	"github.com/inkedmayhem/content-pipeline/internal/usecase/pipeline"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

// ---- in-memory fakes ----

type docStoreFake struct {
	mu      sync.Mutex
	docs    map[string]map[string]json.RawMessage
	failSet bool
}

func newDocStoreFake() *docStoreFake {
	return &docStoreFake{docs: make(map[string]map[string]json.RawMessage)}
}

func (f *docStoreFake) Get(_ context.Context, namespace, key string, out any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, ok := f.docs[namespace][key]
	if !ok {
		return fmt.Errorf("docStoreFake - Get: %w", errs.ErrRecordNotFound)
	}

	return json.Unmarshal(raw, out)
}

func (f *docStoreFake) Set(_ context.Context, namespace, key string, doc any) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failSet {
		return errors.New("docStoreFake - Set: write refused")
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	if f.docs[namespace] == nil {
		f.docs[namespace] = make(map[string]json.RawMessage)
	}
	f.docs[namespace][key] = raw

	return nil
}

func (f *docStoreFake) Delete(_ context.Context, namespace, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.docs[namespace][key]; !ok {
		return fmt.Errorf("docStoreFake - Delete: %w", errs.ErrRecordNotFound)
	}
	delete(f.docs[namespace], key)

	return nil
}

func (f *docStoreFake) List(_ context.Context, namespace string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.docs[namespace]))
	for key := range f.docs[namespace] {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return keys, nil
}

func (f *docStoreFake) count(namespace string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.docs[namespace])
}

type assetStoreFake struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newAssetStoreFake() *assetStoreFake {
	return &assetStoreFake{objects: make(map[string][]byte)}
}

func (f *assetStoreFake) Upload(_ context.Context, key string, data io.Reader, _ string, _ int64) error {
	payload, err := io.ReadAll(data)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = payload

	return nil
}

func (f *assetStoreFake) UploadBytes(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = append([]byte(nil), data...)

	return nil
}

func (f *assetStoreFake) Download(_ context.Context, key string) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	payload, ok := f.objects[key]
	if !ok {
		return nil, fmt.Errorf("assetStoreFake - Download: %w", errs.ErrRecordNotFound)
	}

	return io.NopCloser(bytes.NewReader(payload)), nil
}

func (f *assetStoreFake) DownloadBytes(_ context.Context, key string) ([]byte, error) {
	body, err := f.Download(context.Background(), key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return io.ReadAll(body)
}

func (f *assetStoreFake) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)

	return nil
}

func (f *assetStoreFake) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.objects[key]
	return ok
}

func (f *assetStoreFake) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.objects)
}

type creatorsFake struct {
	cfg *entity.CreatorConfig
}

func (f *creatorsFake) Get(_ context.Context, _ string) (*entity.CreatorConfig, error) {
	if f.cfg != nil {
		return f.cfg, nil
	}

	return entity.DefaultCreatorConfig(), nil
}

type txFake struct{}

func (txFake) WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	return f(ctx)
}

// transformerFake mirrors the transformer contract: checks and summary are
// mutated on the item, errors degrade the checks instead of failing.
type transformerFake struct {
	mu    sync.Mutex
	fail  bool
	calls int
}

func (f *transformerFake) Apply(_ context.Context, item *entity.PipelineItem, _ *entity.CreatorConfig) *entity.TransformSummary {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	summary := &entity.TransformSummary{
		OriginalBytes: item.FileSize,
		CompletedAt:   time.Now(),
	}

	if f.fail {
		summary.Errors = []string{"optimize: decode failed"}
	} else {
		item.Checks.ExifStripped = true
		item.Checks.Compressed = true
		item.Checks.ThumbnailGenerated = true
	}

	item.Processing = summary

	return summary
}

func (f *transformerFake) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

type notifierFake struct {
	mu     sync.Mutex
	events []string
}

func (f *notifierFake) Notify(_ context.Context, eventType string, _ map[string]any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, eventType)

	return nil
}

func (f *notifierFake) count(eventType string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, e := range f.events {
		if e == eventType {
			n++
		}
	}

	return n
}

type catalogFake struct {
	mu      sync.Mutex
	entries map[string]*entity.CatalogEntry
}

func newCatalogFake() *catalogFake {
	return &catalogFake{entries: make(map[string]*entity.CatalogEntry)}
}

func (f *catalogFake) Write(_ context.Context, entry *entity.CatalogEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := entity.CatalogKey(entry.PipelineItemID)
	f.entries[key] = entry

	return key, nil
}

func (f *catalogFake) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.entries)
}

// ---- fixture ----

type fixture struct {
	uc          *pipeline.PipelineUseCase
	docs        *docStoreFake
	assets      *assetStoreFake
	creators    *creatorsFake
	transformer *transformerFake
	notifier    *notifierFake
	catalog     *catalogFake
}

func newFixture() *fixture {
	fx := &fixture{
		docs:        newDocStoreFake(),
		assets:      newAssetStoreFake(),
		creators:    &creatorsFake{},
		transformer: &transformerFake{},
		notifier:    &notifierFake{},
		catalog:     newCatalogFake(),
	}

	fx.uc = pipeline.New(
		fx.docs,
		fx.assets,
		fx.creators,
		txFake{},
		fx.transformer,
		fx.notifier,
		fx.catalog,
		logger.New("error"),
	)

	return fx
}

func (fx *fixture) ingest(t *testing.T, in dto.IngestInput) *entity.PipelineItem {
	t.Helper()

	item, err := fx.uc.Ingest(context.Background(), in)
	require.NoError(t, err)

	return item
}

func (fx *fixture) ingestQueued(t *testing.T, in dto.IngestInput) *entity.PipelineItem {
	t.Helper()

	item := fx.ingest(t, in)

	item, err := fx.uc.Approve(context.Background(), item.ID, dto.ItemOverrides{})
	require.NoError(t, err)
	require.Equal(t, entity.StatusQueued, item.Status)

	return item
}

func photoInput() dto.IngestInput {
	return dto.IngestInput{
		Filename:  "photo.jpg",
		Size:      2 << 20,
		Data:      []byte("jpeg bytes"),
		CreatorID: "creator-1",
		Caption:   "beach set",
		Tags:      []string{"beach", "summer"},
	}
}

// ---- tests ----

func TestIngest(t *testing.T) {
	fx := newFixture()

	item := fx.ingest(t, photoInput())

	assert.Equal(t, entity.StatusInbox, item.Status)
	assert.Equal(t, entity.MediaImage, item.MediaType)
	assert.Equal(t, entity.TierFree, item.Tier)
	assert.True(t, item.Checks.FileTypeValid)
	assert.True(t, item.Checks.FileSizeValid)
	assert.False(t, item.Checks.Compressed)
	assert.Equal(t, entity.AssetKey(item.ID, ".jpg"), item.StoredAssetKey)

	assert.True(t, fx.assets.has(item.StoredAssetKey))
	assert.Equal(t, 1, fx.docs.count(repo.NamespacePipeline))
	assert.Equal(t, 1, fx.docs.count(repo.NamespaceLogs))
	assert.Equal(t, 1, fx.notifier.count("content_ingested"))
}

func TestIngest_MetadataOnly(t *testing.T) {
	fx := newFixture()

	item := fx.ingest(t, dto.IngestInput{
		Filename:  "clip.mp4",
		Size:      100 << 20,
		CreatorID: "creator-1",
	})

	assert.Equal(t, entity.MediaVideo, item.MediaType)
	assert.Equal(t, 0, fx.assets.len(), "no payload, nothing stored")
	assert.Equal(t, 1, fx.docs.count(repo.NamespacePipeline))
}

func TestIngest_MissingFilename(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Ingest(context.Background(), dto.IngestInput{Size: 10})

	assert.ErrorIs(t, err, errs.ErrMissingField)
}

func TestIngest_Validation(t *testing.T) {
	t.Run("invalid extension", func(t *testing.T) {
		fx := newFixture()

		_, err := fx.uc.Ingest(context.Background(), dto.IngestInput{
			Filename: "malware.exe",
			Size:     10,
		})

		assert.ErrorIs(t, err, errs.ErrInvalidFileType)
		assert.NotErrorIs(t, err, errs.ErrFileTooLarge)
	})

	t.Run("oversized", func(t *testing.T) {
		fx := newFixture()

		_, err := fx.uc.Ingest(context.Background(), dto.IngestInput{
			Filename: "huge.jpg",
			Size:     30 << 20,
		})

		assert.ErrorIs(t, err, errs.ErrFileTooLarge)
		assert.NotErrorIs(t, err, errs.ErrInvalidFileType)
	})

	t.Run("both failures reported together", func(t *testing.T) {
		fx := newFixture()

		_, err := fx.uc.Ingest(context.Background(), dto.IngestInput{
			Filename: "huge.exe",
			Size:     600 << 20,
			Data:     []byte("payload"),
		})

		assert.ErrorIs(t, err, errs.ErrInvalidFileType)
		assert.ErrorIs(t, err, errs.ErrFileTooLarge)

		var vErr *errs.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Len(t, vErr.Failures, 2)

		assert.Equal(t, 0, fx.docs.count(repo.NamespacePipeline), "nothing persisted on rejection")
		assert.Equal(t, 0, fx.assets.len())
	})
}

func TestIngest_TxFailureCleansUpAsset(t *testing.T) {
	fx := newFixture()
	fx.docs.failSet = true

	_, err := fx.uc.Ingest(context.Background(), photoInput())

	require.Error(t, err)
	assert.Equal(t, 0, fx.assets.len(), "uploaded payload removed after failed transaction")
}

func TestProcess(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	processed, err := fx.uc.Process(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusProcessed, processed.Status)
	assert.NotNil(t, processed.ProcessedAt)
	assert.True(t, processed.Checks.Compressed)
	assert.True(t, processed.Checks.ExifStripped)
	assert.True(t, processed.Checks.ThumbnailGenerated)
	assert.Equal(t, 1, fx.transformer.callCount())

	_, err = fx.uc.Process(context.Background(), item.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidState, "processed items cannot be processed again")
}

func TestProcess_NotFound(t *testing.T) {
	fx := newFixture()

	_, err := fx.uc.Process(context.Background(), uuid.New())

	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestProcess_AutoApprove(t *testing.T) {
	fx := newFixture()
	cfg := entity.DefaultCreatorConfig()
	cfg.AutoApprove = true
	fx.creators.cfg = cfg

	item := fx.ingest(t, photoInput())

	processed, err := fx.uc.Process(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusQueued, processed.Status)
	assert.NotNil(t, processed.ProcessedAt)
	assert.NotNil(t, processed.QueuedAt)
}

func TestProcess_TransformFailureDegrades(t *testing.T) {
	fx := newFixture()
	fx.transformer.fail = true

	item := fx.ingest(t, photoInput())

	processed, err := fx.uc.Process(context.Background(), item.ID)
	require.NoError(t, err, "transform errors never block the transition")

	assert.Equal(t, entity.StatusProcessed, processed.Status)
	assert.False(t, processed.Checks.Compressed)
	assert.False(t, processed.Checks.ThumbnailGenerated)
	require.NotNil(t, processed.Processing)
	assert.NotEmpty(t, processed.Processing.Errors)
}

func TestProcessAll(t *testing.T) {
	fx := newFixture()

	for i := 0; i < 3; i++ {
		in := photoInput()
		in.Filename = fmt.Sprintf("photo-%d.jpg", i)
		fx.ingest(t, in)
	}
	fx.ingestQueued(t, photoInput()) // not inbox, must be skipped

	count, err := fx.uc.ProcessAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	list, err := fx.uc.List(context.Background(), entity.StatusProcessed)
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
}

func TestApprove(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	_, err := fx.uc.Process(context.Background(), item.ID)
	require.NoError(t, err)

	tier := "vip"
	when := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	approved, err := fx.uc.Approve(context.Background(), item.ID, dto.ItemOverrides{
		Tier:        &tier,
		ScheduledAt: &when,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusQueued, approved.Status)
	assert.Equal(t, entity.TierVIP, approved.Tier)
	require.NotNil(t, approved.ScheduledAt)
	assert.True(t, approved.ScheduledAt.Equal(when))
	assert.NotNil(t, approved.QueuedAt)
}

func TestApprove_FromInboxRunsCatchUpTransform(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	approved, err := fx.uc.Approve(context.Background(), item.ID, dto.ItemOverrides{})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusQueued, approved.Status)
	assert.NotNil(t, approved.ProcessedAt)
	assert.Equal(t, 1, fx.transformer.callCount())
	assert.True(t, approved.Checks.Compressed)
}

func TestApprove_InvalidFromTerminal(t *testing.T) {
	fx := newFixture()
	item := fx.ingestQueued(t, photoInput())

	_, err := fx.uc.Publish(context.Background(), item.ID)
	require.NoError(t, err)

	_, err = fx.uc.Approve(context.Background(), item.ID, dto.ItemOverrides{})
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestReject(t *testing.T) {
	fx := newFixture()

	t.Run("from inbox with default reason", func(t *testing.T) {
		item := fx.ingest(t, photoInput())

		rejected, err := fx.uc.Reject(context.Background(), item.ID, "")
		require.NoError(t, err)

		assert.Equal(t, entity.StatusRejected, rejected.Status)
		assert.NotEmpty(t, rejected.RejectReason)
	})

	t.Run("from queued with reason", func(t *testing.T) {
		item := fx.ingestQueued(t, photoInput())

		rejected, err := fx.uc.Reject(context.Background(), item.ID, "off brand")
		require.NoError(t, err)

		assert.Equal(t, "off brand", rejected.RejectReason)
	})

	t.Run("terminal, no way out", func(t *testing.T) {
		item := fx.ingest(t, photoInput())

		_, err := fx.uc.Reject(context.Background(), item.ID, "spam")
		require.NoError(t, err)

		_, err = fx.uc.Process(context.Background(), item.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidState)

		_, err = fx.uc.Approve(context.Background(), item.ID, dto.ItemOverrides{})
		assert.ErrorIs(t, err, errs.ErrInvalidState)

		_, err = fx.uc.Publish(context.Background(), item.ID)
		assert.ErrorIs(t, err, errs.ErrInvalidState)

		_, err = fx.uc.Reject(context.Background(), item.ID, "again")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("published cannot be rejected", func(t *testing.T) {
		item := fx.ingestQueued(t, photoInput())

		_, err := fx.uc.Publish(context.Background(), item.ID)
		require.NoError(t, err)

		_, err = fx.uc.Reject(context.Background(), item.ID, "too late")
		assert.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestPublish(t *testing.T) {
	fx := newFixture()
	item := fx.ingestQueued(t, photoInput())

	published, err := fx.uc.Publish(context.Background(), item.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusPublished, published.Status)
	assert.Equal(t, entity.CatalogKey(item.ID), published.ContentKey)
	assert.NotNil(t, published.PublishedAt)
	assert.Equal(t, 1, fx.catalog.len())
	assert.Equal(t, 1, fx.notifier.count("content_published"))
	assert.Equal(t, 1, fx.notifier.count("new_content"))
}

func TestPublish_DoubleIsRejected(t *testing.T) {
	fx := newFixture()
	item := fx.ingestQueued(t, photoInput())

	_, err := fx.uc.Publish(context.Background(), item.ID)
	require.NoError(t, err)

	_, err = fx.uc.Publish(context.Background(), item.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, 1, fx.catalog.len(), "exactly one catalog entry")
	assert.Equal(t, 1, fx.notifier.count("content_published"))
}

func TestPublish_NotQueued(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	_, err := fx.uc.Publish(context.Background(), item.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidState)
	assert.Equal(t, 0, fx.catalog.len())
}

func TestPublishAll(t *testing.T) {
	fx := newFixture()

	fx.ingestQueued(t, photoInput())
	fx.ingestQueued(t, photoInput())
	fx.ingest(t, photoInput()) // inbox, skipped

	count, err := fx.uc.PublishAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, count)
	assert.Equal(t, 2, fx.catalog.len())
}

func TestSweepDue(t *testing.T) {
	fx := newFixture()
	now := time.Now()

	past := now.Add(-time.Hour)
	exact := now
	future := now.Add(time.Hour)

	in := photoInput()
	in.ScheduledAt = &past
	fx.ingestQueued(t, in)

	in = photoInput()
	in.ScheduledAt = &exact
	fx.ingestQueued(t, in)

	in = photoInput()
	in.ScheduledAt = &future
	futureItem := fx.ingestQueued(t, in)

	fx.ingestQueued(t, photoInput()) // queued but unscheduled, never swept

	count, err := fx.uc.SweepDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count, "due at or before now")

	fresh, err := fx.uc.List(context.Background(), entity.StatusQueued)
	require.NoError(t, err)
	assert.Len(t, fresh.Items, 2)

	stillQueued := false
	for _, it := range fresh.Items {
		if it.ID == futureItem.ID {
			stillQueued = true
		}
	}
	assert.True(t, stillQueued, "future item untouched")

	assert.Equal(t, 1, fx.notifier.count("scheduled_publish"), "one summary for the whole sweep")
	assert.Equal(t, 0, fx.notifier.count("content_published"), "no per-item events from the sweep")
	assert.Equal(t, 2, fx.catalog.len())
}

func TestSweepDue_EmptySweepIsSilent(t *testing.T) {
	fx := newFixture()
	fx.ingestQueued(t, photoInput())

	count, err := fx.uc.SweepDue(context.Background(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0, count)
	assert.Equal(t, 0, fx.notifier.count("scheduled_publish"))
}

func TestUpdate(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	caption := "new caption"
	updated, err := fx.uc.Update(context.Background(), item.ID, dto.ItemOverrides{Caption: &caption})
	require.NoError(t, err)

	assert.Equal(t, "new caption", updated.Caption)
	assert.Equal(t, entity.StatusInbox, updated.Status, "update never touches the status")
}

func TestUpdate_EmptyIsNoOp(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	updated, err := fx.uc.Update(context.Background(), item.ID, dto.ItemOverrides{})
	require.NoError(t, err)

	assert.Equal(t, item.Caption, updated.Caption)
}

func TestUpdate_TerminalRefused(t *testing.T) {
	fx := newFixture()
	item := fx.ingestQueued(t, photoInput())

	_, err := fx.uc.Publish(context.Background(), item.ID)
	require.NoError(t, err)

	caption := "late edit"
	_, err = fx.uc.Update(context.Background(), item.ID, dto.ItemOverrides{Caption: &caption})
	assert.ErrorIs(t, err, errs.ErrInvalidState)
}

func TestDelete(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	thumbKey := entity.VariantKey(item.StoredAssetKey, entity.VariantThumb)
	require.NoError(t, fx.assets.UploadBytes(context.Background(), thumbKey, []byte("thumb"), "image/jpeg"))

	err := fx.uc.Delete(context.Background(), item.ID)
	require.NoError(t, err)

	assert.False(t, fx.assets.has(item.StoredAssetKey))
	assert.False(t, fx.assets.has(thumbKey))
	assert.Equal(t, 0, fx.docs.count(repo.NamespacePipeline))

	_, err = fx.uc.Process(context.Background(), item.ID)
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestDelete_VideoWithoutThumbnail(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, dto.IngestInput{
		Filename:  "clip.mp4",
		Size:      50 << 20,
		Data:      []byte("mp4 bytes"),
		CreatorID: "creator-1",
	})

	err := fx.uc.Delete(context.Background(), item.ID)
	require.NoError(t, err, "missing thumbnail variant is not an error")

	assert.Equal(t, 0, fx.assets.len())
}

func TestDelete_NotFound(t *testing.T) {
	fx := newFixture()

	err := fx.uc.Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestList(t *testing.T) {
	fx := newFixture()

	fx.ingest(t, photoInput())
	fx.ingest(t, photoInput())
	queued := fx.ingestQueued(t, photoInput())

	_, err := fx.uc.Publish(context.Background(), queued.ID)
	require.NoError(t, err)

	t.Run("unfiltered with counts", func(t *testing.T) {
		list, err := fx.uc.List(context.Background(), "")
		require.NoError(t, err)

		assert.Len(t, list.Items, 3)
		assert.Equal(t, 2, list.Counts[entity.StatusInbox])
		assert.Equal(t, 1, list.Counts[entity.StatusPublished])
		assert.Equal(t, 0, list.Counts[entity.StatusRejected], "zero counts are present")

		for i := 1; i < len(list.Items); i++ {
			assert.False(t, list.Items[i-1].CreatedAt.Before(list.Items[i].CreatedAt), "newest first")
		}
	})

	t.Run("filtered", func(t *testing.T) {
		list, err := fx.uc.List(context.Background(), entity.StatusInbox)
		require.NoError(t, err)

		assert.Len(t, list.Items, 2)
		assert.Nil(t, list.Counts)
	})
}

func TestAsset(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	body, contentType, err := fx.uc.Asset(context.Background(), item.StoredAssetKey)
	require.NoError(t, err)
	defer body.Close()

	payload, err := io.ReadAll(body)
	require.NoError(t, err)

	assert.Equal(t, []byte("jpeg bytes"), payload)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestAsset_NotFound(t *testing.T) {
	fx := newFixture()

	_, _, err := fx.uc.Asset(context.Background(), "pipeline-assets/missing.jpg")
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestThumbnail(t *testing.T) {
	fx := newFixture()
	item := fx.ingest(t, photoInput())

	t.Run("falls back to the primary asset", func(t *testing.T) {
		body, contentType, err := fx.uc.Thumbnail(context.Background(), item.StoredAssetKey)
		require.NoError(t, err)
		defer body.Close()

		payload, err := io.ReadAll(body)
		require.NoError(t, err)

		assert.Equal(t, []byte("jpeg bytes"), payload)
		assert.Equal(t, "image/jpeg", contentType)
	})

	t.Run("serves the derived thumbnail when present", func(t *testing.T) {
		thumbKey := entity.VariantKey(item.StoredAssetKey, entity.VariantThumb)
		require.NoError(t, fx.assets.UploadBytes(context.Background(), thumbKey, []byte("thumb bytes"), "image/jpeg"))

		body, contentType, err := fx.uc.Thumbnail(context.Background(), item.StoredAssetKey)
		require.NoError(t, err)
		defer body.Close()

		payload, err := io.ReadAll(body)
		require.NoError(t, err)

		assert.Equal(t, []byte("thumb bytes"), payload)
		assert.Equal(t, "image/jpeg", contentType)
	})
}
