package persistent

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/inkedmayhem/content-pipeline/pkg/s3client"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

type AssetRepo struct {
	*s3client.S3Client
	bucket string
}

func NewAssetRepo(s3c *s3client.S3Client, bucket string) *AssetRepo {
	return &AssetRepo{s3c, bucket}
}

func (r *AssetRepo) Upload(ctx context.Context, key string, data io.Reader, contentType string, size int64) error {
	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          data,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return fmt.Errorf("AssetRepo - Upload - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *AssetRepo) UploadBytes(ctx context.Context, key string, data []byte, contentType string) error {
	b := bytes.NewReader(data)

	_, err := r.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(r.bucket),
		Key:           aws.String(key),
		Body:          b,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return fmt.Errorf("AssetRepo - UploadBytes - r.Client.PutObject: %w", err)
	}

	return nil
}

func (r *AssetRepo) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	result, err := r.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, fmt.Errorf("AssetRepo - Download: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("AssetRepo - Download - r.Client.GetObject: %w", err)
	}

	return result.Body, nil
}

func (r *AssetRepo) DownloadBytes(ctx context.Context, key string) ([]byte, error) {
	body, err := r.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	b, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("AssetRepo - DownloadBytes - io.ReadAll: %w", err)
	}

	return b, nil
}

// Delete is idempotent: S3 DeleteObject succeeds for missing keys, which
// matches the pipeline's tolerant variant cleanup.
func (r *AssetRepo) Delete(ctx context.Context, key string) error {
	_, err := r.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("AssetRepo - Delete - r.Client.DeleteObject: %w", err)
	}

	return nil
}
