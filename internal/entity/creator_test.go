package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreatorConfig_AllowsExtension(t *testing.T) {
	cfg := &CreatorConfig{AllowedExtensions: []string{".jpg", "png"}}

	assert.True(t, cfg.AllowsExtension(".jpg"))
	assert.True(t, cfg.AllowsExtension("jpg"))
	assert.True(t, cfg.AllowsExtension(".PNG"))
	assert.False(t, cfg.AllowsExtension(".exe"))
	assert.False(t, cfg.AllowsExtension(""))
}

func TestCreatorConfig_MaxBytesFor(t *testing.T) {
	cfg := &CreatorConfig{MaxImageBytes: 100, MaxVideoBytes: 200}

	assert.EqualValues(t, 100, cfg.MaxBytesFor(MediaImage))
	assert.EqualValues(t, 200, cfg.MaxBytesFor(MediaVideo))
	assert.EqualValues(t, 100, cfg.MaxBytesFor(MediaOther), "non-video media shares the image ceiling")
}

func TestDefaultCreatorConfig(t *testing.T) {
	cfg := DefaultCreatorConfig()

	assert.True(t, cfg.AllowsExtension(".jpg"))
	assert.True(t, cfg.AllowsExtension(".mp4"))
	assert.False(t, cfg.AllowsExtension(".exe"))
	assert.True(t, cfg.StripMetadata)
	assert.True(t, cfg.Compress)
	assert.True(t, cfg.GenerateThumbnails)
	assert.False(t, cfg.AutoApprove)
}
