package entity

// CreatorConfig carries the per-creator pipeline settings. Documents live
// in the "creators" namespace; creators without one get the defaults.
type CreatorConfig struct {
	AllowedExtensions []string `json:"allowedExtensions"`
	MaxImageBytes     int64    `json:"maxImageBytes"`
	MaxVideoBytes     int64    `json:"maxVideoBytes"`

	StripMetadata      bool   `json:"stripMetadata"`
	Compress           bool   `json:"compress"`
	GenerateThumbnails bool   `json:"generateThumbnails"`
	AutoApprove        bool   `json:"autoApprove"`
	Watermark          bool   `json:"watermark"`
	WatermarkText      string `json:"watermarkText,omitempty"`
}

func DefaultCreatorConfig() *CreatorConfig {
	return &CreatorConfig{
		AllowedExtensions:  []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".mp4", ".mov"},
		MaxImageBytes:      25 << 20,
		MaxVideoBytes:      500 << 20,
		StripMetadata:      true,
		Compress:           true,
		GenerateThumbnails: true,
	}
}

// AllowsExtension checks the allow-list, tolerating a missing leading dot
// on either side.
func (c *CreatorConfig) AllowsExtension(ext string) bool {
	want := normalizeExt(ext)
	for _, allowed := range c.AllowedExtensions {
		if normalizeExt(allowed) == want {
			return true
		}
	}
	return false
}

// MaxBytesFor returns the size ceiling for a media type. Non-video media
// shares the image ceiling.
func (c *CreatorConfig) MaxBytesFor(mt MediaType) int64 {
	if mt == MediaVideo {
		return c.MaxVideoBytes
	}
	return c.MaxImageBytes
}
