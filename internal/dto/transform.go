package dto

// TransformConfig selects the steps applied to one image.
type TransformConfig struct {
	StripMetadata     bool
	Compress          bool
	GenerateThumbnail bool
	Watermark         bool
	WatermarkText     string

	// SourceExtension drives output format selection (with or without
	// the leading dot).
	SourceExtension string
}

// OptimizeResult is the outcome of the primary variant pass.
type OptimizeResult struct {
	Data   []byte
	Width  int
	Height int
	Format string
}
