package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/inkedmayhem/content-pipeline/internal/dto"
)

const (
	maxWidth  = 1920
	maxHeight = 1920

	thumbWidth  = 300
	thumbHeight = 300

	jpegQuality  = 82
	thumbQuality = 80

	watermarkOpacity = 0.5
	watermarkMargin  = 16
)

type ImageProcessor struct {
}

func New() *ImageProcessor {
	return &ImageProcessor{}
}

// Optimize produces the processed primary variant: auto-orient (so the
// visual orientation survives the metadata strip), downscale to the max
// bounding box without upscaling, optional watermark, re-encode. The
// re-encode is what drops EXIF: imaging writes none.
func (p *ImageProcessor) Optimize(ctx context.Context, data []byte, cfg dto.TransformConfig) (*dto.OptimizeResult, error) {
	srcFormat := formatForExtension(cfg.SourceExtension)

	// GIFs keep their animation only if the bytes pass through untouched
	if srcFormat == imaging.GIF {
		bounds, err := decodeBounds(data)
		if err != nil {
			return nil, fmt.Errorf("ImageProcessor - Optimize - decodeBounds: %w", err)
		}

		return &dto.OptimizeResult{
			Data:   data,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
			Format: "gif",
		}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Optimize - imaging.Decode: %w", err)
	}

	if img.Bounds().Dx() > maxWidth || img.Bounds().Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	if cfg.Watermark && cfg.WatermarkText != "" {
		img = p.watermark(img, cfg.WatermarkText)
	}

	outFormat := srcFormat
	if cfg.Compress && srcFormat != imaging.PNG {
		// lossy sources converge on JPEG; PNG keeps its transparency
		outFormat = imaging.JPEG
	}

	var buf bytes.Buffer
	err = imaging.Encode(&buf, img, outFormat, imaging.JPEGQuality(jpegQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Optimize - imaging.Encode: %w", err)
	}

	return &dto.OptimizeResult{
		Data:   buf.Bytes(),
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
		Format: formatName(outFormat),
	}, nil
}

// Thumbnail produces the fixed-aspect cover crop, always JPEG.
func (p *ImageProcessor) Thumbnail(ctx context.Context, data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Thumbnail - imaging.Decode: %w", err)
	}

	thumb := imaging.Thumbnail(img, thumbWidth, thumbHeight, imaging.Lanczos)

	var buf bytes.Buffer
	err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(thumbQuality))
	if err != nil {
		return nil, fmt.Errorf("ImageProcessor - Thumbnail - imaging.Encode: %w", err)
	}

	return buf.Bytes(), nil
}

// watermark renders the text on a transparent canvas, scales it to about
// a quarter of the image width and composites it semi-transparently into
// the bottom-right corner.
func (p *ImageProcessor) watermark(img image.Image, text string) *image.NRGBA {
	face := basicfont.Face7x13

	d := &font.Drawer{
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255}),
		Face: face,
	}

	textWidth := d.MeasureString(text).Round()
	if textWidth == 0 {
		return imaging.Clone(img)
	}

	canvas := image.NewNRGBA(image.Rect(0, 0, textWidth+4, face.Height+4))
	d.Dst = canvas
	d.Dot = fixed.P(2, face.Ascent+2)
	d.DrawString(text)

	targetWidth := img.Bounds().Dx() / 4
	if targetWidth < textWidth {
		targetWidth = textWidth
	}
	overlay := imaging.Resize(canvas, targetWidth, 0, imaging.Lanczos)

	pos := image.Pt(
		img.Bounds().Dx()-overlay.Bounds().Dx()-watermarkMargin,
		img.Bounds().Dy()-overlay.Bounds().Dy()-watermarkMargin,
	)

	return imaging.Overlay(img, overlay, pos, watermarkOpacity)
}

func decodeBounds(data []byte) (image.Rectangle, error) {
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return image.Rectangle{}, err
	}
	return image.Rect(0, 0, config.Width, config.Height), nil
}

func formatForExtension(ext string) imaging.Format {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return imaging.JPEG
	}
	return format
}

func formatName(f imaging.Format) string {
	switch f {
	case imaging.PNG:
		return "png"
	case imaging.GIF:
		return "gif"
	default:
		return "jpeg"
	}
}
