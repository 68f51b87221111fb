package entity

import (
	"path"
	"strings"

	"github.com/google/uuid"
)

// Asset key derivation. Every variant key is a pure function of the base
// key, so the write path (transform) and the read/delete paths resolve
// the same names without tracking separate identities.

const assetKeyPrefix = "pipeline-assets/"

type AssetVariant string

const (
	VariantRaw   AssetVariant = "raw"
	VariantThumb AssetVariant = "thumb"
)

// AssetKey derives the primary asset key from the item ID and extension.
// ext is expected with a leading dot ("jpg" is tolerated).
func AssetKey(id uuid.UUID, ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return assetKeyPrefix + id.String() + ext
}

// VariantKey derives the key of an asset variant from the base key.
// The processed variant overwrites the base key, so only the thumbnail
// gets a distinct name. Thumbnails are always JPEG.
func VariantKey(base string, v AssetVariant) string {
	if v != VariantThumb {
		return base
	}

	ext := path.Ext(base)
	return strings.TrimSuffix(base, ext) + "-thumb.jpg"
}

// MediaTypeForExtension classifies a file extension (with or without the
// leading dot) into a media type.
func MediaTypeForExtension(ext string) MediaType {
	switch normalizeExt(ext) {
	case "jpg", "jpeg", "png", "gif", "webp":
		return MediaImage
	case "mp4", "mov", "webm", "m4v":
		return MediaVideo
	}
	return MediaOther
}

// ContentTypeForKey derives the MIME type to serve from the key's
// extension.
func ContentTypeForKey(key string) string {
	switch normalizeExt(path.Ext(key)) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "mp4", "m4v":
		return "video/mp4"
	case "mov":
		return "video/quicktime"
	case "webm":
		return "video/webm"
	}
	return "application/octet-stream"
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
