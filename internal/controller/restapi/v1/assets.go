package v1

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// @Summary  	Serve an asset
// @Description Streams the binary under a key; the content type follows the key's extension
// @Tags 		assets
// @Produce 	octet-stream
// @Param 		key path string true "Asset key"
// @Success 	200 {file} 	binary
// @Failure 	404 {object} response.Error "Asset not found"
// @Router 		/v1/assets/{key} [get]
func (r *V1) asset(ctx *fiber.Ctx) error {
	key := ctx.Params("*")
	if key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "asset key is required")
	}

	body, contentType, err := r.pl.Asset(ctx.UserContext(), key)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - asset")
	}

	ctx.Set(fiber.HeaderContentType, contentType)

	return ctx.SendStream(body)
}

// @Summary  	Serve a thumbnail
// @Description Resolves the derived thumbnail key first, falling back to the primary asset when no thumbnail exists
// @Tags 		assets
// @Produce 	image/jpeg
// @Param 		key path string true "Primary asset key"
// @Success 	200 {file} 	binary
// @Failure 	404 {object} response.Error "Asset not found"
// @Router 		/v1/thumbnails/{key} [get]
func (r *V1) thumbnail(ctx *fiber.Ctx) error {
	key := ctx.Params("*")
	if key == "" {
		return errorResponse(ctx, http.StatusBadRequest, "asset key is required")
	}

	body, contentType, err := r.pl.Thumbnail(ctx.UserContext(), key)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - thumbnail")
	}

	ctx.Set(fiber.HeaderContentType, contentType)

	return ctx.SendStream(body)
}
