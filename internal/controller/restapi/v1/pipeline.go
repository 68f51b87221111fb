package v1

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/inkedmayhem/content-pipeline/internal/controller/restapi/v1/response"
	"github.com/inkedmayhem/content-pipeline/internal/dto"
	"github.com/inkedmayhem/content-pipeline/internal/entity"
)

// @Summary  	Ingest a new upload
// @Description Validates the file and creates the initial pipeline item; the payload may be omitted for metadata-only ingest
// @Tags 		pipeline
// @Accept 		mpfd
// @Produce 	json
// @Param 		file 	  formData file   false "Media file"
// @Param 		filename  formData string false "Filename (required when no file is attached)"
// @Param 		size      formData int    false "Declared size in bytes (metadata-only ingest)"
// @Param 		creatorId formData string false "Owning creator"
// @Param 		caption   formData string false "Caption"
// @Param 		tags 	  formData string false "Comma separated tags"
// @Param 		category  formData string false "Category"
// @Param 		tier 	  formData string false "Tier" Enums(free, vip, elite)
// @Param 		source 	  formData string false "Origin channel"
// @Param 		scheduledAt formData string false "RFC3339 publication time"
// @Success 	201 {object} entity.PipelineItem
// @Failure 	400 {object} response.Error "Validation failed"
// @Failure 	413 {object} response.Error "File too large"
// @Failure 	415 {object} response.Error "Unsupported file type"
// @Failure 	500 {object} response.Error "Internal"
// @Router 		/v1/pipeline/ingest [post]
func (r *V1) ingest(ctx *fiber.Ctx) error {
	in := dto.IngestInput{
		Filename:  ctx.FormValue("filename"),
		CreatorID: ctx.FormValue("creatorId"),
		Caption:   ctx.FormValue("caption"),
		Category:  ctx.FormValue("category"),
		Tier:      ctx.FormValue("tier"),
		Source:    ctx.FormValue("source"),
	}

	if tags := ctx.FormValue("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				in.Tags = append(in.Tags, tag)
			}
		}
	}

	if raw := ctx.FormValue("scheduledAt"); raw != "" {
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "scheduledAt must be RFC3339")
		}
		in.ScheduledAt = &at
	}

	file, err := ctx.FormFile("file")
	if err == nil {
		if in.Filename == "" {
			in.Filename = file.Filename
		}
		in.Size = file.Size

		reader, err := file.Open()
		if err != nil {
			r.logger.Error(err, "restapi - v1 - ingest")

			return errorResponse(ctx, http.StatusInternalServerError, "problems with opening the file")
		}
		defer reader.Close()

		in.Data, err = io.ReadAll(reader)
		if err != nil {
			r.logger.Error(err, "restapi - v1 - ingest")

			return errorResponse(ctx, http.StatusInternalServerError, "problems with reading the file")
		}
	} else if raw := ctx.FormValue("size"); raw != "" {
		// metadata-only ingest: the declared size comes from the form
		in.Size, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "size must be a number")
		}
	}

	item, err := r.pl.Ingest(ctx.UserContext(), in)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - ingest")
	}

	return ctx.Status(http.StatusCreated).JSON(item)
}

// @Summary  	Process an inbox item
// @Description Runs the media transform and moves the item to processed (or queued when auto-approval is on)
// @Tags 		pipeline
// @Produce 	json
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Success 	200 {object} entity.PipelineItem
// @Failure 	400 {object} response.Error "Invalid ID"
// @Failure 	404 {object} response.Error "Item not found"
// @Failure 	409 {object} response.Error "Not in inbox"
// @Router 		/v1/pipeline/{id}/process [post]
func (r *V1) process(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	item, err := r.pl.Process(ctx.UserContext(), id)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - process")
	}

	return ctx.JSON(item)
}

// @Summary  	Process every inbox item
// @Tags 		pipeline
// @Produce 	json
// @Success 	200 {object} response.Count
// @Router 		/v1/pipeline/process-all [post]
func (r *V1) processAll(ctx *fiber.Ctx) error {
	count, err := r.pl.ProcessAll(ctx.UserContext())
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - processAll")
	}

	return ctx.JSON(response.Count{Count: count})
}

type approveRequest struct {
	Caption     *string    `json:"caption"`
	Tags        []string   `json:"tags"`
	Category    *string    `json:"category"`
	Tier        *string    `json:"tier"`
	ScheduledAt *time.Time `json:"scheduledAt"`
}

func (req approveRequest) overrides() dto.ItemOverrides {
	return dto.ItemOverrides{
		Caption:     req.Caption,
		Tags:        req.Tags,
		Category:    req.Category,
		Tier:        req.Tier,
		ScheduledAt: req.ScheduledAt,
	}
}

// @Summary  	Approve an item for publication
// @Description Applies optional overrides and queues the item; runs the catch-up transform when processing was skipped
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Param 		request body approveRequest false "Optional overrides"
// @Success 	200 {object} entity.PipelineItem
// @Failure 	404 {object} response.Error "Item not found"
// @Failure 	409 {object} response.Error "Not approvable"
// @Router 		/v1/pipeline/{id}/approve [post]
func (r *V1) approve(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req approveRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "invalid body")
		}
	}

	item, err := r.pl.Approve(ctx.UserContext(), id, req.overrides())
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - approve")
	}

	return ctx.JSON(item)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// @Summary  	Reject an item
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Param 		request body rejectRequest false "Optional reason"
// @Success 	200 {object} entity.PipelineItem
// @Failure 	404 {object} response.Error "Item not found"
// @Failure 	409 {object} response.Error "Already terminal"
// @Router 		/v1/pipeline/{id}/reject [post]
func (r *V1) reject(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req rejectRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return errorResponse(ctx, http.StatusBadRequest, "invalid body")
		}
	}

	item, err := r.pl.Reject(ctx.UserContext(), id, req.Reason)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - reject")
	}

	return ctx.JSON(item)
}

// @Summary  	Publish a queued item
// @Description Creates the catalog entry and marks the item published
// @Tags 		pipeline
// @Produce 	json
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Success 	200 {object} entity.PipelineItem
// @Failure 	404 {object} response.Error "Item not found"
// @Failure 	409 {object} response.Error "Not queued"
// @Router 		/v1/pipeline/{id}/publish [post]
func (r *V1) publish(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	item, err := r.pl.Publish(ctx.UserContext(), id)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - publish")
	}

	return ctx.JSON(item)
}

// @Summary  	Publish every queued item
// @Tags 		pipeline
// @Produce 	json
// @Success 	200 {object} response.Count
// @Router 		/v1/pipeline/publish-all [post]
func (r *V1) publishAll(ctx *fiber.Ctx) error {
	count, err := r.pl.PublishAll(ctx.UserContext())
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - publishAll")
	}

	return ctx.JSON(response.Count{Count: count})
}

// @Summary  	Update item metadata
// @Description Caption/tags/category/tier/scheduledAt only; the status never changes
// @Tags 		pipeline
// @Accept 		json
// @Produce 	json
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Param 		request body approveRequest true "Fields to update"
// @Success 	200 {object} entity.PipelineItem
// @Failure 	404 {object} response.Error "Item not found"
// @Failure 	409 {object} response.Error "Item is terminal"
// @Router 		/v1/pipeline/{id} [patch]
func (r *V1) update(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	var req approveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid body")
	}

	item, err := r.pl.Update(ctx.UserContext(), id, req.overrides())
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - update")
	}

	return ctx.JSON(item)
}

// @Summary  	Delete an item and its assets
// @Tags 		pipeline
// @Param 		id path string true "Pipeline item ID (uuid)"
// @Success 	204 "Deleted"
// @Failure 	404 {object} response.Error "Item not found"
// @Router 		/v1/pipeline/{id} [delete]
func (r *V1) delete(ctx *fiber.Ctx) error {
	id, err := parseID(ctx)
	if err != nil {
		return errorResponse(ctx, http.StatusBadRequest, "invalid id")
	}

	if err := r.pl.Delete(ctx.UserContext(), id); err != nil {
		return r.fail(ctx, err, "restapi - v1 - delete")
	}

	return ctx.SendStatus(http.StatusNoContent)
}

// @Summary  	List pipeline items
// @Tags 		pipeline
// @Produce 	json
// @Param 		status query string false "Status filter" Enums(inbox, processed, queued, published, rejected)
// @Success 	200 {object} dto.ItemList
// @Failure 	400 {object} response.Error "Unknown status"
// @Router 		/v1/pipeline [get]
func (r *V1) list(ctx *fiber.Ctx) error {
	filter := entity.Status(ctx.Query("status"))
	if filter != "" && !filter.Valid() {
		return errorResponse(ctx, http.StatusBadRequest, "unknown status filter")
	}

	items, err := r.pl.List(ctx.UserContext(), filter)
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - list")
	}

	return ctx.JSON(items)
}

// @Summary  	Pipeline status counts
// @Tags 		pipeline
// @Produce 	json
// @Success 	200 {object} map[string]int
// @Router 		/v1/pipeline/stats [get]
func (r *V1) stats(ctx *fiber.Ctx) error {
	items, err := r.pl.List(ctx.UserContext(), "")
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - stats")
	}

	return ctx.JSON(items.Counts)
}

// @Summary  	Trigger a scheduler sweep
// @Description Publishes every queued item whose scheduled time has passed
// @Tags 		pipeline
// @Produce 	json
// @Success 	200 {object} response.Count
// @Router 		/v1/pipeline/sweep [post]
func (r *V1) sweep(ctx *fiber.Ctx) error {
	count, err := r.pl.SweepDue(ctx.UserContext(), time.Now())
	if err != nil {
		return r.fail(ctx, err, "restapi - v1 - sweep")
	}

	return ctx.JSON(response.Count{Count: count})
}

func parseID(ctx *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(ctx.Params("id"))
}
