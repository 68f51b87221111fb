package v1

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/inkedmayhem/content-pipeline/internal/controller/restapi/v1/response"
	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
	"github.com/inkedmayhem/content-pipeline/pkg/types/errs"
)

type V1 struct {
	pl     usecase.Pipeline
	logger logger.Interface
}

func errorResponse(ctx *fiber.Ctx, code int, msg string) error {
	return ctx.Status(code).JSON(response.Error{Error: msg})
}

// statusForError maps the error taxonomy to HTTP statuses. Aggregated
// validation failures pick the most specific code; a mixed failure
// degrades to 400.
func statusForError(err error) int {
	var validation *errs.ValidationError
	if errors.As(err, &validation) && len(validation.Failures) > 1 {
		return http.StatusBadRequest
	}

	switch {
	case errors.Is(err, errs.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, errs.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errs.ErrInvalidFileType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, errs.ErrMissingField):
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func (r *V1) fail(ctx *fiber.Ctx, err error, location string) error {
	code := statusForError(err)
	if code == http.StatusInternalServerError {
		r.logger.Error(err, location)

		return errorResponse(ctx, code, "internal error")
	}

	return errorResponse(ctx, code, err.Error())
}
