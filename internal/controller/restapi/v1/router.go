package v1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

func NewPipelineRoutes(apiV1Group fiber.Router, pl usecase.Pipeline, l logger.Interface) {
	r := &V1{pl: pl, logger: l}

	{
		// pipeline operations
		apiV1Group.Post("/pipeline/ingest", r.ingest)
		apiV1Group.Get("/pipeline", r.list)
		apiV1Group.Get("/pipeline/stats", r.stats)
		apiV1Group.Post("/pipeline/process-all", r.processAll)
		apiV1Group.Post("/pipeline/publish-all", r.publishAll)
		apiV1Group.Post("/pipeline/sweep", r.sweep)
		apiV1Group.Post("/pipeline/:id/process", r.process)
		apiV1Group.Post("/pipeline/:id/approve", r.approve)
		apiV1Group.Post("/pipeline/:id/reject", r.reject)
		apiV1Group.Post("/pipeline/:id/publish", r.publish)
		apiV1Group.Patch("/pipeline/:id", r.update)
		apiV1Group.Delete("/pipeline/:id", r.delete)

		// asset serving
		apiV1Group.Get("/assets/*", r.asset)
		apiV1Group.Get("/thumbnails/*", r.thumbnail)
	}
}
