package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	"github.com/inkedmayhem/content-pipeline/config"
	v1 "github.com/inkedmayhem/content-pipeline/internal/controller/restapi/v1"
	"github.com/inkedmayhem/content-pipeline/internal/usecase"
	"github.com/inkedmayhem/content-pipeline/pkg/logger"
)

// @title Content pipeline
// @version 1.0.0
// @host localhost:8080
// @BasePath /v1
func NewRouter(app *fiber.App, cfg *config.Config, pl usecase.Pipeline, l logger.Interface) {
	// Swagger
	if cfg.Swagger.Enabled {
		app.Get("/swagger/*", swagger.HandlerDefault)
	}

	// Routers
	apiV1Group := app.Group("/v1")
	{
		v1.NewPipelineRoutes(apiV1Group, pl, l)
	}
}
