package processor

import (
	"agency-forms/internal/common/api"
	"agency-forms/internal/config"
	"agency-forms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ProcessorApi struct {
	controller *ProcessorController
	config     *config.Config
}

func NewProcessorApi(controller *ProcessorController, config *config.Config) api.Route {
	return &ProcessorApi{
		controller: controller,
		config:     config,
	}
}

func (h *ProcessorApi) Setup(app *fiber.App) {
	group := app.Group("/api/processor", middleware.AuthMiddleware(h.config.SkipAuth))
	group.Post("/run", h.controller.Run)
	group.Get("/status", h.controller.Status)
}
