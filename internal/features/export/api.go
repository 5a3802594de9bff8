package export

import (
	"agency-forms/internal/common/api"
	"agency-forms/internal/config"
	"agency-forms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type ExportApi struct {
	controller *ExportController
	config     *config.Config
}

func NewExportApi(controller *ExportController, config *config.Config) api.Route {
	return &ExportApi{
		controller: controller,
		config:     config,
	}
}

func (h *ExportApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/acord/export", auth, h.controller.Export)
	app.Get("/api/form-templates/:id/submissions/export", auth, h.controller.ExportSubmissions)
}
