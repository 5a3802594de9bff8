package form

import (
	"agency-forms/internal/common/api"
	"agency-forms/internal/config"
	"agency-forms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type TemplateApi struct {
	controller *TemplateController
	config     *config.Config
}

func NewTemplateApi(controller *TemplateController, config *config.Config) api.Route {
	return &TemplateApi{
		controller: controller,
		config:     config,
	}
}

func (h *TemplateApi) Setup(app *fiber.App) {
	templates := app.Group("/api/form-templates", middleware.AuthMiddleware(h.config.SkipAuth))

	templates.Get("/field-types", h.controller.FieldTypes)
	templates.Post("/master", h.controller.BuildMaster)

	templates.Post("/", h.controller.Create)
	templates.Get("/", h.controller.List)
	templates.Get("/:id", h.controller.Get)
	templates.Put("/:id", h.controller.Update)
	templates.Delete("/:id", h.controller.Delete)
	templates.Post("/:id/render", h.controller.Render)
	templates.Post("/:id/validate", h.controller.Validate)
}
