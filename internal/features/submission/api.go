package submission

import (
	"agency-forms/internal/common/api"
	"agency-forms/internal/config"
	"agency-forms/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

type SubmissionApi struct {
	controller *SubmissionController
	config     *config.Config
}

func NewSubmissionApi(controller *SubmissionController, config *config.Config) api.Route {
	return &SubmissionApi{
		controller: controller,
		config:     config,
	}
}

func (h *SubmissionApi) Setup(app *fiber.App) {
	auth := middleware.AuthMiddleware(h.config.SkipAuth)

	app.Post("/api/form-templates/:id/submissions", auth, h.controller.Create)

	submissions := app.Group("/api/form-submissions", auth)
	submissions.Get("/", h.controller.List)
	submissions.Get("/:id", h.controller.Get)
	submissions.Put("/:id", h.controller.Update)
}
