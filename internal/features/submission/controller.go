package submission

import (
	common_api "agency-forms/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type SubmissionController struct {
	Service SubmissionService
}

func NewSubmissionController(service SubmissionService) *SubmissionController {
	return &SubmissionController{Service: service}
}

// Create godoc
// @Summary Save a form submission
// @Description Save a draft or submit the form. Submitting runs validation first.
// @Tags form_submissions
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param submission body SaveRequest true "Submission"
// @Success 201 {object} FormSubmission
// @Failure 422 {object} map[string]interface{}
// @Router /api/form-templates/{id}/submissions [post]
func (c *SubmissionController) Create(ctx *fiber.Ctx) error {
	var req SaveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submission, err := c.Service.Create(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(submission)
}

// Update godoc
// @Summary Update a draft submission
// @Tags form_submissions
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param submission body SaveRequest true "Submission"
// @Success 200 {object} FormSubmission
// @Failure 422 {object} map[string]interface{}
// @Router /api/form-submissions/{id} [put]
func (c *SubmissionController) Update(ctx *fiber.Ctx) error {
	var req SaveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	submission, err := c.Service.Resume(ctx.UserContext(), ctx.Params("id"), req)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(submission)
}

// Get godoc
// @Summary Get a submission
// @Tags form_submissions
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} FormSubmission
// @Failure 404 {object} map[string]interface{}
// @Router /api/form-submissions/{id} [get]
func (c *SubmissionController) Get(ctx *fiber.Ctx) error {
	submission, err := c.Service.Get(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(submission)
}

// List godoc
// @Summary List submissions
// @Tags form_submissions
// @Produce json
// @Param template_id query string false "Template ID"
// @Param policy_id query string false "Policy ID"
// @Param status query string false "draft, submitted or processed"
// @Success 200 {array} FormSubmission
// @Router /api/form-submissions [get]
func (c *SubmissionController) List(ctx *fiber.Ctx) error {
	filter := ListFilter{
		TemplateID: ctx.Query("template_id"),
		PolicyID:   ctx.Query("policy_id"),
		Status:     Status(ctx.Query("status")),
	}

	submissions, err := c.Service.List(ctx.UserContext(), filter)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(submissions)
}
