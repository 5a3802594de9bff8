package form

import (
	common_api "agency-forms/internal/common/api"
	apperrors "agency-forms/internal/common/errors"
	common_models "agency-forms/internal/common/models"
	"agency-forms/pkg/condition"

	"github.com/gofiber/fiber/v2"
)

type TemplateController struct {
	Service TemplateService
}

func NewTemplateController(service TemplateService) *TemplateController {
	return &TemplateController{Service: service}
}

// StateRequest is the form state sent to render and validate.
type StateRequest struct {
	LineOfBusiness common_models.LOBSet   `json:"line_of_business"`
	Values         map[string]interface{} `json:"values"`
}

type MasterRequest struct {
	Name string `json:"name"`
}

type catalogueEntry struct {
	FieldType   FieldType `json:"field_type"`
	Widget      Widget    `json:"widget"`
	HasOptions  bool      `json:"has_options"`
	Numeric     bool      `json:"numeric"`
	MultiValued bool      `json:"multi_valued"`
}

// Create godoc
// @Summary Create form template
// @Description Create a template together with its sections and fields
// @Tags form_templates
// @Accept json
// @Produce json
// @Param template body FormTemplate true "Form Template"
// @Success 201 {object} FormTemplate
// @Failure 400 {object} map[string]interface{}
// @Router /api/form-templates [post]
func (c *TemplateController) Create(ctx *fiber.Ctx) error {
	var template FormTemplate
	if err := ctx.BodyParser(&template); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.Service.CreateTemplate(ctx.UserContext(), &template); err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// BuildMaster godoc
// @Summary Build master form
// @Description Synthesize the comprehensive template spanning every line of business
// @Tags form_templates
// @Produce json
// @Success 201 {object} FormTemplate
// @Router /api/form-templates/master [post]
func (c *TemplateController) BuildMaster(ctx *fiber.Ctx) error {
	var req MasterRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	template, err := c.Service.BuildMasterTemplate(ctx.UserContext(), req.Name)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(template)
}

// List godoc
// @Summary List form templates
// @Tags form_templates
// @Produce json
// @Param active query bool false "Only active templates"
// @Param lob query string false "Line of business"
// @Success 200 {array} FormTemplate
// @Router /api/form-templates [get]
func (c *TemplateController) List(ctx *fiber.Ctx) error {
	filter := ListFilter{
		ActiveOnly:     ctx.QueryBool("active", false),
		LineOfBusiness: common_models.LineOfBusiness(ctx.Query("lob")),
	}

	templates, err := c.Service.ListTemplates(ctx.UserContext(), filter)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(templates)
}

// Get godoc
// @Summary Get form template
// @Tags form_templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} FormTemplate
// @Failure 404 {object} map[string]interface{}
// @Router /api/form-templates/{id} [get]
func (c *TemplateController) Get(ctx *fiber.Ctx) error {
	template, err := c.Service.GetTemplate(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(template)
}

// Update godoc
// @Summary Update form template
// @Description Edit name, description or the active flag
// @Tags form_templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} FormTemplate
// @Router /api/form-templates/{id} [put]
func (c *TemplateController) Update(ctx *fiber.Ctx) error {
	var update TemplateUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template, err := c.Service.UpdateTemplate(ctx.UserContext(), ctx.Params("id"), update)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(template)
}

// Delete godoc
// @Summary Delete form template
// @Tags form_templates
// @Param id path string true "Template ID"
// @Success 204 {object} nil
// @Router /api/form-templates/{id} [delete]
func (c *TemplateController) Delete(ctx *fiber.Ctx) error {
	if err := c.Service.DeleteTemplate(ctx.UserContext(), ctx.Params("id")); err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// Render godoc
// @Summary Render form template
// @Description Visible sections and fields for the given lines of business and values
// @Tags form_templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {array} RenderedSection
// @Router /api/form-templates/{id}/render [post]
func (c *TemplateController) Render(ctx *fiber.Ctx) error {
	req, err := parseState(ctx)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	sections, err := c.Service.RenderTemplate(ctx.UserContext(), ctx.Params("id"), req.LineOfBusiness, req.Values)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(fiber.Map{"sections": sections})
}

// Validate godoc
// @Summary Validate form values
// @Tags form_templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} map[string]interface{}
// @Router /api/form-templates/{id}/validate [post]
func (c *TemplateController) Validate(ctx *fiber.Ctx) error {
	req, err := parseState(ctx)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	errs, err := c.Service.ValidateValues(ctx.UserContext(), ctx.Params("id"), req.LineOfBusiness, req.Values)
	if err != nil {
		return common_api.Error(ctx, err)
	}

	return ctx.JSON(fiber.Map{"valid": len(errs) == 0, "errors": errs})
}

// FieldTypes godoc
// @Summary Field type catalogue
// @Description The supported field types and conditional operators
// @Tags form_templates
// @Produce json
// @Router /api/form-templates/field-types [get]
func (c *TemplateController) FieldTypes(ctx *fiber.Ctx) error {
	entries := make([]catalogueEntry, 0, len(FieldTypes))
	for _, ft := range FieldTypes {
		info, _ := ft.Info()
		entries = append(entries, catalogueEntry{
			FieldType:   ft,
			Widget:      info.Widget,
			HasOptions:  info.HasOptions,
			Numeric:     info.Numeric,
			MultiValued: info.MultiValued,
		})
	}

	return ctx.JSON(fiber.Map{
		"field_types": entries,
		"operators":   condition.Operators,
	})
}

func parseState(ctx *fiber.Ctx) (*StateRequest, error) {
	req := &StateRequest{}
	if err := ctx.BodyParser(req); err != nil {
		return nil, apperrors.NewInvalidRequest(err.Error())
	}
	if req.LineOfBusiness == nil {
		req.LineOfBusiness = common_models.NewLOBSet()
	}
	if req.Values == nil {
		req.Values = map[string]interface{}{}
	}
	return req, nil
}
