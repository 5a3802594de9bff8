package export

import (
	"fmt"

	apperrors "agency-forms/internal/common/errors"
	common_api "agency-forms/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ExportController struct {
	Service ExportService
}

func NewExportController(service ExportService) *ExportController {
	return &ExportController{Service: service}
}

// Export godoc
// @Summary Export a submission as ACORD
// @Description Generate ACORD XML, a JSON envelope around the XML, or a PDF application
// @Tags acord
// @Accept json
// @Produce json,xml,application/pdf
// @Param request body ExportRequest true "Export request"
// @Success 200 {object} Envelope
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/acord/export [post]
func (c *ExportController) Export(ctx *fiber.Ctx) error {
	var req ExportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	doc, err := c.Service.Export(ctx.UserContext(), req)
	if err != nil {
		return ctx.Status(apperrors.HTTPStatus(err)).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	switch doc.Format {
	case FormatJSON:
		return ctx.JSON(doc.Envelope)
	case FormatPDF:
		ctx.Set(fiber.HeaderContentType, doc.ContentType)
		ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Filename))
		return ctx.Send(doc.Body)
	default:
		ctx.Set(fiber.HeaderContentType, doc.ContentType)
		return ctx.Send(doc.Body)
	}
}

// ExportSubmissions godoc
// @Summary Export all submissions of a template
// @Tags acord
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Template ID"
// @Success 200 {file} file
// @Failure 404 {object} map[string]interface{}
// @Router /api/form-templates/{id}/submissions/export [get]
func (c *ExportController) ExportSubmissions(ctx *fiber.Ctx) error {
	data, filename, err := c.Service.ExportSubmissions(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		return common_api.Error(ctx, err)
	}

	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
