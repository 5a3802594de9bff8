package audit

import (
	"strconv"

	common_api "agency-forms/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary List audit logs
// @Tags audit
// @Produce json
// @Param module query string false "Module (form_templates, form_submissions, acord_exports)"
// @Param record_id query string false "Record ID"
// @Param action query string false "Action"
// @Param actor_id query string false "Actor ID"
// @Success 200 {array} common_models.AuditLog
// @Router /api/audit-logs [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	filter := Filter{
		Module:   c.Query("module"),
		RecordID: c.Query("record_id"),
		Action:   c.Query("action"),
		ActorID:  c.Query("actor_id"),
	}
	return ctrl.list(c, filter)
}

// History godoc
// @Summary Change history of one record
// @Tags audit
// @Produce json
// @Param module path string true "Module"
// @Param id path string true "Record ID"
// @Success 200 {array} common_models.AuditLog
// @Router /api/audit-logs/{module}/{id} [get]
func (ctrl *AuditController) History(c *fiber.Ctx) error {
	return ctrl.list(c, Filter{Module: c.Params("module"), RecordID: c.Params("id")})
}

func (ctrl *AuditController) list(c *fiber.Ctx, filter Filter) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	logs, err := ctrl.Service.ListLogs(c.UserContext(), filter, page, limit)
	if err != nil {
		return common_api.Error(c, err)
	}
	return c.JSON(logs)
}
