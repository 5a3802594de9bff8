package webhook

import (
	"github.com/gofiber/fiber/v2"
)

type WebhookController struct {
	Service WebhookService
}

func NewWebhookController(service WebhookService) *WebhookController {
	return &WebhookController{Service: service}
}

// ListDeliveries godoc
// @Summary List webhook deliveries
// @Tags webhooks
// @Produce json
// @Param event query string false "Event name"
// @Param limit query int false "Maximum entries"
// @Success 200 {array} DeliveryLog
// @Router /api/webhook-deliveries [get]
func (ctrl *WebhookController) ListDeliveries(c *fiber.Ctx) error {
	logs, err := ctrl.Service.ListDeliveries(c.UserContext(), c.Query("event"), int64(c.QueryInt("limit", 50)))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(logs)
}
