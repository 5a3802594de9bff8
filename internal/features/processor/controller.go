package processor

import (
	common_api "agency-forms/internal/common/api"

	"github.com/gofiber/fiber/v2"
)

type ProcessorController struct {
	Service ProcessorService
}

func NewProcessorController(service ProcessorService) *ProcessorController {
	return &ProcessorController{Service: service}
}

// Run godoc
// @Summary Run the submission processor now
// @Tags processor
// @Produce json
// @Success 200 {object} SweepResult
// @Failure 400 {object} map[string]interface{}
// @Router /api/processor/run [post]
func (c *ProcessorController) Run(ctx *fiber.Ctx) error {
	result, err := c.Service.RunOnce(ctx.UserContext())
	if err != nil {
		return common_api.Error(ctx, err)
	}
	return ctx.JSON(result)
}

// Status godoc
// @Summary Result of the last processor sweep
// @Tags processor
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/processor/status [get]
func (c *ProcessorController) Status(ctx *fiber.Ctx) error {
	return ctx.JSON(fiber.Map{"last_sweep": c.Service.LastSweep()})
}
