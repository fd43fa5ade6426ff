package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint de métricas agregadas (protegido).
type DashboardHandler struct {
	uc *analytics.DashboardUsecase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get GET /api/dashboard/summary
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	dashboard, err := h.uc.Get(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, dashboard)
}
