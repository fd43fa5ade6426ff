package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
)

// InventoryHandler maneja las peticiones HTTP del libro de inventario (protegido).
type InventoryHandler struct {
	svc *inventory.Service
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// Adjust POST /api/inventory/adjust
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	result, err := h.svc.Adjust(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, result)
}

// ListMovements GET /api/inventory/movements?productId=&movementType=&page=&pageSize=
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := int64(c.QueryInt("productId", 0))
	list, err := h.svc.ListMovements(c.UserContext(), productID, c.Query("movementType"), parsePage(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// Summary GET /api/inventory/summary
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.svc.Summary(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, summary)
}
