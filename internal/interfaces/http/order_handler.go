package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/orders"
)

// OrderHandler maneja las peticiones HTTP de órdenes (protegido).
type OrderHandler struct {
	svc *orders.Service
}

// NewOrderHandler construye el handler.
func NewOrderHandler(svc *orders.Service) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	order, err := h.svc.CreateOrder(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, order)
}

// GetByID GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}
	order, err := h.svc.GetOrder(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, order)
}

// List GET /api/orders?page=&pageSize=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	list, err := h.svc.ListOrders(c.UserContext(), parsePage(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

// UpdateStatus PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	order, err := h.svc.UpdateStatus(c.UserContext(), id, in.Status)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, order)
}

// UpdatePayment PATCH /api/orders/:id/payment
func (h *OrderHandler) UpdatePayment(c *fiber.Ctx) error {
	id, valid := parseID(c)
	if !valid {
		return badRequest(c, "id inválido")
	}
	var in dto.UpdatePaymentStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}
	order, err := h.svc.UpdatePaymentStatus(c.UserContext(), id, in.PaymentStatus)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, order)
}
