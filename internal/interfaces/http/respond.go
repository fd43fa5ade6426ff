// Package http expone la API REST (Fiber): handlers, middleware y router.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/erp-api/internal/domain"
)

// envelope formato uniforme de respuesta de la API.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

// ok responde con éxito y el payload dado.
func ok(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Data: data})
}

// okMessage responde con éxito y solo un mensaje (sin payload).
func okMessage(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message})
}

// fail mapea errores de dominio a códigos HTTP y responde con el envelope.
// Los errores no reconocidos se reportan como 500 sin filtrar detalle interno.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "error interno"

	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrInsufficientStock):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrUnauthorized):
		status, message = fiber.StatusUnauthorized, "credenciales inválidas"
	case errors.Is(err, domain.ErrForbidden):
		status, message = fiber.StatusForbidden, "acceso denegado"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, message = fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrEmailAlreadyExists),
		errors.Is(err, domain.ErrConflict):
		status, message = fiber.StatusConflict, err.Error()
	}

	return c.Status(status).JSON(envelope{Success: false, Message: message})
}

// badRequest responde 400 con el mensaje dado (errores de parseo de request).
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(envelope{Success: false, Message: message})
}
