// Package orders implementa el motor transaccional de órdenes: creación
// atómica de cabecera, líneas, movimientos de venta y descuento de stock.
package orders

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner puerto hacia la infraestructura transaccional del motor de órdenes:
// entrega todos los repositorios que la creación de una orden toca, ligados a
// una única transacción.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		products repository.ProductRepository,
		movements repository.InventoryMovementRepository,
		orders repository.OrderRepository,
		customers repository.CustomerRepository,
	) error) error
}
