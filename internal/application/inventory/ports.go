// Package inventory implementa el libro de movimientos: todo cambio de stock
// pasa por aquí como un movimiento inmutable aplicado bajo lock de fila.
package inventory

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner puerto hacia la infraestructura transaccional: ejecuta fn con
// repositorios ligados a una única transacción.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(products repository.ProductRepository, movements repository.InventoryMovementRepository) error) error
}
