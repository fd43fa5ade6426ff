package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// MovementRow movimiento con los nombres de producto y actor resueltos.
type MovementRow struct {
	entity.InventoryMovement
	ProductName string
	UserName    string // vacío si el esquema no registra actor
}

// MovementSummary agregados del libro de movimientos.
// NetChange = TotalReceived - TotalDispatched + TotalAdjusted.
type MovementSummary struct {
	TotalReceived   int64
	TotalDispatched int64
	TotalAdjusted   int64
	NetChange       int64
}

// InventoryMovementRepository define el puerto de persistencia del libro de
// movimientos. Los movimientos son append-only: no hay Update ni Delete.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	List(productID int64, movementType string, limit, offset int) ([]MovementRow, error)
	Count(productID int64, movementType string) (int, error)
	Summary() (*MovementSummary, error)
}
