package dto

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// AdjustInventoryRequest payload de ajuste manual de inventario.
// Para adjustment, Quantity lleva signo; para stock_in/stock_out es magnitud positiva.
type AdjustInventoryRequest struct {
	ProductID    int64  `json:"productId"`
	MovementType string `json:"movementType"`
	Quantity     int64  `json:"quantity"`
	Location     string `json:"location"`
	Reference    string `json:"reference"`
}

// MovementResponse movimiento del libro con nombres resueltos.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	Type        string    `json:"movementType"`
	Quantity    int64     `json:"quantity"`
	Location    string    `json:"location,omitempty"`
	Reference   string    `json:"reference,omitempty"`
	UserName    string    `json:"userName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AdjustInventoryResponse resultado del ajuste: movimiento registrado más el
// stock y estado resultantes del producto.
type AdjustInventoryResponse struct {
	Movement MovementResponse `json:"movement"`
	NewStock int64            `json:"newStock"`
	Status   string           `json:"status"`
}

// MovementSummaryResponse agregados del libro de movimientos.
type MovementSummaryResponse struct {
	TotalReceived   int64 `json:"totalReceived"`
	TotalDispatched int64 `json:"totalDispatched"`
	TotalAdjusted   int64 `json:"totalAdjusted"`
	NetChange       int64 `json:"netChange"`
}

// NewMovementResponse mapea la fila de repositorio al DTO.
func NewMovementResponse(row repository.MovementRow) MovementResponse {
	return MovementResponse{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Type:        row.Type,
		Quantity:    row.Quantity,
		Location:    row.Location,
		Reference:   row.Reference,
		UserName:    row.UserName,
		CreatedAt:   row.CreatedAt,
	}
}
