package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// OrderItemRequest línea solicitada. UnitPrice es opcional: si viene, es un
// override; si no, se toma snapshot del precio actual del producto.
type OrderItemRequest struct {
	ProductID int64            `json:"productId"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
}

// CreateOrderRequest payload de creación de orden.
type CreateOrderRequest struct {
	CustomerID int64              `json:"customerId"`
	Items      []OrderItemRequest `json:"items"`
}

// UpdateOrderStatusRequest payload de cambio de estado.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentStatusRequest payload de cambio de estado de pago.
type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// OrderItemResponse línea de orden con los datos del producto.
type OrderItemResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSKU  string          `json:"productSku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// OrderResponse orden completa con sus líneas.
type OrderResponse struct {
	ID            int64               `json:"id"`
	CustomerID    int64               `json:"customerId"`
	Status        string              `json:"status"`
	PaymentStatus string              `json:"paymentStatus"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	Tax           decimal.Decimal     `json:"tax"`
	Total         decimal.Decimal     `json:"total"`
	CreatedAt     time.Time           `json:"createdAt"`
	Items         []OrderItemResponse `json:"items"`
}

// OrderSummaryResponse fila de listado de órdenes.
type OrderSummaryResponse struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail,omitempty"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// NewOrderItemResponse mapea la fila de repositorio al DTO.
func NewOrderItemResponse(row repository.OrderItemRow) OrderItemResponse {
	return OrderItemResponse{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		ProductSKU:  row.ProductSKU,
		Quantity:    row.Quantity,
		UnitPrice:   row.UnitPrice,
		LineTotal:   row.LineTotal,
	}
}

// NewOrderSummaryResponse mapea la fila de repositorio al DTO.
func NewOrderSummaryResponse(row repository.OrderSummaryRow) OrderSummaryResponse {
	return OrderSummaryResponse{
		ID:            row.ID,
		CustomerID:    row.CustomerID,
		CustomerName:  row.CustomerName,
		CustomerEmail: row.CustomerEmail,
		Status:        row.Status,
		PaymentStatus: row.PaymentStatus,
		Total:         row.Total,
		CreatedAt:     row.CreatedAt,
	}
}
