package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden. completed y cancelled son terminales.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// Estados de pago. Binario e independiente del estado de la orden.
const (
	PaymentUnpaid = "unpaid"
	PaymentPaid   = "paid"
)

// orderTransitions transiciones permitidas del estado de la orden.
// Desde los estados terminales no se acepta ninguna transición.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

// Order representa la cabecera de una orden de venta.
// Total se deriva como subtotal+tax al crear y se persiste; no se recalcula después.
type Order struct {
	ID            int64
	CustomerID    int64
	Status        string
	PaymentStatus string
	Subtotal      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	CreatedAt     time.Time
}

// CanTransitionTo indica si la orden puede pasar del estado actual a target.
func (o *Order) CanTransitionTo(target string) bool {
	for _, allowed := range orderTransitions[o.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// ValidOrderStatus indica si s es un estado de orden conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderProcessing, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

// ValidPaymentStatus indica si s es un estado de pago conocido.
func ValidPaymentStatus(s string) bool {
	return s == PaymentUnpaid || s == PaymentPaid
}
