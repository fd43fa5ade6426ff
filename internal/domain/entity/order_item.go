package entity

import "github.com/shopspring/decimal"

// OrderItem representa una línea de una orden. UnitPrice es el precio aplicado
// al momento de crear la orden (snapshot); cambios posteriores del precio del
// producto no afectan la línea.
type OrderItem struct {
	ID        int64
	OrderID   int64
	ProductID int64
	Quantity  int64
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal // Quantity × UnitPrice
}
