package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// OrderSummaryRow fila de listado de órdenes con datos del cliente.
type OrderSummaryRow struct {
	ID            int64
	CustomerID    int64
	Status        string
	PaymentStatus string
	Total         decimal.Decimal
	CreatedAt     time.Time
	CustomerName  string
	CustomerEmail string
}

// OrderItemRow línea de orden con los datos del producto asociado.
type OrderItemRow struct {
	entity.OrderItem
	ProductName string
	ProductSKU  string
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Create inserta usando solo las columnas que el esquema desplegado expone y
// completa ID, Total y CreatedAt leídos de vuelta de la base de datos.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id int64) (*entity.Order, error)
	ListItems(orderID int64) ([]OrderItemRow, error)
	List(limit, offset int) ([]OrderSummaryRow, error)
	Count() (int, error)
	UpdateStatus(id int64, status string) error
	UpdatePaymentStatus(id int64, paymentStatus string) error
}
