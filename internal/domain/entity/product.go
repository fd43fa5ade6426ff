package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados derivados de stock de un producto.
const (
	ProductInStock    = "in_stock"
	ProductLowStock   = "low_stock"
	ProductOutOfStock = "out_of_stock"
)

// LowStockThreshold unidades por debajo de las cuales el producto se reporta como low_stock.
const LowStockThreshold = 10

// Product representa un producto o SKU del catálogo.
// StockQuantity se muta únicamente a través del libro de movimientos de inventario
// (apply-delta con bloqueo de fila); ningún otro camino escribe esta columna.
type Product struct {
	ID            int64
	Name          string
	SKU           string
	Category      string
	Price         decimal.Decimal // precio de venta unitario
	StockQuantity int64
	IsActive      bool
	CreatedAt     time.Time
}

// StockStatus deriva el estado del producto a partir del stock actual.
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity <= 0:
		return ProductOutOfStock
	case p.StockQuantity < LowStockThreshold:
		return ProductLowStock
	default:
		return ProductInStock
	}
}
