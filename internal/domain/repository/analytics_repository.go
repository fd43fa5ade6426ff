package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RecentOrderRow orden reciente para el widget del dashboard.
type RecentOrderRow struct {
	ID           int64
	Total        decimal.Decimal
	Status       string
	CreatedAt    time.Time
	CustomerName string
}

// TopProductRow producto más vendido por unidades.
type TopProductRow struct {
	ID        int64
	Name      string
	SKU       string
	TotalSold int64
}

// AnalyticsRepository consultas read-only para el dashboard. Depende solo de
// los datos persistidos por el motor de órdenes y el libro de inventario,
// nunca de llamadas en vivo a esos componentes.
type AnalyticsRepository interface {
	CountActiveCustomers(ctx context.Context) (int, error)
	CountActiveProducts(ctx context.Context) (int, error)
	CountOrdersToday(ctx context.Context) (int, error)
	TotalStockUnits(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]RecentOrderRow, error)
	TopProducts(ctx context.Context, limit int) ([]TopProductRow, error)
}
