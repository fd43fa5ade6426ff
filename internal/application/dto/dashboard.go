package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecentOrderResponse orden reciente para el dashboard.
type RecentOrderResponse struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customerName"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// TopProductResponse producto más vendido para el dashboard.
type TopProductResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	TotalSold int64  `json:"totalSold"`
}

// DashboardResponse métricas agregadas del negocio.
type DashboardResponse struct {
	TotalCustomers  int                   `json:"totalCustomers"`
	TotalProducts   int                   `json:"totalProducts"`
	OrdersToday     int                   `json:"ordersToday"`
	TotalStockUnits int64                 `json:"totalStockUnits"`
	RecentOrders    []RecentOrderResponse `json:"recentOrders"`
	TopProducts     []TopProductResponse  `json:"topProducts"`
}
