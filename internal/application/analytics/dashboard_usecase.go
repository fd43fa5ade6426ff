// Package analytics arma el dashboard agregando consultas read-only en paralelo.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Widgets del dashboard.
const (
	recentOrdersLimit = 5
	topProductsLimit  = 5
)

// DashboardUsecase agrega las métricas del negocio. Cada consulta se lanza en
// su propia goroutine; el primer error cancela el resto vía contexto.
type DashboardUsecase struct {
	analytics repository.AnalyticsRepository
	log       *logger.Logger
}

// NewDashboardUsecase crea el caso de uso.
func NewDashboardUsecase(analytics repository.AnalyticsRepository, log *logger.Logger) *DashboardUsecase {
	return &DashboardUsecase{analytics: analytics, log: log}
}

// Get ejecuta las seis consultas del dashboard en paralelo y combina los resultados.
func (u *DashboardUsecase) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var resp dto.DashboardResponse
	var recentRows []repository.RecentOrderRow
	var topRows []repository.TopProductRow

	tasks := []func() error{
		func() (err error) { resp.TotalCustomers, err = u.analytics.CountActiveCustomers(ctx); return },
		func() (err error) { resp.TotalProducts, err = u.analytics.CountActiveProducts(ctx); return },
		func() (err error) { resp.OrdersToday, err = u.analytics.CountOrdersToday(ctx); return },
		func() (err error) { resp.TotalStockUnits, err = u.analytics.TotalStockUnits(ctx); return },
		func() (err error) { recentRows, err = u.analytics.RecentOrders(ctx, recentOrdersLimit); return },
		func() (err error) { topRows, err = u.analytics.TopProducts(ctx, topProductsLimit); return },
	}

	errCh := make(chan error, len(tasks))
	for _, task := range tasks {
		go func(fn func() error) { errCh <- fn() }(task)
	}
	for range tasks {
		if err := <-errCh; err != nil {
			cancel()
			u.log.Error().Err(err).Msg("consulta de dashboard falló")
			return nil, fmt.Errorf("dashboard: %w", err)
		}
	}

	resp.RecentOrders = make([]dto.RecentOrderResponse, 0, len(recentRows))
	for _, row := range recentRows {
		resp.RecentOrders = append(resp.RecentOrders, dto.RecentOrderResponse{
			ID:           row.ID,
			CustomerName: row.CustomerName,
			Total:        row.Total,
			Status:       row.Status,
			CreatedAt:    row.CreatedAt,
		})
	}
	resp.TopProducts = make([]dto.TopProductResponse, 0, len(topRows))
	for _, row := range topRows {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductResponse{
			ID:        row.ID,
			Name:      row.Name,
			SKU:       row.SKU,
			TotalSold: row.TotalSold,
		})
	}
	return &resp, nil
}
