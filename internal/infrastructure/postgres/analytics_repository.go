package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepository)(nil)

// AnalyticsRepository consultas read-only para el dashboard. Las métricas se
// derivan de los datos persistidos por el motor de órdenes y el libro de
// inventario; cada consulta es independiente y se puede lanzar en paralelo.
type AnalyticsRepository struct {
	db    Querier
	probe repository.SchemaProbe
}

// NewAnalyticsRepository crea el repositorio de analítica.
func NewAnalyticsRepository(db Querier, probe repository.SchemaProbe) *AnalyticsRepository {
	return &AnalyticsRepository{db: db, probe: probe}
}

func (r *AnalyticsRepository) CountActiveCustomers(ctx context.Context) (int, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM customers WHERE is_active = true`)
}

func (r *AnalyticsRepository) CountActiveProducts(ctx context.Context) (int, error) {
	return r.countQuery(ctx, `SELECT COUNT(*) FROM products WHERE is_active = true`)
}

// CountOrdersToday cuenta órdenes creadas hoy (zona horaria del servidor de DB).
func (r *AnalyticsRepository) CountOrdersToday(ctx context.Context) (int, error) {
	hasCreatedAt, err := r.probe.HasColumn("orders", "created_at")
	if err != nil {
		return 0, err
	}
	if !hasCreatedAt {
		return 0, nil
	}
	return r.countQuery(ctx, `SELECT COUNT(*) FROM orders WHERE created_at >= CURRENT_DATE`)
}

// TotalStockUnits suma las unidades en stock de los productos activos.
func (r *AnalyticsRepository) TotalStockUnits(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(stock_quantity), 0) FROM products WHERE is_active = true`,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total de unidades en stock: %w", err)
	}
	return total, nil
}

// RecentOrders devuelve las últimas órdenes con el nombre del cliente.
func (r *AnalyticsRepository) RecentOrders(ctx context.Context, limit int) ([]repository.RecentOrderRow, error) {
	cols, err := r.probe.Columns("orders")
	if err != nil {
		return nil, err
	}
	exprs := orderSelectExprs(cols, "o")
	query := fmt.Sprintf(
		`SELECT o.id, %s, %s, %s, c.name
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 ORDER BY o.id DESC LIMIT $1`,
		exprs.total, exprs.status, exprs.createdAt)

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("órdenes recientes: %w", err)
	}
	defer rows.Close()

	var orders []repository.RecentOrderRow
	for rows.Next() {
		var row repository.RecentOrderRow
		if err := rows.Scan(&row.ID, &row.Total, &row.Status, &row.CreatedAt, &row.CustomerName); err != nil {
			return nil, fmt.Errorf("scan orden reciente: %w", err)
		}
		orders = append(orders, row)
	}
	return orders, rows.Err()
}

// TopProducts devuelve los productos más vendidos por unidades (según líneas de orden).
func (r *AnalyticsRepository) TopProducts(ctx context.Context, limit int) ([]repository.TopProductRow, error) {
	rows, err := r.db.Query(ctx,
		`SELECT p.id, p.name, p.sku, COALESCE(SUM(oi.quantity), 0) AS total_sold
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 GROUP BY p.id, p.name, p.sku
		 ORDER BY total_sold DESC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("productos más vendidos: %w", err)
	}
	defer rows.Close()

	var products []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ID, &row.Name, &row.SKU, &row.TotalSold); err != nil {
			return nil, fmt.Errorf("scan producto más vendido: %w", err)
		}
		products = append(products, row)
	}
	return products, rows.Err()
}

func (r *AnalyticsRepository) countQuery(ctx context.Context, query string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("consulta de conteo: %w", err)
	}
	return count, nil
}
