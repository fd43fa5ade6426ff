package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/domain/schema"
)

var _ repository.OrderRepository = (*OrderRepository)(nil)

// OrderRepository implementa repository.OrderRepository sobre PostgreSQL.
// Las consultas sobre la tabla orders se arman con el probe de esquema: solo
// se insertan/leen las columnas que el esquema desplegado realmente expone.
type OrderRepository struct {
	db    Querier
	probe repository.SchemaProbe
}

// NewOrderRepository crea el repositorio. db puede ser el pool o una transacción.
func NewOrderRepository(db Querier, probe repository.SchemaProbe) *OrderRepository {
	return &OrderRepository{db: db, probe: probe}
}

// totalColumnCandidates columnas candidatas a recibir el total calculado,
// en el mismo orden de prioridad que la expresión de lectura.
var totalColumnCandidates = []string{"total", "total_amount", "grand_total", "amount"}

// Create inserta la orden usando únicamente columnas presentes en el esquema
// y completa ID, Total (releído de la base) y CreatedAt.
func (r *OrderRepository) Create(order *entity.Order) error {
	cols, err := r.probe.Columns("orders")
	if err != nil {
		return err
	}
	if !cols.Has("customer_id") {
		return fmt.Errorf("%w: la tabla orders no expone customer_id", domain.ErrSchemaProbe)
	}

	var columns []string
	var values []any
	add := func(name string, v any) {
		if cols.Has(name) {
			columns = append(columns, name)
			values = append(values, v)
		}
	}
	add("customer_id", order.CustomerID)
	add("status", order.Status)
	add("payment_status", order.PaymentStatus)
	add("subtotal", order.Subtotal)
	add("tax", order.Tax)
	for _, name := range totalColumnCandidates {
		if cols.Has(name) {
			columns = append(columns, name)
			values = append(values, order.Total)
			break
		}
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	// El total devuelto se relee con la expresión resuelta, no con el valor
	// enviado: si el esquema calcula el total (columna generada), gana la base.
	returning := []string{"id", fmt.Sprintf("(%s)::numeric", schema.ResolveOrderTotalExpression(cols, ""))}
	scanTargets := []any{&order.ID, &order.Total}
	if cols.Has("created_at") {
		returning = append(returning, "created_at")
		scanTargets = append(scanTargets, &order.CreatedAt)
	}

	query := fmt.Sprintf(`INSERT INTO orders (%s) VALUES (%s) RETURNING %s`,
		strings.Join(columns, ", "), strings.Join(placeholders, ", "), strings.Join(returning, ", "))

	if err := r.db.QueryRow(context.Background(), query, values...).Scan(scanTargets...); err != nil {
		return fmt.Errorf("insertar orden: %w", err)
	}
	if !cols.Has("created_at") {
		order.CreatedAt = time.Now()
	}
	return nil
}

// CreateItem inserta una línea de orden y completa su ID.
func (r *OrderRepository) CreateItem(item *entity.OrderItem) error {
	err := r.db.QueryRow(context.Background(),
		`INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		item.OrderID, item.ProductID, item.Quantity, item.UnitPrice, item.LineTotal,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("insertar línea de orden: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID. Devuelve nil si no existe.
func (r *OrderRepository) GetByID(id int64) (*entity.Order, error) {
	cols, err := r.probe.Columns("orders")
	if err != nil {
		return nil, err
	}
	exprs := orderSelectExprs(cols, "")
	query := fmt.Sprintf(`SELECT id, customer_id, %s, %s, %s, %s, %s, %s FROM orders WHERE id = $1`,
		exprs.status, exprs.paymentStatus, exprs.subtotal, exprs.tax, exprs.total, exprs.createdAt)

	var o entity.Order
	err = r.db.QueryRow(context.Background(), query, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.PaymentStatus, &o.Subtotal, &o.Tax, &o.Total, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener orden: %w", err)
	}
	return &o, nil
}

// ListItems devuelve las líneas de la orden con nombre y SKU del producto.
func (r *OrderRepository) ListItems(orderID int64) ([]repository.OrderItemRow, error) {
	rows, err := r.db.Query(context.Background(),
		`SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.total_price, p.name, p.sku
		 FROM order_items oi
		 JOIN products p ON p.id = oi.product_id
		 WHERE oi.order_id = $1
		 ORDER BY oi.id`,
		orderID,
	)
	if err != nil {
		return nil, fmt.Errorf("listar líneas de orden: %w", err)
	}
	defer rows.Close()

	var items []repository.OrderItemRow
	for rows.Next() {
		var it repository.OrderItemRow
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.LineTotal,
			&it.ProductName, &it.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan línea de orden: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve órdenes (más recientes primero) con los datos del cliente.
func (r *OrderRepository) List(limit, offset int) ([]repository.OrderSummaryRow, error) {
	cols, err := r.probe.Columns("orders")
	if err != nil {
		return nil, err
	}
	exprs := orderSelectExprs(cols, "o")
	orderBy := "o.id DESC"
	if cols.Has("created_at") {
		orderBy = "o.created_at DESC"
	}
	query := fmt.Sprintf(
		`SELECT o.id, o.customer_id, %s, %s, %s, %s, c.name, COALESCE(c.contact_email, '')
		 FROM orders o
		 JOIN customers c ON c.id = o.customer_id
		 ORDER BY %s LIMIT $1 OFFSET $2`,
		exprs.status, exprs.paymentStatus, exprs.total, exprs.createdAt, orderBy)

	rows, err := r.db.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar órdenes: %w", err)
	}
	defer rows.Close()

	var orders []repository.OrderSummaryRow
	for rows.Next() {
		var row repository.OrderSummaryRow
		if err := rows.Scan(&row.ID, &row.CustomerID, &row.Status, &row.PaymentStatus, &row.Total,
			&row.CreatedAt, &row.CustomerName, &row.CustomerEmail); err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		orders = append(orders, row)
	}
	return orders, rows.Err()
}

// Count cuenta todas las órdenes.
func (r *OrderRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(context.Background(), `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar órdenes: %w", err)
	}
	return count, nil
}

// UpdateStatus fija el estado de la orden. Las reglas de transición se validan
// en la capa de aplicación; aquí solo se persiste.
func (r *OrderRepository) UpdateStatus(id int64, status string) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("actualizar estado de orden: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePaymentStatus fija el estado de pago de la orden.
func (r *OrderRepository) UpdatePaymentStatus(id int64, paymentStatus string) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE orders SET payment_status = $1 WHERE id = $2`, paymentStatus, id)
	if err != nil {
		return fmt.Errorf("actualizar estado de pago: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// orderExprs expresiones SELECT para orders con fallbacks por columna ausente.
type orderExprs struct {
	status        string
	paymentStatus string
	subtotal      string
	tax           string
	total         string
	createdAt     string
}

func orderSelectExprs(cols schema.ColumnSet, alias string) orderExprs {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	pick := func(name, fallback string) string {
		if cols.Has(name) {
			return fmt.Sprintf("COALESCE(%s%s, %s)", prefix, name, fallback)
		}
		return fallback
	}
	return orderExprs{
		status:        pick("status", "'pending'::text"),
		paymentStatus: pick("payment_status", "'unpaid'::text"),
		subtotal:      pick("subtotal", "0::numeric"),
		tax:           pick("tax", "0::numeric"),
		total:         fmt.Sprintf("(%s)::numeric", schema.ResolveOrderTotalExpression(cols, alias)),
		createdAt:     pick("created_at", "now()"),
	}
}
