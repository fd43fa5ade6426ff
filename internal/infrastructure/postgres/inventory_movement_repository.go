package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/domain/schema"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepository)(nil)

// InventoryMovementRepository implementa el libro de movimientos sobre
// PostgreSQL. La columna de actor (user_id o created_by) se resuelve con el
// probe de esquema; si no existe ninguna, el movimiento se registra sin actor.
type InventoryMovementRepository struct {
	db    Querier
	probe repository.SchemaProbe
}

// NewInventoryMovementRepository crea el repositorio. db puede ser el pool o una transacción.
func NewInventoryMovementRepository(db Querier, probe repository.SchemaProbe) *InventoryMovementRepository {
	return &InventoryMovementRepository{db: db, probe: probe}
}

// Create inserta un movimiento (append-only) y completa ID y CreatedAt.
func (r *InventoryMovementRepository) Create(movement *entity.InventoryMovement) error {
	cols, err := r.probe.Columns("inventory_movements")
	if err != nil {
		return err
	}

	columns := []string{"product_id", "movement_type", "quantity", "location", "reference"}
	values := []any{movement.ProductID, movement.Type, movement.Quantity,
		nullableString(movement.Location), nullableString(movement.Reference)}

	if actorCol := schema.ResolveActorColumn(cols); actorCol != "" && movement.CreatedBy != 0 {
		columns = append(columns, actorCol)
		values = append(values, movement.CreatedBy)
	}

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	query := fmt.Sprintf(`INSERT INTO inventory_movements (%s) VALUES (%s) RETURNING id, created_at`,
		strings.Join(columns, ", "), strings.Join(placeholders, ", "))

	if err := r.db.QueryRow(context.Background(), query, values...).Scan(&movement.ID, &movement.CreatedAt); err != nil {
		return fmt.Errorf("insertar movimiento: %w", err)
	}
	return nil
}

// List devuelve movimientos (más recientes primero) con filtros opcionales por
// producto y tipo, resolviendo nombre de producto y de actor.
func (r *InventoryMovementRepository) List(productID int64, movementType string, limit, offset int) ([]repository.MovementRow, error) {
	cols, err := r.probe.Columns("inventory_movements")
	if err != nil {
		return nil, err
	}
	actorCol := schema.ResolveActorColumn(cols)

	actorSelect := "0::bigint, ''::text"
	actorJoin := ""
	if actorCol != "" {
		actorSelect = fmt.Sprintf("COALESCE(m.%s, 0), COALESCE(u.full_name, '')", actorCol)
		actorJoin = fmt.Sprintf("LEFT JOIN users u ON u.id = m.%s", actorCol)
	}

	where, args := movementFilters(productID, movementType)
	query := fmt.Sprintf(
		`SELECT m.id, m.product_id, m.movement_type, m.quantity,
		        COALESCE(m.location, ''), COALESCE(m.reference, ''), m.created_at,
		        p.name, %s
		 FROM inventory_movements m
		 JOIN products p ON p.id = m.product_id
		 %s
		 WHERE %s
		 ORDER BY m.created_at DESC LIMIT $%d OFFSET $%d`,
		actorSelect, actorJoin, strings.Join(where, " AND "), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar movimientos: %w", err)
	}
	defer rows.Close()

	var movements []repository.MovementRow
	for rows.Next() {
		var row repository.MovementRow
		if err := rows.Scan(&row.ID, &row.ProductID, &row.Type, &row.Quantity,
			&row.Location, &row.Reference, &row.CreatedAt,
			&row.ProductName, &row.CreatedBy, &row.UserName); err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		movements = append(movements, row)
	}
	return movements, rows.Err()
}

// Count cuenta movimientos con los mismos filtros que List.
func (r *InventoryMovementRepository) Count(productID int64, movementType string) (int, error) {
	where, args := movementFilters(productID, movementType)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM inventory_movements m WHERE %s`, strings.Join(where, " AND "))

	var count int
	if err := r.db.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar movimientos: %w", err)
	}
	return count, nil
}

// Summary agrega el libro completo: entradas, salidas (stock_out y sale),
// ajustes con signo y el cambio neto resultante.
func (r *InventoryMovementRepository) Summary() (*repository.MovementSummary, error) {
	var s repository.MovementSummary
	err := r.db.QueryRow(context.Background(),
		`SELECT
		   COALESCE(SUM(CASE WHEN movement_type = $1 THEN quantity ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN movement_type IN ($2, $3) THEN quantity ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN movement_type = $4 THEN quantity ELSE 0 END), 0)
		 FROM inventory_movements`,
		entity.MovementStockIn, entity.MovementStockOut, entity.MovementSale, entity.MovementAdjustment,
	).Scan(&s.TotalReceived, &s.TotalDispatched, &s.TotalAdjusted)
	if err != nil {
		return nil, fmt.Errorf("resumen de movimientos: %w", err)
	}
	s.NetChange = s.TotalReceived - s.TotalDispatched + s.TotalAdjusted
	return &s, nil
}

func movementFilters(productID int64, movementType string) ([]string, []any) {
	where := []string{"true"}
	var args []any
	if productID > 0 {
		args = append(args, productID)
		where = append(where, fmt.Sprintf("m.product_id = $%d", len(args)))
	}
	if movementType != "" {
		args = append(args, movementType)
		where = append(where, fmt.Sprintf("m.movement_type = $%d", len(args)))
	}
	return where, args
}
