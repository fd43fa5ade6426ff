package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository implementa repository.ProductRepository sobre PostgreSQL.
type ProductRepository struct {
	db Querier
}

// NewProductRepository crea el repositorio. db puede ser el pool o una transacción.
func NewProductRepository(db Querier) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserta un producto y completa ID y CreatedAt.
func (r *ProductRepository) Create(product *entity.Product) error {
	err := r.db.QueryRow(context.Background(),
		`INSERT INTO products (name, sku, category, price, stock_quantity, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		product.Name, product.SKU, nullableString(product.Category),
		product.Price, product.StockQuantity, product.IsActive,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto activo por ID. Devuelve nil si no existe.
func (r *ProductRepository) GetByID(id int64) (*entity.Product, error) {
	return r.scanOne(r.db.QueryRow(context.Background(),
		selectProduct+` WHERE id = $1 AND is_active = true`, id))
}

// GetBySKU obtiene un producto activo por SKU. Devuelve nil si no existe.
func (r *ProductRepository) GetBySKU(sku string) (*entity.Product, error) {
	return r.scanOne(r.db.QueryRow(context.Background(),
		selectProduct+` WHERE sku = $1 AND is_active = true`, sku))
}

// GetForUpdate obtiene el producto activo bloqueando la fila (SELECT FOR UPDATE).
// Debe llamarse dentro de una transacción; el lock se libera en commit/rollback.
func (r *ProductRepository) GetForUpdate(id int64) (*entity.Product, error) {
	return r.scanOne(r.db.QueryRow(context.Background(),
		selectProduct+` WHERE id = $1 AND is_active = true FOR UPDATE`, id))
}

// List devuelve productos activos, opcionalmente filtrados por búsqueda
// (nombre o SKU) y por estado derivado de stock.
func (r *ProductRepository) List(search, status string, limit, offset int) ([]*entity.Product, error) {
	where, args := productFilters(search, status)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		selectProduct, strings.Join(where, " AND "), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar productos: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// Count cuenta productos activos con los mismos filtros que List.
func (r *ProductRepository) Count(search, status string) (int, error) {
	where, args := productFilters(search, status)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM products WHERE %s`, strings.Join(where, " AND "))

	var count int
	if err := r.db.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar productos: %w", err)
	}
	return count, nil
}

// Update actualiza los datos de catálogo del producto. El stock NO se toca aquí:
// solo el libro de movimientos escribe stock_quantity (vía UpdateStock).
func (r *ProductRepository) Update(product *entity.Product) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE products SET name = $1, sku = $2, category = $3, price = $4
		 WHERE id = $5 AND is_active = true`,
		product.Name, product.SKU, nullableString(product.Category), product.Price, product.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija el stock del producto a un valor absoluto calculado por el
// caller bajo el lock de GetForUpdate, dentro de la misma transacción.
func (r *ProductRepository) UpdateStock(productID, newStock int64) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE products SET stock_quantity = $1 WHERE id = $2`,
		newStock, productID,
	)
	if err != nil {
		return fmt.Errorf("actualizar stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete desactiva el producto (is_active = false). Los movimientos y
// órdenes históricos que lo referencian se conservan.
func (r *ProductRepository) SoftDelete(id int64) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE products SET is_active = false WHERE id = $1 AND is_active = true`, id,
	)
	if err != nil {
		return fmt.Errorf("desactivar producto: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const selectProduct = `SELECT id, name, sku, COALESCE(category, ''), price, stock_quantity, is_active, created_at FROM products`

// productFilters arma las condiciones WHERE compartidas por List y Count.
// El estado se traduce a rangos de stock_quantity para no depender de una
// columna status persistida.
func productFilters(search, status string) ([]string, []any) {
	where := []string{"is_active = true"}
	var args []any

	if search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", len(args), len(args)))
	}
	switch status {
	case entity.ProductOutOfStock:
		where = append(where, "stock_quantity <= 0")
	case entity.ProductLowStock:
		args = append(args, entity.LowStockThreshold)
		where = append(where, fmt.Sprintf("stock_quantity > 0 AND stock_quantity < $%d", len(args)))
	case entity.ProductInStock:
		args = append(args, entity.LowStockThreshold)
		where = append(where, fmt.Sprintf("stock_quantity >= $%d", len(args)))
	}
	return where, args
}

func (r *ProductRepository) scanOne(row pgx.Row) (*entity.Product, error) {
	p, err := r.scanRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) scanRow(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.StockQuantity, &p.IsActive, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
