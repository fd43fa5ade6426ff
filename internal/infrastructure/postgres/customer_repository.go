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

var _ repository.CustomerRepository = (*CustomerRepository)(nil)

// CustomerRepository implementa repository.CustomerRepository sobre PostgreSQL.
type CustomerRepository struct {
	db Querier
}

// NewCustomerRepository crea el repositorio. db puede ser el pool o una transacción.
func NewCustomerRepository(db Querier) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// Create inserta un cliente y completa ID y CreatedAt.
func (r *CustomerRepository) Create(customer *entity.Customer) error {
	err := r.db.QueryRow(context.Background(),
		`INSERT INTO customers (name, contact_email, contact_phone, city, country, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		customer.Name, nullableString(customer.ContactEmail), nullableString(customer.ContactPhone),
		nullableString(customer.City), nullableString(customer.Country), customer.IsActive,
	).Scan(&customer.ID, &customer.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente activo por ID. Devuelve nil si no existe.
func (r *CustomerRepository) GetByID(id int64) (*entity.Customer, error) {
	c, err := scanCustomer(r.db.QueryRow(context.Background(),
		selectCustomer+` WHERE id = $1 AND is_active = true`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	return c, nil
}

// List devuelve clientes activos, con búsqueda opcional por nombre o email.
func (r *CustomerRepository) List(search string, limit, offset int) ([]*entity.Customer, error) {
	where, args := customerFilters(search)
	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		selectCustomer, strings.Join(where, " AND "), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Count cuenta clientes activos con los mismos filtros que List.
func (r *CustomerRepository) Count(search string) (int, error) {
	where, args := customerFilters(search)
	query := fmt.Sprintf(`SELECT COUNT(*) FROM customers WHERE %s`, strings.Join(where, " AND "))

	var count int
	if err := r.db.QueryRow(context.Background(), query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar clientes: %w", err)
	}
	return count, nil
}

// Update actualiza los datos del cliente.
func (r *CustomerRepository) Update(customer *entity.Customer) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE customers SET name = $1, contact_email = $2, contact_phone = $3, city = $4, country = $5
		 WHERE id = $6 AND is_active = true`,
		customer.Name, nullableString(customer.ContactEmail), nullableString(customer.ContactPhone),
		nullableString(customer.City), nullableString(customer.Country), customer.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("actualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SoftDelete desactiva el cliente. Sus órdenes históricas se conservan.
func (r *CustomerRepository) SoftDelete(id int64) error {
	tag, err := r.db.Exec(context.Background(),
		`UPDATE customers SET is_active = false WHERE id = $1 AND is_active = true`, id,
	)
	if err != nil {
		return fmt.Errorf("desactivar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

const selectCustomer = `SELECT id, name, COALESCE(contact_email, ''), COALESCE(contact_phone, ''),
	COALESCE(city, ''), COALESCE(country, ''), is_active, created_at FROM customers`

func customerFilters(search string) ([]string, []any) {
	where := []string{"is_active = true"}
	var args []any
	if search != "" {
		args = append(args, "%"+search+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR contact_email ILIKE $%d)", len(args), len(args)))
	}
	return where, args
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.ContactEmail, &c.ContactPhone, &c.City, &c.Country, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
