package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepository)(nil)

// UserRepository implementa repository.UserRepository sobre PostgreSQL.
// La columna role es opcional en el esquema: si no existe, todos los usuarios
// se tratan como admin (esquemas legacy previos al RBAC).
type UserRepository struct {
	db    Querier
	probe repository.SchemaProbe
}

// NewUserRepository crea el repositorio. db puede ser el pool o una transacción.
func NewUserRepository(db Querier, probe repository.SchemaProbe) *UserRepository {
	return &UserRepository{db: db, probe: probe}
}

// Create inserta un usuario y completa ID y CreatedAt.
// Devuelve domain.ErrEmailAlreadyExists si el email ya está registrado.
func (r *UserRepository) Create(user *entity.User) error {
	hasRole, err := r.probe.HasColumn("users", "role")
	if err != nil {
		return err
	}

	query := `INSERT INTO users (full_name, email, password_hash)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	args := []any{user.FullName, user.Email, user.PasswordHash}
	if hasRole {
		query = `INSERT INTO users (full_name, email, password_hash, role)
		         VALUES ($1, $2, $3, $4)
		         RETURNING id, created_at`
		args = append(args, user.Role)
	} else {
		user.Role = entity.RoleAdmin
	}

	if err := r.db.QueryRow(context.Background(), query, args...).Scan(&user.ID, &user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insertar usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve nil si no existe.
func (r *UserRepository) GetByID(id int64) (*entity.User, error) {
	query, err := r.selectUser()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.db.QueryRow(context.Background(), query+` WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	return u, nil
}

// FindByEmail obtiene un usuario por email. Devuelve nil si no existe.
func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	query, err := r.selectUser()
	if err != nil {
		return nil, err
	}
	u, err := scanUser(r.db.QueryRow(context.Background(), query+` WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("buscar usuario por email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) selectUser() (string, error) {
	hasRole, err := r.probe.HasColumn("users", "role")
	if err != nil {
		return "", err
	}
	roleExpr := "'admin'::text"
	if hasRole {
		roleExpr = "COALESCE(role, 'admin')"
	}
	return fmt.Sprintf(`SELECT id, full_name, email, password_hash, %s, created_at FROM users`, roleExpr), nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
