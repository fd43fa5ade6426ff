package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// User representa un usuario de la aplicación.
type User struct {
	ID           int64
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
