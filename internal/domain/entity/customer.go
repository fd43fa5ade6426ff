package entity

import "time"

// Customer representa un cliente (borrado lógico vía IsActive).
type Customer struct {
	ID           int64
	Name         string
	ContactEmail string
	ContactPhone string
	City         string
	Country      string
	IsActive     bool
	CreatedAt    time.Time
}
