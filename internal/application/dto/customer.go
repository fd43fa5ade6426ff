package dto

import (
	"time"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// CustomerRequest payload de creación/actualización de cliente.
type CustomerRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	City         string `json:"city"`
	Country      string `json:"country"`
}

// CustomerResponse cliente expuesto por la API.
type CustomerResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	City         string    `json:"city,omitempty"`
	Country      string    `json:"country,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// NewCustomerResponse mapea la entidad al DTO.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:           c.ID,
		Name:         c.Name,
		ContactEmail: c.ContactEmail,
		ContactPhone: c.ContactPhone,
		City:         c.City,
		Country:      c.Country,
		CreatedAt:    c.CreatedAt,
	}
}
