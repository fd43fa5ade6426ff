package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// CustomerUsecase casos de uso de clientes.
type CustomerUsecase struct {
	customers repository.CustomerRepository
	log       *logger.Logger
}

// NewCustomerUsecase crea el caso de uso.
func NewCustomerUsecase(customers repository.CustomerRepository, log *logger.Logger) *CustomerUsecase {
	return &CustomerUsecase{customers: customers, log: log}
}

// Create da de alta un cliente.
func (u *CustomerUsecase) Create(ctx context.Context, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}

	customer := &entity.Customer{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		City:         req.City,
		Country:      req.Country,
		IsActive:     true,
	}
	if err := u.customers.Create(customer); err != nil {
		return nil, err
	}

	u.log.Info().Int64("customer_id", customer.ID).Msg("cliente creado")
	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

// Get devuelve un cliente activo por ID.
func (u *CustomerUsecase) Get(ctx context.Context, id int64) (*dto.CustomerResponse, error) {
	customer, err := u.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}
	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

// List devuelve clientes paginados, con búsqueda por nombre o email.
func (u *CustomerUsecase) List(ctx context.Context, search string, page dto.PageRequest) (*dto.Paged[dto.CustomerResponse], error) {
	page.Normalize()

	customers, err := u.customers.List(search, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := u.customers.Count(search)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		items = append(items, dto.NewCustomerResponse(c))
	}
	return &dto.Paged[dto.CustomerResponse]{Items: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// Update actualiza los datos del cliente.
func (u *CustomerUsecase) Update(ctx context.Context, id int64, req dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	}

	customer, err := u.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente %d", domain.ErrNotFound, id)
	}

	customer.Name = req.Name
	customer.ContactEmail = req.ContactEmail
	customer.ContactPhone = req.ContactPhone
	customer.City = req.City
	customer.Country = req.Country
	if err := u.customers.Update(customer); err != nil {
		return nil, err
	}

	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

// Delete desactiva el cliente (borrado lógico); sus órdenes se conservan.
func (u *CustomerUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.customers.SoftDelete(id); err != nil {
		return err
	}
	u.log.Info().Int64("customer_id", id).Msg("cliente desactivado")
	return nil
}
