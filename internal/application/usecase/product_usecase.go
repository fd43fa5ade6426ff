// Package usecase agrupa los casos de uso CRUD del catálogo (productos y clientes).
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

// ProductUsecase casos de uso del catálogo de productos. Las escrituras de
// stock no pasan por aquí: eso es territorio exclusivo del libro de inventario.
type ProductUsecase struct {
	products repository.ProductRepository
	log      *logger.Logger
}

// NewProductUsecase crea el caso de uso.
func NewProductUsecase(products repository.ProductRepository, log *logger.Logger) *ProductUsecase {
	return &ProductUsecase{products: products, log: log}
}

// Create da de alta un producto con su stock inicial.
func (u *ProductUsecase) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" || req.SKU == "" {
		return nil, fmt.Errorf("%w: name y sku son obligatorios", domain.ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stockQuantity no puede ser negativo", domain.ErrInvalidInput)
	}

	product := &entity.Product{
		Name:          req.Name,
		SKU:           req.SKU,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if err := u.products.Create(product); err != nil {
		return nil, err
	}

	u.log.Info().Int64("product_id", product.ID).Str("sku", product.SKU).Msg("producto creado")
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Get devuelve un producto activo por ID.
func (u *ProductUsecase) Get(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := u.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// List devuelve productos paginados, con búsqueda por nombre/SKU y filtro por
// estado de stock (in_stock, low_stock, out_of_stock).
func (u *ProductUsecase) List(ctx context.Context, search, status string, page dto.PageRequest) (*dto.Paged[dto.ProductResponse], error) {
	if status != "" {
		switch status {
		case entity.ProductInStock, entity.ProductLowStock, entity.ProductOutOfStock:
		default:
			return nil, fmt.Errorf("%w: estado de stock inválido: %s", domain.ErrInvalidInput, status)
		}
	}
	page.Normalize()

	products, err := u.products.List(search, status, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := u.products.Count(search, status)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.Paged[dto.ProductResponse]{Items: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// Update actualiza los datos de catálogo (nunca el stock).
func (u *ProductUsecase) Update(ctx context.Context, id int64, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if req.Name == "" || req.SKU == "" {
		return nil, fmt.Errorf("%w: name y sku son obligatorios", domain.ErrInvalidInput)
	}
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}

	product, err := u.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	product.Name = req.Name
	product.SKU = req.SKU
	product.Category = req.Category
	product.Price = req.Price
	if err := u.products.Update(product); err != nil {
		return nil, err
	}

	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Delete desactiva el producto (borrado lógico).
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	if err := u.products.SoftDelete(id); err != nil {
		return err
	}
	u.log.Info().Int64("product_id", id).Msg("producto desactivado")
	return nil
}
