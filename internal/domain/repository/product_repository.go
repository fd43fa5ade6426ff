package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) y es el único
// camino previo a una mutación de stock; UpdateStock nunca se llama sin haber
// bloqueado antes en la misma transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto activo y bloquea la fila. nil si no existe o está inactivo.
	GetForUpdate(id int64) (*entity.Product, error)
	List(search, status string, limit, offset int) ([]*entity.Product, error)
	Count(search, status string) (int, error)
	Update(product *entity.Product) error
	UpdateStock(productID, newStock int64) error
	SoftDelete(id int64) error
}
