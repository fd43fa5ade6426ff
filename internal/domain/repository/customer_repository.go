package repository

import "github.com/jhoicas/erp-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id int64) (*entity.Customer, error)
	List(search string, limit, offset int) ([]*entity.Customer, error)
	Count(search string) (int, error)
	Update(customer *entity.Customer) error
	SoftDelete(id int64) error
}
