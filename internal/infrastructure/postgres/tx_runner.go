package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// TxRunner ejecuta funciones de negocio dentro de una transacción, entregando
// repositorios ligados a esa transacción. Rollback es el camino por defecto
// (defer); el commit solo ocurre si fn devuelve nil.
type TxRunner struct {
	pool  *pgxpool.Pool
	probe repository.SchemaProbe
}

// NewTxRunner crea el runner sobre el pool compartido.
func NewTxRunner(pool *pgxpool.Pool, probe repository.SchemaProbe) *TxRunner {
	return &TxRunner{pool: pool, probe: probe}
}

// RunInventory ejecuta fn con los repositorios del libro de inventario ligados
// a una misma transacción (lock de producto + movimiento + stock atómicos).
func (r *TxRunner) RunInventory(ctx context.Context, fn func(products repository.ProductRepository, movements repository.InventoryMovementRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback tras commit es no-op

	if err := fn(
		NewProductRepository(tx),
		NewInventoryMovementRepository(tx, r.probe),
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit de transacción: %w", err)
	}
	return nil
}

// RunOrder ejecuta fn con todos los repositorios que el motor de órdenes
// necesita, ligados a una misma transacción: o se persisten orden, líneas,
// movimientos y stock juntos, o no se persiste nada.
func (r *TxRunner) RunOrder(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.InventoryMovementRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("iniciar transacción: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback tras commit es no-op

	if err := fn(
		NewProductRepository(tx),
		NewInventoryMovementRepository(tx, r.probe),
		NewOrderRepository(tx, r.probe),
		NewCustomerRepository(tx),
	); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit de transacción: %w", err)
	}
	return nil
}
