package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Service casos de uso del libro de inventario: ajustes manuales y consultas.
type Service struct {
	tx        TxRunner
	movements repository.InventoryMovementRepository
	log       *logger.Logger
}

// NewService crea el servicio. movements debe estar ligado al pool (solo lecturas).
func NewService(tx TxRunner, movements repository.InventoryMovementRepository, log *logger.Logger) *Service {
	return &Service{tx: tx, movements: movements, log: log}
}

// ApplyMovementInTx aplica un movimiento dentro de una transacción ya abierta:
// bloquea la fila del producto, valida que el stock resultante no sea negativo,
// registra el movimiento y fija el nuevo stock. Devuelve el producto bloqueado
// y el stock resultante. Es el único camino de mutación de stock; el motor de
// órdenes lo reutiliza para sus movimientos sale.
func ApplyMovementInTx(products repository.ProductRepository, movements repository.InventoryMovementRepository, m *entity.InventoryMovement) (*entity.Product, int64, error) {
	product, err := products.GetForUpdate(m.ProductID)
	if err != nil {
		return nil, 0, err
	}
	if product == nil {
		return nil, 0, fmt.Errorf("%w: producto %d", domain.ErrNotFound, m.ProductID)
	}

	newStock := product.StockQuantity + m.SignedDelta()
	if newStock < 0 {
		return nil, 0, fmt.Errorf("%w: el producto %s tiene %d unidades, el movimiento requiere %d",
			domain.ErrInsufficientStock, product.Name, product.StockQuantity, -m.SignedDelta())
	}

	if err := movements.Create(m); err != nil {
		return nil, 0, err
	}
	if err := products.UpdateStock(product.ID, newStock); err != nil {
		return nil, 0, err
	}
	return product, newStock, nil
}

// Adjust registra un ajuste manual de inventario de forma atómica y devuelve
// el movimiento junto con el stock y estado resultantes del producto.
func (s *Service) Adjust(ctx context.Context, actorID int64, req dto.AdjustInventoryRequest) (*dto.AdjustInventoryResponse, error) {
	if err := validateAdjust(req); err != nil {
		return nil, err
	}

	movement := &entity.InventoryMovement{
		ProductID: req.ProductID,
		Type:      req.MovementType,
		Quantity:  req.Quantity,
		Location:  req.Location,
		Reference: req.Reference,
		CreatedBy: actorID,
	}

	var (
		product  *entity.Product
		newStock int64
	)
	err := s.tx.RunInventory(ctx, func(products repository.ProductRepository, movements repository.InventoryMovementRepository) error {
		var err error
		product, newStock, err = ApplyMovementInTx(products, movements, movement)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("product_id", product.ID).
		Str("movement_type", movement.Type).
		Int64("quantity", movement.Quantity).
		Int64("new_stock", newStock).
		Msg("movimiento de inventario aplicado")

	after := entity.Product{StockQuantity: newStock}
	return &dto.AdjustInventoryResponse{
		Movement: dto.MovementResponse{
			ID:          movement.ID,
			ProductID:   movement.ProductID,
			ProductName: product.Name,
			Type:        movement.Type,
			Quantity:    movement.Quantity,
			Location:    movement.Location,
			Reference:   movement.Reference,
			CreatedAt:   movement.CreatedAt,
		},
		NewStock: newStock,
		Status:   after.StockStatus(),
	}, nil
}

// ListMovements devuelve movimientos paginados, con filtros opcionales por
// producto y tipo.
func (s *Service) ListMovements(ctx context.Context, productID int64, movementType string, page dto.PageRequest) (*dto.Paged[dto.MovementResponse], error) {
	if movementType != "" && !entity.ValidMovementType(movementType) {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido: %s", domain.ErrInvalidInput, movementType)
	}
	page.Normalize()

	rows, err := s.movements.List(productID, movementType, page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.movements.Count(productID, movementType)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.NewMovementResponse(row))
	}
	return &dto.Paged[dto.MovementResponse]{Items: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// Summary agrega el libro completo de movimientos.
func (s *Service) Summary(ctx context.Context) (*dto.MovementSummaryResponse, error) {
	summary, err := s.movements.Summary()
	if err != nil {
		return nil, err
	}
	return &dto.MovementSummaryResponse{
		TotalReceived:   summary.TotalReceived,
		TotalDispatched: summary.TotalDispatched,
		TotalAdjusted:   summary.TotalAdjusted,
		NetChange:       summary.NetChange,
	}, nil
}

// validateAdjust valida el payload de ajuste manual. El tipo sale está
// reservado al motor de órdenes y no se acepta por esta vía.
func validateAdjust(req dto.AdjustInventoryRequest) error {
	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productId es obligatorio", domain.ErrInvalidInput)
	}
	switch req.MovementType {
	case entity.MovementStockIn, entity.MovementStockOut:
		if req.Quantity <= 0 {
			return fmt.Errorf("%w: quantity debe ser positiva para %s", domain.ErrInvalidInput, req.MovementType)
		}
	case entity.MovementAdjustment:
		if req.Quantity == 0 {
			return fmt.Errorf("%w: quantity no puede ser cero en un ajuste", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de movimiento inválido: %s", domain.ErrInvalidInput, req.MovementType)
	}
	return nil
}
