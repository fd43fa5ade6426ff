package orders

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Service casos de uso de órdenes.
type Service struct {
	tx      TxRunner
	orders  repository.OrderRepository
	taxRate decimal.Decimal
	log     *logger.Logger
}

// NewService crea el servicio. orders debe estar ligado al pool (solo lecturas
// y cambios de estado); taxRate es la fracción de impuesto sobre el subtotal.
func NewService(tx TxRunner, orders repository.OrderRepository, taxRate float64, log *logger.Logger) *Service {
	return &Service{
		tx:      tx,
		orders:  orders,
		taxRate: decimal.NewFromFloat(taxRate),
		log:     log,
	}
}

// resolvedLine línea con el precio ya resuelto bajo el lock del producto.
type resolvedLine struct {
	productID int64
	quantity  int64
	unitPrice decimal.Decimal
	lineTotal decimal.Decimal
}

// CreateOrder crea una orden de forma atómica: valida el cliente, bloquea cada
// producto en el orden en que llegan las líneas, resuelve precios (override o
// snapshot del precio actual), calcula subtotal/impuesto/total, inserta la
// cabecera y luego las líneas con su movimiento sale y descuento de stock.
// Cualquier fallo revierte todo: no quedan órdenes ni movimientos parciales.
func (s *Service) CreateOrder(ctx context.Context, actorID int64, req dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if err := validateCreateOrder(req); err != nil {
		return nil, err
	}

	order := &entity.Order{
		CustomerID:    req.CustomerID,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentUnpaid,
	}
	var itemRows []repository.OrderItemRow

	err := s.tx.RunOrder(ctx, func(
		products repository.ProductRepository,
		movements repository.InventoryMovementRepository,
		orders repository.OrderRepository,
		customers repository.CustomerRepository,
	) error {
		customer, err := customers.GetByID(req.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente %d", domain.ErrNotFound, req.CustomerID)
		}

		// Primer pase: lock de cada producto en el orden de llegada de las
		// líneas, resolución de precio y verificación preliminar de stock.
		lines := make([]resolvedLine, 0, len(req.Items))
		names := make(map[int64][2]string, len(req.Items))
		subtotal := decimal.Zero
		for _, item := range req.Items {
			product, err := products.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: producto %d", domain.ErrNotFound, item.ProductID)
			}
			if product.StockQuantity < item.Quantity {
				return fmt.Errorf("%w: el producto %s tiene %d unidades, la orden requiere %d",
					domain.ErrInsufficientStock, product.Name, product.StockQuantity, item.Quantity)
			}

			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity)).Round(2)
			subtotal = subtotal.Add(lineTotal)
			lines = append(lines, resolvedLine{
				productID: product.ID,
				quantity:  item.Quantity,
				unitPrice: unitPrice,
				lineTotal: lineTotal,
			})
			names[product.ID] = [2]string{product.Name, product.SKU}
		}

		// Cada línea ya viene redondeada: el subtotal es exactamente la suma
		// de los total_price persistidos y el impuesto se calcula sobre él.
		order.Subtotal = subtotal
		order.Tax = subtotal.Mul(s.taxRate).Round(2)
		order.Total = order.Subtotal.Add(order.Tax)

		if err := orders.Create(order); err != nil {
			return err
		}

		// Segundo pase: líneas, movimiento sale y descuento de stock. La
		// verificación de stock se repite acumulativamente, así dos líneas del
		// mismo producto no pueden sobregirar juntas lo que cada una pasa sola.
		reference := fmt.Sprintf("order:%d", order.ID)
		for _, line := range lines {
			item := &entity.OrderItem{
				OrderID:   order.ID,
				ProductID: line.productID,
				Quantity:  line.quantity,
				UnitPrice: line.unitPrice,
				LineTotal: line.lineTotal,
			}
			if err := orders.CreateItem(item); err != nil {
				return err
			}

			movement := &entity.InventoryMovement{
				ProductID: line.productID,
				Type:      entity.MovementSale,
				Quantity:  line.quantity,
				Reference: reference,
				CreatedBy: actorID,
			}
			if _, _, err := inventory.ApplyMovementInTx(products, movements, movement); err != nil {
				return err
			}

			name := names[line.productID]
			itemRows = append(itemRows, repository.OrderItemRow{
				OrderItem:   *item,
				ProductName: name[0],
				ProductSKU:  name[1],
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("order_id", order.ID).
		Int64("customer_id", order.CustomerID).
		Int("items", len(itemRows)).
		Str("total", order.Total.String()).
		Msg("orden creada")

	return buildOrderResponse(order, itemRows), nil
}

// GetOrder devuelve una orden con sus líneas.
func (s *Service) GetOrder(ctx context.Context, id int64) (*dto.OrderResponse, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
	}
	items, err := s.orders.ListItems(id)
	if err != nil {
		return nil, err
	}
	return buildOrderResponse(order, items), nil
}

// ListOrders devuelve órdenes paginadas (más recientes primero).
func (s *Service) ListOrders(ctx context.Context, page dto.PageRequest) (*dto.Paged[dto.OrderSummaryResponse], error) {
	page.Normalize()

	rows, err := s.orders.List(page.PageSize, page.Offset())
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count()
	if err != nil {
		return nil, err
	}

	items := make([]dto.OrderSummaryResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.NewOrderSummaryResponse(row))
	}
	return &dto.Paged[dto.OrderSummaryResponse]{Items: items, Meta: dto.NewPageMeta(page, total)}, nil
}

// UpdateStatus cambia el estado de la orden aplicando la máquina de estados:
// pending -> processing|cancelled, processing -> completed|cancelled; los
// estados terminales no admiten transición alguna.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*dto.OrderResponse, error) {
	if !entity.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: estado de orden inválido: %s", domain.ErrInvalidInput, status)
	}

	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
	}
	if !order.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: transición %s -> %s no permitida", domain.ErrConflict, order.Status, status)
	}

	if err := s.orders.UpdateStatus(id, status); err != nil {
		return nil, err
	}
	order.Status = status

	s.log.Info().Int64("order_id", id).Str("status", status).Msg("estado de orden actualizado")
	return s.GetOrder(ctx, id)
}

// UpdatePaymentStatus cambia el estado de pago. Es independiente del estado de
// la orden: una orden cancelada puede marcarse pagada y viceversa.
func (s *Service) UpdatePaymentStatus(ctx context.Context, id int64, paymentStatus string) (*dto.OrderResponse, error) {
	if !entity.ValidPaymentStatus(paymentStatus) {
		return nil, fmt.Errorf("%w: estado de pago inválido: %s", domain.ErrInvalidInput, paymentStatus)
	}

	order, err := s.orders.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: orden %d", domain.ErrNotFound, id)
	}

	if err := s.orders.UpdatePaymentStatus(id, paymentStatus); err != nil {
		return nil, err
	}

	s.log.Info().Int64("order_id", id).Str("payment_status", paymentStatus).Msg("estado de pago actualizado")
	return s.GetOrder(ctx, id)
}

func buildOrderResponse(order *entity.Order, items []repository.OrderItemRow) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:            order.ID,
		CustomerID:    order.CustomerID,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Subtotal:      order.Subtotal,
		Tax:           order.Tax,
		Total:         order.Total,
		CreatedAt:     order.CreatedAt,
		Items:         make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.NewOrderItemResponse(item))
	}
	return resp
}

func validateCreateOrder(req dto.CreateOrderRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerId es obligatorio", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: la orden debe tener al menos una línea", domain.ErrInvalidInput)
	}
	for i, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: línea %d: productId es obligatorio", domain.ErrInvalidInput, i)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: línea %d: quantity debe ser positiva", domain.ErrInvalidInput, i)
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: línea %d: unitPrice no puede ser negativo", domain.ErrInvalidInput, i)
		}
	}
	return nil
}
