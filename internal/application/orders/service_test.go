package orders_test

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/orders"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica transaccional (snapshot + restore)
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[int64]*entity.Product
	customers map[int64]*entity.Customer
	orders    map[int64]*entity.Order
	items     []entity.OrderItem
	movements []entity.InventoryMovement
	nextOrder int64
	nextItem  int64
	nextMove  int64
}

func (s *memStore) clone() *memStore {
	c := &memStore{
		products:  make(map[int64]*entity.Product, len(s.products)),
		customers: make(map[int64]*entity.Customer, len(s.customers)),
		orders:    make(map[int64]*entity.Order, len(s.orders)),
		items:     append([]entity.OrderItem(nil), s.items...),
		movements: append([]entity.InventoryMovement(nil), s.movements...),
		nextOrder: s.nextOrder,
		nextItem:  s.nextItem,
		nextMove:  s.nextMove,
	}
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, cu := range s.customers {
		cc := *cu
		c.customers[id] = &cc
	}
	for id, o := range s.orders {
		co := *o
		c.orders[id] = &co
	}
	return c
}

type memProductRepo struct{ s *memStore }

func (r memProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r memProductRepo) GetByID(id int64) (*entity.Product, error) { return r.active(id), nil }

func (r memProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }

func (r memProductRepo) GetForUpdate(id int64) (*entity.Product, error) { return r.active(id), nil }

func (r memProductRepo) List(string, string, int, int) ([]*entity.Product, error) { return nil, nil }

func (r memProductRepo) Count(string, string) (int, error) { return len(r.s.products), nil }

func (r memProductRepo) Update(p *entity.Product) error { r.s.products[p.ID] = p; return nil }

func (r memProductRepo) UpdateStock(productID, newStock int64) error {
	p, ok := r.s.products[productID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = newStock
	return nil
}
func (r memProductRepo) SoftDelete(id int64) error { return nil }

func (r memProductRepo) active(id int64) *entity.Product {
	p, ok := r.s.products[id]
	if !ok || !p.IsActive {
		return nil
	}
	return p
}

type memCustomerRepo struct{ s *memStore }

func (r memCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }

func (r memCustomerRepo) GetByID(id int64) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || !c.IsActive {
		return nil, nil
	}
	return c, nil
}
func (r memCustomerRepo) List(string, int, int) ([]*entity.Customer, error) { return nil, nil }

func (r memCustomerRepo) Count(string) (int, error) { return len(r.s.customers), nil }

func (r memCustomerRepo) Update(*entity.Customer) error { return nil }

func (r memCustomerRepo) SoftDelete(int64) error { return nil }

type memMovementRepo struct{ s *memStore }

func (r memMovementRepo) Create(m *entity.InventoryMovement) error {
	r.s.nextMove++
	m.ID = r.s.nextMove
	m.CreatedAt = time.Now()
	r.s.movements = append(r.s.movements, *m)
	return nil
}
func (r memMovementRepo) List(int64, string, int, int) ([]repository.MovementRow, error) {
	return nil, nil
}
func (r memMovementRepo) Count(int64, string) (int, error) { return len(r.s.movements), nil }
func (r memMovementRepo) Summary() (*repository.MovementSummary, error) {
	return &repository.MovementSummary{}, nil
}

type memOrderRepo struct{ s *memStore }

func (r memOrderRepo) Create(o *entity.Order) error {
	r.s.nextOrder++
	o.ID = r.s.nextOrder
	o.CreatedAt = time.Now()
	stored := *o
	r.s.orders[o.ID] = &stored
	return nil
}
func (r memOrderRepo) CreateItem(item *entity.OrderItem) error {
	r.s.nextItem++
	item.ID = r.s.nextItem
	r.s.items = append(r.s.items, *item)
	return nil
}
func (r memOrderRepo) GetByID(id int64) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r memOrderRepo) ListItems(orderID int64) ([]repository.OrderItemRow, error) {
	var rows []repository.OrderItemRow
	for _, item := range r.s.items {
		if item.OrderID != orderID {
			continue
		}
		row := repository.OrderItemRow{OrderItem: item}
		if p, ok := r.s.products[item.ProductID]; ok {
			row.ProductName = p.Name
			row.ProductSKU = p.SKU
		}
		rows = append(rows, row)
	}
	return rows, nil
}
func (r memOrderRepo) List(limit, offset int) ([]repository.OrderSummaryRow, error) {
	ids := make([]int64, 0, len(r.s.orders))
	for id := range r.s.orders {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })

	var rows []repository.OrderSummaryRow
	for i, id := range ids {
		if i < offset || len(rows) >= limit {
			continue
		}
		o := r.s.orders[id]
		row := repository.OrderSummaryRow{
			ID: o.ID, CustomerID: o.CustomerID, Status: o.Status,
			PaymentStatus: o.PaymentStatus, Total: o.Total, CreatedAt: o.CreatedAt,
		}
		if c, ok := r.s.customers[o.CustomerID]; ok {
			row.CustomerName = c.Name
			row.CustomerEmail = c.ContactEmail
		}
		rows = append(rows, row)
	}
	return rows, nil
}
func (r memOrderRepo) Count() (int, error) { return len(r.s.orders), nil }
func (r memOrderRepo) UpdateStatus(id int64, status string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	return nil
}
func (r memOrderRepo) UpdatePaymentStatus(id int64, paymentStatus string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.PaymentStatus = paymentStatus
	return nil
}

// memTx simula la atomicidad real: si fn falla, el almacén vuelve al snapshot
// previo, igual que un ROLLBACK.
type memTx struct{ s *memStore }

func (t *memTx) RunOrder(ctx context.Context, fn func(
	products repository.ProductRepository,
	movements repository.InventoryMovementRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(memProductRepo{t.s}, memMovementRepo{t.s}, memOrderRepo{t.s}, memCustomerRepo{t.s})
	if err != nil {
		*t.s = *snapshot
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

func newFixture(taxRate float64, stock int64) (*orders.Service, *memStore) {
	store := &memStore{
		products: map[int64]*entity.Product{
			1: {ID: 1, Name: "Teclado mecánico", SKU: "TEC-001", Price: decimal.NewFromFloat(2.50), StockQuantity: stock, IsActive: true},
			2: {ID: 2, Name: "Mouse inalámbrico", SKU: "MOU-002", Price: decimal.NewFromFloat(5.00), StockQuantity: 20, IsActive: true},
		},
		customers: map[int64]*entity.Customer{
			10: {ID: 10, Name: "Comercial Andina", ContactEmail: "compras@andina.co", IsActive: true},
		},
		orders: make(map[int64]*entity.Order),
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	svc := orders.NewService(&memTx{store}, memOrderRepo{store}, taxRate, log)
	return svc, store
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de creación de órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_CalculaTotalesYDescuentaStock(t *testing.T) {
	svc, store := newFixture(0.10, 10)

	resp, err := svc.CreateOrder(context.Background(), 7, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 4}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("10.00")), "subtotal 4 x 2.50 = 10.00, fue %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(dec("1.00")), "impuesto 10%% de 10.00 = 1.00, fue %s", resp.Tax)
	assert.True(t, resp.Total.Equal(dec("11.00")), "total 10.00 + 1.00 = 11.00, fue %s", resp.Total)
	assert.Equal(t, entity.OrderPending, resp.Status, "una orden nueva nace en pending")
	assert.Equal(t, entity.PaymentUnpaid, resp.PaymentStatus)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(dec("2.50")), "la línea toma snapshot del precio del producto")
	assert.Equal(t, "Teclado mecánico", resp.Items[0].ProductName)

	assert.Equal(t, int64(6), store.products[1].StockQuantity, "el stock debe bajar de 10 a 6")
	require.Len(t, store.movements, 1, "cada línea genera un movimiento sale")
	assert.Equal(t, entity.MovementSale, store.movements[0].Type)
	assert.Equal(t, int64(4), store.movements[0].Quantity)
	assert.Equal(t, "order:1", store.movements[0].Reference, "el movimiento referencia la orden creada")
	assert.Equal(t, int64(7), store.movements[0].CreatedBy, "el movimiento registra el actor")
}

func TestCreateOrder_TasaDeImpuestoCero(t *testing.T) {
	svc, _ := newFixture(0, 10)

	resp, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.True(t, resp.Tax.IsZero(), "sin tasa configurada el impuesto es cero")
	assert.True(t, resp.Total.Equal(resp.Subtotal), "total = subtotal cuando no hay impuesto")
}

func TestCreateOrder_PrecioOverride(t *testing.T) {
	svc, store := newFixture(0, 10)
	override := dec("99.99")

	resp, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: &override}},
	})
	require.NoError(t, err)

	assert.True(t, resp.Items[0].UnitPrice.Equal(override), "el override de precio manda sobre el precio del producto")
	assert.True(t, resp.Subtotal.Equal(override))
	assert.True(t, store.products[1].Price.Equal(dec("2.5")), "el precio del producto no se modifica")
}

func TestCreateOrder_RedondeaCadaLinea(t *testing.T) {
	svc, _ := newFixture(0.10, 10)
	override := dec("3.333")

	resp, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 3, UnitPrice: &override}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].LineTotal.Equal(dec("10.00")),
		"3 x 3.333 = 9.999 se redondea a 10.00 en la línea, fue %s", resp.Items[0].LineTotal)

	sum := decimal.Zero
	for _, item := range resp.Items {
		sum = sum.Add(item.LineTotal)
	}
	assert.True(t, resp.Subtotal.Equal(sum),
		"el subtotal debe ser exactamente la suma de las líneas persistidas")
	assert.True(t, resp.Tax.Equal(dec("1.00")), "el impuesto se calcula sobre el subtotal redondeado")
	assert.True(t, resp.Total.Equal(dec("11.00")))
}

func TestCreateOrder_StockInsuficienteRevierteTodo(t *testing.T) {
	svc, store := newFixture(0.10, 3)

	_, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 5}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Teclado mecánico", "el error debe nombrar el producto")

	assert.Empty(t, store.orders, "no debe quedar orden persistida")
	assert.Empty(t, store.items, "no deben quedar líneas persistidas")
	assert.Empty(t, store.movements, "no deben quedar movimientos persistidos")
	assert.Equal(t, int64(3), store.products[1].StockQuantity, "el stock queda intacto")
}

func TestCreateOrder_DosLineasDelMismoProductoNoSobregiran(t *testing.T) {
	// Cada línea pasa sola (3 <= 5) pero juntas exceden el stock (6 > 5).
	svc, store := newFixture(0, 5)

	_, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 1, Quantity: 3},
		},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(5), store.products[1].StockQuantity, "la verificación acumulativa revierte todo")
	assert.Empty(t, store.orders)
}

func TestCreateOrder_VariasLineas(t *testing.T) {
	svc, store := newFixture(0.10, 10)

	resp, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items: []dto.OrderItemRequest{
			{ProductID: 1, Quantity: 2}, // 2 x 2.50 = 5.00
			{ProductID: 2, Quantity: 3}, // 3 x 5.00 = 15.00
		},
	})
	require.NoError(t, err)

	assert.True(t, resp.Subtotal.Equal(dec("20.00")), "subtotal fue %s", resp.Subtotal)
	assert.True(t, resp.Tax.Equal(dec("2.00")))
	assert.True(t, resp.Total.Equal(dec("22.00")))
	assert.Equal(t, int64(8), store.products[1].StockQuantity)
	assert.Equal(t, int64(17), store.products[2].StockQuantity)
	assert.Len(t, store.movements, 2, "un movimiento sale por línea")
}

func TestCreateOrder_Validaciones(t *testing.T) {
	svc, _ := newFixture(0, 10)
	negative := dec("-1")

	cases := []struct {
		name string
		req  dto.CreateOrderRequest
	}{
		{"sin cliente", dto.CreateOrderRequest{Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}}}},
		{"sin líneas", dto.CreateOrderRequest{CustomerID: 10}},
		{"cantidad cero", dto.CreateOrderRequest{CustomerID: 10, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: 0}}}},
		{"cantidad negativa", dto.CreateOrderRequest{CustomerID: 10, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: -2}}}},
		{"precio negativo", dto.CreateOrderRequest{CustomerID: 10, Items: []dto.OrderItemRequest{{ProductID: 1, Quantity: 1, UnitPrice: &negative}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), 1, tc.req)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreateOrder_ClienteInexistente(t *testing.T) {
	svc, store := newFixture(0, 10)

	_, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 404,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.orders)
}

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	svc, store := newFixture(0, 10)

	_, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 404, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, store.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de máquina de estados
// ──────────────────────────────────────────────────────────────────────────────

func createTestOrder(t *testing.T, svc *orders.Service) int64 {
	t.Helper()
	resp, err := svc.CreateOrder(context.Background(), 1, dto.CreateOrderRequest{
		CustomerID: 10,
		Items:      []dto.OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)
	return resp.ID
}

func TestUpdateStatus_TransicionesPermitidas(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	resp, err := svc.UpdateStatus(context.Background(), id, entity.OrderProcessing)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderProcessing, resp.Status)

	resp, err = svc.UpdateStatus(context.Background(), id, entity.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCompleted, resp.Status)
}

func TestUpdateStatus_EstadoTerminalRechazaTransiciones(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), id, entity.OrderCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), id, entity.OrderProcessing)
	assert.ErrorIs(t, err, domain.ErrConflict, "cancelled es terminal: no admite transiciones")
}

func TestUpdateStatus_SaltoDeEstadoNoPermitido(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), id, entity.OrderCompleted)
	assert.ErrorIs(t, err, domain.ErrConflict, "pending no puede saltar directo a completed")
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), id, "shipped")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateStatus_OrdenInexistente(t *testing.T) {
	svc, _ := newFixture(0, 10)

	_, err := svc.UpdateStatus(context.Background(), 404, entity.OrderProcessing)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdatePaymentStatus_IndependienteDelEstado(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), id, entity.OrderCancelled)
	require.NoError(t, err)

	resp, err := svc.UpdatePaymentStatus(context.Background(), id, entity.PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPaid, resp.PaymentStatus, "el pago se puede marcar aun con la orden cancelada")
	assert.Equal(t, entity.OrderCancelled, resp.Status)
}

func TestUpdatePaymentStatus_ValorInvalido(t *testing.T) {
	svc, _ := newFixture(0, 10)
	id := createTestOrder(t, svc)

	_, err := svc.UpdatePaymentStatus(context.Background(), id, "refunded")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetOrder_IncluyeLineas(t *testing.T) {
	svc, _ := newFixture(0.10, 10)
	id := createTestOrder(t, svc)

	resp, err := svc.GetOrder(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "TEC-001", resp.Items[0].ProductSKU)
}

func TestListOrders_Paginacion(t *testing.T) {
	svc, _ := newFixture(0, 100)
	for i := 0; i < 3; i++ {
		createTestOrder(t, svc)
	}

	page, err := svc.ListOrders(context.Background(), dto.PageRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.Meta.Total)
	assert.Equal(t, 2, page.Meta.TotalPages)
	assert.Equal(t, int64(3), page.Items[0].ID, "las órdenes más recientes van primero")
	assert.Equal(t, "Comercial Andina", page.Items[0].CustomerName)
}
