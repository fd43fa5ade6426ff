package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementStockIn    = "stock_in"   // entrada
	MovementStockOut   = "stock_out"  // salida
	MovementAdjustment = "adjustment" // ajuste con signo dado por el caller
	MovementSale       = "sale"       // salida generada por una orden
)

// InventoryMovement representa una entrada inmutable del libro de inventario.
// Una vez creada nunca se modifica ni se elimina; el stock del producto es la
// proyección acumulada de todos sus movimientos.
type InventoryMovement struct {
	ID        int64
	ProductID int64
	Type      string
	Quantity  int64  // magnitud registrada; el signo efectivo lo da el tipo
	Location  string // opcional
	Reference string // opcional, ej. "order:<id>"
	CreatedBy int64  // UserID; 0 = sin actor
	CreatedAt time.Time
}

// SignedDelta devuelve el delta efectivo sobre el stock según el tipo:
// stock_in suma, stock_out y sale restan, adjustment aplica la cantidad tal cual.
func (m *InventoryMovement) SignedDelta() int64 {
	switch m.Type {
	case MovementStockIn:
		return m.Quantity
	case MovementStockOut, MovementSale:
		return -m.Quantity
	default:
		return m.Quantity
	}
}

// ValidMovementType indica si el tipo es uno de los tipos conocidos del libro.
func ValidMovementType(t string) bool {
	switch t {
	case MovementStockIn, MovementStockOut, MovementAdjustment, MovementSale:
		return true
	}
	return false
}
