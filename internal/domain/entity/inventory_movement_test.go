package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

func TestSignedDelta_PorTipo(t *testing.T) {
	cases := []struct {
		name     string
		movement entity.InventoryMovement
		want     int64
	}{
		{"stock_in suma", entity.InventoryMovement{Type: entity.MovementStockIn, Quantity: 5}, 5},
		{"stock_out resta", entity.InventoryMovement{Type: entity.MovementStockOut, Quantity: 3}, -3},
		{"sale resta", entity.InventoryMovement{Type: entity.MovementSale, Quantity: 2}, -2},
		{"ajuste positivo", entity.InventoryMovement{Type: entity.MovementAdjustment, Quantity: 4}, 4},
		{"ajuste negativo", entity.InventoryMovement{Type: entity.MovementAdjustment, Quantity: -4}, -4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.movement.SignedDelta())
		})
	}
}

func TestValidMovementType(t *testing.T) {
	assert.True(t, entity.ValidMovementType(entity.MovementStockIn))
	assert.True(t, entity.ValidMovementType(entity.MovementSale))
	assert.False(t, entity.ValidMovementType("transfer"), "tipos desconocidos se rechazan")
	assert.False(t, entity.ValidMovementType(""))
}
