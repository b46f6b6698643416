package avgcost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestApply(t *testing.T) {
	tests := []struct {
		name             string
		oldQty, oldCost  float64
		qty, unitPrice   float64
		extraCharge      float64
		fallbackUnitCost float64
		wantQty          float64
		wantCost         float64
	}{
		{
			name:   "first purchase on empty stock",
			oldQty: 0, oldCost: 0,
			qty: 10, unitPrice: 5,
			wantQty: 10, wantCost: 5,
		},
		{
			name:   "second purchase averages cost",
			oldQty: 6, oldCost: 5,
			qty: 10, unitPrice: 7,
			wantQty: 16, wantCost: (6*5 + 10*7) / 16.0, // 6.25
		},
		{
			name:   "extra charge spreads over total quantity",
			oldQty: 0, oldCost: 0,
			qty: 10, unitPrice: 5, extraCharge: 10,
			wantQty: 10, wantCost: 6,
		},
		{
			name:   "fractional quantities",
			oldQty: 1.5, oldCost: 4,
			qty: 2.5, unitPrice: 8,
			wantQty: 4, wantCost: (1.5*4 + 2.5*8) / 4.0,
		},
		{
			name:   "negative stock recovers toward average",
			oldQty: -2, oldCost: 0,
			qty: 10, unitPrice: 5,
			wantQty: 8, wantCost: 50.0 / 8.0,
		},
		{
			name:   "zero resulting quantity falls back to unit cost",
			oldQty: -10, oldCost: 3,
			qty: 10, unitPrice: 5, fallbackUnitCost: 5.5,
			wantQty: 0, wantCost: 5.5,
		},
		{
			name:   "negative resulting quantity falls back to unit cost",
			oldQty: -20, oldCost: 3,
			qty: 10, unitPrice: 5, fallbackUnitCost: 5,
			wantQty: -10, wantCost: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotQty, gotCost := Apply(tt.oldQty, tt.oldCost, tt.qty, tt.unitPrice, tt.extraCharge, tt.fallbackUnitCost)
			assert.InDelta(t, tt.wantQty, gotQty, tolerance)
			assert.InDelta(t, tt.wantCost, gotCost, tolerance)
		})
	}
}

func TestReverse(t *testing.T) {
	tests := []struct {
		name             string
		curQty, curCost  float64
		qty, linePrice   float64
		wantQty          float64
		wantCost         float64
	}{
		{
			name:   "reversing last purchase restores prior cost",
			curQty: 16, curCost: 6.25,
			qty: 10, linePrice: 7,
			wantQty: 6, wantCost: 5,
		},
		{
			name:   "reversing to zero stock collapses cost",
			curQty: 10, curCost: 5,
			qty: 10, linePrice: 5,
			wantQty: 0, wantCost: 0,
		},
		{
			name:   "reversing below zero collapses cost",
			curQty: 4, curCost: 5,
			qty: 10, linePrice: 5,
			wantQty: -6, wantCost: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotQty, gotCost := Reverse(tt.curQty, tt.curCost, tt.qty, tt.linePrice)
			assert.InDelta(t, tt.wantQty, gotQty, tolerance)
			assert.InDelta(t, tt.wantCost, gotCost, tolerance)
		})
	}
}

// Apply followed by Reverse of the same movement must restore the original
// position exactly (within floating-point tolerance) for any single line.
func TestApplyReverseRoundTrip(t *testing.T) {
	positions := []struct{ qty, cost float64 }{
		{0, 0},
		{10, 5},
		{6, 5},
		{3.25, 12.8},
	}
	movements := []struct{ qty, price float64 }{
		{10, 7},
		{1, 0.5},
		{2.5, 19.99},
	}

	for _, pos := range positions {
		for _, mv := range movements {
			qty1, cost1 := Apply(pos.qty, pos.cost, mv.qty, mv.price, 0, mv.price)
			qty2, cost2 := Reverse(qty1, cost1, mv.qty, mv.price)

			assert.InDelta(t, pos.qty, qty2, tolerance)
			if pos.qty > 0 {
				assert.InDelta(t, pos.cost, cost2, 1e-6)
			}
		}
	}
}
