package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimatePurchase(t *testing.T) {
	parts := []Part{
		{Length: 597, Width: 397, Quantity: 4}, // 600x400 once kerf-inflated
	}
	sheet := StockSheet{Length: 1000, Width: 1000}

	est := EstimatePurchase(parts, sheet, 3, 10)

	assert.InDelta(t, 960000.0, est.TotalPartArea, 1e-6)
	assert.InDelta(t, 0.96, est.SheetsNeededExact, 1e-9)
	assert.Equal(t, 1, est.SheetsNeededMin)
	assert.Equal(t, 2, est.SheetsWithWaste, "10% waste tips the ceiling over one sheet")
}

func TestEstimatePurchase_WasteNeverBelowMinimum(t *testing.T) {
	parts := []Part{{Length: 100, Width: 100, Quantity: 1}}
	sheet := StockSheet{Length: 1000, Width: 1000}

	est := EstimatePurchase(parts, sheet, 0, 0)
	assert.Equal(t, 1, est.SheetsNeededMin)
	assert.GreaterOrEqual(t, est.SheetsWithWaste, est.SheetsNeededMin)
}

func TestEstimatePurchase_ZeroAreaSheet(t *testing.T) {
	parts := []Part{{Length: 100, Width: 100, Quantity: 1}}
	est := EstimatePurchase(parts, StockSheet{}, 0, 10)

	assert.Zero(t, est.SheetArea)
	assert.Zero(t, est.SheetsNeededMin)
	assert.InDelta(t, 10000.0, est.TotalPartArea, 1e-9)
}
