package model

import (
	"sort"

	"github.com/google/uuid"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID            string  `json:"id"`
	SheetLabel    string  `json:"sheet_label"`
	SheetIndex    int     `json:"sheet_index"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	PricePerSheet float64 `json:"price_per_sheet,omitempty"` // Inherited price proportional to area
}

// Area returns the offcut area in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToStockSheet converts an offcut into a stock sheet for reuse in a later run.
func (o Offcut) ToStockSheet() StockSheet {
	sheet := NewStockSheet("Offcut "+o.SheetLabel, o.Width, o.Height, 1)
	sheet.PricePerSheet = o.PricePerSheet
	return sheet
}

// MinOffcutArea is the minimum area (sq mm) for a remnant to be worth keeping.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts filters a sheet layout's remaining free rectangles down to
// remnants large enough to be reused, largest first. minDimension is the
// smallest usable width or height in mm.
func DetectOffcuts(sl SheetLayout, sheetIndex int, minDimension float64) []Offcut {
	var offcuts []Offcut
	for _, fr := range sl.FreeRects {
		if fr.Width < minDimension || fr.Height < minDimension || fr.Area() < MinOffcutArea {
			continue
		}
		offcuts = append(offcuts, Offcut{
			ID:         uuid.New().String()[:8],
			SheetLabel: sl.Stock.Label,
			SheetIndex: sheetIndex,
			X:          fr.X,
			Y:          fr.Y,
			Width:      fr.Width,
			Height:     fr.Height,
		})
	}

	if sl.Stock.PricePerSheet > 0 {
		sheetArea := sl.Stock.Area()
		for i := range offcuts {
			offcuts[i].PricePerSheet = (offcuts[i].Area() / sheetArea) * sl.Stock.PricePerSheet
		}
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	return offcuts
}

// DetectAllOffcuts finds offcuts across every sheet in a layout result.
func DetectAllOffcuts(result LayoutResult, minDimension float64) []Offcut {
	var all []Offcut
	for i, sheet := range result.Sheets {
		all = append(all, DetectOffcuts(sheet, i, minDimension)...)
	}
	return all
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
