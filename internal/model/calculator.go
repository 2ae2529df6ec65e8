package model

import "math"

// PurchaseEstimate holds a quick sheet purchasing calculation made before
// running the packer, for early quoting.
type PurchaseEstimate struct {
	TotalPartArea     float64 `json:"total_part_area"`     // sq mm, kerf-inflated
	SheetArea         float64 `json:"sheet_area"`          // sq mm
	SheetsNeededExact float64 `json:"sheets_needed_exact"` // Fractional
	SheetsNeededMin   int     `json:"sheets_needed_min"`   // Ceiling of exact
	SheetsWithWaste   int     `json:"sheets_with_waste"`   // Including waste factor
	WastePercent      float64 `json:"waste_percent"`
	KerfWidth         float64 `json:"kerf_width"`
}

// EstimatePurchase computes how many sheets a cut list roughly needs,
// accounting for kerf allowance per part and a waste percentage. It is an
// area-based approximation; the packer gives the real answer.
func EstimatePurchase(parts []Part, sheet StockSheet, kerf, wastePercent float64) PurchaseEstimate {
	var totalPartArea float64
	for _, p := range parts {
		totalPartArea += (p.Length + kerf) * (p.Width + kerf) * float64(p.Quantity)
	}

	est := PurchaseEstimate{
		TotalPartArea: totalPartArea,
		WastePercent:  wastePercent,
		KerfWidth:     kerf,
	}
	if sheet.Area() <= 0 {
		return est
	}

	est.SheetArea = sheet.Area()
	est.SheetsNeededExact = totalPartArea / est.SheetArea
	est.SheetsNeededMin = int(math.Ceil(est.SheetsNeededExact))
	est.SheetsWithWaste = int(math.Ceil(est.SheetsNeededExact * (1.0 + wastePercent/100.0)))
	if est.SheetsWithWaste < est.SheetsNeededMin {
		est.SheetsWithWaste = est.SheetsNeededMin
	}
	return est
}
