package model

import "math"

// Thickness classes used to bucket edge-banding lengths. Laminated parts are
// double thickness and take the wider band.
const (
	BandClassStandard = "16mm"
	BandClassLaminate = "32mm"
)

// BandClassFor returns the thickness class bucket for a part.
func BandClassFor(p Part) string {
	if p.Laminate {
		return BandClassLaminate
	}
	return BandClassStandard
}

// MapEdges translates banding flags from the part's local frame to
// sheet-local sides. A rotated placement remaps top→left, right→top,
// bottom→right, left→bottom; an unrotated one is the identity.
func MapEdges(b BandEdges, rotated bool) BandEdges {
	if !rotated {
		return b
	}
	return BandEdges{
		Left:   b.Top,
		Top:    b.Right,
		Right:  b.Bottom,
		Bottom: b.Left,
	}
}

// SideLengths holds banding length per sheet-local side.
type SideLengths struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Total returns the summed banding length across all sides.
func (s SideLengths) Total() float64 {
	return s.Top + s.Right + s.Bottom + s.Left
}

// BandingBySide returns the banding length booked on each sheet-local side
// for one placement of the part. Flags are remapped for rotation; lengths
// come from the part's own dimensions for the remapped side (top/bottom book
// the length, left/right the width).
func BandingBySide(p Part, rotated bool) SideLengths {
	sides := MapEdges(p.Band, rotated)
	var out SideLengths
	if sides.Top {
		out.Top = p.Length
	}
	if sides.Bottom {
		out.Bottom = p.Length
	}
	if sides.Left {
		out.Left = p.Width
	}
	if sides.Right {
		out.Right = p.Width
	}
	return out
}

// BandingForPlacement returns the thickness class and total banding length
// one placement contributes.
func BandingForPlacement(p Part, rotated bool) (string, float64) {
	return BandClassFor(p), BandingBySide(p, rotated).Total()
}

// BackerSheetsNeeded returns the fractional count of backer sheets consumed
// by the given laminated area. Fractional on purpose: costing reflects
// partial-sheet usage, and any rounding policy belongs to the caller.
func BackerSheetsNeeded(laminatedArea float64, backer *StockSheet) float64 {
	if backer == nil || backer.Area() <= 0 || laminatedArea <= 0 {
		return 0
	}
	return laminatedArea / backer.Area()
}

// EdgeBandingSummary holds a pre-packing banding estimate for a part list.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`
	TotalLinearM     float64 `json:"total_linear_m"`
	WastePercent     float64 `json:"waste_percent"`
	TotalWithWasteMM float64 `json:"total_with_waste_mm"`
	TotalWithWasteM  float64 `json:"total_with_waste_m"`
	PartCount        int     `json:"part_count"`
	EdgeCount        int     `json:"edge_count"`
}

// EstimateEdgeBanding computes the banding needed for a raw part list,
// before any layout exists. wastePercent is the allowance to add on top
// (e.g. 10 for 10%).
func EstimateEdgeBanding(parts []Part, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var partCount, edgeCount int

	for _, p := range parts {
		if !p.Band.HasAny() {
			continue
		}
		perPiece := p.Band.LinearLength(p.Length, p.Width)
		totalMM += perPiece * float64(p.Quantity)
		partCount += p.Quantity
		edgeCount += p.Band.EdgeCount() * p.Quantity
	}

	withWaste := math.Ceil(totalMM * (1.0 + wastePercent/100.0))

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: withWaste,
		TotalWithWasteM:  withWaste / 1000.0,
		PartCount:        partCount,
		EdgeCount:        edgeCount,
	}
}
