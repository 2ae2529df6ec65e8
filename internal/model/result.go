package model

// Placement represents a single part instance fixed on a stock sheet.
// PlacedWidth/PlacedHeight are the post-rotation, kerf-exclusive dimensions,
// so a renderer can draw the layout without recomputing any geometry.
type Placement struct {
	PartID       string  `json:"part_id"`
	Label        string  `json:"label"`
	X            float64 `json:"x"` // mm from the sheet's left edge
	Y            float64 `json:"y"` // mm from the sheet's top edge
	PlacedWidth  float64 `json:"placed_width"`
	PlacedHeight float64 `json:"placed_height"`
	Rotated      bool    `json:"rotated"`
}

// Area returns the placed footprint in square mm.
func (p Placement) Area() float64 {
	return p.PlacedWidth * p.PlacedHeight
}

// FreeRect is an unoccupied region remaining on a sheet, reported for
// offcut recovery.
type FreeRect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Area returns the free region area in square mm.
func (f FreeRect) Area() float64 {
	return f.Width * f.Height
}

// SheetLayout is one physical sheet instance with its placements and the
// free rectangles left over after packing.
type SheetLayout struct {
	Stock      StockSheet  `json:"stock"`
	Placements []Placement `json:"placements"`
	FreeRects  []FreeRect  `json:"free_rects,omitempty"`
}

// UsedArea returns the total area covered by placed parts.
func (sl SheetLayout) UsedArea() float64 {
	var total float64
	for _, p := range sl.Placements {
		total += p.Area()
	}
	return total
}

// WasteArea returns the sheet area not covered by parts, including kerf.
func (sl SheetLayout) WasteArea() float64 {
	return sl.Stock.Area() - sl.UsedArea()
}

// Efficiency returns the usage percentage.
func (sl SheetLayout) Efficiency() float64 {
	area := sl.Stock.Area()
	if area == 0 {
		return 0
	}
	return (sl.UsedArea() / area) * 100.0
}

// Unplaced reasons attached to parts the packer could not fit.
const (
	ReasonGrainLocked     = "grain requires rotation but rotation is disabled"
	ReasonNoFit           = "no available sheet type can contain the part"
	ReasonSheetsExhausted = "all fitting sheet types are out of stock"
	ReasonSingleSheet     = "part would require a second sheet"
)

// UnplacedPart records one part instance that could not be placed, with the
// reason, so callers can surface it instead of silently dropping the part.
type UnplacedPart struct {
	Part   Part   `json:"part"`
	Reason string `json:"reason"`
}

// Stats aggregates the measurable outcomes of a packing run.
type Stats struct {
	UsedArea       float64            `json:"used_area"`
	WasteArea      float64            `json:"waste_area"`
	CutCount       int                `json:"cut_count"`
	TotalCutLength float64            `json:"total_cut_length"`
	BandingByClass map[string]float64 `json:"banding_length_by_thickness_class"`
	SheetsByType   map[string]float64 `json:"fractional_sheets_used_by_type"`
	LaminatedArea  float64            `json:"laminated_area"`
	BackerSheets   float64            `json:"backer_sheets"` // Fractional; rounding is a caller concern
}

// LayoutResult is the full output of one packing run.
type LayoutResult struct {
	Sheets         []SheetLayout  `json:"sheets"`
	Unplaced       []UnplacedPart `json:"unplaced,omitempty"`
	SheetExhausted []string       `json:"sheet_exhausted,omitempty"` // Labels of types that ran out mid-run
	Stats          Stats          `json:"stats"`
}

// TotalEfficiency returns the overall material usage percentage.
func (lr LayoutResult) TotalEfficiency() float64 {
	var used, total float64
	for _, s := range lr.Sheets {
		used += s.UsedArea()
		total += s.Stock.Area()
	}
	if total == 0 {
		return 0
	}
	return (used / total) * 100.0
}
