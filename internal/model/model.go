package model

import "github.com/google/uuid"

// Grain represents the grain direction constraint for a part.
type Grain int

const (
	GrainAny         Grain = iota // No grain constraint, can rotate freely
	GrainAlongLength              // Grain runs along the part's length
	GrainAlongWidth               // Grain runs along the part's width
)

func (g Grain) String() string {
	switch g {
	case GrainAlongLength:
		return "AlongLength"
	case GrainAlongWidth:
		return "AlongWidth"
	default:
		return "Any"
	}
}

// BandEdges marks which sides of a part receive edge banding, in the part's
// unrotated frame. Top and bottom run along the length, left and right along
// the width.
type BandEdges struct {
	Top    bool `json:"top"`
	Right  bool `json:"right"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
}

// HasAny reports whether at least one edge is banded.
func (b BandEdges) HasAny() bool {
	return b.Top || b.Right || b.Bottom || b.Left
}

// EdgeCount returns the number of banded edges.
func (b BandEdges) EdgeCount() int {
	n := 0
	for _, set := range []bool{b.Top, b.Right, b.Bottom, b.Left} {
		if set {
			n++
		}
	}
	return n
}

// LinearLength returns the total banded length for a part of the given
// dimensions: top/bottom edges span the length, left/right edges the width.
func (b BandEdges) LinearLength(length, width float64) float64 {
	var total float64
	if b.Top {
		total += length
	}
	if b.Bottom {
		total += length
	}
	if b.Left {
		total += width
	}
	if b.Right {
		total += width
	}
	return total
}

func (b BandEdges) String() string {
	if !b.HasAny() {
		return "-"
	}
	s := ""
	add := func(set bool, tag string) {
		if !set {
			return
		}
		if s != "" {
			s += "+"
		}
		s += tag
	}
	add(b.Top, "T")
	add(b.Right, "R")
	add(b.Bottom, "B")
	add(b.Left, "L")
	return s
}

// Part represents a required piece to be cut. Dimensions are millimeters;
// Length is the horizontal extent when the part is placed unrotated.
type Part struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Length   float64   `json:"length"`
	Width    float64   `json:"width"`
	Quantity int       `json:"quantity"`
	Grain    Grain     `json:"grain"`
	Band     BandEdges `json:"band_edges"`
	Laminate bool      `json:"laminate"`
}

func NewPart(label string, length, width float64, qty int) Part {
	return Part{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Width:    width,
		Quantity: qty,
		Grain:    GrainAny,
	}
}

// Area returns the part's face area in square mm.
func (p Part) Area() float64 {
	return p.Length * p.Width
}

// StockSheet represents an available sheet type to cut from.
// Quantity zero means an unbounded supply.
type StockSheet struct {
	ID            string  `json:"id"`
	Label         string  `json:"label"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Quantity      int     `json:"quantity"`
	Kerf          float64 `json:"kerf,omitempty"` // Overrides Options.Kerf when > 0
	PricePerSheet float64 `json:"price_per_sheet,omitempty"`
}

func NewStockSheet(label string, length, width float64, qty int) StockSheet {
	return StockSheet{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Length:   length,
		Width:    width,
		Quantity: qty,
	}
}

// Area returns the sheet area in square mm.
func (s StockSheet) Area() float64 {
	return s.Length * s.Width
}

// Options holds the packing configuration for one run. It is passed
// explicitly; the engine keeps no global state.
type Options struct {
	Kerf            float64     `json:"kerf_mm"`                   // Saw blade width consumed at each cut
	AllowRotation   bool        `json:"allow_rotation"`            // Global gate on 90 degree placements
	SingleSheetOnly bool        `json:"single_sheet_only"`         // Feasibility-check mode: never open a second sheet
	MinOffcut       float64     `json:"min_offcut_mm"`             // Residuals thinner than this are penalized as slivers
	LaminateBacker  *StockSheet `json:"laminate_backer,omitempty"` // Sheet spec for fractional backer computation
}

func DefaultOptions() Options {
	return Options{
		Kerf:          3.2,
		AllowRotation: true,
		MinOffcut:     50.0,
	}
}

// KerfFor returns the effective kerf for a sheet: the sheet-level value
// wins when set.
func (o Options) KerfFor(s StockSheet) float64 {
	if s.Kerf > 0 {
		return s.Kerf
	}
	return o.Kerf
}
