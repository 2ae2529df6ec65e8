package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapEdges_Identity(t *testing.T) {
	b := BandEdges{Top: true, Left: true}
	assert.Equal(t, b, MapEdges(b, false))
}

func TestMapEdges_Rotation(t *testing.T) {
	got := MapEdges(BandEdges{Top: true}, true)
	assert.Equal(t, BandEdges{Left: true}, got, "top moves to left under rotation")

	got = MapEdges(BandEdges{Right: true}, true)
	assert.Equal(t, BandEdges{Top: true}, got)

	got = MapEdges(BandEdges{Bottom: true}, true)
	assert.Equal(t, BandEdges{Right: true}, got)

	got = MapEdges(BandEdges{Left: true}, true)
	assert.Equal(t, BandEdges{Bottom: true}, got)
}

func TestBandingBySide_Unrotated(t *testing.T) {
	p := Part{Length: 500, Width: 300, Band: BandEdges{Left: true}}
	sides := BandingBySide(p, false)
	assert.Zero(t, sides.Top)
	assert.Zero(t, sides.Bottom)
	assert.Zero(t, sides.Right)
	assert.InDelta(t, 300.0, sides.Left, 1e-9)
	assert.InDelta(t, 300.0, sides.Total(), 1e-9)
}

func TestBandingBySide_RotatedLeftBooksLengthOnBottom(t *testing.T) {
	// The left flag maps to the bottom side under rotation, and the bottom
	// side books the part's length. A rotated 500x300 part banded on its
	// left therefore contributes 500mm to the bottom bucket.
	p := Part{Length: 500, Width: 300, Band: BandEdges{Left: true}}
	sides := BandingBySide(p, true)
	assert.Zero(t, sides.Top)
	assert.Zero(t, sides.Left)
	assert.Zero(t, sides.Right)
	assert.InDelta(t, 500.0, sides.Bottom, 1e-9)
}

func TestBandingBySide_RotatedTopBooksWidthOnLeft(t *testing.T) {
	p := Part{Length: 500, Width: 300, Band: BandEdges{Top: true}}
	sides := BandingBySide(p, true)
	assert.InDelta(t, 300.0, sides.Left, 1e-9)
	assert.InDelta(t, 300.0, sides.Total(), 1e-9)
}

func TestBandClassFor(t *testing.T) {
	assert.Equal(t, BandClassStandard, BandClassFor(Part{}))
	assert.Equal(t, BandClassLaminate, BandClassFor(Part{Laminate: true}))
}

func TestBandingForPlacement(t *testing.T) {
	p := Part{Length: 500, Width: 300, Laminate: true, Band: BandEdges{Top: true, Bottom: true}}
	class, length := BandingForPlacement(p, false)
	assert.Equal(t, BandClassLaminate, class)
	assert.InDelta(t, 1000.0, length, 1e-9)
}

func TestBackerSheetsNeeded(t *testing.T) {
	backer := &StockSheet{Length: 1000, Width: 1000}
	assert.InDelta(t, 0.25, BackerSheetsNeeded(250000, backer), 1e-9)
	assert.Zero(t, BackerSheetsNeeded(250000, nil))
	assert.Zero(t, BackerSheetsNeeded(0, backer))
	assert.Zero(t, BackerSheetsNeeded(250000, &StockSheet{}))
}

func TestEstimateEdgeBanding(t *testing.T) {
	parts := []Part{
		{Length: 500, Width: 300, Quantity: 2, Band: BandEdges{Top: true, Left: true}},
		{Length: 400, Width: 200, Quantity: 1}, // unbanded, ignored
	}
	sum := EstimateEdgeBanding(parts, 10)

	assert.InDelta(t, 1600.0, sum.TotalLinearMM, 1e-9, "two pieces at 500+300 each")
	assert.InDelta(t, 1.6, sum.TotalLinearM, 1e-9)
	assert.InDelta(t, 1760.0, sum.TotalWithWasteMM, 1e-9)
	assert.Equal(t, 2, sum.PartCount)
	assert.Equal(t, 4, sum.EdgeCount)
}
