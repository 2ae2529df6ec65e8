package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/panelwright/nestcut/internal/model"
)

func TestExpandUnits_QuantityExpansion(t *testing.T) {
	parts := []model.Part{
		{ID: "a", Label: "shelf", Length: 400, Width: 300, Quantity: 3},
	}
	units, unplaced := expandUnits(parts, true)

	require.Len(t, units, 3)
	assert.Empty(t, unplaced)
	for _, u := range units {
		assert.Equal(t, 1, u.part.Quantity, "expanded units carry quantity one")
		assert.Equal(t, "a", u.part.ID)
	}
}

func TestExpandUnits_Ordering(t *testing.T) {
	// B and C tie on area; C's longer edge wins the second key.
	parts := []model.Part{
		{ID: "b", Length: 100, Width: 100, Quantity: 1},
		{ID: "c", Length: 200, Width: 50, Quantity: 1},
		{ID: "a", Length: 300, Width: 100, Quantity: 1},
	}
	units, _ := expandUnits(parts, true)

	require.Len(t, units, 3)
	assert.Equal(t, "a", units[0].part.ID, "largest area first")
	assert.Equal(t, "c", units[1].part.ID, "area tie broken by longest edge")
	assert.Equal(t, "b", units[2].part.ID)
}

func TestExpandUnits_TieBrokenByExpansionIndex(t *testing.T) {
	parts := []model.Part{
		{ID: "first", Length: 100, Width: 100, Quantity: 2},
		{ID: "second", Length: 100, Width: 100, Quantity: 2},
	}
	units, _ := expandUnits(parts, true)

	require.Len(t, units, 4)
	assert.Equal(t, []int{0, 1, 2, 3}, []int{units[0].index, units[1].index, units[2].index, units[3].index})
	assert.Equal(t, "first", units[0].part.ID)
	assert.Equal(t, "second", units[2].part.ID)
}

func TestExpandUnits_GrainLockedWithoutRotation(t *testing.T) {
	parts := []model.Part{
		{ID: "locked", Length: 500, Width: 300, Quantity: 2, Grain: model.GrainAlongWidth},
	}
	units, unplaced := expandUnits(parts, false)

	assert.Empty(t, units)
	require.Len(t, unplaced, 2, "every instance is reported, not just the part")
	assert.Equal(t, model.ReasonGrainLocked, unplaced[0].Reason)
}

func TestOrientationsFor(t *testing.T) {
	cases := []struct {
		name          string
		grain         model.Grain
		allowRotation bool
		wantNormal    bool
		wantRotated   bool
	}{
		{"any with rotation", model.GrainAny, true, true, true},
		{"any without rotation", model.GrainAny, false, true, false},
		{"along length ignores gate", model.GrainAlongLength, true, true, false},
		{"along width with rotation", model.GrainAlongWidth, true, false, true},
		{"along width without rotation", model.GrainAlongWidth, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			normal, rotated := orientationsFor(tc.grain, tc.allowRotation)
			assert.Equal(t, tc.wantNormal, normal)
			assert.Equal(t, tc.wantRotated, rotated)
		})
	}
}

func TestPlacedDims(t *testing.T) {
	p := model.Part{Length: 500, Width: 300}

	w, h := placedDims(p, false)
	assert.Equal(t, 500.0, w, "length runs horizontal when unrotated")
	assert.Equal(t, 300.0, h)

	w, h = placedDims(p, true)
	assert.Equal(t, 300.0, w)
	assert.Equal(t, 500.0, h)
}
