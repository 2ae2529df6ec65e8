package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreeRectTracker_InitialState(t *testing.T) {
	tr := newFreeRectTracker(2440, 1220)
	require.Len(t, tr.rects, 1)
	assert.Equal(t, rect{0, 0, 2440, 1220}, tr.rects[0])
}

func TestFreeRectTracker_PlaceReplacesWithResiduals(t *testing.T) {
	tr := newFreeRectTracker(1000, 1000)
	cuts := tr.place(0, 600, 400, 0)

	require.Len(t, tr.rects, 2)
	assert.Len(t, cuts, 2)

	var total float64
	for _, r := range tr.rects {
		total += r.area()
	}
	assert.InDelta(t, 1000*1000-600*400, total, 1e-6, "residuals cover exactly the unused area")
}

func TestFreeRectTracker_PruneDropsContained(t *testing.T) {
	tr := &freeRectTracker{rects: []rect{
		{0, 0, 100, 100},
		{10, 10, 20, 20},
		{200, 0, 50, 50},
	}}
	tr.prune()

	require.Len(t, tr.rects, 2)
	assert.Equal(t, rect{0, 0, 100, 100}, tr.rects[0])
	assert.Equal(t, rect{200, 0, 50, 50}, tr.rects[1])
}

func TestFreeRectTracker_PruneKeepsOneOfCoincidentPair(t *testing.T) {
	tr := &freeRectTracker{rects: []rect{
		{0, 0, 100, 100},
		{0, 0, 100, 100},
	}}
	tr.prune()
	require.Len(t, tr.rects, 1, "exact duplicates collapse to the earlier entry")
}

func TestFreeRectTracker_MergeAdjacentColumn(t *testing.T) {
	tr := &freeRectTracker{rects: []rect{
		{0, 0, 100, 40},
		{0, 40, 100, 60},
	}}
	tr.mergeAdjacent()

	require.Len(t, tr.rects, 1)
	assert.Equal(t, rect{0, 0, 100, 100}, tr.rects[0])
}

func TestFreeRectTracker_MergeAdjacentRow(t *testing.T) {
	tr := &freeRectTracker{rects: []rect{
		{50, 10, 30, 80},
		{20, 10, 30, 80},
	}}
	tr.mergeAdjacent()

	require.Len(t, tr.rects, 1)
	assert.Equal(t, rect{20, 10, 60, 80}, tr.rects[0])
}

func TestFreeRectTracker_NoMergeAcrossKerfGap(t *testing.T) {
	// Residuals separated by a kerf strip do not share an edge.
	tr := &freeRectTracker{rects: []rect{
		{0, 0, 100, 40},
		{0, 43, 100, 57},
	}}
	tr.mergeAdjacent()
	assert.Len(t, tr.rects, 2)
}

func TestMergeRects_RejectsPartialEdge(t *testing.T) {
	_, ok := mergeRects(rect{0, 0, 100, 40}, rect{0, 40, 80, 60})
	assert.False(t, ok, "neighbors must share the complete edge")
}
