package engine

// freeRectTracker owns the list of available placement regions on one sheet
// instance. Each sheet gets its own tracker; free space never aliases
// across sheets.
type freeRectTracker struct {
	rects []rect
}

func newFreeRectTracker(length, width float64) *freeRectTracker {
	return &freeRectTracker{rects: []rect{{0, 0, length, width}}}
}

// place commits a pw x ph placement into the top-left corner of rect idx.
// The consumed rectangle is replaced by its split residuals, then the list
// is pruned and merged. Returns the cut segments the split introduced.
func (t *freeRectTracker) place(idx int, pw, ph, kerf float64) []cutSegment {
	fr := t.rects[idx]
	residuals, cuts := splitAfterPlacement(fr, pw, ph, kerf)

	t.rects = append(t.rects[:idx], t.rects[idx+1:]...)
	t.rects = append(t.rects, residuals...)
	t.prune()
	t.mergeAdjacent()
	return cuts
}

// prune drops rectangles fully contained in another. The earlier entry
// survives when two rectangles coincide, keeping list order stable.
func (t *freeRectTracker) prune() {
	if len(t.rects) <= 1 {
		return
	}
	kept := t.rects[:0]
	for i, a := range t.rects {
		contained := false
		for j, b := range t.rects {
			if i == j || !b.contains(a) {
				continue
			}
			if a.contains(b) && i < j {
				continue // coincident pair: earlier index wins
			}
			contained = true
			break
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	t.rects = kept
}

// mergeAdjacent combines axis-aligned neighbors that share a full edge into
// one rectangle, reducing fragmentation. A single pass suffices: merges are
// rare because split residuals are usually separated by a kerf strip.
func (t *freeRectTracker) mergeAdjacent() {
	for i := 0; i < len(t.rects); i++ {
		for j := i + 1; j < len(t.rects); j++ {
			a, b := t.rects[i], t.rects[j]
			merged, ok := mergeRects(a, b)
			if !ok {
				continue
			}
			t.rects[i] = merged
			t.rects = append(t.rects[:j], t.rects[j+1:]...)
			j--
		}
	}
}

// mergeRects merges two rectangles sharing a complete edge.
func mergeRects(a, b rect) (rect, bool) {
	sameCol := eq(a.x, b.x) && eq(a.w, b.w)
	sameRow := eq(a.y, b.y) && eq(a.h, b.h)
	switch {
	case sameCol && eq(a.y+a.h, b.y):
		return rect{a.x, a.y, a.w, a.h + b.h}, true
	case sameCol && eq(b.y+b.h, a.y):
		return rect{b.x, b.y, b.w, b.h + a.h}, true
	case sameRow && eq(a.x+a.w, b.x):
		return rect{a.x, a.y, a.w + b.w, a.h}, true
	case sameRow && eq(b.x+b.w, a.x):
		return rect{b.x, b.y, b.w + a.w, b.h}, true
	}
	return rect{}, false
}

func eq(a, b float64) bool {
	d := a - b
	return d < geomEps && d > -geomEps
}
