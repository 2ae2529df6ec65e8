package engine

// Geometric tolerance in mm. Dimensions closer than this are considered equal.
const geomEps = 0.001

// rect is an axis-aligned rectangle with a top-left origin.
type rect struct {
	x, y, w, h float64
}

func (r rect) area() float64 {
	return r.w * r.h
}

// contains reports whether r fully contains o.
func (r rect) contains(o rect) bool {
	return r.x <= o.x+geomEps && r.y <= o.y+geomEps &&
		r.x+r.w >= o.x+o.w-geomEps &&
		r.y+r.h >= o.y+o.h-geomEps
}

// overlaps reports whether two rectangles overlap (not just touch).
func (r rect) overlaps(o rect) bool {
	return r.x < o.x+o.w-geomEps && r.x+r.w > o.x+geomEps &&
		r.y < o.y+o.h-geomEps && r.y+r.h > o.y+geomEps
}

// intersectArea returns the area shared by two rectangles.
func intersectArea(a, b rect) float64 {
	w := minf(a.x+a.w, b.x+b.w) - maxf(a.x, b.x)
	h := minf(a.y+a.h, b.y+b.h) - maxf(a.y, b.y)
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// splitAfterPlacement carves a pw x ph placement out of the top-left corner
// of a free rectangle and returns the residual free rectangles plus the
// guillotine cut segments the split introduces.
//
// The space is divided by a single vertical or a single horizontal line
// through the placement's right/bottom edge; the axis is chosen so the
// larger remaining dimension is maximized ("maximize usable leftover").
// One kerf width is consumed along each new cut, so residuals already
// account for the saw pass that frees them. Degenerate residuals are never
// emitted.
func splitAfterPlacement(free rect, pw, ph, kerf float64) ([]rect, []cutSegment) {
	rightW := free.w - pw - kerf
	bottomH := free.h - ph - kerf

	// A cut happens whenever material extends past the placement edge,
	// even if the kerf swallows the whole residual.
	cutRight := pw+geomEps < free.w
	cutBottom := ph+geomEps < free.h

	vRight := rect{free.x + pw + kerf, free.y, rightW, free.h}
	vBottom := rect{free.x, free.y + ph + kerf, pw, bottomH}
	hRight := rect{free.x + pw + kerf, free.y, rightW, ph}
	hBottom := rect{free.x, free.y + ph + kerf, free.w, bottomH}

	vertical := largestDim(vRight, vBottom) >= largestDim(hRight, hBottom)

	// Cut segments span the placement's own edges. Collinear segments from
	// neighboring placements merge in the accumulator, so the recorded
	// total is the true saw travel, bounded by the sum of placement
	// perimeters rather than full sheet-spanning lines.
	var cuts []cutSegment
	if cutRight {
		cuts = append(cuts, cutSegment{axis: axisVertical, at: free.x + pw, from: free.y, to: free.y + ph})
	}
	if cutBottom {
		cuts = append(cuts, cutSegment{axis: axisHorizontal, at: free.y + ph, from: free.x, to: free.x + pw})
	}

	var residuals []rect
	if vertical {
		residuals = appendUsable(residuals, vRight, vBottom)
	} else {
		residuals = appendUsable(residuals, hRight, hBottom)
	}
	return residuals, cuts
}

// largestDim returns the largest single dimension across the usable
// candidate residuals.
func largestDim(rects ...rect) float64 {
	best := 0.0
	for _, r := range rects {
		if r.w <= geomEps || r.h <= geomEps {
			continue
		}
		if d := maxf(r.w, r.h); d > best {
			best = d
		}
	}
	return best
}

func appendUsable(dst []rect, rects ...rect) []rect {
	for _, r := range rects {
		if r.w > geomEps && r.h > geomEps {
			dst = append(dst, r)
		}
	}
	return dst
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
