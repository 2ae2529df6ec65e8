package engine

import (
	"math"
	"sort"
)

type cutAxis uint8

const (
	axisVertical cutAxis = iota
	axisHorizontal
)

// cutSegment is one saw pass along a guillotine line: a position on the
// cut axis and a start/end extent along the orthogonal axis.
type cutSegment struct {
	axis     cutAxis
	at       float64
	from, to float64
}

func (s cutSegment) length() float64 {
	return s.to - s.from
}

// lineKey identifies a cut line. Coordinates snap to a micrometer grid so
// floating-point noise cannot split one physical line into two.
type lineKey struct {
	axis cutAxis
	at   int64
}

func keyOf(s cutSegment) lineKey {
	return lineKey{axis: s.axis, at: int64(math.Round(s.at * 1000))}
}

type span struct {
	from, to float64
}

// cutAccumulator tracks the unique cut lines on one sheet. Overlapping or
// adjacent collinear segments merge into a single run, so a saw pass shared
// by several placements is only counted once. Totals are maintained
// incrementally, which keeps them independent of map iteration order.
type cutAccumulator struct {
	lines       map[lineKey][]span
	totalLength float64
	count       int
}

func newCutAccumulator() *cutAccumulator {
	return &cutAccumulator{lines: make(map[lineKey][]span)}
}

// add merges a segment into its cut line, updating run count and total
// length for whatever the merge absorbed.
func (c *cutAccumulator) add(seg cutSegment) {
	if seg.length() <= geomEps {
		return
	}
	k := keyOf(seg)
	merged := span{from: seg.from, to: seg.to}

	kept := make([]span, 0, len(c.lines[k])+1)
	for _, s := range c.lines[k] {
		if s.to < merged.from-geomEps || s.from > merged.to+geomEps {
			kept = append(kept, s)
			continue
		}
		// Overlapping or adjacent: absorb into the merged run.
		c.totalLength -= s.to - s.from
		c.count--
		merged.from = minf(merged.from, s.from)
		merged.to = maxf(merged.to, s.to)
	}
	kept = append(kept, merged)
	sort.Slice(kept, func(i, j int) bool { return kept[i].from < kept[j].from })

	c.totalLength += merged.to - merged.from
	c.count++
	c.lines[k] = kept
}

func (c *cutAccumulator) addAll(segs []cutSegment) {
	for _, s := range segs {
		c.add(s)
	}
}

// delta returns the cut length the given segments would add, net of any
// overlap with runs already recorded. Used to score candidates without
// mutating the accumulator.
func (c *cutAccumulator) delta(segs []cutSegment) float64 {
	var added float64
	for _, seg := range segs {
		newLen := seg.length()
		if newLen <= geomEps {
			continue
		}
		for _, s := range c.lines[keyOf(seg)] {
			overlap := minf(seg.to, s.to) - maxf(seg.from, s.from)
			if overlap > 0 {
				newLen -= overlap
			}
		}
		if newLen > 0 {
			added += newLen
		}
	}
	return added
}
