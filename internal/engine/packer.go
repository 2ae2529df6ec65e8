// Package engine implements the guillotine sheet-nesting heuristic: a
// deterministic best-fit packer over per-sheet free-rectangle lists, with
// kerf, grain, and cut-length accounting.
//
// The engine is pure: one call to Pack allocates all its own state and
// returns a self-contained result, so concurrent invocations need no
// locking.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/panelwright/nestcut/internal/model"
)

// ErrInvalidInput marks requests rejected before any packing begins:
// non-positive dimensions or quantities, or a kerf no sheet can absorb.
var ErrInvalidInput = errors.New("invalid input")

// Packer runs the 2D nesting algorithm for one set of options.
type Packer struct {
	opts    model.Options
	weights Weights
}

func New(opts model.Options) *Packer {
	return &Packer{opts: opts, weights: DefaultWeights()}
}

// NewWithWeights overrides the scoring coefficients, mainly for tuning and
// property tests.
func NewWithWeights(opts model.Options, w Weights) *Packer {
	return &Packer{opts: opts, weights: w}
}

// Pack is a convenience wrapper for one-shot calls.
func Pack(parts []model.Part, stock []model.StockSheet, opts model.Options) (model.LayoutResult, error) {
	return New(opts).Pack(parts, stock)
}

// Pack computes a placement of all part instances onto stock sheets.
// Invalid input fails the whole request; parts that cannot be placed are
// reported in the result's Unplaced list while packing continues for the
// rest. Identical inputs always produce identical results.
func (p *Packer) Pack(parts []model.Part, stock []model.StockSheet) (model.LayoutResult, error) {
	if err := validateInput(parts, stock, p.opts); err != nil {
		return model.LayoutResult{}, err
	}

	units, unplaced := expandUnits(parts, p.opts.AllowRotation)

	run := &packRun{
		opts:      p.opts,
		weights:   p.weights,
		types:     stock,
		remaining: make([]int, len(stock)),
		unplaced:  unplaced,
	}
	for i, s := range stock {
		if s.Quantity > 0 {
			run.remaining[i] = s.Quantity
		} else {
			run.remaining[i] = -1 // unbounded supply
		}
	}

	for i, u := range units {
		hist := buildHistogram(units, i+1)
		run.placeUnit(u, hist)
	}

	return run.finish(), nil
}

func validateInput(parts []model.Part, stock []model.StockSheet, opts model.Options) error {
	for _, p := range parts {
		if p.Length <= 0 || p.Width <= 0 {
			return fmt.Errorf("%w: part %q has non-positive dimensions (%.1f x %.1f)", ErrInvalidInput, p.Label, p.Length, p.Width)
		}
		if p.Quantity <= 0 {
			return fmt.Errorf("%w: part %q has non-positive quantity %d", ErrInvalidInput, p.Label, p.Quantity)
		}
	}
	if opts.Kerf < 0 {
		return fmt.Errorf("%w: negative kerf %.2f", ErrInvalidInput, opts.Kerf)
	}
	for _, s := range stock {
		if s.Length <= 0 || s.Width <= 0 {
			return fmt.Errorf("%w: sheet %q has non-positive dimensions (%.1f x %.1f)", ErrInvalidInput, s.Label, s.Length, s.Width)
		}
		if s.Quantity < 0 {
			return fmt.Errorf("%w: sheet %q has negative quantity %d", ErrInvalidInput, s.Label, s.Quantity)
		}
		if s.Kerf < 0 {
			return fmt.Errorf("%w: sheet %q has negative kerf %.2f", ErrInvalidInput, s.Label, s.Kerf)
		}
		if kerf := opts.KerfFor(s); kerf >= minf(s.Length, s.Width) {
			return fmt.Errorf("%w: kerf %.2f exceeds sheet %q smallest dimension", ErrInvalidInput, kerf, s.Label)
		}
	}
	return nil
}

// openSheet is one physical sheet instance in use during a run.
type openSheet struct {
	typeIdx    int
	stock      model.StockSheet
	kerf       float64
	tracker    *freeRectTracker
	cuts       *cutAccumulator
	placements []model.Placement
	parts      []model.Part // parallel to placements, for banding
}

// packRun holds the state of a single packing invocation.
type packRun struct {
	opts      model.Options
	weights   Weights
	types     []model.StockSheet
	remaining []int // per type; -1 = unbounded
	sheets    []*openSheet

	unplaced  []model.UnplacedPart
	exhausted []string
	noted     map[int]bool
}

type candidate struct {
	sheet   int
	rectIdx int
	rotated bool
	score   float64
	found   bool
}

// placeUnit runs steps 1-4 of the packing loop for one unit: scan open
// sheets, commit the best fit, or open a new sheet and retry, or declare
// the unit unplaceable.
func (r *packRun) placeUnit(u unit, hist []footprint) {
	best := r.findBest(u, hist, r.sheets)
	if !best.found {
		sheet, reason := r.openSheet(u)
		if sheet == nil {
			r.unplaced = append(r.unplaced, model.UnplacedPart{Part: u.part, Reason: reason})
			return
		}
		best = r.findBest(u, hist, r.sheets[len(r.sheets)-1:])
		if !best.found {
			// Fit was checked against the bare sheet, so this is unreachable
			// unless the type table changed mid-run; report rather than panic.
			r.unplaced = append(r.unplaced, model.UnplacedPart{Part: u.part, Reason: model.ReasonNoFit})
			return
		}
		best.sheet = len(r.sheets) - 1
	}
	r.commit(u, best)
}

// findBest scans every free rectangle and legal orientation across the
// given sheets and returns the lowest-scoring fit. Scanning in sheet,
// rectangle, then orientation order with a strict comparison yields the
// documented tie-breaks: earliest sheet, lowest rectangle index, 0 degrees
// before 90.
func (r *packRun) findBest(u unit, hist []footprint, sheets []*openSheet) candidate {
	best := candidate{score: math.Inf(1)}
	for si, sh := range sheets {
		for ri, fr := range sh.tracker.rects {
			for _, rotated := range []bool{false, true} {
				if rotated && !u.canRotated {
					continue
				}
				if !rotated && !u.canNormal {
					continue
				}
				pw, ph := placedDims(u.part, rotated)
				if pw > fr.w+geomEps || ph > fr.h+geomEps {
					continue
				}
				score := scorePlacement(fr, pw, ph, sh.kerf, r.opts.MinOffcut, hist, sh.cuts, r.weights)
				if score < best.score {
					best = candidate{sheet: si, rectIdx: ri, rotated: rotated, score: score, found: true}
				}
			}
		}
	}
	return best
}

// commit records the placement and updates the sheet's free rectangles and
// cut lines.
func (r *packRun) commit(u unit, c candidate) {
	sh := r.sheets[c.sheet]
	fr := sh.tracker.rects[c.rectIdx]
	pw, ph := placedDims(u.part, c.rotated)

	sh.placements = append(sh.placements, model.Placement{
		PartID:       u.part.ID,
		Label:        u.part.Label,
		X:            fr.x,
		Y:            fr.y,
		PlacedWidth:  pw,
		PlacedHeight: ph,
		Rotated:      c.rotated,
	})
	sh.parts = append(sh.parts, u.part)

	cuts := sh.tracker.place(c.rectIdx, pw, ph, sh.kerf)
	sh.cuts.addAll(cuts)
}

// openSheet opens a new sheet of the smallest available type that can
// contain the unit's smallest legal orientation. Returns nil and a reason
// when no sheet can be opened.
func (r *packRun) openSheet(u unit) (*openSheet, string) {
	if r.opts.SingleSheetOnly && len(r.sheets) >= 1 {
		return nil, model.ReasonSingleSheet
	}

	bestType := -1
	anyFits := false
	for ti, t := range r.types {
		if !fitsSheetType(u, t) {
			continue
		}
		anyFits = true
		if r.remaining[ti] == 0 {
			r.noteExhausted(ti)
			continue
		}
		if bestType < 0 || t.Area() < r.types[bestType].Area() {
			bestType = ti
		}
	}
	if bestType < 0 {
		if anyFits {
			return nil, model.ReasonSheetsExhausted
		}
		return nil, model.ReasonNoFit
	}

	if r.remaining[bestType] > 0 {
		r.remaining[bestType]--
	}
	t := r.types[bestType]
	sh := &openSheet{
		typeIdx: bestType,
		stock:   t,
		kerf:    r.opts.KerfFor(t),
		tracker: newFreeRectTracker(t.Length, t.Width),
		cuts:    newCutAccumulator(),
	}
	r.sheets = append(r.sheets, sh)
	return sh, ""
}

// fitsSheetType reports whether any legal orientation of the unit fits the
// bare sheet dimensions.
func fitsSheetType(u unit, t model.StockSheet) bool {
	if u.canNormal {
		pw, ph := placedDims(u.part, false)
		if pw <= t.Length+geomEps && ph <= t.Width+geomEps {
			return true
		}
	}
	if u.canRotated {
		pw, ph := placedDims(u.part, true)
		if pw <= t.Length+geomEps && ph <= t.Width+geomEps {
			return true
		}
	}
	return false
}

func (r *packRun) noteExhausted(typeIdx int) {
	if r.noted == nil {
		r.noted = make(map[int]bool)
	}
	if r.noted[typeIdx] {
		return
	}
	r.noted[typeIdx] = true
	r.exhausted = append(r.exhausted, r.types[typeIdx].Label)
}

// finish assembles the layout result and aggregate statistics.
func (r *packRun) finish() model.LayoutResult {
	result := model.LayoutResult{
		Unplaced:       r.unplaced,
		SheetExhausted: r.exhausted,
	}

	stats := model.Stats{
		BandingByClass: make(map[string]float64),
		SheetsByType:   make(map[string]float64),
	}

	for _, sh := range r.sheets {
		layout := model.SheetLayout{
			Stock:      sh.stock,
			Placements: sh.placements,
		}
		for _, fr := range sh.tracker.rects {
			layout.FreeRects = append(layout.FreeRects, model.FreeRect{
				X: fr.x, Y: fr.y, Width: fr.w, Height: fr.h,
			})
		}
		result.Sheets = append(result.Sheets, layout)

		used := layout.UsedArea()
		stats.UsedArea += used
		stats.WasteArea += layout.WasteArea()
		stats.CutCount += sh.cuts.count
		stats.TotalCutLength += sh.cuts.totalLength
		stats.SheetsByType[sh.stock.Label] += used / sh.stock.Area()

		for i, part := range sh.parts {
			class, length := model.BandingForPlacement(part, sh.placements[i].Rotated)
			if length > 0 {
				stats.BandingByClass[class] += length
			}
			if part.Laminate {
				stats.LaminatedArea += part.Area()
			}
		}
	}

	stats.BackerSheets = model.BackerSheetsNeeded(stats.LaminatedArea, r.opts.LaminateBacker)
	result.Stats = stats
	return result
}
