package engine

// Weights are the coefficients of the composite placement score. The set of
// penalty terms is closed and known at design time, so a plain struct is
// used rather than any pluggable strategy. Lower composite scores win.
type Weights struct {
	LeftoverArea float64 // Free area left in the chosen rectangle after placement
	Sliver       float64 // Residuals with a dimension below the minimum offcut
	Aspect       float64 // Skinny residual shapes
	FutureFit    float64 // Residual area no remaining unit can use
	CutLength    float64 // Marginal new cut length the placement introduces
}

// DefaultWeights balances the terms so leftover area dominates, with the
// shape and cut terms acting as tie-shapers. The future-fit coefficient is
// deliberately a tunable estimate, validated only by its effect on waste in
// aggregate.
func DefaultWeights() Weights {
	return Weights{
		LeftoverArea: 1.0,
		Sliver:       0.5,
		Aspect:       0.1,
		FutureFit:    0.25,
		CutLength:    1.0,
	}
}

// footprint is one bucket of the remaining-units histogram: a distinct
// (short side, long side) pair and how many unplaced units share it.
type footprint struct {
	minDim, maxDim float64
	count          int
}

// buildHistogram collects the distinct footprints of units[from:], ordered
// by short side then long side so iteration is deterministic.
func buildHistogram(units []unit, from int) []footprint {
	var hist []footprint
	for _, u := range units[from:] {
		mn := minf(u.part.Length, u.part.Width)
		mx := maxf(u.part.Length, u.part.Width)
		found := false
		for i := range hist {
			if hist[i].minDim == mn && hist[i].maxDim == mx {
				hist[i].count++
				found = true
				break
			}
		}
		if !found {
			hist = append(hist, footprint{minDim: mn, maxDim: mx, count: 1})
		}
	}
	return hist
}

// deadArea returns the residual's area if no remaining unit footprint could
// fit it in either orientation, zero otherwise. Grain legality is ignored
// here: this is an estimate of future usefulness, not a placement test.
func deadArea(r rect, hist []footprint) float64 {
	if len(hist) == 0 {
		return 0
	}
	rMin := minf(r.w, r.h)
	rMax := maxf(r.w, r.h)
	for _, f := range hist {
		if f.minDim <= rMin+geomEps && f.maxDim <= rMax+geomEps {
			return 0
		}
	}
	return r.area()
}

// scorePlacement computes the composite score for placing a pw x ph unit
// into the free rectangle fr. Residual shape terms are derived from the
// same split the commit would perform, so the score reflects the actual
// outcome.
func scorePlacement(fr rect, pw, ph, kerf, minOffcut float64, hist []footprint, cuts *cutAccumulator, w Weights) float64 {
	leftover := fr.area() - pw*ph

	residuals, segs := splitAfterPlacement(fr, pw, ph, kerf)

	var sliver, aspect, future float64
	for _, r := range residuals {
		rMin := minf(r.w, r.h)
		rMax := maxf(r.w, r.h)
		if rMin < minOffcut {
			sliver += r.area()
		}
		if rMin > geomEps {
			aspect += (rMax/rMin - 1) * rMin * rMin
		}
		future += deadArea(r, hist)
	}

	cutDelta := cuts.delta(segs)

	return w.LeftoverArea*leftover +
		w.Sliver*sliver +
		w.Aspect*aspect +
		w.FutureFit*future +
		w.CutLength*cutDelta
}
