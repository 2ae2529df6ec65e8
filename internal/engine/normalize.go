package engine

import (
	"sort"

	"github.com/panelwright/nestcut/internal/model"
)

// unit is one physical instance of a part, quantity expanded to 1. The
// index preserves expansion order as the final sort tie-break.
type unit struct {
	part       model.Part
	index      int
	canNormal  bool
	canRotated bool
}

// longestEdge returns the unit's longer dimension.
func (u unit) longestEdge() float64 {
	return maxf(u.part.Length, u.part.Width)
}

// orientationsFor resolves which rotations are legal for a grain constraint
// under the global rotation gate.
func orientationsFor(g model.Grain, allowRotation bool) (normal, rotated bool) {
	switch g {
	case model.GrainAlongLength:
		return true, false
	case model.GrainAlongWidth:
		return false, allowRotation
	default:
		return true, allowRotation
	}
}

// expandUnits expands part quantities into individual units and resolves
// each unit's legal orientation set. Parts with no legal orientation at all
// (grain along width while rotation is disabled) come back as unplaced
// rather than being silently dropped.
//
// Units are ordered area descending, then longest edge descending, then
// expansion index ascending. The explicit final key makes the order fully
// deterministic regardless of sort stability.
func expandUnits(parts []model.Part, allowRotation bool) ([]unit, []model.UnplacedPart) {
	var units []unit
	var unplaced []model.UnplacedPart

	idx := 0
	for _, p := range parts {
		canNormal, canRotated := orientationsFor(p.Grain, allowRotation)
		for i := 0; i < p.Quantity; i++ {
			cp := p
			cp.Quantity = 1
			if !canNormal && !canRotated {
				unplaced = append(unplaced, model.UnplacedPart{Part: cp, Reason: model.ReasonGrainLocked})
				idx++
				continue
			}
			units = append(units, unit{
				part:       cp,
				index:      idx,
				canNormal:  canNormal,
				canRotated: canRotated,
			})
			idx++
		}
	}

	sort.Slice(units, func(i, j int) bool {
		ai, aj := units[i].part.Area(), units[j].part.Area()
		if ai != aj {
			return ai > aj
		}
		ei, ej := units[i].longestEdge(), units[j].longestEdge()
		if ei != ej {
			return ei > ej
		}
		return units[i].index < units[j].index
	})

	return units, unplaced
}

// placedDims returns the on-sheet width/height for a unit in the given
// orientation: length runs horizontal when unrotated.
func placedDims(p model.Part, rotated bool) (w, h float64) {
	if rotated {
		return p.Width, p.Length
	}
	return p.Length, p.Width
}
