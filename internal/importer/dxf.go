package importer

import (
	"fmt"
	"math"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/panelwright/nestcut/internal/model"
)

type point struct {
	x, y float64
}

// segment is a line between two points, used for chaining loose LINE and ARC
// entities into closed loops.
type segment struct {
	start point
	end   point
}

// ImportDXF imports parts from a DXF drawing. Each closed shape (LWPOLYLINE,
// CIRCLE, or a chain of connected LINEs/ARCs) becomes one Part sized to the
// shape's bounding box; the cutter works in rectangles, so the box is the
// material the shape needs.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var loops [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			loop := lwPolylinePoints(e)
			if len(loop) >= 3 {
				loops = append(loops, loop)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			loops = append(loops, circlePoints(e, 64))

		case *entity.Arc:
			pts := arcPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: point{e.Start[0], e.Start[1]},
				end:   point{e.End[0], e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	loops = append(loops, chainSegments(segments, 0.01)...)

	if len(loops) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	partNum := 0
	for _, loop := range loops {
		partNum++
		minP, maxP := boundingBox(loop)
		length := maxP.x - minP.x
		width := maxP.y - minP.y

		if length < 0.01 || width < 0.01 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", length, width))
			continue
		}

		result.Parts = append(result.Parts, model.NewPart(fmt.Sprintf("DXF Part %d", partNum), length, width, 1))
	}

	if len(result.Parts) == 0 {
		result.Errors = append(result.Errors, "No usable shapes found in DXF file")
	}
	return result
}

// lwPolylinePoints extracts vertices from an LWPOLYLINE. Bulge factors are
// expanded so the bounding box covers the arc extent, not just the chord.
func lwPolylinePoints(lw *entity.LwPolyline) []point {
	var pts []point
	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := point{v[0], v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			next := point{
				lw.Vertices[(i+1)%len(lw.Vertices)][0],
				lw.Vertices[(i+1)%len(lw.Vertices)][1],
			}
			arc := bulgeArcPoints(current, next, bulge, 16)
			pts = append(pts, arc[:len(arc)-1]...)
		} else {
			pts = append(pts, current)
		}
	}
	return pts
}

// bulgeArcPoints interpolates the arc between two vertices defined by a DXF
// bulge factor (the tangent of a quarter of the included angle).
func bulgeArcPoints(p1, p2 point, bulge float64, numSegments int) []point {
	mx := (p1.x + p2.x) / 2
	my := (p1.y + p2.y) / 2
	dx := p2.x - p1.x
	dy := p2.y - p1.y
	chordLen := math.Sqrt(dx*dx + dy*dy)
	if chordLen < 1e-9 {
		return []point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1.y-cy, p1.x-cx)
	endAngle := math.Atan2(p2.y-cy, p2.x-cx)
	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else {
		if endAngle < startAngle {
			endAngle += 2 * math.Pi
		}
	}

	pts := make([]point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return pts
}

// circlePoints approximates a circle as a regular polygon.
func circlePoints(c *entity.Circle, numSegments int) []point {
	pts := make([]point, numSegments)
	cx, cy, r := c.Center[0], c.Center[1], c.Radius
	for i := 0; i < numSegments; i++ {
		angle := 2 * math.Pi * float64(i) / float64(numSegments)
		pts[i] = point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// arcPoints converts a DXF ARC entity to a polyline.
func arcPoints(a *entity.Arc, numSegments int) []point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

func pointsToSegments(pts []point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects loose segments into closed loops. tolerance is the
// maximum endpoint distance to consider two segments connected.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var loops [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		closed := len(chain) >= 3 && pointsClose(chain[0], chain[len(chain)-1], tolerance)
		if closed {
			loops = append(loops, chain[:len(chain)-1])
		}
	}

	return loops
}

func pointsClose(a, b point, tolerance float64) bool {
	dx := a.x - b.x
	dy := a.y - b.y
	return math.Sqrt(dx*dx+dy*dy) <= tolerance
}

func boundingBox(pts []point) (point, point) {
	minP := point{math.Inf(1), math.Inf(1)}
	maxP := point{math.Inf(-1), math.Inf(-1)}
	for _, p := range pts {
		minP.x = math.Min(minP.x, p.x)
		minP.y = math.Min(minP.y, p.y)
		maxP.x = math.Max(maxP.x, p.x)
		maxP.y = math.Max(maxP.y, p.y)
	}
	return minP, maxP
}
