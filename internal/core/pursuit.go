package core

import "github.com/chewxy/math32"

// PurePursuit converts an estimated position, a discrete target path, and a
// CV anchor cell into a field-frame target velocity vector (gu/s).
func PurePursuit(loc vec2, path []Cell, cvAnchor *Cell, lookahead, speed, snappingDist, snappingMultiplier float32) vec2 {
	if len(path) == 0 {
		r := vec2{X: math32.Round(loc.X), Y: math32.Round(loc.Y)}
		diff := r.Sub(loc)
		if diff.Len() > snappingDist {
			return diff.Scale(snappingMultiplier)
		}
		return vec2{}
	}

	if cvAnchor == nil {
		return vec2{}
	}

	points := make([]vec2, 0, len(path)+1)
	points = append(points, vec2{X: float32(cvAnchor.Col), Y: float32(cvAnchor.Row)})
	for _, c := range path {
		points = append(points, vec2{X: float32(c.Col), Y: float32(c.Row)})
	}

	adjSpeed := speed + straightRunAdjustment(path)

	closestIdx := closestSegmentIndex(points, loc)
	closestPoint := closestPointOnSegment(points[closestIdx], points[closestIdx+1], loc)

	pursuit, found := walkForIntersection(points, closestIdx, closestPoint, loc, lookahead)
	if !found {
		// The whole remaining path sits inside the lookahead circle: aim at
		// its last point instead of holding still, so the robot keeps
		// closing on the goal rather than stalling just short of it.
		pursuit = points[len(points)-1]
	}

	diff := pursuit.Sub(loc)
	if diff.Len() == 0 {
		return vec2{}
	}
	return diff.Normalized().Scale(adjSpeed)
}

// straightRunAdjustment counts the leading path segments that continue in
// the same cardinal direction and converts the count into an additive speed
// adjustment: slower through turns, faster on a long straight run.
func straightRunAdjustment(path []Cell) float32 {
	k := 0
	if len(path) >= 2 {
		dir0, ok0 := path[0].DirectionTo(path[1])
		if ok0 {
			k = 1
			for i := 1; i+1 < len(path); i++ {
				diri, oki := path[i].DirectionTo(path[i+1])
				if !oki || diri != dir0 {
					break
				}
				k++
			}
		}
	}
	switch {
	case k <= 1:
		return -0.4
	case k == 2:
		return -0.2
	case k == 3, k == 4:
		return 0
	default:
		return 0.2
	}
}

// closestSegmentIndex returns i such that (points[i], points[i+1]) is the
// segment whose nearer endpoint is closest to loc.
func closestSegmentIndex(points []vec2, loc vec2) int {
	bestIdx := 0
	bestDist := float32(-1)
	for i := 0; i < len(points)-1; i++ {
		d0 := points[i].Sub(loc).Len()
		d1 := points[i+1].Sub(loc).Len()
		d := math32.Min(d0, d1)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			bestIdx = i
		}
	}
	return bestIdx
}

// closestPointOnSegment orthogonally projects loc onto segment [p0,p1],
// clamped to the segment, special-casing axis-aligned segments exactly
// (avoiding a division whose numerator and denominator are both near-zero
// along the constant axis).
func closestPointOnSegment(p0, p1, loc vec2) vec2 {
	if p0 == p1 {
		return p0
	}
	if p0.X == p1.X {
		return vec2{X: p0.X, Y: clampF(loc.Y, minF(p0.Y, p1.Y), maxF(p0.Y, p1.Y))}
	}
	if p0.Y == p1.Y {
		return vec2{X: clampF(loc.X, minF(p0.X, p1.X), maxF(p0.X, p1.X)), Y: p0.Y}
	}
	d := p1.Sub(p0)
	t := loc.Sub(p0).Dot(d) / d.Dot(d)
	t = clampF(t, 0, 1)
	return p0.Add(d.Scale(t))
}

// walkForIntersection walks forward from the closest segment, testing each
// remaining segment in turn against the lookahead circle centred at loc and
// keeping at most one intersection per segment (the one further along the
// segment, i.e. where the path exits the circle). It stops as soon as two
// such intersections have been collected and returns the second — the point
// further along the path, so a corner inside the lookahead radius is aimed
// past rather than cut. If the path runs out with only one collected, that
// one is returned.
func walkForIntersection(points []vec2, closestIdx int, closestPoint, loc vec2, lookahead float32) (vec2, bool) {
	var collected []vec2
	for i := closestIdx; i < len(points)-1; i++ {
		start := points[i]
		if i == closestIdx {
			start = closestPoint
		}
		end := points[i+1]
		pts := segmentCircleIntersections(start, end, loc, lookahead)
		if len(pts) == 0 {
			continue
		}
		collected = append(collected, pts[len(pts)-1])
		if len(collected) == 2 {
			return collected[1], true
		}
	}
	if len(collected) == 1 {
		return collected[0], true
	}
	return vec2{}, false
}

// segmentCircleIntersections returns the 0, 1, or 2 points where segment
// [p0,p1] crosses the circle of the given radius centred at center, ordered
// by increasing parameter t along the segment. Degenerate (zero-length)
// segments yield no intersections.
//
// Vertical segments (p0.X == p1.X) use the x=const specialization so the
// quadratic is solved for y directly rather than risking division by a
// near-zero run.
func segmentCircleIntersections(p0, p1, center vec2, radius float32) []vec2 {
	d := p1.Sub(p0)
	if d.X == 0 && d.Y == 0 {
		return nil
	}

	if d.X == 0 {
		dx := p0.X - center.X
		q := radius*radius - dx*dx
		if q < 0 {
			return nil
		}
		sq := math32.Sqrt(q)
		type cand struct {
			t float32
			p vec2
		}
		var cands []cand
		for _, y := range [2]float32{center.Y - sq, center.Y + sq} {
			t := (y - p0.Y) / d.Y
			if t >= 0 && t <= 1 {
				cands = append(cands, cand{t, vec2{X: p0.X, Y: y}})
			}
		}
		if len(cands) == 2 && cands[0].t > cands[1].t {
			cands[0], cands[1] = cands[1], cands[0]
		}
		out := make([]vec2, len(cands))
		for i, c := range cands {
			out[i] = c.p
		}
		return out
	}

	f := p0.Sub(center)
	a := d.Dot(d)
	b := 2 * f.Dot(d)
	c := f.Dot(f) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math32.Sqrt(disc)
	t1 := (-b - sq) / (2 * a)
	t2 := (-b + sq) / (2 * a)

	var out []vec2
	for _, t := range [2]float32{t1, t2} {
		if t >= 0 && t <= 1 {
			out = append(out, p0.Add(d.Scale(t)))
		}
	}
	return out
}

func clampF(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func minF(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
