package core

import "github.com/chewxy/math32"

// Estimate fuses an optional CV cell and four distance-sensor readings into
// a continuous position estimate. usedFallback reports whether no region
// scored and the estimate came from the CV-anchor fallback; ok is false
// only when neither a region nor a CV cell is available (NoLocalization).
func Estimate(g *Grid, regions []Region, robot *RobotDefinition, cvCell *Cell, dists [4]DistReading, doCVAdjust bool) (pos vec2, usedFallback bool, ok bool) {
	var cv vec2
	haveCV := false
	if cvCell != nil && cvCell.inBounds() && !g.WallAt(*cvCell) {
		cv = vec2{X: float32(cvCell.Col), Y: float32(cvCell.Row)}
		haveCV = true
	}

	var bestP vec2
	var bestScore float32
	found := false

	for _, r := range regions {
		if haveCV && !regionNearPoint(r, cv) {
			continue
		}
		score, p, okScore := ScoreRegion(g, r, dists, robot.RobotRadius, robot.TOFMax)
		if !okScore {
			continue
		}
		if haveCV {
			score -= math32.Abs(p.X-cv.X) + math32.Abs(p.Y-cv.Y)
		}
		if !found || score > bestScore {
			bestScore = score
			bestP = p
			found = true
		}
	}

	if found {
		p := bestP
		if doCVAdjust && haveCV {
			p = applyCVAdjust(g, p, cv, dists, robot.TOFMax)
		}
		return p, false, true
	}

	if !haveCV {
		return vec2{}, false, false
	}

	fallback := cv
	if idx, val, minOK := smallestOverallReading(dists); minOK && val < 1 {
		facing := axisVectors[idx]
		facingF := vec2{X: float32(facing[0]), Y: float32(facing[1])}
		rayDist := float32(distancesFrom(g, cvCell.Col, cvCell.Row)[idx])
		nudge := rayDist - robot.RobotRadius - val
		fallback = fallback.Add(facingF.Scale(nudge))
	}
	return fallback, true, true
}

// CandidateRegions returns every region that scores a perfect match (zero
// penalty) against dists, with no CV pruning or bias applied — the set a
// debug host draws to show every region still consistent with the sensor
// readings, not just Estimate's single best pick.
func CandidateRegions(g *Grid, regions []Region, robot *RobotDefinition, dists [4]DistReading) []Region {
	var out []Region
	for _, r := range regions {
		if score, _, ok := ScoreRegion(g, r, dists, robot.RobotRadius, robot.TOFMax); ok && score == 0 {
			out = append(out, r)
		}
	}
	return out
}

// regionNearPoint reports whether p is within 1 gu of region r's bounding
// rectangle, used to prune regions far from a known CV cell before scoring.
func regionNearPoint(r Region, p vec2) bool {
	dx := float32(0)
	if p.X < float32(r.LowX) {
		dx = float32(r.LowX) - p.X
	} else if p.X > float32(r.HighX) {
		dx = p.X - float32(r.HighX)
	}
	dy := float32(0)
	if p.Y < float32(r.LowY) {
		dy = float32(r.LowY) - p.Y
	} else if p.Y > float32(r.HighY) {
		dy = p.Y - float32(r.HighY)
	}
	return dx <= 1 && dy <= 1
}

// applyCVAdjust snaps the estimate toward the CV cell per axis: if the
// closer of the two opposing sensors reads past 5 gu, trust the CV cell over
// the computed estimate on that axis — unless doing so would place the
// robot on a wall cell, in which case snap fully to the CV cell.
func applyCVAdjust(g *Grid, p, cv vec2, dists [4]DistReading, tofMax float32) vec2 {
	out := p
	if _, xVal, xOK := smallestAxisReading(dists, 0, 2, tofMax); xOK && xVal > 5 {
		candidate := vec2{X: cv.X, Y: out.Y}
		if wallAtPoint(g, candidate) {
			out = cv
		} else {
			out.X = cv.X
		}
	}
	if _, yVal, yOK := smallestAxisReading(dists, 1, 3, tofMax); yOK && yVal > 5 {
		candidate := vec2{X: out.X, Y: cv.Y}
		if wallAtPoint(g, candidate) {
			out = cv
		} else {
			out.Y = cv.Y
		}
	}
	return out
}

func wallAtPoint(g *Grid, p vec2) bool {
	c := Cell{Row: int8(floorf32(p.Y + 0.5)), Col: int8(floorf32(p.X + 0.5))}
	return g.WallAt(c)
}

// smallestOverallReading returns the index and value of the smallest usable,
// non-saturated reading among all four sensors.
func smallestOverallReading(dists [4]DistReading) (idx int, val float32, ok bool) {
	found := false
	var bestIdx int
	var bestVal float32
	for i, d := range dists {
		if d.Fault || d.NoReturn {
			continue
		}
		if !found || d.Distance < bestVal {
			bestIdx, bestVal, found = i, d.Distance, true
		}
	}
	return bestIdx, bestVal, found
}
