package core

import "github.com/chewxy/math32"

// regionTolerance is how far outside a region's bounding box a predicted
// point may fall before the region is rejected outright rather than merely
// penalized.
const regionTolerance float32 = 1.0

// DistReading is one time-of-flight sensor's result for a tick. Fault means
// the sensor itself errored (excluded from scoring); otherwise NoReturn
// means the beam saturated past TOF_MAX with nothing in range (treated as
// reading exactly TOF_MAX), and Distance is the measured value in gu.
type DistReading struct {
	Fault    bool
	NoReturn bool
	Distance float32
}

func (d DistReading) usable() bool { return !d.Fault }

func (d DistReading) clamped(max float32) float32 {
	if d.NoReturn || d.Distance > max {
		return max
	}
	return d.Distance
}

// ScoreRegion scores a single region against one tick's sensor readings:
// picks the shorter usable reading per axis, predicts where the robot must
// be for the region to be consistent with the readings, penalizes
// out-of-region and over-long readings, and rejects candidates that would
// overlap a wall.
func ScoreRegion(g *Grid, region Region, dists [4]DistReading, robotRadius, tofMax float32) (score float32, p vec2, ok bool) {
	xIdx, xVal, xOK := smallestAxisReading(dists, 0, 2, tofMax)
	yIdx, yVal, yOK := smallestAxisReading(dists, 1, 3, tofMax)
	if !xOK || !yOK {
		return 0, vec2{}, false
	}

	var est vec2
	for _, sel := range [2]struct {
		idx int
		val float32
	}{{xIdx, xVal}, {yIdx, yVal}} {
		facing := axisVectors[sel.idx]
		facingF := vec2{X: float32(facing[0]), Y: float32(facing[1])}
		predictedDist := min32(float32(region.DistLowXYToWall[sel.idx]), tofMax)
		predicted := facingF.Scale(predictedDist)
		actual := facingF.Scale(sel.val + robotRadius)
		est = est.Add(predicted.Sub(actual))
	}

	point := est.Add(vec2{X: float32(region.LowX), Y: float32(region.LowY)})

	var penalty float32
	lowX, lowY := float32(region.LowX), float32(region.LowY)
	highX, highY := float32(region.HighX), float32(region.HighY)
	if point.X < lowX {
		penalty += lowX - point.X
	}
	if point.X > highX {
		penalty += point.X - highX
	}
	if point.Y < lowY {
		penalty += lowY - point.Y
	}
	if point.Y > highY {
		penalty += point.Y - highY
	}

	if point.X < lowX-regionTolerance || point.X > highX+regionTolerance ||
		point.Y < lowY-regionTolerance || point.Y > highY+regionTolerance {
		return 0, vec2{}, false
	}

	for i, d := range dists {
		if !d.usable() {
			continue
		}
		value := d.clamped(tofMax)
		var maxPossible float32
		switch i {
		case 0, 1:
			maxPossible = float32(region.DistLowXYToWall[i])
		case 2:
			maxPossible = float32(region.DistLowXYToWall[2]) + (highX - lowX)
		case 3:
			maxPossible = float32(region.DistLowXYToWall[3]) + (highY - lowY)
		}
		if value > maxPossible+0.5 {
			penalty += value - maxPossible
		}
	}

	roundedX := int8(floorf32(point.X))
	roundedY := int8(floorf32(point.Y))
	for _, cell := range [4][2]int8{
		{roundedX, roundedY},
		{roundedX + 1, roundedY},
		{roundedX, roundedY + 1},
		{roundedX + 1, roundedY + 1},
	} {
		if !g.WallAt(Cell{Row: cell[1], Col: cell[0]}) {
			continue
		}
		dx := float32(cell[0]) - point.X
		dy := float32(cell[1]) - point.Y
		if dx*dx+dy*dy < 0.9*robotRadius*robotRadius {
			return 0, vec2{}, false
		}
	}

	return -penalty, point, true
}

// smallestAxisReading picks whichever of the two given sensor indices has
// the smaller usable (non-faulted) reading, clamped to tofMax.
func smallestAxisReading(dists [4]DistReading, i, j int, tofMax float32) (idx int, val float32, ok bool) {
	var candidates []struct {
		idx int
		val float32
	}
	for _, k := range [2]int{i, j} {
		if dists[k].usable() {
			candidates = append(candidates, struct {
				idx int
				val float32
			}{k, dists[k].clamped(tofMax)})
		}
	}
	if len(candidates) == 0 {
		return 0, 0, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.val < best.val {
			best = c
		}
	}
	return best.idx, best.val, true
}

func min32(a, b float32) float32 {
	return math32.Min(a, b)
}
