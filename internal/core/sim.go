package core

// SimulateDistReadings computes the four theoretical time-of-flight readings
// a robot sitting exactly at cell c would see, clamped to tofMax and reduced
// by robotRadius the same way a real sensor would report distance from the
// robot's surface rather than its center. noise[i], if non-zero, is added to
// reading i before clamping to zero.
//
// Exported for host scenario replay (cmd/headlessreport, cmd/visualize) to
// synthesize sensor frames without duplicating distancesFrom's wall walk.
func SimulateDistReadings(g *Grid, c Cell, robotRadius, tofMax float32, noise [4]float32) [4]DistReading {
	raw := distancesFrom(g, c.Col, c.Row)
	var out [4]DistReading
	for i, r := range raw {
		v := float32(r) - robotRadius + noise[i]
		if v < 0 {
			v = 0
		}
		if v >= tofMax {
			out[i] = DistReading{NoReturn: true, Distance: tofMax}
			continue
		}
		out[i] = DistReading{Distance: v}
	}
	return out
}
