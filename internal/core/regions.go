package core

// Region is a maximal rectangle of open cells within which the theoretical
// distance-sensor readings vary continuously in every cardinal direction.
//
// LowXY/HighXY use the same (x=col, y=row) convention as the rest of the
// localization pipeline; DistLowXYToWall is indexed by direction exactly as
// axisVectors: [0]=+x (col+1), [1]=+y (row+1), [2]=-x (col-1), [3]=-y (row-1).
type Region struct {
	LowX, LowY   int8
	HighX, HighY int8

	DistLowXYToWall [4]int8
}

func (r Region) contains(x, y int8) bool {
	return x >= r.LowX && x <= r.HighX && y >= r.LowY && y <= r.HighY
}

// axisVectors are the four cardinal unit vectors in (x,y) order: +x, +y, -x,
// -y (col+1, row+1, col-1, row-1).
var axisVectors = [4][2]int8{
	{1, 0},
	{0, 1},
	{-1, 0},
	{0, -1},
}

type pointKind int

const (
	pointWall pointKind = iota
	pointVerticalBoundary
	pointHorizontalBoundary
	pointNone
)

type pointType struct {
	kind    pointKind
	primary bool // meaningless when kind is pointWall or pointNone
}

var noPoint = pointType{kind: pointNone}

func isSpecial(pt pointType) bool {
	switch pt.kind {
	case pointWall:
		return true
	case pointNone:
		return false
	default:
		return !pt.primary
	}
}

// gridAtXY reports whether (x,y) is a wall cell, using the region
// enumeration's out-of-bounds convention (out of bounds reads as open);
// the grid's own border-is-wall invariant means this is never actually
// exercised by a real maze.
func gridAtXY(g *Grid, x, y int8) bool {
	if x < 0 || y < 0 || x >= GridSize || y >= GridSize {
		return false
	}
	return g.WallAt(Cell{Row: y, Col: x})
}

func getBoundary(g *Grid, x, y int8) pointType {
	if gridAtXY(g, x, y) {
		return pointType{kind: pointWall}
	}
	if (gridAtXY(g, x, y-1) && !gridAtXY(g, x-1, y-1)) || (gridAtXY(g, x, y+1) && !gridAtXY(g, x-1, y+1)) {
		return pointType{kind: pointVerticalBoundary, primary: true}
	}
	if (gridAtXY(g, x, y-1) && !gridAtXY(g, x+1, y-1)) || (gridAtXY(g, x, y+1) && !gridAtXY(g, x+1, y+1)) {
		return pointType{kind: pointHorizontalBoundary, primary: false}
	}
	if (gridAtXY(g, x-1, y) && !gridAtXY(g, x-1, y-1)) || (gridAtXY(g, x+1, y) && !gridAtXY(g, x+1, y-1)) {
		return pointType{kind: pointHorizontalBoundary, primary: true}
	}
	if (gridAtXY(g, x-1, y) && !gridAtXY(g, x-1, y+1)) || (gridAtXY(g, x+1, y) && !gridAtXY(g, x+1, y+1)) {
		return pointType{kind: pointHorizontalBoundary, primary: false}
	}
	return noPoint
}

func getEmptyFor(g *Grid, x, y int8, dx, dy int8) int8 {
	var count int8
	for !gridAtXY(g, x, y) {
		x += dx
		y += dy
		count++
	}
	return count
}

func distancesFrom(g *Grid, x, y int8) [4]int8 {
	var d [4]int8
	for i, v := range axisVectors {
		d[i] = getEmptyFor(g, x, y, v[0], v[1])
	}
	return d
}

// buildHorizontalRegion builds the 2-tall region whose vertical boundary
// starts at (x,y): height 2 (y-1..y+1), extended in +x until the next
// boundary or wall.
func buildHorizontalRegion(g *Grid, x, y int8) Region {
	endX, endY := x+1, y
	for getBoundary(g, endX, endY).kind == pointNone {
		endX++
	}
	return Region{
		LowX: x, LowY: y - 1,
		HighX: endX, HighY: endY + 1,
		DistLowXYToWall: distancesFrom(g, x, y-1),
	}
}

// buildVerticalRegion builds the 2-wide region whose horizontal boundary
// starts at (x,y): width 2 (x-1..x+1), extended in +y until the next
// boundary or wall.
func buildVerticalRegion(g *Grid, x, y int8) Region {
	endX, endY := x, y+1
	for getBoundary(g, endX, endY).kind == pointNone {
		endY++
	}
	return Region{
		LowX: x - 1, LowY: y,
		HighX: endX + 1, HighY: endY,
		DistLowXYToWall: distancesFrom(g, x-1, y),
	}
}

// regionForUniquePoint classifies one grid point and returns at most one
// region: the region this point would canonically emit if it turns out to be
// a primary boundary point, or ok=false if it's a wall, a secondary boundary
// point, or an interior point with no adjacent boundary to anchor on.
func regionForUniquePoint(g *Grid, x, y int8) (Region, bool) {
	pt := getBoundary(g, x, y)
	switch {
	case pt.kind == pointWall:
		return Region{}, false
	case pt.kind == pointVerticalBoundary && !pt.primary:
		return Region{}, false
	case pt.kind == pointHorizontalBoundary && !pt.primary:
		return Region{}, false
	case pt.kind == pointNone:
		if isSpecial(getBoundary(g, x-1, y)) && isSpecial(getBoundary(g, x, y-1)) {
			if getBoundary(g, x+1, y).kind == pointNone {
				return buildHorizontalRegion(g, x-1, y), true
			} else if getBoundary(g, x, y+1).kind == pointNone {
				return buildVerticalRegion(g, x, y-1), true
			}
			// 2x2 region: either construction yields the same box.
			return buildHorizontalRegion(g, x-1, y), true
		}
		return Region{}, false
	case pt.kind == pointVerticalBoundary: // primary
		return buildHorizontalRegion(g, x, y), true
	default: // pointHorizontalBoundary, primary
		return buildVerticalRegion(g, x, y), true
	}
}

// BuildRegions enumerates every region of g exactly once. Pure and
// deterministic given g — the single call site for all of the core's
// geometry that depends on region decomposition. Several grid points can
// canonicalize to the same box, so regions are deduplicated before return.
func BuildRegions(g *Grid) []Region {
	seen := make(map[Region]bool)
	var regions []Region
	for x := int8(0); x < GridSize; x++ {
		for y := int8(0); y < GridSize; y++ {
			r, ok := regionForUniquePoint(g, x, y)
			if !ok || seen[r] {
				continue
			}
			seen[r] = true
			regions = append(regions, r)
		}
	}
	return regions
}
