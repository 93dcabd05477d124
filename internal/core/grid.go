package core

import "fmt"

// GridSize is the fixed edge length of a maze grid.
const GridSize = 32

// Cell is a lattice point (row, col) in [0,31]^2, in grid units.
type Cell struct {
	Row, Col int8
}

// inBounds reports whether c is within the 32x32 lattice.
func (c Cell) inBounds() bool {
	return c.Row >= 0 && c.Row < GridSize && c.Col >= 0 && c.Col < GridSize
}

// Direction is one of the four cardinal directions of grid travel.
type Direction int

const (
	DirRight Direction = iota
	DirLeft
	DirUp
	DirDown
)

// DirectionTo returns the cardinal direction from c to other, and false if
// the two cells are not a unit step apart along a single axis.
func (c Cell) DirectionTo(other Cell) (Direction, bool) {
	dr := int(other.Row) - int(c.Row)
	dc := int(other.Col) - int(c.Col)
	switch {
	case dr == 0 && dc == 1:
		return DirRight, true
	case dr == 0 && dc == -1:
		return DirLeft, true
	case dr == -1 && dc == 0:
		return DirUp, true
	case dr == 1 && dc == 0:
		return DirDown, true
	default:
		return 0, false
	}
}

// Rect is an axis-aligned rectangle of cells, inclusive of both corners.
type Rect struct {
	MinRow, MinCol, MaxRow, MaxCol int8
}

// ActionMask reports, for one cell, which of the five actions are valid:
// staying put, and moving in each of the four cardinal directions.
type ActionMask struct {
	Walkable, Right, Left, Up, Down bool
}

// InvalidGridError reports why BuildGrid rejected a candidate grid.
type InvalidGridError struct {
	Reason string
}

func (e *InvalidGridError) Error() string {
	return fmt.Sprintf("invalid grid: %s", e.Reason)
}

// Grid is the static, immutable 32x32 maze plus data derived from it once at
// construction: the open-cell list, merged wall rectangles, an all-pairs BFS
// distance matrix over open cells, and a per-cell action mask.
type Grid struct {
	walls     [GridSize][GridSize]bool // true = wall
	openCells []Cell
	cellIndex map[Cell]int // openCells index, for distance matrix lookups
	actions   map[Cell]ActionMask
	distances [][]int16 // -1 = disconnected; indexed by cellIndex
	wallRects []Rect
}

// BuildGrid validates cells and, if valid, precomputes everything Grid needs
// to answer queries in O(1)/O(path): the open-cell index, per-cell action
// masks, the all-pairs BFS distance matrix, and merged wall rectangles.
func BuildGrid(cells [GridSize][GridSize]bool) (*Grid, error) {
	if err := validateGrid(cells); err != nil {
		return nil, err
	}

	g := &Grid{
		walls:     cells,
		cellIndex: make(map[Cell]int),
		actions:   make(map[Cell]ActionMask),
	}

	for row := int8(0); row < GridSize; row++ {
		for col := int8(0); col < GridSize; col++ {
			c := Cell{row, col}
			if cells[row][col] {
				continue
			}
			g.cellIndex[c] = len(g.openCells)
			g.openCells = append(g.openCells, c)
		}
	}

	for _, c := range g.openCells {
		g.actions[c] = ActionMask{
			Walkable: true,
			Right:    !g.WallAt(Cell{c.Row, c.Col + 1}),
			Left:     !g.WallAt(Cell{c.Row, c.Col - 1}),
			Up:       !g.WallAt(Cell{c.Row - 1, c.Col}),
			Down:     !g.WallAt(Cell{c.Row + 1, c.Col}),
		}
	}

	g.distances = g.computeDistances()
	g.wallRects = mergeWallRects(cells)

	return g, nil
}

// DecodeGridBytes decodes a row-major, one-byte-per-cell grid encoding
// (0x00 = open, any other byte = wall) into a cell table ready for
// BuildGrid.
func DecodeGridBytes(b [GridSize * GridSize]byte) [GridSize][GridSize]bool {
	var cells [GridSize][GridSize]bool
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			cells[row][col] = b[row*GridSize+col] != 0x00
		}
	}
	return cells
}

func validateGrid(cells [GridSize][GridSize]bool) error {
	for row := 0; row < GridSize; row++ {
		if !cells[row][0] {
			return &InvalidGridError{Reason: "left edge is not all walls"}
		}
		if !cells[row][GridSize-1] {
			return &InvalidGridError{Reason: "right edge is not all walls"}
		}
	}
	for col := 0; col < GridSize; col++ {
		if !cells[0][col] {
			return &InvalidGridError{Reason: "top edge is not all walls"}
		}
		if !cells[GridSize-1][col] {
			return &InvalidGridError{Reason: "bottom edge is not all walls"}
		}
	}

	anyOpen := false
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !cells[row][col] {
				anyOpen = true
			}
		}
	}
	if !anyOpen {
		return &InvalidGridError{Reason: "no open cells"}
	}

	for row := 0; row < GridSize-1; row++ {
		for col := 0; col < GridSize-1; col++ {
			if !cells[row][col] && !cells[row][col+1] && !cells[row+1][col] && !cells[row+1][col+1] {
				return &InvalidGridError{Reason: fmt.Sprintf("2x2 open square at (%d,%d)", row, col)}
			}
		}
	}

	for row := 1; row < GridSize-1; row++ {
		for col := 1; col < GridSize-1; col++ {
			if !cells[row][col] {
				continue
			}
			if !cells[row-1][col] && !cells[row+1][col] {
				return &InvalidGridError{Reason: fmt.Sprintf("wall at (%d,%d) has open cells above and below", row, col)}
			}
			if !cells[row][col-1] && !cells[row][col+1] {
				return &InvalidGridError{Reason: fmt.Sprintf("wall at (%d,%d) has open cells left and right", row, col)}
			}
		}
	}

	return nil
}

// WallAt reports whether c is a wall cell; out of bounds is always a wall.
func (g *Grid) WallAt(c Cell) bool {
	if !c.inBounds() {
		return true
	}
	return g.walls[c.Row][c.Col]
}

// Neighbors returns the up-to-four open 4-neighbours of c.
func (g *Grid) Neighbors(c Cell) []Cell {
	candidates := [4]Cell{
		{c.Row, c.Col + 1},
		{c.Row, c.Col - 1},
		{c.Row - 1, c.Col},
		{c.Row + 1, c.Col},
	}
	out := make([]Cell, 0, 4)
	for _, n := range candidates {
		if !g.WallAt(n) {
			out = append(out, n)
		}
	}
	return out
}

// ValidActions returns the action mask for an open cell, and false if c is
// not an open cell of this grid.
func (g *Grid) ValidActions(c Cell) (ActionMask, bool) {
	a, ok := g.actions[c]
	return a, ok
}

// Dist returns the BFS shortest-path length between two open cells, or
// (_, false) if either cell is not open or they are disconnected.
func (g *Grid) Dist(a, b Cell) (int, bool) {
	ai, ok := g.cellIndex[a]
	if !ok {
		return 0, false
	}
	bi, ok := g.cellIndex[b]
	if !ok {
		return 0, false
	}
	d := g.distances[ai][bi]
	if d < 0 {
		return 0, false
	}
	return int(d), true
}

// BFSPath returns the inclusive shortest path between two open cells, or nil
// if either is not open or no path exists.
func (g *Grid) BFSPath(start, end Cell) []Cell {
	if _, ok := g.cellIndex[start]; !ok {
		return nil
	}
	if _, ok := g.cellIndex[end]; !ok {
		return nil
	}
	if start == end {
		return []Cell{start}
	}

	type item struct {
		cell Cell
		prev int // index into visited order, -1 for start
	}
	visited := map[Cell]int{start: 0}
	order := []item{{start, -1}}
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			break
		}
		for _, n := range g.Neighbors(cur) {
			if _, seen := visited[n]; seen {
				continue
			}
			visited[n] = len(order)
			order = append(order, item{n, visited[cur]})
			queue = append(queue, n)
		}
	}

	endIdx, ok := visited[end]
	if !ok {
		return nil
	}
	var path []Cell
	for idx := endIdx; idx != -1; idx = order[idx].prev {
		path = append(path, order[idx].cell)
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NodeNearest returns the open cell among the four lattice points
// surrounding (x,y) with the smallest Euclidean distance, ties broken by
// smaller row then smaller col.
func (g *Grid) NodeNearest(x, y float32) (Cell, bool) {
	baseRow := int8(floorf32(y))
	baseCol := int8(floorf32(x))

	candidates := [4]Cell{
		{baseRow, baseCol},
		{baseRow, baseCol + 1},
		{baseRow + 1, baseCol},
		{baseRow + 1, baseCol + 1},
	}

	var best Cell
	bestDist := float32(-1)
	found := false
	for _, c := range candidates {
		if g.WallAt(c) {
			continue
		}
		dx := float32(c.Col) - x
		dy := float32(c.Row) - y
		d := dx*dx + dy*dy
		if !found || d < bestDist ||
			(d == bestDist && (c.Row < best.Row || (c.Row == best.Row && c.Col < best.Col))) {
			best = c
			bestDist = d
			found = true
		}
	}
	return best, found
}

// Walls returns the merged wall rectangles, used for raycasting.
func (g *Grid) Walls() []Rect {
	return g.wallRects
}

// OpenCells returns every open cell of the grid.
func (g *Grid) OpenCells() []Cell {
	return g.openCells
}

func (g *Grid) computeDistances() [][]int16 {
	n := len(g.openCells)
	dist := make([][]int16, n)
	for i := range dist {
		dist[i] = make([]int16, n)
		for j := range dist[i] {
			dist[i][j] = -1
		}
	}

	for i, start := range g.openCells {
		dist[i][i] = 0
		queue := []Cell{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			curIdx := g.cellIndex[cur]
			for _, n := range g.Neighbors(cur) {
				nIdx := g.cellIndex[n]
				if dist[i][nIdx] != -1 {
					continue
				}
				dist[i][nIdx] = dist[i][curIdx] + 1
				queue = append(queue, n)
			}
		}
	}
	return dist
}

// mergeWallRects greedily merges wall cells into rectangles, row-major: a
// wall cell not already claimed starts a new rectangle, extends right while
// unclaimed walls continue, then extends down while the whole width band
// stays wall and unclaimed.
func mergeWallRects(cells [GridSize][GridSize]bool) []Rect {
	claimed := [GridSize][GridSize]bool{}
	var rects []Rect

	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if !cells[row][col] || claimed[row][col] {
				continue
			}

			endCol := col
			for endCol+1 < GridSize && cells[row][endCol+1] && !claimed[row][endCol+1] {
				endCol++
			}

			endRow := row
			for endRow+1 < GridSize {
				bandOK := true
				for c := col; c <= endCol; c++ {
					if !cells[endRow+1][c] || claimed[endRow+1][c] {
						bandOK = false
						break
					}
				}
				if !bandOK {
					break
				}
				endRow++
			}

			for r := row; r <= endRow; r++ {
				for c := col; c <= endCol; c++ {
					claimed[r][c] = true
				}
			}
			rects = append(rects, Rect{
				MinRow: int8(row), MinCol: int8(col),
				MaxRow: int8(endRow), MaxCol: int8(endCol),
			})
		}
	}
	return rects
}

func floorf32(v float32) float32 {
	i := int32(v)
	if float32(i) > v {
		i--
	}
	return float32(i)
}
