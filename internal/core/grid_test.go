package core

import (
	"testing"

	"github.com/mdrc-robotics/pacbot-core/internal/core/standardgrids"
)

func TestBuildGridRejectsOpenBorder(t *testing.T) {
	cells := standardgrids.Blank
	cells[0][5] = false // breach the top border
	if _, err := BuildGrid(cells); err == nil {
		t.Fatal("expected InvalidGrid for an open border cell")
	}
}

func TestBuildGridRejects2x2Open(t *testing.T) {
	cells := standardgrids.Blank
	cells[1][1] = false
	cells[1][2] = false
	cells[2][1] = false
	cells[2][2] = false
	if _, err := BuildGrid(cells); err == nil {
		t.Fatal("expected InvalidGrid for a 2x2 open square")
	}
}

func TestBuildGridRejectsNoOpenCells(t *testing.T) {
	var cells [GridSize][GridSize]bool
	for row := range cells {
		for col := range cells[row] {
			cells[row][col] = true
		}
	}
	if _, err := BuildGrid(cells); err == nil {
		t.Fatal("expected InvalidGrid for an all-wall grid")
	}
}

func TestBuildGridAcceptsPacman(t *testing.T) {
	if _, err := BuildGrid(standardgrids.Pacman); err != nil {
		t.Fatalf("Pacman grid should be valid: %v", err)
	}
}

func TestWallAtOutOfBoundsIsWall(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	if !g.WallAt(Cell{Row: -1, Col: 0}) {
		t.Error("out-of-bounds cell should read as a wall")
	}
	if !g.WallAt(Cell{Row: 0, Col: GridSize}) {
		t.Error("out-of-bounds cell should read as a wall")
	}
}

func TestNeighborsAndActions(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	c := Cell{Row: 1, Col: 1}
	neighbors := g.Neighbors(c)
	if len(neighbors) == 0 {
		t.Fatal("expected at least one open neighbor at (1,1)")
	}
	actions, ok := g.ValidActions(c)
	if !ok {
		t.Fatal("expected (1,1) to be an open cell with an action mask")
	}
	if !actions.Walkable {
		t.Error("expected (1,1) to be walkable")
	}
}

func TestDistAndBFSPath(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	a := Cell{Row: 1, Col: 1}
	b := Cell{Row: 1, Col: 11}
	d, ok := g.Dist(a, b)
	if !ok {
		t.Fatal("expected a and b to be connected")
	}
	path := g.BFSPath(a, b)
	if len(path) == 0 {
		t.Fatal("expected a non-empty path")
	}
	if path[0] != a || path[len(path)-1] != b {
		t.Fatalf("path should start at a and end at b, got %v", path)
	}
	if len(path)-1 != d {
		t.Fatalf("path length-1 (%d) should equal BFS distance (%d)", len(path)-1, d)
	}
}

func TestDistToNonOpenCellReturnsFalse(t *testing.T) {
	g, err := BuildGrid(standardgrids.Blank)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := g.Dist(Cell{Row: 1, Col: 1}, Cell{Row: 2, Col: 2}); ok {
		t.Fatal("Blank has only one open cell; a second cell should not be found")
	}
}

func TestNodeNearest(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	c, ok := g.NodeNearest(1.1, 1.1)
	if !ok {
		t.Fatal("expected a nearest open cell")
	}
	if c != (Cell{Row: 1, Col: 1}) {
		t.Fatalf("expected (1,1), got %v", c)
	}
}

func TestWallsCoverEveryWallCellExactlyOnce(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	covered := map[Cell]bool{}
	for _, rect := range g.Walls() {
		for row := rect.MinRow; row <= rect.MaxRow; row++ {
			for col := rect.MinCol; col <= rect.MaxCol; col++ {
				c := Cell{Row: row, Col: col}
				if covered[c] {
					t.Fatalf("cell %v covered by more than one wall rectangle", c)
				}
				covered[c] = true
				if !g.WallAt(c) {
					t.Fatalf("rectangle covers non-wall cell %v", c)
				}
			}
		}
	}
	for row := int8(0); row < GridSize; row++ {
		for col := int8(0); col < GridSize; col++ {
			c := Cell{Row: row, Col: col}
			if g.WallAt(c) && !covered[c] {
				t.Fatalf("wall cell %v not covered by any rectangle", c)
			}
		}
	}
}

func TestCellDirectionTo(t *testing.T) {
	cases := []struct {
		from, to Cell
		want     Direction
		ok       bool
	}{
		{Cell{1, 1}, Cell{1, 2}, DirRight, true},
		{Cell{1, 1}, Cell{1, 0}, DirLeft, true},
		{Cell{1, 1}, Cell{0, 1}, DirUp, true},
		{Cell{1, 1}, Cell{2, 1}, DirDown, true},
		{Cell{1, 1}, Cell{2, 2}, 0, false},
		{Cell{1, 1}, Cell{1, 1}, 0, false},
	}
	for _, c := range cases {
		dir, ok := c.from.DirectionTo(c.to)
		if ok != c.ok {
			t.Errorf("%v -> %v: ok = %v, want %v", c.from, c.to, ok, c.ok)
			continue
		}
		if ok && dir != c.want {
			t.Errorf("%v -> %v: dir = %v, want %v", c.from, c.to, dir, c.want)
		}
	}
}
