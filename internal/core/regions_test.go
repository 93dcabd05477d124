package core

import (
	"testing"

	"github.com/mdrc-robotics/pacbot-core/internal/core/standardgrids"
)

func TestBuildRegionsCoversEveryOpenCell(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	regions := BuildRegions(g)
	if len(regions) == 0 {
		t.Fatal("expected at least one region")
	}

	for _, c := range g.OpenCells() {
		covered := false
		for _, r := range regions {
			if r.contains(c.Col, c.Row) {
				covered = true
				break
			}
		}
		if !covered {
			t.Errorf("open cell %v not covered by any region", c)
		}
	}
}

func TestBuildRegionsNoDuplicates(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	regions := BuildRegions(g)
	seen := map[Region]bool{}
	for _, r := range regions {
		if seen[r] {
			t.Fatalf("duplicate region emitted: %+v", r)
		}
		seen[r] = true
	}
}

func TestRegionWallDistancesAreConsistentWithGrid(t *testing.T) {
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	regions := BuildRegions(g)
	for _, r := range regions {
		d := distancesFrom(g, r.LowX, r.LowY)
		if d != r.DistLowXYToWall {
			t.Errorf("region %+v: recomputed wall distances %v != stored %v", r, d, r.DistLowXYToWall)
		}
	}
}
