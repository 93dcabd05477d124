package core

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/mdrc-robotics/pacbot-core/internal/core/standardgrids"
)

func TestLocalizerBehaviorConvey(t *testing.T) {
	Convey("Given the Pacman grid, its regions, and a default robot", t, func() {
		g, err := BuildGrid(standardgrids.Pacman)
		So(err, ShouldBeNil)
		regions := BuildRegions(g)
		robot, err := NewTriWheelRobotDefinition(1, 0.5, 100, 0.5)
		So(err, ShouldBeNil)

		Convey("When every distance sensor is faulted and no CV cell is given", func() {
			faulted := [4]DistReading{{Fault: true}, {Fault: true}, {Fault: true}, {Fault: true}}
			_, _, ok := Estimate(g, regions, robot, nil, faulted, false)

			Convey("Then localization fails entirely", func() {
				So(ok, ShouldBeFalse)
			})
		})

		Convey("When every distance sensor is faulted but a valid CV cell is given", func() {
			faulted := [4]DistReading{{Fault: true}, {Fault: true}, {Fault: true}, {Fault: true}}
			cv := Cell{Row: 1, Col: 1}
			pos, fellBack, ok := Estimate(g, regions, robot, &cv, faulted, false)

			Convey("Then the estimate falls back to the CV cell", func() {
				So(ok, ShouldBeTrue)
				So(fellBack, ShouldBeTrue)
				So(pos.X, ShouldEqual, 1)
				So(pos.Y, ShouldEqual, 1)
			})
		})

		Convey("When the CV cell lies on a wall", func() {
			faulted := [4]DistReading{{Fault: true}, {Fault: true}, {Fault: true}, {Fault: true}}
			wallCell := Cell{Row: 0, Col: 0}
			_, _, ok := Estimate(g, regions, robot, &wallCell, faulted, false)

			Convey("Then it is discarded, and with no other signal localization fails", func() {
				So(ok, ShouldBeFalse)
			})
		})
	})
}

func TestRegionNearPointConvey(t *testing.T) {
	Convey("Given a region spanning (2,2) to (5,5)", t, func() {
		r := Region{LowX: 2, LowY: 2, HighX: 5, HighY: 5}

		Convey("A point inside the region is near it", func() {
			So(regionNearPoint(r, vec2{X: 3, Y: 3}), ShouldBeTrue)
		})

		Convey("A point exactly 1 gu outside is still near it", func() {
			So(regionNearPoint(r, vec2{X: 6, Y: 3}), ShouldBeTrue)
		})

		Convey("A point more than 1 gu outside on one axis is not near it", func() {
			So(regionNearPoint(r, vec2{X: 7, Y: 3}), ShouldBeFalse)
		})
	})
}
