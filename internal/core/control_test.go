package core

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/mdrc-robotics/pacbot-core/internal/core/standardgrids"
)

func mustPacmanSetup(t *testing.T) (*Grid, []Region, *RobotDefinition) {
	t.Helper()
	g, err := BuildGrid(standardgrids.Pacman)
	if err != nil {
		t.Fatal(err)
	}
	return g, BuildRegions(g), mustTriWheelRobot(t)
}

func allFaultedDists() [4]DistReading {
	return [4]DistReading{{Fault: true}, {Fault: true}, {Fault: true}, {Fault: true}}
}

func TestStepNoLocalizationPreservesPrevPose(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	prev := &Pose{X: 4, Y: 4, Heading: 1.2}
	sensors := SensorFrame{IMUYawOK: true, IMUYaw: 1.2, Dist: allFaultedDists()}

	out := Step(g, regions, robot, prev, sensors, nil, DefaultControlConfig())

	if out.Diag.Kind != DiagNoLocalization {
		t.Errorf("Diag.Kind = %v, want DiagNoLocalization", out.Diag.Kind)
	}
	if out.EstimatedPose != *prev {
		t.Errorf("EstimatedPose = %+v, want unchanged prev %+v", out.EstimatedPose, *prev)
	}
	if len(out.WheelAngularVelocities) != len(robot.Wheels) {
		t.Errorf("WheelAngularVelocities len = %d, want %d", len(out.WheelAngularVelocities), len(robot.Wheels))
	}
	for _, w := range out.WheelAngularVelocities {
		if w != 0 {
			t.Errorf("expected zero wheel commands with no localization, got %v", out.WheelAngularVelocities)
		}
	}
}

func TestStepFallsBackToCVAnchorAndReportsDiagnostic(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	cv := Cell{Row: 1, Col: 1}
	sensors := SensorFrame{IMUYawOK: true, Dist: allFaultedDists(), CVCell: &cv}
	cfg := DefaultControlConfig()
	cfg.BaseSpeed = 1

	out := Step(g, regions, robot, nil, sensors, nil, cfg)

	if out.Diag.Kind != DiagLocalizerFallback {
		t.Errorf("Diag.Kind = %v, want DiagLocalizerFallback", out.Diag.Kind)
	}
	if out.EstimatedPose.X != 1 || out.EstimatedPose.Y != 1 {
		t.Errorf("EstimatedPose = %+v, want (1,1)", out.EstimatedPose)
	}
}

// TestStepSensorFaultDiagnosticDoesNotBlockLocalization checks that a
// faulted sensor redundant with a still-usable opposing one still reports
// DiagSensorFault without forcing the CV-anchor fallback path, since the
// region score alone is enough to localize.
func TestStepSensorFaultDiagnosticDoesNotBlockLocalization(t *testing.T) {
	g := buildCorridorGrid(t)
	robot, err := NewTriWheelRobotDefinition(1, 0.1, 100, 0.1)
	if err != nil {
		t.Fatal(err)
	}
	regions := BuildRegions(g)

	truePos := vec2{X: 1, Y: 5}
	raw := distancesFrom(g, int8(truePos.X), int8(truePos.Y))
	var dists [4]DistReading
	for i := range dists {
		dists[i] = DistReading{Distance: float32(raw[i]) - robot.RobotRadius}
	}
	dists[2].Fault = true // -x reading faulted; +x still covers that axis

	sensors := SensorFrame{IMUYawOK: true, Dist: dists}
	out := Step(g, regions, robot, nil, sensors, nil, DefaultControlConfig())

	if out.Diag.Kind != DiagSensorFault {
		t.Errorf("Diag.Kind = %v, want DiagSensorFault", out.Diag.Kind)
	}
	if math32.Abs(out.EstimatedPose.X-truePos.X) > 0.1 || math32.Abs(out.EstimatedPose.Y-truePos.Y) > 0.1 {
		t.Errorf("EstimatedPose = %+v too far from true position %v", out.EstimatedPose, truePos)
	}
}

func TestStepCVSourceFixedOverridesSensorCell(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	sensors := SensorFrame{IMUYawOK: true, Dist: allFaultedDists()}
	cfg := DefaultControlConfig()
	cfg.CVSource = CVSourceFixed
	cfg.FixedCVCell = Cell{Row: 1, Col: 3}

	out := Step(g, regions, robot, nil, sensors, nil, cfg)

	if out.Diag.Kind != DiagLocalizerFallback {
		t.Fatalf("Diag.Kind = %v, want DiagLocalizerFallback", out.Diag.Kind)
	}
	if out.EstimatedPose.X != 3 || out.EstimatedPose.Y != 1 {
		t.Errorf("EstimatedPose = %+v, want (3,1) from FixedCVCell", out.EstimatedPose)
	}
}

func TestStepCVSourceLastEstimateProjectsPrevPose(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	prev := &Pose{X: 1.1, Y: 1.1, Heading: 0}
	sensors := SensorFrame{IMUYawOK: true, Dist: allFaultedDists()}
	cfg := DefaultControlConfig()
	cfg.CVSource = CVSourceLastEstimate

	out := Step(g, regions, robot, prev, sensors, nil, cfg)

	if out.Diag.Kind != DiagLocalizerFallback {
		t.Fatalf("Diag.Kind = %v, want DiagLocalizerFallback", out.Diag.Kind)
	}
	if out.EstimatedPose.X != 1 || out.EstimatedPose.Y != 1 {
		t.Errorf("EstimatedPose = %+v, want (1,1) projected from prev", out.EstimatedPose)
	}
}

func TestStepCommandsUseEstimatedHeadingRotatesVelocity(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	cv := Cell{Row: 1, Col: 1}
	path := []Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	sensors := SensorFrame{IMUYawOK: true, IMUYaw: float32(halfPi), Dist: allFaultedDists(), CVCell: &cv}

	base := DefaultControlConfig()
	base.BaseSpeed = 2
	base.Lookahead = 1

	rotated := base
	rotated.CommandsUseEstimatedHeading = true

	outBase := Step(g, regions, robot, nil, sensors, path, base)
	outRotated := Step(g, regions, robot, nil, sensors, path, rotated)

	if outBase.VelocityX == outRotated.VelocityX && outBase.VelocityY == outRotated.VelocityY {
		t.Errorf("expected CommandsUseEstimatedHeading to change the commanded velocity frame")
	}
}

func TestStepMaxSpeedClampsVelocity(t *testing.T) {
	g, regions, robot := mustPacmanSetup(t)
	cv := Cell{Row: 1, Col: 1}
	path := []Cell{{Row: 1, Col: 1}, {Row: 1, Col: 2}, {Row: 1, Col: 3}}
	sensors := SensorFrame{IMUYawOK: true, Dist: allFaultedDists(), CVCell: &cv}

	cfg := DefaultControlConfig()
	cfg.BaseSpeed = 10
	cfg.Lookahead = 1
	cfg.MaxSpeed = 1

	out := Step(g, regions, robot, nil, sensors, path, cfg)
	speed := vec2{X: out.VelocityX, Y: out.VelocityY}.Len()
	if speed > 1.0001 {
		t.Errorf("speed = %v, want <= MaxSpeed 1", speed)
	}
}

const halfPi = 1.5707963267948966
