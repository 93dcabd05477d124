package core

// Pose is a continuous position/heading estimate in grid units/radians. The
// core never stores this between ticks itself — the host threads it through
// as Step's prev argument.
type Pose struct {
	X, Y    float32
	Heading float32
}

// SensorFrame is one tick's snapshot of every sensor. IMUYawOK is false, and
// Dist[i].Fault is true, when the corresponding sensor errored this tick.
type SensorFrame struct {
	IMUYaw   float32
	IMUYawOK bool
	Dist     [4]DistReading
	CVCell   *Cell
}

// CVSource selects how Step resolves the CV anchor cell fed to the
// Localizer and PurePursuit.
type CVSource int

const (
	// CVSourceGameCell passes SensorFrame.CVCell through unchanged.
	CVSourceGameCell CVSource = iota
	// CVSourceLastEstimate projects prev's position to the nearest open cell.
	CVSourceLastEstimate
	// CVSourceFixed always returns ControlConfig.FixedCVCell.
	CVSourceFixed
)

// ControlConfig is copied into every tick; the core holds none of it as
// persistent state.
type ControlConfig struct {
	Lookahead                   float32
	BaseSpeed                   float32
	SnappingDist                float32
	SnappingMultiplier          float32
	DoCVAdjust                  bool
	CVSource                    CVSource
	FixedCVCell                 Cell
	CommandsUseEstimatedHeading bool
	MaxSpeed                    float32
}

// DefaultControlConfig returns the spec's documented defaults with
// everything else zeroed; callers override per scenario.
func DefaultControlConfig() ControlConfig {
	return ControlConfig{Lookahead: 2.5}
}

// DiagnosticKind tags the one-line runtime event Step may emit. Never an
// error — SensorFault and NoLocalization are degraded-but-total outcomes,
// not failures Step reports via an error return.
type DiagnosticKind int

const (
	DiagNone DiagnosticKind = iota
	DiagSensorFault
	DiagLocalizerFallback
	DiagNoLocalization
)

// Diagnostic is the one-line structured event the host may log or act on.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
}

// ControlOutput is everything a tick produces: the fused pose estimate, the
// field-then-robot-frame target velocity, and the per-wheel command.
type ControlOutput struct {
	EstimatedPose          Pose
	VelocityX, VelocityY   float32
	Omega                  float32
	WheelAngularVelocities []float32
	Diag                   Diagnostic
}

// Step is the core's single entry point for a control tick: pure and total.
// Besides the wheel-velocity slice it returns, it allocates small temporary
// slices during region scoring and the pure-pursuit intersection search. It
// resolves the CV anchor, localizes, runs pure pursuit, rotates and clamps
// the commanded velocity, and derives wheel speeds, in that order, with no
// state shared across ticks beyond what the caller threads through prev.
func Step(g *Grid, regions []Region, robot *RobotDefinition, prev *Pose, sensors SensorFrame, path []Cell, cfg ControlConfig) ControlOutput {
	cvCell := resolveCVCell(g, cfg, sensors, prev)

	pos, usedFallback, localized := Estimate(g, regions, robot, cvCell, sensors.Dist, cfg.DoCVAdjust)

	var prevHeading float32
	if prev != nil {
		prevHeading = prev.Heading
	}

	diag := sensorFaultDiagnostic(sensors)

	if !localized {
		out := ControlOutput{Diag: Diagnostic{Kind: DiagNoLocalization, Message: "no region scored and no CV anchor available"}}
		if prev != nil {
			out.EstimatedPose = *prev
		}
		out.WheelAngularVelocities = make([]float32, len(robot.Wheels))
		return out
	}

	heading := prevHeading
	if sensors.IMUYawOK {
		heading = sensors.IMUYaw
	}
	estimatedPose := Pose{X: pos.X, Y: pos.Y, Heading: heading}

	if usedFallback {
		diag = Diagnostic{Kind: DiagLocalizerFallback, Message: "localizer fell back to the CV anchor"}
	}

	velocity := PurePursuit(pos, path, cvCell, cfg.Lookahead, cfg.BaseSpeed, cfg.SnappingDist, cfg.SnappingMultiplier)

	if cfg.CommandsUseEstimatedHeading {
		velocity = velocity.Rotated(-estimatedPose.Heading)
	}

	if cfg.MaxSpeed > 0 {
		if speed := velocity.Len(); speed > cfg.MaxSpeed {
			velocity = velocity.Normalized().Scale(cfg.MaxSpeed)
		}
	}

	const omega float32 = 0 // no heading controller yet; pure pursuit only drives translation

	ds := NewOmniDriveSystem(robot)
	wheelVels := ds.Forward(velocity, omega)

	return ControlOutput{
		EstimatedPose:          estimatedPose,
		VelocityX:              velocity.X,
		VelocityY:              velocity.Y,
		Omega:                  omega,
		WheelAngularVelocities: wheelVels,
		Diag:                   diag,
	}
}

func resolveCVCell(g *Grid, cfg ControlConfig, sensors SensorFrame, prev *Pose) *Cell {
	switch cfg.CVSource {
	case CVSourceFixed:
		c := cfg.FixedCVCell
		return &c
	case CVSourceLastEstimate:
		if prev == nil {
			return nil
		}
		c, ok := g.NodeNearest(prev.X, prev.Y)
		if !ok {
			return nil
		}
		return &c
	default: // CVSourceGameCell
		return sensors.CVCell
	}
}

func sensorFaultDiagnostic(sensors SensorFrame) Diagnostic {
	if !sensors.IMUYawOK {
		return Diagnostic{Kind: DiagSensorFault, Message: "imu yaw fault"}
	}
	for _, d := range sensors.Dist {
		if d.Fault {
			return Diagnostic{Kind: DiagSensorFault, Message: "distance sensor fault"}
		}
	}
	return Diagnostic{}
}
