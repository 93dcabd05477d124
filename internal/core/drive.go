package core

import "github.com/chewxy/math32"

// DriveKind tags which kinematic model a DriveSystem wraps. A sum type
// rather than an interface, leaving room for a DriveKindDifferential or
// DriveKindMecanum variant later without touching call sites that only
// know DriveSystem.
type DriveKind int

const (
	DriveKindOmni DriveKind = iota
)

// DriveSystem is the tagged union of supported drive types. Only
// DriveKindOmni is implemented; the zero value of any other kind's payload
// field is nil.
type DriveSystem struct {
	Kind DriveKind
	Omni *RobotDefinition
}

// NewOmniDriveSystem wraps robot as an omniwheel drive.
func NewOmniDriveSystem(robot *RobotDefinition) DriveSystem {
	return DriveSystem{Kind: DriveKindOmni, Omni: robot}
}

// Forward computes each wheel's commanded angular velocity for a target
// robot-frame (vxy, omega). Generic over N wheels.
func (d DriveSystem) Forward(vxy vec2, omega float32) []float32 {
	if d.Kind != DriveKindOmni || d.Omni == nil {
		return nil
	}
	robot := d.Omni

	vEdge := omega * robot.RobotRadius
	omegaRot := vEdge / robot.WheelRadius
	speed := vxy.Len()
	heading := math32.Atan2(vxy.Y, vxy.X)

	out := make([]float32, len(robot.Wheels))
	for i, w := range robot.Wheels {
		forwardDir := w.Angle + w.Sign*(math32.Pi/2)
		delta := heading - forwardDir
		translation := math32.Cos(delta) * speed / robot.WheelRadius
		out[i] = translation + w.Sign*omegaRot
	}
	return out
}

// InverseTri computes the robot-frame (vxy, omega) that produced a 3-wheel
// reading, assuming the standard triangular layout θ = {0, 2π/3, 4π/3}.
// ok is false if d is not a 3-wheel omni drive.
func (d DriveSystem) InverseTri(wheels [3]float32) (vxy vec2, omega float32, ok bool) {
	if d.Kind != DriveKindOmni || d.Omni == nil || len(d.Omni.Wheels) != 3 {
		return vec2{}, 0, false
	}
	robot := d.Omni

	va := robot.Wheels[0].Sign * wheels[0] * robot.WheelRadius
	vb := robot.Wheels[1].Sign * wheels[1] * robot.WheelRadius
	vc := robot.Wheels[2].Sign * wheels[2] * robot.WheelRadius

	const sqrt3 = 1.7320508

	term1 := (va + vb - 2*vc) / 3
	term2 := va - vb
	magSq := term1*term1 + (term2*term2)/3
	mag := math32.Sqrt(magSq)

	alpha := math32.Atan2(sqrt3*(va-vb), va+vb-2*vc) + math32.Pi/6 + math32.Pi/2

	omega = (va + vb + vc) / (3 * robot.RobotRadius)
	vxy = vec2{X: -mag * math32.Sin(alpha), Y: -mag * math32.Cos(alpha)}
	return vxy, omega, true
}
