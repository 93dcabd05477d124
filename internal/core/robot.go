package core

import "fmt"

// WheelDefinition is one wheel's fixed placement on the chassis: its angle
// around the robot frame, and whether forward motor rotation drives the
// wheel clockwise (Sign=+1) or counter-clockwise (Sign=-1) as seen from
// above.
type WheelDefinition struct {
	Angle float32
	Sign  float32
}

// InvalidRobotDef reports why NewRobotDefinition rejected a candidate robot.
type InvalidRobotDef struct {
	Reason string
}

func (e *InvalidRobotDef) Error() string {
	return fmt.Sprintf("invalid robot definition: %s", e.Reason)
}

// RobotDefinition is the immutable per-robot geometry and sensor envelope
// the drive kinematics and the localizer are parameterized over. N wheels;
// the forward map is generic over len(Wheels), while DriveSystem.InverseTri
// only handles the 3-wheel closed form.
type RobotDefinition struct {
	WheelRadius    float32
	RobotRadius    float32
	Wheels         []WheelDefinition
	TOFMax         float32
	ColliderRadius float32
}

// NewRobotDefinition validates and constructs a RobotDefinition. Fails if
// either radius is non-positive or no wheels are given.
func NewRobotDefinition(wheelRadius, robotRadius float32, wheels []WheelDefinition, tofMax, colliderRadius float32) (*RobotDefinition, error) {
	if wheelRadius <= 0 {
		return nil, &InvalidRobotDef{Reason: "wheel radius must be positive"}
	}
	if robotRadius <= 0 {
		return nil, &InvalidRobotDef{Reason: "robot radius must be positive"}
	}
	if len(wheels) == 0 {
		return nil, &InvalidRobotDef{Reason: "at least one wheel is required"}
	}
	return &RobotDefinition{
		WheelRadius:    wheelRadius,
		RobotRadius:    robotRadius,
		Wheels:         wheels,
		TOFMax:         tofMax,
		ColliderRadius: colliderRadius,
	}, nil
}

// NewTriWheelRobotDefinition builds the competition robot's default 3-wheel
// omni drive: wheels at 0, 2π/3, 4π/3 around the chassis, all clockwise-
// positive.
func NewTriWheelRobotDefinition(wheelRadius, robotRadius, tofMax, colliderRadius float32) (*RobotDefinition, error) {
	const twoPiThird = 2.0943951 // 2*pi/3
	wheels := []WheelDefinition{
		{Angle: 0, Sign: 1},
		{Angle: twoPiThird, Sign: 1},
		{Angle: 2 * twoPiThird, Sign: 1},
	}
	return NewRobotDefinition(wheelRadius, robotRadius, wheels, tofMax, colliderRadius)
}
