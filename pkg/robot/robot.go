package robot

import (
	"context"

	"github.com/gwillem/quasiwalk/pkg/math3d"
)

// FootReader reads the current (measured) pose of a foot.
type FootReader interface {
	FootPose(ctx context.Context, foot FootName) (math3d.Pose, error)
}

// FootTargeter sets the desired pose of a foot's task.
type FootTargeter interface {
	SetFootTarget(ctx context.Context, foot FootName, pose math3d.Pose) error
}

// ComTargeter reads and writes the desired center of mass.
type ComTargeter interface {
	ComTarget(ctx context.Context) (math3d.Vector3, error)
	SetComTarget(ctx context.Context, com math3d.Vector3) error
}

// GainController reads and writes the control gain of a foot's task.
type GainController interface {
	ControlGain(ctx context.Context, foot FootName) (float64, error)
	SetControlGain(ctx context.Context, foot FootName, gain float64) error
}

// Body is everything the gait sequencer needs from the robot.
type Body interface {
	FootReader
	FootTargeter
	ComTargeter
	GainController
}

// Simulator is a Body whose time can be advanced. Increment returns the
// simplified configuration vector after the step.
type Simulator interface {
	Body
	Increment(ctx context.Context, dt float64) ([]float64, error)
}
