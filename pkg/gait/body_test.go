package gait

import (
	"context"
	"errors"

	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
)

// fakeBody is an in-memory robot.Body. Measured poses never move unless the
// test moves them.
type fakeBody struct {
	poses   map[robot.FootName]math3d.Pose
	targets map[robot.FootName]math3d.Pose
	gains   map[robot.FootName]float64
	com     math3d.Vector3

	writes int
	failOn string
}

var errFake = errors.New("fake failure")

func newFakeBody() *fakeBody {
	return &fakeBody{
		poses: map[robot.FootName]math3d.Pose{
			robot.LeftAnkle:  math3d.Translate(0.01, 0.095, 0.105),
			robot.RightAnkle: math3d.Translate(-0.01, -0.095, 0.105),
		},
		targets: map[robot.FootName]math3d.Pose{},
		gains:   map[robot.FootName]float64{},
		com:     math3d.Vector3{X: 0, Y: 0, Z: 0.8},
	}
}

func (b *fakeBody) FootPose(ctx context.Context, foot robot.FootName) (math3d.Pose, error) {
	if b.failOn == "FootPose" {
		return math3d.Pose{}, errFake
	}
	return b.poses[foot], nil
}

func (b *fakeBody) SetFootTarget(ctx context.Context, foot robot.FootName, pose math3d.Pose) error {
	b.writes++
	b.targets[foot] = pose
	return nil
}

func (b *fakeBody) ComTarget(ctx context.Context) (math3d.Vector3, error) {
	if b.failOn == "ComTarget" {
		return math3d.Vector3{}, errFake
	}
	return b.com, nil
}

func (b *fakeBody) SetComTarget(ctx context.Context, com math3d.Vector3) error {
	b.writes++
	b.com = com
	return nil
}

func (b *fakeBody) ControlGain(ctx context.Context, foot robot.FootName) (float64, error) {
	return b.gains[foot], nil
}

func (b *fakeBody) SetControlGain(ctx context.Context, foot robot.FootName, gain float64) error {
	if b.failOn == "SetControlGain" {
		return errFake
	}
	b.gains[foot] = gain
	return nil
}
