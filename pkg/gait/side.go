package gait

import "github.com/gwillem/quasiwalk/pkg/robot"

// Side says which foot bears the weight of the body.
type Side int

const (
	SideLeft Side = iota
	SideRight
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Foot returns the ankle on this side.
func (s Side) Foot() robot.FootName {
	if s == SideLeft {
		return robot.LeftAnkle
	}
	return robot.RightAnkle
}

func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}
