// Package robot provides typed access to a humanoid driven through a
// named-signal control framework.
package robot

// FootName identifies an ankle operational point. The values double as the
// signal names used by the control framework.
type FootName string

const (
	LeftAnkle  FootName = "left-ankle"
	RightAnkle FootName = "right-ankle"
)

// AllFeet returns both feet, left first.
func AllFeet() []FootName {
	return []FootName{
		LeftAnkle,
		RightAnkle,
	}
}
