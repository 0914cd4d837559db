package gait

import "fmt"

// Phase is one step of the quasi-static walking cycle.
type Phase int

const (
	// Move the center of mass over the support foot.
	PhaseShiftToSingle Phase = iota

	// Raise the flying foot.
	PhaseLift

	// Put the flying foot back down at its neutral pose.
	PhaseLand

	// Move the center of mass back between both feet, and swap the support
	// foot.
	PhaseShiftToDouble

	numPhases = 4
)

// Phases returns every phase in cycle order.
func Phases() []Phase {
	return []Phase{
		PhaseShiftToSingle,
		PhaseLift,
		PhaseLand,
		PhaseShiftToDouble,
	}
}

// Next returns the phase which follows p, wrapping around after
// PhaseShiftToDouble.
func (p Phase) Next() Phase {
	return (p + 1) % numPhases
}

func (p Phase) String() string {
	switch p {
	case PhaseShiftToSingle:
		return "com-to-single"
	case PhaseLift:
		return "lift"
	case PhaseLand:
		return "land"
	case PhaseShiftToDouble:
		return "com-to-double"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}
