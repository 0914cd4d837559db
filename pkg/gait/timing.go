package gait

import "fmt"

// Timing holds the duration, in seconds of simulated time, of each phase.
type Timing struct {
	ShiftToSingle float64 `koanf:"shift_to_single" yaml:"shift_to_single"`
	Lift          float64 `koanf:"lift" yaml:"lift"`
	Land          float64 `koanf:"land" yaml:"land"`
	ShiftToDouble float64 `koanf:"shift_to_double" yaml:"shift_to_double"`
}

// DefaultTiming is one second for each weight shift, and five seconds for
// each foot movement.
func DefaultTiming() Timing {
	return Timing{
		ShiftToSingle: 1.0,
		Lift:          5.0,
		Land:          5.0,
		ShiftToDouble: 1.0,
	}
}

// Of returns the duration of the given phase.
func (t Timing) Of(p Phase) float64 {
	switch p {
	case PhaseShiftToSingle:
		return t.ShiftToSingle
	case PhaseLift:
		return t.Lift
	case PhaseLand:
		return t.Land
	case PhaseShiftToDouble:
		return t.ShiftToDouble
	}
	panic(fmt.Sprintf("invalid phase: %d", int(p)))
}

// Cycle returns the length of one full cycle, i.e. a single step.
func (t Timing) Cycle() float64 {
	sum := 0.0
	for _, p := range Phases() {
		sum += t.Of(p)
	}
	return sum
}
