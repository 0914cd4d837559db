package sim

import (
	"fmt"
	"sort"

	"github.com/gwillem/quasiwalk/pkg/robot"
)

// Graph is a flat table of named signals. Signals must be declared (by
// setting an initial value with Declare) before they can be read or written,
// and keep the type of their initial value.
type Graph struct {
	signals map[string]any
}

var _ robot.SignalGraph = (*Graph)(nil)

func NewGraph() *Graph {
	return &Graph{signals: make(map[string]any)}
}

// Declare adds a signal with an initial value, replacing any existing one.
func (g *Graph) Declare(name string, value any) {
	g.signals[name] = clone(value)
}

// Signal returns a copy of the current value of the named signal.
func (g *Graph) Signal(name string) (any, error) {
	v, ok := g.signals[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, robot.ErrUnknownSignal)
	}
	return clone(v), nil
}

// SetSignal overwrites the value of a declared signal. The new value must be
// of the same type, and vectors must keep their length.
func (g *Graph) SetSignal(name string, value any) error {
	old, ok := g.signals[name]
	if !ok {
		return fmt.Errorf("%s: %w", name, robot.ErrUnknownSignal)
	}

	switch o := old.(type) {
	case float64:
		if _, ok := value.(float64); !ok {
			return fmt.Errorf("%s wants float64, got %T: %w", name, value, robot.ErrSignalType)
		}
	case []float64:
		v, ok := value.([]float64)
		if !ok {
			return fmt.Errorf("%s wants []float64, got %T: %w", name, value, robot.ErrSignalType)
		}
		if len(v) != len(o) {
			return fmt.Errorf("%s wants %d values, got %d: %w", name, len(o), len(v), robot.ErrSignalType)
		}
	}

	g.signals[name] = clone(value)
	return nil
}

// Names returns every declared signal name, sorted.
func (g *Graph) Names() []string {
	names := make([]string, 0, len(g.signals))
	for name := range g.signals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// vector reads a []float64 signal without copying. Only for use inside this
// package, on signals which are known to exist.
func (g *Graph) vector(name string) []float64 {
	return g.signals[name].([]float64)
}

func (g *Graph) scalar(name string) float64 {
	return g.signals[name].(float64)
}

func clone(v any) any {
	if s, ok := v.([]float64); ok {
		c := make([]float64, len(s))
		copy(c, s)
		return c
	}
	return v
}
