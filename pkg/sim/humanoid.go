// Package sim provides a kinematic stand-in for a humanoid and its
// whole-body controller.
//
// It is not a solver. Each tick, every measured value simply moves a fraction
// of the way (gain * dt, at most all of it) towards its reference. That's
// enough for the gait to be observable, in a viewer or in tests, without a
// real robot model.
package sim

import (
	"context"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
)

const (
	DefaultName = "hrp"

	// Free-flyer (6) plus the translation of each ankle (3 + 3).
	StateDim = 12

	// Default initial geometry. Ankles sit half a hip-width either side of
	// the origin; the center of mass is above it.
	defaultAnkleY      = 0.095
	defaultAnkleHeight = 0.105
	defaultComHeight   = 0.8
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "sim",
})

// Options describes the initial state of the humanoid. Values are used as
// given; start from DefaultOptions.
type Options struct {
	Name      string
	AnkleY    float64
	AnkleZ    float64
	ComHeight float64
	ComGain   float64
}

// DefaultOptions returns the geometry of the humanoid in its usual stance.
func DefaultOptions() Options {
	return Options{
		Name:      DefaultName,
		AnkleY:    defaultAnkleY,
		AnkleZ:    defaultAnkleHeight,
		ComHeight: defaultComHeight,
		ComGain:   1.0,
	}
}

// Humanoid is a simulated robot, reachable only through named signals. The
// embedded SignalBody gives it typed accessors.
type Humanoid struct {
	*robot.SignalBody

	graph *Graph
	name  string
	t     float64
}

var _ robot.Simulator = (*Humanoid)(nil)

// NewHumanoid declares every signal of the robot, standing in double support
// with all references equal to the measured values.
func NewHumanoid(opts Options) *Humanoid {
	g := NewGraph()
	h := &Humanoid{
		SignalBody: robot.NewSignalBody(g, opts.Name),
		graph:      g,
		name:       opts.Name,
	}

	feet := map[robot.FootName]math3d.Pose{
		robot.LeftAnkle:  math3d.Translate(0, opts.AnkleY, opts.AnkleZ),
		robot.RightAnkle: math3d.Translate(0, -opts.AnkleY, opts.AnkleZ),
	}
	for foot, pose := range feet {
		g.Declare(h.FootSignal(foot), pose.Flat())
		g.Declare(h.FootReferenceSignal(foot), pose.Flat())
		g.Declare(h.GainSignal(foot), 0.0)
	}

	com := math3d.Vector3{X: 0, Y: 0, Z: opts.ComHeight}
	g.Declare(h.MeasuredComSignal(), com.Slice())
	g.Declare(h.ComSignal(), com.Slice())
	g.Declare(h.ComGainSignal(), opts.ComGain)
	g.Declare(h.StateSignal(), h.state())

	return h
}

func (h *Humanoid) MeasuredComSignal() string {
	return h.name + ".dynamic.com"
}

func (h *Humanoid) ComGainSignal() string {
	return h.name + ".task.com.controlGain"
}

func (h *Humanoid) StateSignal() string {
	return h.name + ".state"
}

// Name returns the robot name, which prefixes every signal.
func (h *Humanoid) Name() string {
	return h.name
}

// Graph returns the signal table.
func (h *Humanoid) Graph() *Graph {
	return h.graph
}

// Com returns the measured center of mass.
func (h *Humanoid) Com() math3d.Vector3 {
	v := h.graph.vector(h.MeasuredComSignal())
	return math3d.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// Increment advances time by dt, moves every measured value towards its
// reference, and returns the new configuration vector.
func (h *Humanoid) Increment(ctx context.Context, dt float64) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, foot := range robot.AllFeet() {
		r := ratio(h.graph.scalar(h.GainSignal(foot)), dt)
		track(h.graph.vector(h.FootSignal(foot)), h.graph.vector(h.FootReferenceSignal(foot)), r)
	}

	r := ratio(h.graph.scalar(h.ComGainSignal()), dt)
	track(h.graph.vector(h.MeasuredComSignal()), h.graph.vector(h.ComSignal()), r)

	h.t += dt
	state := h.state()
	h.graph.Declare(h.StateSignal(), state)

	log.WithFields(logrus.Fields{"t": h.t, "com": h.Com()}).Debug("increment")
	return state, nil
}

// state builds the configuration vector: the free-flyer (CoM position, no
// rotation) followed by each ankle's translation.
func (h *Humanoid) state() []float64 {
	state := make([]float64, 0, StateDim)
	state = append(state, h.graph.vector(h.MeasuredComSignal())...)
	state = append(state, 0, 0, 0)
	for _, foot := range robot.AllFeet() {
		p := h.graph.vector(h.FootSignal(foot))
		state = append(state, p[3], p[7], p[11])
	}
	return state
}

func ratio(gain, dt float64) float64 {
	return math.Max(0, math.Min(1, gain*dt))
}

// track moves each value of cur a fraction r of the way towards ref, in place.
func track(cur, ref []float64, r float64) {
	for i := range cur {
		cur[i] += (ref[i] - cur[i]) * r
	}
}
