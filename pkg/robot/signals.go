package robot

import (
	"context"
	"errors"
	"fmt"

	"github.com/gwillem/quasiwalk/pkg/math3d"
)

var (
	// ErrUnknownSignal is returned (wrapped) when the graph has no signal with
	// the requested name.
	ErrUnknownSignal = errors.New("unknown signal")

	// ErrSignalType is returned (wrapped) when a signal holds a value of an
	// unexpected type.
	ErrSignalType = errors.New("unexpected signal type")
)

// SignalGraph is the untyped surface of the control framework: signals are
// looked up by their full dotted name. Matrices are flat row-major []float64,
// vectors are []float64 and scalars are float64.
type SignalGraph interface {
	Signal(name string) (any, error)
	SetSignal(name string, value any) error
}

// SignalBody adapts a SignalGraph to Body. Signal names follow the layout
// <robot>.dynamic.<foot>, <robot>.feature.com.errorIN,
// <robot>.feature.<foot>.reference.position and <robot>.task.<foot>.controlGain.
type SignalBody struct {
	graph SignalGraph
	name  string
}

var _ Body = (*SignalBody)(nil)

// NewSignalBody returns an adapter for the robot called name in the graph.
func NewSignalBody(graph SignalGraph, name string) *SignalBody {
	return &SignalBody{graph: graph, name: name}
}

// FootSignal names the measured pose of a foot.
func (b *SignalBody) FootSignal(foot FootName) string {
	return fmt.Sprintf("%s.dynamic.%s", b.name, foot)
}

// FootReferenceSignal names the desired pose of a foot's task.
func (b *SignalBody) FootReferenceSignal(foot FootName) string {
	return fmt.Sprintf("%s.feature.%s.reference.position", b.name, foot)
}

// GainSignal names the control gain of a foot's task.
func (b *SignalBody) GainSignal(foot FootName) string {
	return fmt.Sprintf("%s.task.%s.controlGain", b.name, foot)
}

// ComSignal names the desired center of mass.
func (b *SignalBody) ComSignal() string {
	return b.name + ".feature.com.errorIN"
}

// FootPose reads the measured pose of a foot.
func (b *SignalBody) FootPose(ctx context.Context, foot FootName) (math3d.Pose, error) {
	return b.readPose(b.FootSignal(foot))
}

// SetFootTarget writes the desired pose of a foot's task.
func (b *SignalBody) SetFootTarget(ctx context.Context, foot FootName, pose math3d.Pose) error {
	return b.write(b.FootReferenceSignal(foot), pose.Flat())
}

// ComTarget reads the desired center of mass.
func (b *SignalBody) ComTarget(ctx context.Context) (math3d.Vector3, error) {
	name := b.ComSignal()
	values, err := b.readVector(name)
	if err != nil {
		return math3d.Vector3{}, err
	}
	v, err := math3d.VectorFromSlice(values)
	if err != nil {
		return math3d.Vector3{}, fmt.Errorf("signal %s: %w", name, err)
	}
	return v, nil
}

// SetComTarget writes the desired center of mass.
func (b *SignalBody) SetComTarget(ctx context.Context, com math3d.Vector3) error {
	return b.write(b.ComSignal(), com.Slice())
}

// ControlGain reads the control gain of a foot's task.
func (b *SignalBody) ControlGain(ctx context.Context, foot FootName) (float64, error) {
	name := b.GainSignal(foot)
	v, err := b.read(name)
	if err != nil {
		return 0, err
	}
	gain, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("signal %s holds %T: %w", name, v, ErrSignalType)
	}
	return gain, nil
}

// SetControlGain writes the control gain of a foot's task.
func (b *SignalBody) SetControlGain(ctx context.Context, foot FootName, gain float64) error {
	return b.write(b.GainSignal(foot), gain)
}

func (b *SignalBody) read(name string) (any, error) {
	v, err := b.graph.Signal(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return v, nil
}

func (b *SignalBody) write(name string, value any) error {
	if err := b.graph.SetSignal(name, value); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (b *SignalBody) readVector(name string) ([]float64, error) {
	v, err := b.read(name)
	if err != nil {
		return nil, err
	}
	values, ok := v.([]float64)
	if !ok {
		return nil, fmt.Errorf("signal %s holds %T: %w", name, v, ErrSignalType)
	}
	return values, nil
}

func (b *SignalBody) readPose(name string) (math3d.Pose, error) {
	values, err := b.readVector(name)
	if err != nil {
		return math3d.Pose{}, err
	}
	p, err := math3d.PoseFromFlat(values)
	if err != nil {
		return math3d.Pose{}, fmt.Errorf("signal %s: %w", name, err)
	}
	return p, nil
}
