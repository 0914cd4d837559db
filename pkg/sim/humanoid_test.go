package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/quasiwalk/pkg/math3d"
	"github.com/gwillem/quasiwalk/pkg/robot"
)

func TestNewHumanoid(t *testing.T) {
	ctx := context.Background()
	h := NewHumanoid(DefaultOptions())

	left, err := h.FootPose(ctx, robot.LeftAnkle)
	require.NoError(t, err)
	assert.Equal(t, math3d.Vector3{X: 0, Y: 0.095, Z: 0.105}, left.Translation())

	right, err := h.FootPose(ctx, robot.RightAnkle)
	require.NoError(t, err)
	assert.Equal(t, math3d.Vector3{X: 0, Y: -0.095, Z: 0.105}, right.Translation())

	com, err := h.ComTarget(ctx)
	require.NoError(t, err)
	assert.Equal(t, math3d.Vector3{X: 0, Y: 0, Z: 0.8}, com)

	assert.Equal(t, "hrp", h.Name())
	assert.Contains(t, h.Graph().Names(), "hrp.feature.com.errorIN")
}

func TestIncrement_TracksReferences(t *testing.T) {
	ctx := context.Background()
	h := NewHumanoid(DefaultOptions())
	require.NoError(t, h.SetControlGain(ctx, robot.RightAnkle, 1.0))

	target := math3d.Translate(0, -0.095, 0.205)
	require.NoError(t, h.SetFootTarget(ctx, robot.RightAnkle, target))
	require.NoError(t, h.SetComTarget(ctx, math3d.Vector3{X: 0, Y: 0.095, Z: 0.8}))

	state, err := h.Increment(ctx, 0.5)
	require.NoError(t, err)
	require.Len(t, state, StateDim)

	// Half way after one step with gain*dt = 0.5.
	right, err := h.FootPose(ctx, robot.RightAnkle)
	require.NoError(t, err)
	assert.InDelta(t, 0.155, right.Translation().Z, 1e-9)
	assert.InDelta(t, 0.0475, h.Com().Y, 1e-9)

	// Layout: com xyz, rotation, left xyz, right xyz.
	assert.InDelta(t, 0.0475, state[1], 1e-9)
	assert.Equal(t, []float64{0, 0, 0}, state[3:6])
	assert.InDelta(t, 0.095, state[7], 1e-9)
	assert.InDelta(t, 0.155, state[11], 1e-9)

	stored, err := h.Graph().Signal(h.StateSignal())
	require.NoError(t, err)
	assert.Equal(t, state, stored)
}

func TestIncrement_ZeroGainHoldsStill(t *testing.T) {
	ctx := context.Background()
	h := NewHumanoid(DefaultOptions())

	require.NoError(t, h.SetFootTarget(ctx, robot.LeftAnkle, math3d.Translate(1, 1, 1)))
	for i := 0; i < 10; i++ {
		_, err := h.Increment(ctx, 0.02)
		require.NoError(t, err)
	}

	left, err := h.FootPose(ctx, robot.LeftAnkle)
	require.NoError(t, err)
	assert.Equal(t, 0.105, left.Translation().Z)
}

func TestIncrement_RatioIsClamped(t *testing.T) {
	ctx := context.Background()
	h := NewHumanoid(DefaultOptions())
	require.NoError(t, h.SetControlGain(ctx, robot.LeftAnkle, 100))
	require.NoError(t, h.SetFootTarget(ctx, robot.LeftAnkle, math3d.Translate(0, 0.095, 0.3)))

	_, err := h.Increment(ctx, 1)
	require.NoError(t, err)

	left, err := h.FootPose(ctx, robot.LeftAnkle)
	require.NoError(t, err)
	assert.InDelta(t, 0.3, left.Translation().Z, 1e-12, "should land on the reference, not overshoot")
}

func TestIncrement_ZeroComGain(t *testing.T) {
	ctx := context.Background()
	opts := DefaultOptions()
	opts.ComGain = 0
	h := NewHumanoid(opts)

	require.NoError(t, h.SetComTarget(ctx, math3d.Vector3{X: 0, Y: 0.095, Z: 0.8}))
	_, err := h.Increment(ctx, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 0.0, h.Com().Y, "a zero gain should hold the CoM still")
}

func TestIncrement_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewHumanoid(DefaultOptions()).Increment(ctx, 0.02)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGraph_SetSignal(t *testing.T) {
	g := NewGraph()
	g.Declare("a.gain", 1.0)
	g.Declare("a.vec", []float64{1, 2, 3})

	assert.NoError(t, g.SetSignal("a.gain", 2.0))
	assert.NoError(t, g.SetSignal("a.vec", []float64{4, 5, 6}))

	tests := []struct {
		name  string
		value any
		want  error
	}{
		{"missing", 1.0, robot.ErrUnknownSignal},
		{"a.gain", "x", robot.ErrSignalType},
		{"a.vec", 1.0, robot.ErrSignalType},
		{"a.vec", []float64{1}, robot.ErrSignalType},
	}
	for _, tt := range tests {
		err := g.SetSignal(tt.name, tt.value)
		if !errors.Is(err, tt.want) {
			t.Errorf("SetSignal(%s, %v) = %v, want %v", tt.name, tt.value, err, tt.want)
		}
	}
}

func TestGraph_ReturnsCopies(t *testing.T) {
	g := NewGraph()
	in := []float64{1, 2, 3}
	g.Declare("v", in)
	in[0] = 99

	out, err := g.Signal("v")
	require.NoError(t, err)
	out.([]float64)[1] = 99

	again, err := g.Signal("v")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, again)
}
