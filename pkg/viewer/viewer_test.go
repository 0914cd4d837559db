package viewer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPadConfig(t *testing.T) {
	tests := []struct {
		in    []float64
		width int
		want  []float64
	}{
		{[]float64{1, 2}, 5, []float64{1, 2, 0, 0, 0}},
		{[]float64{1, 2}, 2, []float64{1, 2}},
		{[]float64{1, 2, 3}, 1, []float64{1, 2, 3}},
		{nil, 3, []float64{0, 0, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PadConfig(tt.in, tt.width))
	}
}

func TestPadConfig_Copies(t *testing.T) {
	in := []float64{1, 2}
	out := PadConfig(in, 2)
	out[0] = 99
	assert.Equal(t, 1.0, in[0])
}

func TestRecorder(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(&buf)
	ctx := context.Background()

	require.NoError(t, r.UpdateElementConfig(ctx, "hrp", []float64{1, 2}))
	require.NoError(t, r.UpdateElementConfig(ctx, "hrp", []float64{3, 4}))
	require.NoError(t, r.Close())

	var frames []Frame
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		var f Frame
		require.NoError(t, json.Unmarshal(sc.Bytes(), &f))
		frames = append(frames, f)
	}
	require.Len(t, frames, 2)
	assert.Equal(t, Frame{Seq: 2, Element: "hrp", Config: []float64{3, 4}}, frames[1])
}

type stubClient struct {
	updates int
	closed  bool
	err     error
}

func (s *stubClient) UpdateElementConfig(ctx context.Context, element string, config []float64) error {
	s.updates++
	return s.err
}

func (s *stubClient) Close() error {
	s.closed = true
	return s.err
}

func TestMulti(t *testing.T) {
	errBoom := errors.New("boom")
	a := &stubClient{}
	b := &stubClient{err: errBoom}
	c := &stubClient{}
	m := Multi{a, b, c}

	err := m.UpdateElementConfig(context.Background(), "hrp", []float64{1})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, a.updates)
	assert.Equal(t, 1, c.updates, "a failing client should not stop the others")

	assert.ErrorIs(t, m.Close(), errBoom)
	assert.True(t, a.closed && b.closed && c.closed)
}

func TestDial_BadURL(t *testing.T) {
	_, err := Dial(context.Background(), DialOptions{URL: "://nope"})
	assert.Error(t, err)
}

func TestDial_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Nothing listens on this port; either the cancelled context or the
	// connection error ends the dial, never a success.
	_, err := Dial(ctx, DialOptions{URL: "http://127.0.0.1:1/", Timeout: time.Second})
	assert.Error(t, err)
}
