package viewer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
)

// Frame is one line written by a Recorder.
type Frame struct {
	Seq     int       `json:"seq"`
	Element string    `json:"element"`
	Config  []float64 `json:"config"`
}

// Recorder writes each update as a JSON line, so that a walk can be replayed
// or plotted later.
type Recorder struct {
	w   io.Writer
	enc *json.Encoder
	seq int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w, enc: json.NewEncoder(w)}
}

func (r *Recorder) UpdateElementConfig(ctx context.Context, element string, config []float64) error {
	r.seq++
	if err := r.enc.Encode(Frame{Seq: r.seq, Element: element, Config: config}); err != nil {
		return fmt.Errorf("record frame %d: %w", r.seq, err)
	}
	return nil
}

// Close closes the underlying writer if it is an io.Closer.
func (r *Recorder) Close() error {
	if c, ok := r.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
