// Package viewer forwards robot configurations to visualization clients.
package viewer

import (
	"context"
	"errors"
)

// DefaultElement is the name under which the robot is registered in the
// viewer's scene.
const DefaultElement = "hrp"

// Client is a visualization client which can display a named element in a
// given configuration.
type Client interface {
	UpdateElementConfig(ctx context.Context, element string, config []float64) error
	Close() error
}

// PadConfig returns a copy of config with zeros appended up to width. Longer
// configurations are returned unchanged (but still copied).
func PadConfig(config []float64, width int) []float64 {
	n := len(config)
	if width > n {
		n = width
	}
	out := make([]float64, n)
	copy(out, config)
	return out
}

// Multi sends every update to each of its clients.
type Multi []Client

// UpdateElementConfig updates all clients, even if some fail, and returns
// the joined errors.
func (m Multi) UpdateElementConfig(ctx context.Context, element string, config []float64) error {
	var errs []error
	for _, c := range m {
		if err := c.UpdateElementConfig(ctx, element, config); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, c := range m {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
