package math3d

import (
	"fmt"
	"math"
)

type Vector3 struct {
	X float64
	Y float64
	Z float64
}

func (v Vector3) String() string {
	return fmt.Sprintf("&Vec3{x=%0.3f y=%0.3f z=%0.3f}", v.X, v.Y, v.Z)
}

// Add adds two vectors, and returns the result.
func (v Vector3) Add(vv Vector3) Vector3 {
	return Vector3{
		(v.X + vv.X),
		(v.Y + vv.Y),
		(v.Z + vv.Z),
	}
}

// Subtract returns a new vector, by subtracting vv from this vector.
func (v Vector3) Subtract(vv Vector3) Vector3 {
	return Vector3{
		(v.X - vv.X),
		(v.Y - vv.Y),
		(v.Z - vv.Z),
	}
}

// Distance calculates and returns the distance between this vector and another.
func (v Vector3) Distance(vv Vector3) float64 {
	dx := v.X - vv.X
	dy := v.Y - vv.Y
	dz := v.Z - vv.Z
	return math.Sqrt((dx * dx) + (dy * dy) + (dz * dz))
}

// Slice returns the vector as the three-element slice which the signal graph
// uses for vector signals.
func (v Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z}
}

// VectorFromSlice is the inverse of Slice.
func VectorFromSlice(s []float64) (Vector3, error) {
	if len(s) != 3 {
		return Vector3{}, fmt.Errorf("vector needs 3 components, got %d", len(s))
	}
	return Vector3{s[0], s[1], s[2]}, nil
}
