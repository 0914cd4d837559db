package math3d

import (
	"fmt"
	"strings"
)

// Pose is a 4x4 homogeneous matrix, stored as rows. The translation lives in
// the last column (p[0][3], p[1][3], p[2][3]).
type Pose [4][4]float64

// Identity returns the pose with no rotation and no translation.
func Identity() Pose {
	return Pose{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Translate returns an unrotated pose at the given position.
func Translate(x, y, z float64) Pose {
	return Identity().WithTranslation(Vector3{x, y, z})
}

// PoseFromFlat builds a pose from sixteen row-major values, which is how the
// signal graph stores matrices.
func PoseFromFlat(values []float64) (Pose, error) {
	var p Pose
	if len(values) != 16 {
		return p, fmt.Errorf("pose needs 16 values, got %d", len(values))
	}
	for i, v := range values {
		p[i/4][i%4] = v
	}
	return p, nil
}

// Flat returns the sixteen values of the pose, row by row.
func (p Pose) Flat() []float64 {
	out := make([]float64, 0, 16)
	for _, row := range p {
		out = append(out, row[:]...)
	}
	return out
}

// Translation returns the position part of the pose.
func (p Pose) Translation() Vector3 {
	return Vector3{p[0][3], p[1][3], p[2][3]}
}

// WithTranslation returns a copy of the pose with its translation replaced.
// The rotation block is left alone.
func (p Pose) WithTranslation(v Vector3) Pose {
	p[0][3] = v.X
	p[1][3] = v.Y
	p[2][3] = v.Z
	return p
}

func (p Pose) String() string {
	return fmt.Sprintf(
		"&Pose{%+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f | %+.4f %+.4f %+.4f %+.4f}",
		p[0][0], p[0][1], p[0][2], p[0][3],
		p[1][0], p[1][1], p[1][2], p[1][3],
		p[2][0], p[2][1], p[2][2], p[2][3],
		p[3][0], p[3][1], p[3][2], p[3][3])
}

// Format renders the matrix as four left-aligned rows, for humans.
func (p Pose) Format() string {
	var sb strings.Builder
	for _, row := range p {
		for c, v := range row {
			if c > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%-10.4g", v))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
