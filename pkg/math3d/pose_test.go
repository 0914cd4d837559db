package math3d

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlatRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		in := make([]float64, 16)
		for j := range in {
			in[j] = rng.NormFloat64() * 10
		}

		p, err := PoseFromFlat(in)
		require.NoError(t, err)
		assert.Equal(t, in, p.Flat(), "example %d", i)
	}
}

func TestPoseFromFlatLayout(t *testing.T) {
	in := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	p, err := PoseFromFlat(in)
	require.NoError(t, err)

	exp := Pose{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	assert.Equal(t, exp, p)
	assert.Equal(t, Vector3{4, 8, 12}, p.Translation())
}

func TestPoseFromFlatWrongLength(t *testing.T) {
	for _, n := range []int{0, 4, 15, 17} {
		_, err := PoseFromFlat(make([]float64, n))
		assert.Error(t, err, "len %d", n)
	}
}

func TestWithTranslation(t *testing.T) {
	p := Identity()
	p[0][1] = 0.5

	q := p.WithTranslation(Vector3{1, 2, 3})

	assert.Equal(t, Vector3{1, 2, 3}, q.Translation())
	assert.Equal(t, 0.5, q[0][1], "rotation block should be untouched")
	assert.Equal(t, Vector3{}, p.Translation(), "receiver should not be modified")
}

func TestFormat(t *testing.T) {
	out := Translate(0, 0.095, 0.105).Format()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], "0 "))
	assert.Contains(t, lines[1], "0.095")
	assert.Contains(t, lines[2], "0.105")
}
