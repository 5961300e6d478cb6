package matrix

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDense(t *testing.T) {
	d, err := NewDense([]string{"g1", "g2"}, []string{"c1", "c2", "c3"}, []float64{
		1, 0, 3,
		0, 5, 0,
	})
	require.NoError(t, err)

	r, c := d.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 3.0, d.At(0, 2))
	assert.Equal(t, []string{"g1", "g2"}, d.RowNames())
	assert.Equal(t, []string{"c1", "c2", "c3"}, d.ColNames())
}

func TestNewDense_ShapeErrors(t *testing.T) {
	_, err := NewDense([]string{"g1"}, []string{"c1"}, []float64{1, 2})
	require.ErrorIs(t, err, ErrShape)

	_, err = NewDense(nil, []string{"c1"}, nil)
	require.ErrorIs(t, err, ErrShape)
}

func TestDense_RowColCopies(t *testing.T) {
	d, err := NewDense([]string{"g1", "g2"}, []string{"c1", "c2"}, []float64{
		1, 2,
		3, 4,
	})
	require.NoError(t, err)

	row := d.Row(1)
	assert.Equal(t, []float64{3, 4}, row)
	row[0] = 99
	assert.Equal(t, 3.0, d.At(1, 0), "Row must return a copy")

	assert.Equal(t, []float64{2, 4}, d.Col(1))
}

func TestToSparse_RoundTrip(t *testing.T) {
	d, err := NewDense([]string{"g1", "g2", "g3"}, []string{"c1", "c2"}, []float64{
		0, 1.5,
		2, 0,
		0, 0,
	})
	require.NoError(t, err)

	s, err := ToSparse(d)
	require.NoError(t, err)

	assert.Equal(t, d.RowNames(), s.RowNames())
	assert.Equal(t, d.ColNames(), s.ColNames())
	assert.True(t, Equal(d, s), "sparse conversion must be lossless")
	assert.True(t, Equal(d, ToDense(s)), "dense round trip must be exact")
}

func TestToSparse_PreservesNaN(t *testing.T) {
	d, err := NewDense([]string{"g1"}, []string{"c1", "c2"}, []float64{math.NaN(), 0})
	require.NoError(t, err)

	s, err := ToSparse(d)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(s.At(0, 0)))
	assert.Equal(t, 0.0, s.At(0, 1))
}

func TestSparse_DoNonZero(t *testing.T) {
	d, err := NewDense([]string{"g1", "g2"}, []string{"c1", "c2"}, []float64{
		0, 7,
		3, 0,
	})
	require.NoError(t, err)
	s, err := ToSparse(d)
	require.NoError(t, err)

	got := make(map[[2]int]float64)
	s.DoNonZero(func(i, j int, v float64) {
		got[[2]int{i, j}] = v
	})
	assert.Equal(t, map[[2]int]float64{{0, 1}: 7, {1, 0}: 3}, got)
}

func TestEqual_Mismatches(t *testing.T) {
	a, _ := NewDense([]string{"g1"}, []string{"c1"}, []float64{1})
	b, _ := NewDense([]string{"g1"}, []string{"c1"}, []float64{2})
	c, _ := NewDense([]string{"gX"}, []string{"c1"}, []float64{1})

	assert.False(t, Equal(a, b))
	assert.False(t, Equal(a, c))
	assert.True(t, Equal(a, a.Clone()))
}
