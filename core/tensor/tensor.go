// Package tensor holds the communication probability tensor and its
// pathway-level aggregates.
package tensor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var ErrShape = errors.New("tensor shape mismatch")

// Comm is a K x K x N communication probability tensor: the inferred signaling
// strength from sender group i to receiver group j through ligand-receptor
// pair n. Entries are non-negative, or NaN for no evidence. The tensor does
// not police its contents; inference owns the numeric guarantees.
type Comm struct {
	groups []string
	pairs  []string
	data   []float64 // (i*K + j)*N + n
}

// New returns a zero-filled tensor over the given cell groups and
// ligand-receptor pairs.
func New(groups, pairs []string) (*Comm, error) {
	if len(groups) == 0 || len(pairs) == 0 {
		return nil, fmt.Errorf("%w: needs at least one group and one pair", ErrShape)
	}
	k, n := len(groups), len(pairs)
	return &Comm{
		groups: append([]string(nil), groups...),
		pairs:  append([]string(nil), pairs...),
		data:   make([]float64, k*k*n),
	}, nil
}

// Dims returns K (cell groups) and N (ligand-receptor pairs).
func (t *Comm) Dims() (k, n int) { return len(t.groups), len(t.pairs) }

// Groups returns the cell group names indexing the sender and receiver axes.
func (t *Comm) Groups() []string { return t.groups }

// Pairs returns the ligand-receptor pair names indexing the third axis.
func (t *Comm) Pairs() []string { return t.pairs }

// At returns the probability for sender i, receiver j, pair n.
func (t *Comm) At(i, j, n int) float64 {
	return t.data[t.offset(i, j, n)]
}

// Set stores the probability for sender i, receiver j, pair n.
func (t *Comm) Set(i, j, n int, v float64) {
	t.data[t.offset(i, j, n)] = v
}

func (t *Comm) offset(i, j, n int) int {
	k, np := len(t.groups), len(t.pairs)
	if i < 0 || i >= k || j < 0 || j >= k || n < 0 || n >= np {
		panic(fmt.Sprintf("tensor: index (%d,%d,%d) out of range for %dx%dx%d", i, j, n, k, k, np))
	}
	return (i*k+j)*np + n
}

// PairIndex returns the index of the named pair on the third axis, or -1.
func (t *Comm) PairIndex(name string) int {
	for n, p := range t.pairs {
		if p == name {
			return n
		}
	}
	return -1
}

// PairMatrix copies the K x K sender-receiver slice for pair n into a dense
// matrix.
func (t *Comm) PairMatrix(n int) *mat.Dense {
	k := len(t.groups)
	out := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			out.Set(i, j, t.At(i, j, n))
		}
	}
	return out
}

// Clone returns a deep copy.
func (t *Comm) Clone() *Comm {
	return &Comm{
		groups: append([]string(nil), t.groups...),
		pairs:  append([]string(nil), t.pairs...),
		data:   append([]float64(nil), t.data...),
	}
}

// Equal reports label and element-wise equality, treating NaN as equal to NaN.
func (t *Comm) Equal(o *Comm) bool {
	if o == nil || len(t.groups) != len(o.groups) || len(t.pairs) != len(o.pairs) {
		return false
	}
	for i := range t.groups {
		if t.groups[i] != o.groups[i] {
			return false
		}
	}
	for i := range t.pairs {
		if t.pairs[i] != o.pairs[i] {
			return false
		}
	}
	for i, v := range t.data {
		w := o.data[i]
		if v != w && !(math.IsNaN(v) && math.IsNaN(w)) {
			return false
		}
	}
	return true
}
