package comm

// Factor is a categorical assignment over cells: one label per cell plus the
// distinct levels defining the cell groups. The levels index both sender and
// receiver axes of the communication tensor.
type Factor struct {
	values []string
	levels []string
}

// NewFactor builds a factor from one label per cell. Levels are recorded in
// first-appearance order.
func NewFactor(values []string) *Factor {
	f := &Factor{values: append([]string(nil), values...)}
	seen := make(map[string]bool)
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			f.levels = append(f.levels, v)
		}
	}
	return f
}

// Len returns the number of cells.
func (f *Factor) Len() int { return len(f.values) }

// Values returns the per-cell labels.
func (f *Factor) Values() []string { return f.values }

// Levels returns the distinct group labels in first-appearance order.
func (f *Factor) Levels() []string { return f.levels }

// NLevels returns the number of cell groups, the K dimension of the tensor.
func (f *Factor) NLevels() int { return len(f.levels) }

// Counts returns the number of cells per level, aligned with Levels.
func (f *Factor) Counts() []int {
	idx := make(map[string]int, len(f.levels))
	for i, l := range f.levels {
		idx[l] = i
	}
	counts := make([]int, len(f.levels))
	for _, v := range f.values {
		counts[idx[v]]++
	}
	return counts
}
