package tensor

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// PathwaySet holds pathway-level aggregates of a communication tensor: one
// K x K sender-receiver matrix per signaling pathway, each summarizing the
// tensor slices of the ligand-receptor pairs annotated with that pathway.
type PathwaySet struct {
	groups    []string
	names     []string
	byPathway map[string]*mat.Dense
}

// NewPathwaySet returns an empty set over the given cell groups.
func NewPathwaySet(groups []string) *PathwaySet {
	return &PathwaySet{
		groups:    append([]string(nil), groups...),
		byPathway: make(map[string]*mat.Dense),
	}
}

// Groups returns the cell group names indexing both axes of each matrix.
func (p *PathwaySet) Groups() []string { return p.groups }

// Names returns the pathway names in sorted order.
func (p *PathwaySet) Names() []string { return p.names }

// Len returns the number of pathways.
func (p *PathwaySet) Len() int { return len(p.names) }

// Get returns the aggregate matrix for a pathway.
func (p *PathwaySet) Get(pathway string) (*mat.Dense, bool) {
	m, ok := p.byPathway[pathway]
	return m, ok
}

func (p *PathwaySet) add(pathway string, m *mat.Dense) {
	if _, ok := p.byPathway[pathway]; !ok {
		p.names = append(p.names, pathway)
		sort.Strings(p.names)
	}
	p.byPathway[pathway] = m
}

// Aggregate sums the tensor's pair axis by pathway. pathwayOf maps a
// ligand-receptor pair name to its pathway; pairs it does not know are
// skipped. NaN entries count as no evidence: they are left out of sums, and a
// cell whose contributing entries are all NaN stays NaN in the aggregate.
func Aggregate(t *Comm, pathwayOf func(pair string) (string, bool)) *PathwaySet {
	k, n := t.Dims()
	set := NewPathwaySet(t.Groups())

	members := make(map[string][]int)
	for idx := 0; idx < n; idx++ {
		pw, ok := pathwayOf(t.Pairs()[idx])
		if !ok {
			continue
		}
		members[pw] = append(members[pw], idx)
	}

	for pw, idxs := range members {
		agg := mat.NewDense(k, k, nil)
		for i := 0; i < k; i++ {
			for j := 0; j < k; j++ {
				sum := math.NaN()
				for _, idx := range idxs {
					v := t.At(i, j, idx)
					if math.IsNaN(v) {
						continue
					}
					if math.IsNaN(sum) {
						sum = 0
					}
					sum += v
				}
				agg.Set(i, j, sum)
			}
		}
		set.add(pw, agg)
	}
	return set
}
