package comm

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/adalundhe/crosstalk/core/lrdb"
	"github.com/adalundhe/crosstalk/core/matrix"
	"github.com/adalundhe/crosstalk/core/tensor"
)

// PerDataset is an ordered per-dataset collection of one attribute, built by
// Merge. Values keep the input order; names come from the merge call, or are
// positional ("1", "2", ...) when none were given.
type PerDataset[T any] struct {
	names  []string
	values []T
}

// Len returns the number of datasets.
func (p *PerDataset[T]) Len() int { return len(p.values) }

// Value returns the attribute of dataset i.
func (p *PerDataset[T]) Value(i int) T { return p.values[i] }

// Name returns the name of dataset i.
func (p *PerDataset[T]) Name(i int) string {
	if p.names == nil {
		return strconv.Itoa(i + 1)
	}
	return p.names[i]
}

// Get returns the attribute of the named dataset. With duplicate dataset
// names the first match wins.
func (p *PerDataset[T]) Get(name string) (T, bool) {
	for i := range p.values {
		if p.Name(i) == name {
			return p.values[i], true
		}
	}
	var zero T
	return zero, false
}

// Values returns the attributes in dataset order.
func (p *PerDataset[T]) Values() []T {
	return append([]T(nil), p.values...)
}

// MergedAttributes carries the four designated attributes of a merged object,
// one entry per source dataset. Its presence on an Object is the tag marking
// a merge result: every other field of that object is deliberately empty, not
// a union of the inputs.
type MergedAttributes struct {
	Net    *PerDataset[*tensor.Comm]
	NetP   *PerDataset[*tensor.PathwaySet]
	Idents *PerDataset[*Factor]
	LR     *PerDataset[*lrdb.Selection]
}

// Len returns the number of merged datasets.
func (m *MergedAttributes) Len() int { return m.Net.Len() }

// DatasetNames returns the dataset names in merge order.
func (m *MergedAttributes) DatasetNames() []string {
	names := make([]string, m.Net.Len())
	for i := range names {
		names[i] = m.Net.Name(i)
	}
	return names
}

// MergeConfig adjusts Merge. The zero value is the default behavior.
type MergeConfig struct {
	Logger *slog.Logger // uses slog.Default() if nil
}

// Merge unifies the net, netP, idents, and LR attributes of the given objects
// into a single cross-dataset-comparable Object. The four attributes are
// collected per dataset, in input order, into the result's Merged tag; all
// other attributes are left at their defaults — the result is a comparison
// view, not a full union. Inputs are never mutated.
//
// Names, when given, must match objects in length. Duplicate names are
// accepted but make name lookups ambiguous (first match wins); prefer unique
// names. Group-label levels and tensor dimensions are NOT reconciled across
// datasets: cross-dataset comparability is the caller's responsibility.
func Merge(objects []*Object, names []string, cfg *MergeConfig) (*Object, error) {
	if cfg == nil {
		cfg = &MergeConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if len(objects) == 0 {
		return nil, ErrEmptyInput
	}
	if names != nil && len(names) != len(objects) {
		return nil, fmt.Errorf("%w: %d names for %d objects", ErrLengthMismatch, len(names), len(objects))
	}
	if names != nil {
		if dup := firstDuplicate(names); dup != "" {
			logger.Warn("duplicate dataset name in merge; lookups by name will return the first match", "name", dup)
		}
	}

	merged := &MergedAttributes{
		Net:    &PerDataset[*tensor.Comm]{},
		NetP:   &PerDataset[*tensor.PathwaySet]{},
		Idents: &PerDataset[*Factor]{},
		LR:     &PerDataset[*lrdb.Selection]{},
	}
	if names != nil {
		n := append([]string(nil), names...)
		merged.Net.names = n
		merged.NetP.names = n
		merged.Idents.names = n
		merged.LR.names = n
	}
	for _, obj := range objects {
		merged.Net.values = append(merged.Net.values, obj.Net)
		merged.NetP.values = append(merged.NetP.values, obj.NetP)
		merged.Idents.values = append(merged.Idents.values, obj.Idents)
		merged.LR.values = append(merged.LR.values, obj.LR)
	}

	logger.Info("merged communication objects: only net, netP, idents and LR were combined; "+
		"all other attributes of the result are empty",
		"datasets", len(objects),
	)

	return &Object{
		Reductions: make(map[string]*matrix.Dense),
		Options:    make(map[string]any),
		Merged:     merged,
	}, nil
}

func firstDuplicate(names []string) string {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return n
		}
		seen[n] = true
	}
	return ""
}
