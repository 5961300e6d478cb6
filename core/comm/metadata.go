package comm

import "fmt"

// Metadata is a cell-indexed annotation table: one row per cell, named
// columns of string annotations (group labels, batch, sample, ...).
type Metadata struct {
	cells   []string
	names   []string
	columns map[string][]string
}

// NewMetadata returns an empty table over the given cells.
func NewMetadata(cells []string) *Metadata {
	return &Metadata{
		cells:   append([]string(nil), cells...),
		columns: make(map[string][]string),
	}
}

// NCells returns the number of rows.
func (m *Metadata) NCells() int { return len(m.cells) }

// Cells returns the cell identifiers.
func (m *Metadata) Cells() []string { return m.cells }

// ColumnNames returns the column names in insertion order.
func (m *Metadata) ColumnNames() []string { return m.names }

// AddColumn attaches one annotation per cell under the given name, replacing
// any existing column of that name.
func (m *Metadata) AddColumn(name string, values []string) error {
	if len(values) != len(m.cells) {
		return fmt.Errorf("%w: metadata column %q has %d values for %d cells",
			ErrDimensionMismatch, name, len(values), len(m.cells))
	}
	if _, ok := m.columns[name]; !ok {
		m.names = append(m.names, name)
	}
	m.columns[name] = append([]string(nil), values...)
	return nil
}

// Column returns the values of a named column.
func (m *Metadata) Column(name string) ([]string, bool) {
	col, ok := m.columns[name]
	return col, ok
}
