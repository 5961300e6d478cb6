// Package comm defines the in-memory communication object: the container
// aggregating the expression matrices, derived communication tensors, and
// auxiliary annotations of one cell-cell communication analysis run, and the
// protocol for merging such objects across datasets.
//
// An Object is created once from a labeled count matrix and then populated
// incrementally by collaborators (normalization, inference, reduction). It is
// exclusively owned by its caller; concurrent analysis steps on one object
// are undefined behavior.
package comm

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/adalundhe/crosstalk/core/lrdb"
	"github.com/adalundhe/crosstalk/core/matrix"
	"github.com/adalundhe/crosstalk/core/tensor"
)

// Version is recorded in the options of every created object.
const Version = "0.3.0"

// Object aggregates all data and derived artifacts of one analysis run.
// Fields other than Data start empty and are filled by collaborators; see the
// package comment for the ownership contract.
type Object struct {
	// Raw holds the unprocessed counts; unset at creation.
	Raw matrix.Matrix

	// Data holds the normalized expression matrix (initially the raw input).
	Data matrix.Matrix

	// Signaling restricts Data to signaling-relevant genes.
	Signaling matrix.Matrix

	// Scaled holds scaled expression over the signaling genes.
	Scaled *matrix.Dense

	// Projected holds expression after signal projection/smoothing.
	Projected matrix.Matrix

	// Net is the communication probability tensor.
	Net *tensor.Comm

	// NetP holds the pathway-level aggregates of Net.
	NetP *tensor.PathwaySet

	// Meta annotates cells; row count must match the cell count of Data.
	Meta *Metadata

	// Idents assigns each cell to a group; its levels define the tensor's
	// K dimension.
	Idents *Factor

	// DB is the ligand-receptor database, immutable once attached.
	DB *lrdb.Database

	// LR is the subset of DB pairs actually used, derived by lrdb.Detect.
	LR *lrdb.Selection

	// VarFeatures lists informative genes selected upstream.
	VarFeatures []string

	// Reductions maps a reduction method name to its cells x 2 coordinates.
	Reductions map[string]*matrix.Dense

	// Options records parameters used across the analysis.
	Options map[string]any

	// Merged is non-nil only on objects produced by Merge; it carries the
	// per-dataset collections and marks every other field as deliberately
	// empty.
	Merged *MergedAttributes
}

// CreateConfig adjusts Create. The zero value is the default behavior.
type CreateConfig struct {
	// DenseStorage skips the sparse column-compressed conversion of the
	// expression matrix.
	DenseStorage bool

	Logger *slog.Logger // uses slog.Default() if nil
}

// Create instantiates an Object from a labeled count matrix. Only Data is
// populated; Raw stays unset and every other field starts empty. By default
// the matrix storage is converted to sparse column-compressed form, a
// storage-format transform that leaves values and labels unchanged. Creation
// is atomic: on error no object is returned.
func Create(raw *matrix.Dense, cfg *CreateConfig) (*Object, error) {
	if cfg == nil {
		cfg = &CreateConfig{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if raw == nil {
		return nil, fmt.Errorf("%w: data: nil matrix", ErrInvalidInput)
	}
	if err := checkLabels("rows", raw.RowNames()); err != nil {
		return nil, err
	}
	if err := checkLabels("columns", raw.ColNames()); err != nil {
		return nil, err
	}

	var data matrix.Matrix = raw
	if !cfg.DenseStorage {
		s, err := matrix.ToSparse(raw)
		if err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
		data = s
	}

	genes, cells := data.Dims()
	obj := &Object{
		Data:       data,
		Reductions: make(map[string]*matrix.Dense),
		Options: map[string]any{
			"run.id":            uuid.NewString(),
			"crosstalk.version": Version,
		},
	}
	logger.Info("created communication object",
		"genes", genes,
		"cells", cells,
		"sparse", !cfg.DenseStorage,
	)
	return obj, nil
}

func checkLabels(axis string, names []string) error {
	if len(names) == 0 {
		return fmt.Errorf("%w: data: missing %s labels", ErrInvalidInput, axis)
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			return fmt.Errorf("%w: data: empty %s label", ErrInvalidInput, axis)
		}
		if seen[n] {
			return fmt.Errorf("%w: data: duplicate %s label %q", ErrInvalidInput, axis, n)
		}
		seen[n] = true
	}
	return nil
}

// IsMerged reports whether the object was produced by Merge and therefore
// only carries the four per-dataset attribute collections.
func (o *Object) IsMerged() bool { return o.Merged != nil }

// AttachDB sets the ligand-receptor database. The database is immutable once
// attached; re-attachment is refused.
func (o *Object) AttachDB(db *lrdb.Database) error {
	if o.DB != nil {
		return fmt.Errorf("%w: %q", ErrDatabaseAttached, o.DB.Name)
	}
	o.DB = db
	return nil
}

// SetIdents assigns the cell group factor, checking its length against the
// cell count of Data.
func (o *Object) SetIdents(f *Factor) error {
	if o.Data != nil {
		if _, cells := o.Data.Dims(); f.Len() != cells {
			return fmt.Errorf("%w: idents: %d labels for %d cells", ErrDimensionMismatch, f.Len(), cells)
		}
	}
	o.Idents = f
	return nil
}

// SetNet assigns the communication tensor, checking its K dimension against
// the group levels when idents are present.
func (o *Object) SetNet(t *tensor.Comm) error {
	if o.Idents != nil {
		k, _ := t.Dims()
		if k != o.Idents.NLevels() {
			return fmt.Errorf("%w: net: tensor has %d groups, idents has %d levels",
				ErrDimensionMismatch, k, o.Idents.NLevels())
		}
	}
	o.Net = t
	return nil
}

// SetMeta assigns the cell annotation table, checking its row count against
// the cell count of Data.
func (o *Object) SetMeta(m *Metadata) error {
	if o.Data != nil {
		if _, cells := o.Data.Dims(); m.NCells() != cells {
			return fmt.Errorf("%w: metadata: %d rows for %d cells", ErrDimensionMismatch, m.NCells(), cells)
		}
	}
	o.Meta = m
	return nil
}

// Validate runs the best-effort consistency checks across populated
// attributes, reporting the first violation found. Detection is not
// guaranteed by every code path; collaborators own their numeric assumptions.
func (o *Object) Validate() error {
	if o.Data == nil {
		return nil
	}
	_, cells := o.Data.Dims()

	if o.Meta != nil && o.Meta.NCells() != cells {
		return fmt.Errorf("%w: metadata: %d rows for %d cells", ErrDimensionMismatch, o.Meta.NCells(), cells)
	}
	if o.Idents != nil && o.Idents.Len() != cells {
		return fmt.Errorf("%w: idents: %d labels for %d cells", ErrDimensionMismatch, o.Idents.Len(), cells)
	}
	if o.Net != nil && o.Idents != nil {
		if k, _ := o.Net.Dims(); k != o.Idents.NLevels() {
			return fmt.Errorf("%w: net: tensor has %d groups, idents has %d levels",
				ErrDimensionMismatch, k, o.Idents.NLevels())
		}
	}
	if o.Signaling != nil {
		if _, sc := o.Signaling.Dims(); sc != cells {
			return fmt.Errorf("%w: signaling_data: %d cells, data has %d", ErrDimensionMismatch, sc, cells)
		}
	}
	if o.Scaled != nil && o.Signaling != nil {
		sr, sc := o.Signaling.Dims()
		zr, zc := o.Scaled.Dims()
		if zr != sr || zc != sc {
			return fmt.Errorf("%w: scaled_data: %dx%d, signaling_data is %dx%d",
				ErrDimensionMismatch, zr, zc, sr, sc)
		}
	}
	for method, coords := range o.Reductions {
		r, c := coords.Dims()
		if r != cells || c != 2 {
			return fmt.Errorf("%w: reduced_coords[%s]: %dx%d for %d cells",
				ErrDimensionMismatch, method, r, c, cells)
		}
	}
	return nil
}

// Describe renders a one-line human-readable summary: the object kind plus
// gene and cell counts. It tolerates an empty object.
func (o *Object) Describe() string {
	var b strings.Builder
	b.WriteString("CommunicationObject")

	if o.Merged != nil {
		fmt.Fprintf(&b, " (merged view of %d datasets: %s; only net, netP, idents and LR are carried)",
			o.Merged.Len(), strings.Join(o.Merged.DatasetNames(), ", "))
		return b.String()
	}
	if o.Data == nil {
		b.WriteString(" (no expression data)")
		return b.String()
	}
	genes, cells := o.Data.Dims()
	fmt.Fprintf(&b, " with %d genes and %d cells", genes, cells)
	return b.String()
}

func (o *Object) String() string { return o.Describe() }
