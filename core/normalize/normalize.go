// Package normalize implements the collaborator routines that populate the
// derived expression slots of a communication object: library-size
// normalization, restriction to signaling genes, scaling, and projection
// smoothing.
//
// Update contract: every routine mutates the object it is given in place and
// returns only an error; cell-label alignment with the data slot is always
// preserved. The statistical inference that fills the communication tensor is
// a separate collaborator and is not part of this package.
package normalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/adalundhe/crosstalk/core/comm"
	"github.com/adalundhe/crosstalk/core/matrix"
)

var ErrNoData = errors.New("object has no expression data")

// DefaultScaleFactor matches the usual counts-per-10k convention.
const DefaultScaleFactor = 10000

// softPower is the soft-thresholding exponent applied to the gene-gene
// adjacency used by Project.
const softPower = 2.0

// LibrarySize normalizes counts by column (cell) totals, multiplies by
// scaleFactor, and applies log1p. The pre-normalization matrix is preserved
// in Raw and the result replaces Data, keeping Data's storage kind.
func LibrarySize(o *comm.Object, scaleFactor float64) error {
	if o.Data == nil {
		return fmt.Errorf("data: %w", ErrNoData)
	}
	if scaleFactor <= 0 {
		scaleFactor = DefaultScaleFactor
	}

	src := matrix.ToDense(o.Data)
	genes, cells := src.Dims()

	colSums := make([]float64, cells)
	for j := 0; j < cells; j++ {
		var sum float64
		for i := 0; i < genes; i++ {
			if v := src.At(i, j); !math.IsNaN(v) {
				sum += v
			}
		}
		if sum == 0 {
			sum = 1 // empty cell: leave its zeros untouched
		}
		colSums[j] = sum
	}

	out := src.Clone()
	for i := 0; i < genes; i++ {
		row := out.Row(i)
		vek.Div_Inplace(row, colSums)
		vek.MulNumber_Inplace(row, scaleFactor)
		for j, v := range row {
			out.Set(i, j, math.Log1p(v))
		}
	}

	normalized, err := sameStorage(o.Data, out)
	if err != nil {
		return err
	}
	o.Raw = o.Data
	o.Data = normalized
	return nil
}

// RestrictSignaling subsets Data to the genes referenced by the attached
// ligand-receptor database and stores the result in Signaling, keeping Data's
// storage kind and row order.
func RestrictSignaling(o *comm.Object) error {
	if o.Data == nil {
		return fmt.Errorf("data: %w", ErrNoData)
	}
	if o.DB == nil {
		return fmt.Errorf("ligand_receptor_db: %w", comm.ErrMissingAttribute)
	}

	wanted := make(map[string]bool)
	for _, g := range o.DB.Genes() {
		wanted[g] = true
	}

	src := matrix.ToDense(o.Data)

	var (
		rows []string
		data []float64
	)
	for i, gene := range src.RowNames() {
		if !wanted[gene] {
			continue
		}
		rows = append(rows, gene)
		data = append(data, src.Row(i)...)
	}
	if len(rows) == 0 {
		return fmt.Errorf("signaling_data: %w: no database gene is present in data", comm.ErrDimensionMismatch)
	}

	sub, err := matrix.NewDense(rows, src.ColNames(), data)
	if err != nil {
		return fmt.Errorf("signaling_data: %w", err)
	}
	sig, err := sameStorage(o.Data, sub)
	if err != nil {
		return err
	}
	o.Signaling = sig
	return nil
}

// Scale z-scores each gene of Signaling and stores the dense result in
// Scaled. Genes with zero variance scale to all zeros.
func Scale(o *comm.Object) error {
	if o.Signaling == nil {
		return fmt.Errorf("signaling_data: %w", comm.ErrMissingAttribute)
	}

	src := matrix.ToDense(o.Signaling)
	genes, _ := src.Dims()

	out := src.Clone()
	for i := 0; i < genes; i++ {
		row := out.Row(i)
		mean := stat.Mean(row, nil)
		sd := stat.StdDev(row, nil)
		for j, v := range row {
			if sd == 0 || math.IsNaN(sd) {
				out.Set(i, j, 0)
				continue
			}
			out.Set(i, j, (v-mean)/sd)
		}
	}
	o.Scaled = out
	return nil
}

// Project smooths Signaling over a gene-gene similarity network and stores
// the result in Projected, with the same dimensions and labels as Signaling.
// The network is the soft-thresholded signed adjacency of gene-gene Pearson
// correlations; alpha in [0,1] is the smoothing weight (0 leaves the data
// unchanged).
func Project(o *comm.Object, alpha float64) error {
	if o.Signaling == nil {
		return fmt.Errorf("signaling_data: %w", comm.ErrMissingAttribute)
	}
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("projected_data: smoothing weight %v outside [0,1]", alpha)
	}

	src := matrix.ToDense(o.Signaling)
	genes, cells := src.Dims()

	rows := make([][]float64, genes)
	for i := 0; i < genes; i++ {
		rows[i] = src.Row(i)
	}

	adj := adjacency(rows)
	rowNormalize(adj, genes)

	smoothed := mat.NewDense(genes, cells, nil)
	smoothed.Mul(adj, src.Mat())

	out := src.Clone()
	for i := 0; i < genes; i++ {
		for j := 0; j < cells; j++ {
			out.Set(i, j, (1-alpha)*src.At(i, j)+alpha*smoothed.At(i, j))
		}
	}
	proj, err := sameStorage(o.Signaling, out)
	if err != nil {
		return err
	}
	o.Projected = proj
	return nil
}

// adjacency builds the signed soft-thresholded gene-gene network: correlation
// mapped from [-1,1] to [0,1], raised to softPower, zero diagonal.
func adjacency(rows [][]float64) *mat.Dense {
	genes := len(rows)
	adj := mat.NewDense(genes, genes, nil)
	for i := 0; i < genes; i++ {
		for j := i + 1; j < genes; j++ {
			corr := stat.Correlation(rows[i], rows[j], nil)
			if math.IsNaN(corr) {
				continue
			}
			s := (corr + 1) / 2
			if s < 0 {
				s = 0
			} else if s > 1 {
				s = 1
			}
			w := math.Pow(s, softPower)
			adj.Set(i, j, w)
			adj.Set(j, i, w)
		}
	}
	return adj
}

// rowNormalize scales each adjacency row to sum to one. Isolated genes keep a
// self-loop so smoothing leaves them in place.
func rowNormalize(adj *mat.Dense, genes int) {
	for i := 0; i < genes; i++ {
		row := adj.RawRowView(i)
		sum := vek.Sum(row)
		if sum == 0 {
			adj.Set(i, i, 1)
			continue
		}
		vek.DivNumber_Inplace(row, sum)
	}
}

// sameStorage returns d in the storage kind of as.
func sameStorage(as matrix.Matrix, d *matrix.Dense) (matrix.Matrix, error) {
	if _, ok := as.(*matrix.Sparse); ok {
		return matrix.ToSparse(d)
	}
	return d, nil
}
