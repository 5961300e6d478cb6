package comm

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adalundhe/crosstalk/core/lrdb"
	"github.com/adalundhe/crosstalk/core/matrix"
	"github.com/adalundhe/crosstalk/core/tensor"
)

func testCounts(t *testing.T) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDense(
		[]string{"Tgfb1", "Tgfbr1", "Actb"},
		[]string{"c1", "c2", "c3", "c4"},
		[]float64{
			0, 1, 0, 2,
			3, 0, 0, 0,
			5, 5, 5, 5,
		})
	require.NoError(t, err)
	return d
}

func TestCreate_DenseKeepsDataIdentical(t *testing.T) {
	m := testCounts(t)
	obj, err := Create(m, &CreateConfig{DenseStorage: true})
	require.NoError(t, err)

	assert.True(t, matrix.Equal(m, obj.Data), "data must be element- and label-wise identical to the input")
	_, isDense := obj.Data.(*matrix.Dense)
	assert.True(t, isDense)
}

func TestCreate_SparseRoundTrips(t *testing.T) {
	m := testCounts(t)
	obj, err := Create(m, nil)
	require.NoError(t, err)

	s, isSparse := obj.Data.(*matrix.Sparse)
	require.True(t, isSparse, "default storage is sparse")
	assert.True(t, matrix.Equal(m, matrix.ToDense(s)), "sparse conversion must be lossless")
}

func TestCreate_OnlyDataPopulated(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)

	assert.Nil(t, obj.Raw)
	assert.Nil(t, obj.Signaling)
	assert.Nil(t, obj.Scaled)
	assert.Nil(t, obj.Projected)
	assert.Nil(t, obj.Net)
	assert.Nil(t, obj.NetP)
	assert.Nil(t, obj.Meta)
	assert.Nil(t, obj.Idents)
	assert.Nil(t, obj.DB)
	assert.Nil(t, obj.LR)
	assert.Empty(t, obj.VarFeatures)
	assert.Empty(t, obj.Reductions)
	assert.Nil(t, obj.Merged)
	assert.False(t, obj.IsMerged())

	assert.NotEmpty(t, obj.Options["run.id"])
	assert.Equal(t, Version, obj.Options["crosstalk.version"])
}

func TestCreate_InvalidInput(t *testing.T) {
	_, err := Create(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	dup, err := matrix.NewDense([]string{"g1", "g1"}, []string{"c1"}, []float64{1, 2})
	require.NoError(t, err)
	_, err = Create(dup, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	blank, err := matrix.NewDense([]string{"g1"}, []string{""}, []float64{1})
	require.NoError(t, err)
	_, err = Create(blank, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDescribe(t *testing.T) {
	m := testCounts(t)
	obj, err := Create(m, nil)
	require.NoError(t, err)

	r, c := m.Dims()
	desc := obj.Describe()
	assert.Contains(t, desc, "CommunicationObject")
	assert.Contains(t, desc, fmt.Sprintf("%d", r))
	assert.Contains(t, desc, fmt.Sprintf("%d", c))
	assert.Equal(t, desc, obj.String())
}

func TestDescribe_EmptyObject(t *testing.T) {
	var obj Object
	assert.True(t, strings.Contains(obj.Describe(), "no expression data"))
}

func TestAttachDB_Immutable(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)

	db := &lrdb.Database{Name: "mini"}
	require.NoError(t, obj.AttachDB(db))
	assert.ErrorIs(t, obj.AttachDB(db), ErrDatabaseAttached)
}

func TestSetIdents_LengthCheck(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)

	require.NoError(t, obj.SetIdents(NewFactor([]string{"T", "B", "T", "B"})))
	assert.Equal(t, []string{"T", "B"}, obj.Idents.Levels())

	err = obj.SetIdents(NewFactor([]string{"T", "B"}))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestSetNet_GroupCheck(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)
	require.NoError(t, obj.SetIdents(NewFactor([]string{"T", "B", "T", "B"})))

	good, err := tensor.New([]string{"T", "B"}, []string{"p1"})
	require.NoError(t, err)
	require.NoError(t, obj.SetNet(good))

	bad, err := tensor.New([]string{"T", "B", "NK"}, []string{"p1"})
	require.NoError(t, err)
	assert.ErrorIs(t, obj.SetNet(bad), ErrDimensionMismatch)
}

func TestSetMeta_RowCheck(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)

	meta := NewMetadata([]string{"c1", "c2", "c3", "c4"})
	require.NoError(t, meta.AddColumn("sample", []string{"s1", "s1", "s2", "s2"}))
	require.NoError(t, obj.SetMeta(meta))

	short := NewMetadata([]string{"c1"})
	assert.ErrorIs(t, obj.SetMeta(short), ErrDimensionMismatch)
}

func TestValidate(t *testing.T) {
	obj, err := Create(testCounts(t), nil)
	require.NoError(t, err)
	require.NoError(t, obj.Validate())

	// A reduction with the wrong row count is caught.
	coords, err := matrix.NewDense([]string{"c1", "c2"}, []string{"x", "y"}, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	obj.Reductions["umap"] = coords
	assert.ErrorIs(t, obj.Validate(), ErrDimensionMismatch)
}

func TestMetadata_Columns(t *testing.T) {
	meta := NewMetadata([]string{"c1", "c2"})
	require.NoError(t, meta.AddColumn("batch", []string{"b1", "b2"}))
	assert.ErrorIs(t, meta.AddColumn("bad", []string{"x"}), ErrDimensionMismatch)

	col, ok := meta.Column("batch")
	require.True(t, ok)
	assert.Equal(t, []string{"b1", "b2"}, col)
	assert.Equal(t, []string{"batch"}, meta.ColumnNames())
}

func TestFactor(t *testing.T) {
	f := NewFactor([]string{"T", "B", "T", "NK", "B"})
	assert.Equal(t, 5, f.Len())
	assert.Equal(t, []string{"T", "B", "NK"}, f.Levels())
	assert.Equal(t, 3, f.NLevels())
	assert.Equal(t, []int{2, 2, 1}, f.Counts())
}
