package tensor

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SumsByPathway(t *testing.T) {
	tn, err := New([]string{"A", "B"}, []string{"p1", "p2", "p3"})
	require.NoError(t, err)

	// p1 and p2 share a pathway, p3 has its own.
	tn.Set(0, 1, 0, 0.2)
	tn.Set(0, 1, 1, 0.3)
	tn.Set(0, 1, 2, 0.7)

	pathways := map[string]string{"p1": "TGFb", "p2": "TGFb", "p3": "WNT"}
	set := Aggregate(tn, func(pair string) (string, bool) {
		pw, ok := pathways[pair]
		return pw, ok
	})

	assert.Equal(t, []string{"TGFb", "WNT"}, set.Names())

	tgfb, ok := set.Get("TGFb")
	require.True(t, ok)
	assert.InDelta(t, 0.5, tgfb.At(0, 1), 1e-12)
	assert.Equal(t, 0.0, tgfb.At(1, 0))

	wnt, ok := set.Get("WNT")
	require.True(t, ok)
	assert.Equal(t, 0.7, wnt.At(0, 1))
}

func TestAggregate_SkipsNaN(t *testing.T) {
	tn, err := New([]string{"A", "B"}, []string{"p1", "p2"})
	require.NoError(t, err)

	tn.Set(0, 0, 0, math.NaN())
	tn.Set(0, 0, 1, 0.4)
	tn.Set(1, 1, 0, math.NaN())
	tn.Set(1, 1, 1, math.NaN())

	set := Aggregate(tn, func(string) (string, bool) { return "TGFb", true })
	agg, ok := set.Get("TGFb")
	require.True(t, ok)

	assert.Equal(t, 0.4, agg.At(0, 0), "NaN entries are excluded from sums")
	assert.True(t, math.IsNaN(agg.At(1, 1)), "all-NaN cells stay NaN")
	assert.Equal(t, 0.0, agg.At(0, 1))
}

func TestAggregate_UnknownPairsSkipped(t *testing.T) {
	tn, err := New([]string{"A"}, []string{"p1", "p2"})
	require.NoError(t, err)
	tn.Set(0, 0, 0, 1)
	tn.Set(0, 0, 1, 1)

	set := Aggregate(tn, func(pair string) (string, bool) {
		if pair == "p1" {
			return "TGFb", true
		}
		return "", false
	})
	require.Equal(t, 1, set.Len())
	agg, _ := set.Get("TGFb")
	assert.Equal(t, 1.0, agg.At(0, 0))
}
