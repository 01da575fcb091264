package parmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeBelle/holopy/labarr"
	"github.com/PeBelle/holopy/parmap"
	"github.com/PeBelle/holopy/prior"
)

func guesses(reg *parmap.Registry) []float64 {
	out := make([]float64, 0, reg.Len())
	for _, p := range reg.Slots() {
		out = append(out, p.Guess())
	}

	return out
}

func TestRead_RoundTripAllShapes(t *testing.T) {
	t.Parallel()

	m := newMapper()

	layers, err := labarr.New("layer", []string{"core", "shell"},
		[]any{1.59, prior.NewUniform(1.3, 1.7, "")})
	require.NoError(t, err)

	cfg := map[string]any{
		"center": []any{prior.NewUniform(0, 10, ""), 5.0, 7.0},
		"index":  layers,
		"n":      &prior.ComplexPrior{Real: prior.NewGaussian(1.5, 0.1, ""), Imag: 0.01},
		"alpha":  0.7,
	}

	node := m.Convert(cfg, "")

	got, err := parmap.ReadFloats(node, guesses(m.Registry()))
	require.NoError(t, err)

	rebuilt, ok := got.(map[string]any)
	require.True(t, ok)

	assert.Equal(t, []any{5.0, 5.0, 7.0}, rebuilt["center"])
	assert.Equal(t, 0.7, rebuilt["alpha"])
	assert.Equal(t, complex(1.5, 0.01), rebuilt["n"])

	wantLayers, err := labarr.New("layer", []string{"core", "shell"}, []any{1.59, 1.5})
	require.NoError(t, err)

	gotLayers, ok := rebuilt["index"].(*labarr.Array)
	require.True(t, ok)
	assert.True(t, wantLayers.Equal(gotLayers))
}

func TestRead_StackedArrayRebuilds(t *testing.T) {
	t.Parallel()

	m := newMapper()

	row := func(v any) *labarr.Array {
		a, err := labarr.New("axis", []string{"x", "y"}, []any{v, 0.0})
		require.NoError(t, err)

		return a
	}

	stacked, err := labarr.Stack("point", []string{"p0", "p1"},
		[]*labarr.Array{row(prior.NewUniform(0, 2, "")), row(2.0)})
	require.NoError(t, err)

	node := m.Convert(stacked, "grid")

	got, err := parmap.ReadFloats(node, guesses(m.Registry()))
	require.NoError(t, err)

	want, err := labarr.Stack("point", []string{"p0", "p1"},
		[]*labarr.Array{row(1.0), row(2.0)})
	require.NoError(t, err)

	gotArr, ok := got.(*labarr.Array)
	require.True(t, ok)
	assert.True(t, want.Equal(gotArr))
}

func TestRead_SymbolicComplexKeepsFreePart(t *testing.T) {
	t.Parallel()

	m := newMapper()
	re := prior.NewUniform(1.3, 1.7, "")

	node := m.Convert(&prior.ComplexPrior{Real: re, Imag: 0.01}, "n")

	// Reading with the priors themselves as values keeps the pair symbolic.
	got, err := parmap.Read(node, []any{re})
	require.NoError(t, err)

	pair, ok := got.(*prior.ComplexPrior)
	require.True(t, ok)
	assert.Same(t, re, pair.Real)
	assert.Equal(t, 0.01, pair.Imag)
}

func TestRead_NilValuesReportsMissing(t *testing.T) {
	t.Parallel()

	m := newMapper()
	node := m.Convert(prior.NewUniform(0, 1, ""), "r")

	_, err := parmap.Read(node, nil)

	var missing *parmap.MissingParameterError
	assert.ErrorAs(t, err, &missing)
}

func TestRead_ShortVectorOutOfRange(t *testing.T) {
	t.Parallel()

	m := newMapper()
	node := m.Convert([]any{prior.NewUniform(0, 1, ""), prior.NewUniform(0, 1, "")}, "c")

	_, err := parmap.ReadFloats(node, []float64{0.5})

	var rangeErr *parmap.OutOfRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 1, rangeErr.Slot)
	assert.Equal(t, 1, rangeErr.Len)
}

func TestRetarget_ShiftsSlotsAfterMerge(t *testing.T) {
	t.Parallel()

	m := newMapper()

	cfg := []any{
		prior.NewUniform(0, 1, "a"),
		prior.NewUniform(0, 1, "b"),
		prior.NewUniform(0, 1, "c"),
		prior.NewUniform(0, 1, "d"),
		prior.NewUniform(0, 1, "e"),
	}

	node := m.Convert(cfg, "")

	ren, err := m.Registry().Merge([]int{1, 3}, "bd")
	require.NoError(t, err)

	moved := parmap.Retarget(node, ren)

	slots := func(n *parmap.Node) []int {
		out := make([]int, len(n.Items))
		for i, item := range n.Items {
			out[i] = item.Slot
		}

		return out
	}

	assert.Equal(t, []int{0, 1, 2, 1, 3}, slots(moved))

	// Retargeting is a pure copy; the input recipe is untouched.
	assert.Equal(t, []int{0, 1, 2, 3, 4}, slots(node))
	assert.Equal(t, 3, moved.MaxSlot())
}
