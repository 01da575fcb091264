package parmap_test

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/PeBelle/holopy/labarr"
	"github.com/PeBelle/holopy/parmap"
	"github.com/PeBelle/holopy/prior"
)

func reload(t *testing.T, node *parmap.Node) *parmap.Node {
	t.Helper()

	data, err := yaml.Marshal(node)
	require.NoError(t, err)

	t.Log("\n" + string(data))

	var out parmap.Node
	require.NoError(t, yaml.Unmarshal(data, &out))

	return &out
}

func TestYAML_RoundTripReadsIdentically(t *testing.T) {
	t.Parallel()

	m := newMapper()

	layers, err := labarr.New("layer", []string{"core", "shell"},
		[]any{1.59, prior.NewUniform(1.3, 1.7, "")})
	require.NoError(t, err)

	cfg := map[string]any{
		"center": []any{prior.NewUniform(0, 10, ""), 5.5, 7.5},
		"index":  layers,
		"alpha":  0.7,
		"label":  "sphere",
	}

	node := m.Convert(cfg, "")
	values := guesses(m.Registry())

	want, err := parmap.ReadFloats(node, values)
	require.NoError(t, err)

	got, err := parmap.ReadFloats(reload(t, node), values)
	require.NoError(t, err)

	if !assert.Equal(t, want, got) {
		t.Log(spew.Sdump(got))
	}
}

func TestYAML_ComplexConstantWrapped(t *testing.T) {
	t.Parallel()

	node := parmap.Constant(complex(1.59, 0.01))

	data, err := yaml.Marshal(node)
	require.NoError(t, err)
	assert.Contains(t, string(data), "__complex__")

	got := reload(t, node)

	require.Equal(t, parmap.KindConstant, got.Kind)
	assert.Equal(t, complex(1.59, 0.01), got.Value)
}

func TestYAML_FloatSliceConstantWrapped(t *testing.T) {
	t.Parallel()

	node := parmap.Constant([]float64{0.5, 1.5, 2.5})

	got := reload(t, node)

	require.Equal(t, parmap.KindConstant, got.Kind)
	assert.Equal(t, []float64{0.5, 1.5, 2.5}, got.Value)
}

func TestYAML_LabelledArrayConstantWrapped(t *testing.T) {
	t.Parallel()

	a, err := labarr.New("axis", []string{"x", "y"}, []any{0.5, 1.5})
	require.NoError(t, err)

	got := reload(t, parmap.Constant(a))

	require.Equal(t, parmap.KindConstant, got.Kind)

	gotArr, ok := got.Value.(*labarr.Array)
	require.True(t, ok)
	assert.True(t, a.Equal(gotArr))
}

func TestYAML_PlainMappingConstantNotMistakenForWrapper(t *testing.T) {
	t.Parallel()

	node := parmap.Constant(map[string]any{"medium": 1.33, "kind": "water"})

	got := reload(t, node)

	require.Equal(t, parmap.KindConstant, got.Kind)
	assert.Equal(t, map[string]any{"medium": 1.33, "kind": "water"}, got.Value)
}

func TestYAML_SlotZeroSurvives(t *testing.T) {
	t.Parallel()

	got := reload(t, parmap.SlotRef(0))

	require.Equal(t, parmap.KindSlot, got.Kind)
	assert.Equal(t, 0, got.Slot)
}

func TestYAML_RejectsUnknownKind(t *testing.T) {
	t.Parallel()

	var node parmap.Node

	err := yaml.Unmarshal([]byte("kind: wormhole\n"), &node)
	assert.Error(t, err)
}
