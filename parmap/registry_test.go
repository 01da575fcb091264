package parmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeBelle/holopy/parmap"
	"github.com/PeBelle/holopy/prior"
)

func TestRegister_IdentityNotValue(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()

	first := prior.NewUniform(0, 1, "")
	twin := prior.NewUniform(0, 1, "")

	// Two separately constructed but value-equal priors stay distinct.
	assert.Equal(t, 0, reg.Register(first, "x"))
	assert.Equal(t, 1, reg.Register(twin, "y"))

	// The same instance registered twice reuses its slot.
	assert.Equal(t, 0, reg.Register(first, "elsewhere"))
	assert.Equal(t, 2, reg.Len())
}

func TestRegister_NameCollisions(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()

	reg.Register(prior.NewUniform(0, 1, ""), "x")
	reg.Register(prior.NewUniform(0, 1, ""), "x")
	reg.Register(prior.NewUniform(0, 1, ""), "x")

	assert.Equal(t, []string{"x", "x_0", "x_1"}, reg.Names())
}

func TestRegister_PrefersDeclaredName(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()
	reg.Register(prior.NewUniform(0, 1, "radius"), "0.r")

	assert.Equal(t, []string{"radius"}, reg.Names())
}

func TestRegister_SharedPriorDropsGroupPrefix(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()
	shared := prior.NewUniform(0.5, 1.5, "")

	idx := reg.Register(shared, "0:r")
	require.Equal(t, []string{"0:r"}, reg.Names())

	// Seeing the same prior under a second group makes the prefix
	// meaningless; the bare name takes over once it is free.
	assert.Equal(t, idx, reg.Register(shared, "1:r"))
	assert.Equal(t, []string{"r"}, reg.Names())
}

func TestRegister_KeepsPrefixWhenBareNameTaken(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()
	shared := prior.NewUniform(0.5, 1.5, "")

	reg.Register(prior.NewUniform(0, 1, ""), "r")
	reg.Register(shared, "0:r")
	reg.Register(shared, "1:r")

	assert.Equal(t, []string{"r", "0:r"}, reg.Names())
}

func newFiveSlotRegistry(t *testing.T) *parmap.Registry {
	t.Helper()

	reg := parmap.NewRegistry()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		reg.Register(prior.NewUniform(0, 1, ""), name)
	}

	require.Equal(t, 5, reg.Len())

	return reg
}

func TestMerge_ShrinksAndRenumbers(t *testing.T) {
	t.Parallel()

	reg := newFiveSlotRegistry(t)

	ren, err := reg.Merge([]int{1, 3}, "bd")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "bd", "c", "e"}, reg.Names())
	assert.Equal(t, 4, reg.Len())

	assert.Equal(t, parmap.Renumbering{0: 0, 1: 1, 2: 2, 3: 1, 4: 3}, ren)
}

func TestMerge_KeepsNameWhenUnset(t *testing.T) {
	t.Parallel()

	reg := newFiveSlotRegistry(t)

	_, err := reg.Merge([]int{1, 3}, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "e"}, reg.Names())
}

func TestMerge_UnequalPriorsRejected(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()
	reg.Register(prior.NewUniform(0, 1, ""), "a")
	reg.Register(prior.NewUniform(0, 2, ""), "b")

	before := reg.Names()

	_, err := reg.Merge([]int{0, 1}, "ab")

	var tieErr *parmap.TieError
	require.ErrorAs(t, err, &tieErr)

	// Zero mutation on failure.
	assert.Equal(t, before, reg.Names())
	assert.Equal(t, 2, reg.Len())
}

func TestMerge_RenamingNeverBlocksATie(t *testing.T) {
	t.Parallel()

	reg := parmap.NewRegistry()
	reg.Register(prior.NewUniform(0, 1, "alpha"), "")
	reg.Register(prior.NewUniform(0, 1, "beta"), "")

	_, err := reg.Merge([]int{0, 1}, "")
	assert.NoError(t, err)
}

func TestMerge_EmptyAndOutOfRange(t *testing.T) {
	t.Parallel()

	reg := newFiveSlotRegistry(t)

	_, err := reg.Merge(nil, "")
	assert.ErrorIs(t, err, parmap.ErrEmptyTie)

	_, err = reg.Merge([]int{0, 7}, "")

	var rangeErr *parmap.OutOfRangeError
	assert.ErrorAs(t, err, &rangeErr)
}

func TestRestore_Validates(t *testing.T) {
	t.Parallel()

	p := prior.NewUniform(0, 1, "")

	_, err := parmap.Restore([]prior.Prior{p}, []string{"a", "b"})
	assert.Error(t, err)

	_, err = parmap.Restore([]prior.Prior{p, p}, []string{"a", "a"})
	assert.Error(t, err)

	reg, err := parmap.Restore([]prior.Prior{p}, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())

	idx, ok := reg.IndexOf(p)
	assert.True(t, ok)
	assert.Equal(t, 0, idx)
}
