package prior_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PeBelle/holopy/prior"
)

func TestUniform_LnProb(t *testing.T) {
	t.Parallel()

	u := prior.NewUniform(0, 2, "")

	assert.InDelta(t, -math.Log(2), u.LnProb(1), 1e-12)
	assert.True(t, math.IsInf(u.LnProb(-0.5), -1))
	assert.True(t, math.IsInf(u.LnProb(2.5), -1))
}

func TestUniform_GuessDefaultsToMidpoint(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, prior.NewUniform(0, 2, "").Guess())
	assert.Equal(t, 0.3, prior.NewUniformWithGuess(0, 2, 0.3, "").Guess())
}

func TestUniform_RejectsEmptyInterval(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { prior.NewUniform(1, 1, "") })
	assert.Panics(t, func() { prior.NewUniform(2, 1, "") })
}

func TestGaussian_LnProb(t *testing.T) {
	t.Parallel()

	g := prior.NewGaussian(0.5, 0.1, "")

	atMean := -0.5*math.Log(2*math.Pi) - math.Log(0.1)
	assert.InDelta(t, atMean, g.LnProb(0.5), 1e-12)
	assert.InDelta(t, atMean-0.5, g.LnProb(0.6), 1e-12)
}

func TestGaussian_RejectsBadSd(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { prior.NewGaussian(0, 0, "") })
	assert.Panics(t, func() { prior.NewGaussian(0, -1, "") })
}

func TestEqualIgnoringName(t *testing.T) {
	t.Parallel()

	u := prior.NewUniform(0, 1, "a")

	assert.True(t, u.EqualIgnoringName(prior.NewUniform(0, 1, "b")))
	assert.False(t, u.EqualIgnoringName(prior.NewUniform(0, 2, "a")))
	assert.False(t, u.EqualIgnoringName(prior.NewGaussian(0.5, 0.1, "a")))

	g := prior.NewGaussian(0.5, 0.1, "")
	assert.True(t, g.EqualIgnoringName(prior.NewGaussian(0.5, 0.1, "other")))
	assert.False(t, g.EqualIgnoringName(prior.NewGaussian(0.5, 0.2, "")))
}

func TestRenamed_CopiesWithoutMutating(t *testing.T) {
	t.Parallel()

	u := prior.NewUniform(0, 1, "old")
	r := u.Renamed("new")

	assert.Equal(t, "old", u.Name())
	assert.Equal(t, "new", r.Name())
	assert.True(t, u.EqualIgnoringName(r))
}

func TestSample_StaysInSupport(t *testing.T) {
	t.Parallel()

	u := prior.NewUniform(3, 4, "")

	rows := prior.GenerateGuess([]prior.Prior{u}, 100, 1, 42)
	for _, row := range rows {
		require.Len(t, row, 1)
		assert.GreaterOrEqual(t, row[0], 3.0)
		assert.Less(t, row[0], 4.0)
	}
}

func TestGenerateGuess_ScalingZeroCollapsesOntoGuess(t *testing.T) {
	t.Parallel()

	priors := []prior.Prior{
		prior.NewUniform(0, 2, ""),
		prior.NewGaussian(5, 1, ""),
	}

	rows := prior.GenerateGuess(priors, 3, 0, 1)
	for _, row := range rows {
		assert.Equal(t, []float64{1, 5}, row)
	}
}

func TestGenerateGuess_Deterministic(t *testing.T) {
	t.Parallel()

	priors := []prior.Prior{prior.NewGaussian(0, 1, "")}

	first := prior.GenerateGuess(priors, 5, 1, 7)
	second := prior.GenerateGuess(priors, 5, 1, 7)

	assert.Equal(t, first, second)
}

func TestComplexPrior_Guess(t *testing.T) {
	t.Parallel()

	c := &prior.ComplexPrior{Real: prior.NewGaussian(1.5, 0.1, ""), Imag: 0.01}

	assert.True(t, c.HasFreePart())
	assert.Equal(t, complex(1.5, 0.01), c.Guess())

	fixed := &prior.ComplexPrior{Real: 1.59, Imag: 0.01}

	assert.False(t, fixed.HasFreePart())
	assert.Equal(t, complex(1.59, 0.01), fixed.Guess())
}

func TestSpec_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []prior.Prior{
		prior.NewUniform(0, 2, "r"),
		prior.NewUniformWithGuess(0, 2, 0.3, ""),
		prior.NewGaussian(1.5, 0.1, "n"),
	} {
		spec, err := prior.NewSpec(p)
		require.NoError(t, err)

		back, err := spec.Prior()
		require.NoError(t, err)

		assert.True(t, p.EqualIgnoringName(back))
		assert.Equal(t, p.Name(), back.Name())
		assert.Equal(t, p.Guess(), back.Guess())
	}
}

func TestSpec_UnknownKind(t *testing.T) {
	t.Parallel()

	_, err := prior.Spec{Kind: "cauchy"}.Prior()
	assert.ErrorIs(t, err, prior.ErrUnknownPriorKind)
}
