// Package prior defines the free stochastic parameters that a model exposes
// for inference: scalar priors with a log-density, a starting guess, and an
// optional stable name, plus a complex-valued composite built from two
// scalar parts.
//
// Identity semantics are load-bearing for the mapping engine: the same
// *Uniform placed at two positions in a configuration is one shared
// parameter, while two separately constructed but value-equal priors stay
// distinct. Equality checks therefore exist only as explicit methods and
// never drive deduplication.
package prior

import (
	"math/rand"
)

// Prior is a free scalar model parameter.
type Prior interface {
	// LnProb returns the log-density of the prior at v.
	LnProb(v float64) float64

	// Guess returns a representative starting value.
	Guess() float64

	// Name returns the declared parameter name, empty when unset.
	Name() string

	// Renamed returns a copy of the prior carrying the given name.
	Renamed(name string) Prior

	// Sample draws one value from the prior using rng.
	Sample(rng *rand.Rand) float64

	// EqualIgnoringName reports whether other describes the same
	// distribution, disregarding names on both sides. Renaming alone must
	// never block a tie.
	EqualIgnoringName(other Prior) bool
}

// GenerateGuess draws n starting vectors for the given priors. Each draw is
// pulled toward the prior's guess: scaling 1 keeps the raw sample, scaling 0
// collapses onto the guess.
func GenerateGuess(priors []Prior, n int, scaling float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))

	out := make([][]float64, n)
	for i := range out {
		row := make([]float64, len(priors))
		for j, p := range priors {
			row[j] = scaling*p.Sample(rng) + (1-scaling)*p.Guess()
		}

		out[i] = row
	}

	return out
}
