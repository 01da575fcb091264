package prior

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian is a normal prior with the guess at the mean.
type Gaussian struct {
	dist distuv.Normal
	name string
}

// NewGaussian creates a normal prior. Panics if sd <= 0.
func NewGaussian(mean, sd float64, name string) *Gaussian {
	if sd <= 0 {
		panic(fmt.Sprintf("gaussian prior needs sd > 0, got %v", sd))
	}

	return &Gaussian{
		dist: distuv.Normal{Mu: mean, Sigma: sd},
		name: name,
	}
}

// Mean returns the distribution mean.
func (g *Gaussian) Mean() float64 { return g.dist.Mu }

// Sd returns the distribution standard deviation.
func (g *Gaussian) Sd() float64 { return g.dist.Sigma }

// LnProb returns the normal log-density at v.
func (g *Gaussian) LnProb(v float64) float64 {
	return g.dist.LogProb(v)
}

// Guess returns the mean.
func (g *Gaussian) Guess() float64 { return g.dist.Mu }

// Name returns the declared name, empty when unset.
func (g *Gaussian) Name() string { return g.name }

// Renamed returns a copy of the prior with the given name.
func (g *Gaussian) Renamed(name string) Prior {
	cp := *g
	cp.name = name

	return &cp
}

// Sample draws one value from the distribution using rng.
func (g *Gaussian) Sample(rng *rand.Rand) float64 {
	return g.dist.Mu + g.dist.Sigma*rng.NormFloat64()
}

// EqualIgnoringName reports whether other is a gaussian prior with the same
// mean and standard deviation.
func (g *Gaussian) EqualIgnoringName(other Prior) bool {
	o, ok := other.(*Gaussian)

	return ok && o.dist.Mu == g.dist.Mu && o.dist.Sigma == g.dist.Sigma
}

// String returns a short description like "Gaussian(0.5, 0.1)".
func (g *Gaussian) String() string {
	return fmt.Sprintf("Gaussian(%v, %v)", g.dist.Mu, g.dist.Sigma)
}
