package prior

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Uniform is a flat prior over the closed interval [lower, upper].
type Uniform struct {
	dist  distuv.Uniform
	guess float64
	name  string
}

// NewUniform creates a uniform prior over [lower, upper] with the guess at
// the interval midpoint. Panics if upper <= lower.
func NewUniform(lower, upper float64, name string) *Uniform {
	return NewUniformWithGuess(lower, upper, lower+(upper-lower)/2, name)
}

// NewUniformWithGuess creates a uniform prior with an explicit guess value.
// Panics if upper <= lower.
func NewUniformWithGuess(lower, upper, guess float64, name string) *Uniform {
	if upper <= lower {
		panic(fmt.Sprintf("uniform prior needs lower < upper, got [%v, %v]", lower, upper))
	}

	return &Uniform{
		dist:  distuv.Uniform{Min: lower, Max: upper},
		guess: guess,
		name:  name,
	}
}

// Lower returns the inclusive lower bound.
func (u *Uniform) Lower() float64 { return u.dist.Min }

// Upper returns the inclusive upper bound.
func (u *Uniform) Upper() float64 { return u.dist.Max }

// LnProb returns -log(upper-lower) inside the interval and -Inf outside.
func (u *Uniform) LnProb(v float64) float64 {
	return u.dist.LogProb(v)
}

// Guess returns the starting value.
func (u *Uniform) Guess() float64 { return u.guess }

// Name returns the declared name, empty when unset.
func (u *Uniform) Name() string { return u.name }

// Renamed returns a copy of the prior with the given name.
func (u *Uniform) Renamed(name string) Prior {
	cp := *u
	cp.name = name

	return &cp
}

// Sample draws one value from the interval using rng.
func (u *Uniform) Sample(rng *rand.Rand) float64 {
	return u.dist.Min + rng.Float64()*(u.dist.Max-u.dist.Min)
}

// EqualIgnoringName reports whether other is a uniform prior with the same
// bounds and guess.
func (u *Uniform) EqualIgnoringName(other Prior) bool {
	o, ok := other.(*Uniform)

	return ok && o.dist.Min == u.dist.Min && o.dist.Max == u.dist.Max && o.guess == u.guess
}

// String returns a short description like "Uniform(0, 1)".
func (u *Uniform) String() string {
	return fmt.Sprintf("Uniform(%v, %v)", u.dist.Min, u.dist.Max)
}
