package prior

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPriorKind = errors.New("unknown prior kind")
	ErrUnsupportedPrior = errors.New("prior type has no serializable spec")
)

// Spec is the serializable description of a scalar Prior. It is the form
// priors take inside saved model files; the kind field discriminates the
// concrete type.
type Spec struct {
	Kind  string   `yaml:"kind"`
	Lower *float64 `yaml:"lower,omitempty"`
	Upper *float64 `yaml:"upper,omitempty"`
	Mean  *float64 `yaml:"mean,omitempty"`
	Sd    *float64 `yaml:"sd,omitempty"`
	Guess *float64 `yaml:"guess,omitempty"`
	Name  string   `yaml:"name,omitempty"`
}

// NewSpec builds the Spec for a known prior type.
func NewSpec(p Prior) (Spec, error) {
	switch v := p.(type) {
	case *Uniform:
		lower, upper, guess := v.Lower(), v.Upper(), v.Guess()
		return Spec{Kind: "uniform", Lower: &lower, Upper: &upper, Guess: &guess, Name: v.Name()}, nil

	case *Gaussian:
		mean, sd := v.Mean(), v.Sd()
		return Spec{Kind: "gaussian", Mean: &mean, Sd: &sd, Name: v.Name()}, nil

	default:
		return Spec{}, fmt.Errorf("%w: %T", ErrUnsupportedPrior, p)
	}
}

// Prior reconstructs the concrete prior described by the spec.
func (s Spec) Prior() (Prior, error) {
	switch s.Kind {
	case "uniform":
		if s.Lower == nil || s.Upper == nil {
			return nil, fmt.Errorf("uniform spec needs lower and upper bounds")
		}

		if s.Guess != nil {
			return NewUniformWithGuess(*s.Lower, *s.Upper, *s.Guess, s.Name), nil
		}

		return NewUniform(*s.Lower, *s.Upper, s.Name), nil

	case "gaussian":
		if s.Mean == nil || s.Sd == nil {
			return nil, fmt.Errorf("gaussian spec needs mean and sd")
		}

		return NewGaussian(*s.Mean, *s.Sd, s.Name), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPriorKind, s.Kind)
	}
}
