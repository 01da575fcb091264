package model

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is observed data plus companion metadata. The metadata doubles as
// the fallback Schema for optics quantities the model leaves unmapped.
type Data struct {
	Values   []float64
	Metadata map[string]any
}

// OpticsValue implements Schema from the metadata.
func (d *Data) OpticsValue(key string) (any, bool) {
	v, ok := d.Metadata[key]
	return v, ok
}

// Subset returns a copy of the data restricted to n randomly chosen points.
// The full data is returned when n is zero, negative, or not smaller than
// the data size.
func (d *Data) Subset(n int) *Data {
	if n <= 0 || n >= len(d.Values) {
		return d
	}

	picked := rand.Perm(len(d.Values))[:n]

	values := make([]float64, n)
	for i, idx := range picked {
		values[i] = d.Values[idx]
	}

	return &Data{Values: values, Metadata: d.Metadata}
}

// ForwardFunc computes the forward model for a rebuilt scatterer over the
// detector geometry described by data. theory carries variant-specific
// settings such as a lens angle and may be nil; scaling multiplies the
// result. The engine is agnostic to what the evaluator computes.
type ForwardFunc func(data *Data, scatterer Scatterer, optics map[string]any, theory map[string]any, scaling float64) ([]float64, error)

// LnPrior computes the log-prior probability of pars. Parameter values that
// describe an invalid scatterer or violate a constraint yield -Inf rather
// than an error; the prior forbidding a region is not a failure.
func (m *Model) LnPrior(pars []float64) (float64, error) {
	scatterer, err := m.ScattererFromParameters(pars)
	if err != nil {
		var invalid *InvalidScattererError
		if errors.As(err, &invalid) {
			return math.Inf(-1), nil
		}

		return 0, err
	}

	for _, constraint := range m.constraints {
		if !constraint.Check(scatterer) {
			return math.Inf(-1), nil
		}
	}

	total := 0.0
	for i, p := range m.registry.Slots() {
		if i >= len(pars) {
			return 0, fmt.Errorf("log-prior needs %d parameter values, got %d", m.registry.Len(), len(pars))
		}

		total += p.LnProb(pars[i])
	}

	return total, nil
}

// LnLike computes the Gaussian log-likelihood of pars given data.
func (m *Model) LnLike(pars []float64, data *Data) (float64, error) {
	values := boxFloats(pars)

	noise, err := m.findNoise(values, data)
	if err != nil {
		return 0, err
	}

	residuals, err := m.residuals(pars, data, noise)
	if err != nil {
		return 0, err
	}

	logNoise, err := meanLogNoise(noise)
	if err != nil {
		return 0, err
	}

	n := float64(len(data.Values))

	return -n/2*math.Log(2*math.Pi) - n*logNoise - 0.5*floats.Dot(residuals, residuals), nil
}

// LnPosterior computes the log-posterior probability of pars given data,
// short-circuiting on a forbidding prior so the forward model is never run
// where it could not matter. pixels > 0 evaluates against a random subset
// of the data.
func (m *Model) LnPosterior(pars []float64, data *Data, pixels int) (float64, error) {
	lnprior, err := m.LnPrior(pars)
	if err != nil {
		return 0, err
	}

	// Priors often forbid regions, like negative radii, that the forward
	// model would fail to compute at all.
	if math.IsInf(lnprior, -1) {
		return lnprior, nil
	}

	if pixels > 0 {
		data = data.Subset(pixels)
	}

	lnlike, err := m.LnLike(pars, data)
	if err != nil {
		return 0, err
	}

	return lnprior + lnlike, nil
}

// Forward computes the simulated signal for pars over data's geometry using
// the attached evaluator.
func (m *Model) Forward(pars []float64, data *Data) ([]float64, error) {
	if m.forward == nil {
		return nil, errors.New("model has no forward evaluator")
	}

	values := boxFloats(pars)

	optics, err := m.findOptics(values, data)
	if err != nil {
		return nil, err
	}

	scatterer, err := m.ScattererFromParameters(pars)
	if err != nil {
		return nil, err
	}

	theory, err := m.theoryParams(values)
	if err != nil {
		return nil, err
	}

	scaling, err := m.scaling(values)
	if err != nil {
		return nil, err
	}

	return m.forward(data, scatterer, optics, theory, scaling)
}

func (m *Model) residuals(pars []float64, data *Data, noise any) ([]float64, error) {
	simulated, err := m.Forward(pars, data)
	if err != nil {
		return nil, err
	}

	if len(simulated) != len(data.Values) {
		return nil, fmt.Errorf("forward model produced %d values for %d data points", len(simulated), len(data.Values))
	}

	out := make([]float64, len(simulated))
	floats.SubTo(out, simulated, data.Values)

	switch sd := noise.(type) {
	case float64:
		floats.Scale(1/sd, out)
	case []float64:
		if len(sd) != len(out) {
			return nil, fmt.Errorf("noise vector has %d entries for %d data points", len(sd), len(out))
		}

		floats.Div(out, sd)
	default:
		return nil, fmt.Errorf("unsupported noise value of type %T", noise)
	}

	return out, nil
}

// scaling resolves the variant's alpha from the model map, defaulting to 1.
func (m *Model) scaling(values []any) (float64, error) {
	node, ok := m.maps["model"]
	if !ok {
		return 1, nil
	}

	rebuilt, err := parmapReadDict(node, values)
	if err != nil {
		return 0, err
	}

	alpha, ok := rebuilt["alpha"].(float64)
	if !ok {
		return 0, fmt.Errorf("model map resolved alpha to %T, expected float64", rebuilt["alpha"])
	}

	return alpha, nil
}

// theoryParams resolves variant-specific theory settings, nil when absent.
func (m *Model) theoryParams(values []any) (map[string]any, error) {
	node, ok := m.maps["theory"]
	if !ok {
		return nil, nil
	}

	return parmapReadDict(node, values)
}

func meanLogNoise(noise any) (float64, error) {
	switch sd := noise.(type) {
	case float64:
		return math.Log(sd), nil

	case []float64:
		logs := make([]float64, len(sd))
		for i, v := range sd {
			logs[i] = math.Log(v)
		}

		return stat.Mean(logs, nil), nil

	default:
		return 0, fmt.Errorf("unsupported noise value of type %T", noise)
	}
}
