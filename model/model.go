// Package model computes probabilities that observed data could be
// explained by a set of scatterer and observation parameters. It owns one
// parameter registry and one Map per logical sub-configuration (scatterer,
// optics, and for some variants model and theory), built once at
// construction and read on every objective-function call.
package model

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/PeBelle/holopy/parmap"
	"github.com/PeBelle/holopy/prior"
)

// OpticsKeys are the observation quantities a model resolves, in canonical
// order. noise_sd is last: it feeds the likelihood, not the forward model.
var OpticsKeys = []string{"medium_index", "illum_wavelen", "illum_polarization", "noise_sd"}

// NoisePolicy resolves the noise level when neither the model nor the
// companion data supplies one.
type NoisePolicy func(priors []prior.Prior) (float64, error)

// DefaultNoisePolicy allows a unit noise level only when every free
// parameter carries a uniform prior; any other mix demands an explicit
// noise_sd.
func DefaultNoisePolicy(priors []prior.Prior) (float64, error) {
	for _, p := range priors {
		if _, ok := p.(*prior.Uniform); !ok {
			return 0, &parmap.MissingParameterError{Key: "noise_sd for non-uniform priors"}
		}
	}

	return 1, nil
}

// Schema supplies fallback observation metadata from a companion data
// source, typically the detector the data was recorded on.
type Schema interface {
	OpticsValue(key string) (any, bool)
}

// Config carries the optional observation settings for a model.
type Config struct {
	// NoiseSd, MediumIndex, IllumWavelen and IllumPolarization may each be
	// a fixed value, a prior, or nil to defer to the data's metadata.
	NoiseSd           any
	MediumIndex       any
	IllumWavelen      any
	IllumPolarization any

	// Theory names the scattering theory the forward evaluator should use.
	Theory string

	// Constraints veto scatterer configurations ahead of evaluation.
	Constraints []Constraint

	// NoisePolicy overrides DefaultNoisePolicy.
	NoisePolicy NoisePolicy

	// Logger defaults to slog.Default.
	Logger *slog.Logger
}

// Model maps a nested scatterer-plus-optics configuration onto a flat
// parameter vector and evaluates probabilities over it.
//
// Concurrent reads (the Ln* methods, ScattererFromParameters) are safe once
// construction and tying are done; AddTie mutates shared state and needs
// exclusive access.
type Model struct {
	registry    *parmap.Registry
	mapper      *parmap.Mapper
	maps        map[string]*parmap.Node
	scatterer   Scatterer
	theory      string
	constraints []Constraint
	noisePolicy NoisePolicy
	forward     ForwardFunc
	logger      *slog.Logger
}

// New builds a model for the given scatterer, constructing the registry and
// the scatterer/optics Maps in a single recursive pass.
func New(scatterer Scatterer, cfg Config) (*Model, error) {
	if scatterer == nil {
		return nil, errors.New("model needs a scatterer")
	}

	m := &Model{
		registry:    parmap.NewRegistry(),
		scatterer:   scatterer,
		theory:      cfg.Theory,
		constraints: cfg.Constraints,
		noisePolicy: cfg.NoisePolicy,
		logger:      cfg.Logger,
	}

	if m.noisePolicy == nil {
		m.noisePolicy = DefaultNoisePolicy
	}

	if m.logger == nil {
		m.logger = slog.Default()
	}

	optics := map[string]any{
		"medium_index":       cfg.MediumIndex,
		"illum_wavelen":      cfg.IllumWavelen,
		"illum_polarization": cfg.IllumPolarization,
		"noise_sd":           cfg.NoiseSd,
	}

	m.mapper = parmap.NewMapper(m.registry)
	m.maps = map[string]*parmap.Node{
		"scatterer": m.mapper.Convert(scatterer.Parameters(), ""),
		"optics":    m.mapper.Convert(optics, ""),
	}

	return m, nil
}

// Parameters returns the model's free parameters by name.
func (m *Model) Parameters() map[string]prior.Prior {
	names := m.registry.Names()

	out := make(map[string]prior.Prior, len(names))
	for i, name := range names {
		out[name] = m.registry.At(i)
	}

	return out
}

// ParameterNames returns the slot names in slot order. Callers must requery
// after any tie: tying renumbers slots.
func (m *Model) ParameterNames() []string {
	return m.registry.Names()
}

// InitialGuess returns each parameter's guess in slot order.
func (m *Model) InitialGuess() []float64 {
	slots := m.registry.Slots()

	out := make([]float64, len(slots))
	for i, p := range slots {
		out[i] = p.Guess()
	}

	return out
}

// GenerateGuess draws n starting vectors from the priors, pulled toward the
// guesses by scaling.
func (m *Model) GenerateGuess(n int, scaling float64, seed int64) [][]float64 {
	return prior.GenerateGuess(m.registry.Slots(), n, scaling, seed)
}

// AddTie declares the named parameters equal, collapsing their slots into
// one and rewriting every owned Map consistently. All names must be present
// (*parmap.UnknownParameterError otherwise) and the underlying priors must
// match up to renaming (*parmap.TieError). Nothing is mutated on failure.
func (m *Model) AddTie(names []string, newName string) error {
	if len(names) == 0 {
		return parmap.ErrEmptyTie
	}

	indices := make([]int, len(names))
	for i, name := range names {
		idx, ok := m.registry.IndexOfName(name)
		if !ok {
			return &parmap.UnknownParameterError{Name: name}
		}

		indices[i] = idx
	}

	ren, err := m.registry.Merge(indices, newName)
	if err != nil {
		return err
	}

	for key, node := range m.maps {
		m.maps[key] = parmap.Retarget(node, ren)
	}

	m.logger.Debug("tied parameters",
		"names", names, "new_name", newName, "slots", m.registry.Len())

	return nil
}

// ScattererFromParameters rebuilds the concrete scatterer from a flat
// vector of parameter values in slot order.
func (m *Model) ScattererFromParameters(pars []float64) (Scatterer, error) {
	rebuilt, err := parmap.ReadFloats(m.maps["scatterer"], pars)
	if err != nil {
		return nil, err
	}

	params, ok := rebuilt.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scatterer map rebuilt a %T, expected a parameter dictionary", rebuilt)
	}

	return m.scatterer.FromParameters(params)
}

// Scatterer returns the scatterer with priors still in place of free values.
func (m *Model) Scatterer() (Scatterer, error) {
	rebuilt, err := parmap.Read(m.maps["scatterer"], m.symbolicValues())
	if err != nil {
		return nil, err
	}

	params, ok := rebuilt.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("scatterer map rebuilt a %T, expected a parameter dictionary", rebuilt)
	}

	return m.scatterer.FromParameters(params)
}

// EnsureValuesAreOrdered accepts either an already ordered vector or a
// name-to-value map and returns the ordered vector. The map form exists for
// callers holding named results; ordered vectors are the primary interface.
func (m *Model) EnsureValuesAreOrdered(byName map[string]float64) ([]float64, error) {
	names := m.registry.Names()

	out := make([]float64, len(names))
	for i, name := range names {
		v, ok := byName[name]
		if !ok {
			return nil, &parmap.MissingParameterError{Key: name}
		}

		out[i] = v
	}

	m.logger.Debug("reordered named parameter values", "count", len(out))

	return out, nil
}

// symbolicValues returns the slot priors themselves as the values vector, so
// Maps can be read before any concrete assignment.
func (m *Model) symbolicValues() []any {
	slots := m.registry.Slots()

	out := make([]any, len(slots))
	for i, p := range slots {
		out[i] = p
	}

	return out
}

func boxFloats(pars []float64) []any {
	out := make([]any, len(pars))
	for i, v := range pars {
		out[i] = v
	}

	return out
}

// parmapReadDict reads a Map expected to rebuild a string-keyed dictionary.
func parmapReadDict(node *parmap.Node, values []any) (map[string]any, error) {
	rebuilt, err := parmap.Read(node, values)
	if err != nil {
		return nil, err
	}

	mapped, ok := rebuilt.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("map rebuilt a %T, expected a dictionary", rebuilt)
	}

	return mapped, nil
}

// findOptics resolves the forward-model optics quantities from the mapped
// parameters, falling back to the companion schema per key. noise_sd is
// excluded; findNoise handles it.
func (m *Model) findOptics(values []any, schema Schema) (map[string]any, error) {
	mapped, err := parmapReadDict(m.maps["optics"], values)
	if err != nil {
		return nil, err
	}

	out := make(map[string]any, len(OpticsKeys)-1)

	for _, key := range OpticsKeys[:len(OpticsKeys)-1] {
		if v, ok := mapped[key]; ok && v != nil {
			out[key] = v
			continue
		}

		if schema != nil {
			if v, ok := schema.OpticsValue(key); ok && v != nil {
				out[key] = v
				continue
			}
		}

		return nil, &parmap.MissingParameterError{Key: key}
	}

	return out, nil
}

// findNoise resolves the noise level for residual calculations: the mapped
// noise_sd when present, the schema's otherwise, and failing both the
// model's noise policy.
func (m *Model) findNoise(values []any, schema Schema) (any, error) {
	mapped, err := parmapReadDict(m.maps["optics"], values)
	if err != nil {
		return nil, err
	}

	val := mapped["noise_sd"]
	if val == nil && schema != nil {
		if v, ok := schema.OpticsValue("noise_sd"); ok {
			val = v
		}
	}

	if val == nil {
		return m.noisePolicy(m.registry.Slots())
	}

	return val, nil
}
