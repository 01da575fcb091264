package model

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/PeBelle/holopy/parmap"
	"github.com/PeBelle/holopy/prior"
)

// modelFile is the on-disk form of a model: the recipe trees plus the
// priors and names backing their slots. Forward evaluators are code and are
// deliberately not serialized; attach one after loading.
type modelFile struct {
	Theory     string                  `yaml:"theory,omitempty"`
	Parameters []prior.Spec            `yaml:"parameters"`
	Names      []string                `yaml:"parameter_names"`
	Maps       map[string]*parmap.Node `yaml:"maps"`
}

// Marshal serializes the model to YAML.
func (m *Model) Marshal() ([]byte, error) {
	slots := m.registry.Slots()

	specs := make([]prior.Spec, len(slots))
	for i, p := range slots {
		spec, err := prior.NewSpec(p)
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", m.registry.NameAt(i), err)
		}

		specs[i] = spec
	}

	return yaml.Marshal(modelFile{
		Theory:     m.theory,
		Parameters: specs,
		Names:      m.registry.Names(),
		Maps:       m.maps,
	})
}

// WriteFile writes the model to the given path.
func (m *Model) WriteFile(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write model file %s: %w", path, err)
	}

	m.logger.Debug("saved model", "path", path, "slots", m.registry.Len())

	return nil
}

// Parse parses YAML data into a Model. The loaded model evaluates its
// scatterer as a raw parameter tree; call UseScatterer to attach a concrete
// factory, and set a forward evaluator before computing likelihoods.
func Parse(data []byte) (*Model, error) {
	var mf modelFile

	err := yaml.Unmarshal(data, &mf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse model YAML: %w", err)
	}

	slots := make([]prior.Prior, len(mf.Parameters))
	for i, spec := range mf.Parameters {
		p, err := spec.Prior()
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", i, err)
		}

		slots[i] = p
	}

	registry, err := parmap.Restore(slots, mf.Names)
	if err != nil {
		return nil, err
	}

	m := &Model{
		registry:    registry,
		mapper:      parmap.NewMapper(registry),
		maps:        mf.Maps,
		theory:      mf.Theory,
		noisePolicy: DefaultNoisePolicy,
		logger:      slog.Default(),
	}

	if m.maps == nil {
		m.maps = map[string]*parmap.Node{}
	}

	scattererMap, ok := m.maps["scatterer"]
	if !ok {
		return nil, &parmap.MissingParameterError{Key: "scatterer map"}
	}

	params, err := parmapReadDict(scattererMap, m.symbolicValues())
	if err != nil {
		return nil, err
	}

	m.scatterer = &RawScatterer{Params: params}

	return m, nil
}

// LoadFile loads and parses a saved model from the given path.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	return Parse(data)
}

// UseScatterer attaches a concrete scatterer factory to a loaded model,
// replacing the raw parameter-tree placeholder.
func (m *Model) UseScatterer(s Scatterer) {
	m.scatterer = s
}

// UseForward attaches a forward evaluator, required before likelihood or
// posterior computations.
func (m *Model) UseForward(f ForwardFunc) {
	m.forward = f
}
