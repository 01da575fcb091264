package labarr

import (
	"gopkg.in/yaml.v3"
)

// arraySpec is the serialized form of an Array.
type arraySpec struct {
	Dim    string   `yaml:"dim"`
	Coords []string `yaml:"coords"`
	Values []any    `yaml:"values,omitempty"`
	Slices []*Array `yaml:"slices,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (a *Array) MarshalYAML() (any, error) {
	return arraySpec{
		Dim:    a.dim,
		Coords: a.coords,
		Values: a.values,
		Slices: a.slices,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (a *Array) UnmarshalYAML(node *yaml.Node) error {
	var spec arraySpec

	err := node.Decode(&spec)
	if err != nil {
		return err
	}

	if spec.Slices != nil {
		built, err := Stack(spec.Dim, spec.Coords, spec.Slices)
		if err != nil {
			return err
		}

		*a = *built

		return nil
	}

	built, err := New(spec.Dim, spec.Coords, spec.Values)
	if err != nil {
		return err
	}

	*a = *built

	return nil
}
