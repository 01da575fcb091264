package parmap

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/PeBelle/holopy/labarr"
)

// Wrapper keys marking constant payload types YAML has no native form for.
// A genuine user constant is never a single-entry map with one of these
// keys; anything else passes through opaquely.
const (
	complexKey = "__complex__"
	floatsKey  = "__floats__"
	labarrKey  = "__labarr__"
)

// nodeSpec is the serialized form of a Node. Kind and op travel as their
// string names so saved recipes stay readable and stable across versions.
type nodeSpec struct {
	Kind   string   `yaml:"kind"`
	Value  any      `yaml:"value,omitempty"`
	Slot   *int     `yaml:"slot,omitempty"`
	Items  []*Node  `yaml:"items,omitempty"`
	Op     string   `yaml:"op,omitempty"`
	Keys   []string `yaml:"keys,omitempty"`
	Dim    string   `yaml:"dim,omitempty"`
	Coords []string `yaml:"coords,omitempty"`
	Args   []*Node  `yaml:"args,omitempty"`
}

// MarshalYAML implements yaml.Marshaler.
func (n *Node) MarshalYAML() (any, error) {
	spec := nodeSpec{Kind: n.Kind.String()}

	switch n.Kind {
	case KindConstant:
		spec.Value = encodeConstant(n.Value)

	case KindSlot:
		slot := n.Slot
		spec.Slot = &slot

	case KindSequence:
		spec.Items = n.Items

	case KindApply:
		spec.Op = n.Op.String()
		spec.Keys = n.Keys
		spec.Dim = n.Dim
		spec.Coords = n.Coords
		spec.Args = n.Args

	default:
		return nil, fmt.Errorf("cannot serialize node of kind %s", n.Kind)
	}

	return spec, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (n *Node) UnmarshalYAML(node *yaml.Node) error {
	var spec struct {
		Kind   string     `yaml:"kind"`
		Value  yaml.Node  `yaml:"value"`
		Slot   *int       `yaml:"slot"`
		Items  []*Node    `yaml:"items"`
		Op     string     `yaml:"op"`
		Keys   []string   `yaml:"keys"`
		Dim    string     `yaml:"dim"`
		Coords []string   `yaml:"coords"`
		Args   []*Node    `yaml:"args"`
	}

	err := node.Decode(&spec)
	if err != nil {
		return err
	}

	kind := ParseNodeKind(spec.Kind)

	switch kind {
	case KindConstant:
		value, err := decodeConstant(&spec.Value)
		if err != nil {
			return err
		}

		*n = Node{Kind: KindConstant, Value: value}

	case KindSlot:
		if spec.Slot == nil {
			return fmt.Errorf("slot node is missing its index")
		}

		*n = Node{Kind: KindSlot, Slot: *spec.Slot}

	case KindSequence:
		*n = Node{Kind: KindSequence, Items: spec.Items}

	case KindApply:
		op := ParseOp(spec.Op)
		if op == OpUnknown {
			return fmt.Errorf("unknown apply op %q", spec.Op)
		}

		*n = Node{Kind: KindApply, Op: op, Keys: spec.Keys, Dim: spec.Dim, Coords: spec.Coords, Args: spec.Args}

	default:
		return fmt.Errorf("unknown node kind %q", spec.Kind)
	}

	return nil
}

func encodeConstant(v any) any {
	switch x := v.(type) {
	case complex128:
		return map[string][]float64{complexKey: {real(x), imag(x)}}
	case []float64:
		return map[string][]float64{floatsKey: x}
	case *labarr.Array:
		return map[string]*labarr.Array{labarrKey: x}
	default:
		return v
	}
}

func decodeConstant(vn *yaml.Node) (any, error) {
	if vn == nil || vn.IsZero() {
		return nil, nil
	}

	if vn.Kind == yaml.MappingNode && len(vn.Content) == 2 {
		var key string
		if err := vn.Content[0].Decode(&key); err == nil {
			switch key {
			case complexKey:
				var parts [2]float64
				if err := vn.Content[1].Decode(&parts); err != nil {
					return nil, fmt.Errorf("invalid complex constant: %w", err)
				}

				return complex(parts[0], parts[1]), nil

			case floatsKey:
				var fs []float64
				if err := vn.Content[1].Decode(&fs); err != nil {
					return nil, fmt.Errorf("invalid float slice constant: %w", err)
				}

				return fs, nil

			case labarrKey:
				var a labarr.Array
				if err := vn.Content[1].Decode(&a); err != nil {
					return nil, fmt.Errorf("invalid labelled array constant: %w", err)
				}

				return &a, nil
			}
		}
	}

	var v any
	if err := vn.Decode(&v); err != nil {
		return nil, err
	}

	return v, nil
}
