package parmap

import (
	"slices"
	"strconv"

	"golang.org/x/exp/maps"

	"github.com/PeBelle/holopy/labarr"
	"github.com/PeBelle/holopy/prior"
)

// Mapper converts nested configuration values into Maps, growing its
// Registry as it discovers free priors. It never mutates its input.
type Mapper struct {
	reg *Registry
}

// NewMapper creates a Mapper building against reg.
func NewMapper(reg *Registry) *Mapper {
	return &Mapper{reg: reg}
}

// Registry returns the registry the mapper registers priors into.
func (m *Mapper) Registry() *Registry { return m.reg }

// Convert builds the Map for value. name seeds the dotted parameter names
// given to priors discovered underneath; the empty string means top level.
//
// Dispatch order matters: container shapes are unpacked before the prior
// check, and the prior check precedes the constant fallback.
func (m *Mapper) Convert(value any, name string) *Node {
	switch v := value.(type) {
	case []any:
		return m.convertSequence(v, name)

	case map[string]any:
		return m.convertDict(v, name)

	case *labarr.Array:
		return m.convertArray(v, name)

	case *prior.ComplexPrior:
		return m.convertComplex(v, name)

	case prior.Prior:
		return SlotRef(m.reg.Register(v, name))

	default:
		return Constant(value)
	}
}

func (m *Mapper) convertSequence(items []any, name string) *Node {
	children := make([]*Node, len(items))
	for i, item := range items {
		children[i] = m.Convert(item, name+"."+strconv.Itoa(i))
	}

	return Sequence(children)
}

// convertDict walks a string-keyed mapping in sorted key order so rebuilt
// recipes are deterministic. Entries that reduce to the omitted marker (a
// nil constant) are dropped before construction.
func (m *Mapper) convertDict(d map[string]any, name string) *Node {
	prefix := ""
	if name != "" {
		prefix = name + "."
	}

	var (
		keys []string
		args []*Node
	)

	sortedKeys := maps.Keys(d)
	slices.Sort(sortedKeys)

	for _, key := range sortedKeys {
		child := m.Convert(d[key], prefix+key)
		if child.Kind == KindConstant && child.Value == nil {
			continue
		}

		keys = append(keys, key)
		args = append(args, child)
	}

	return Dict(keys, args)
}

// convertArray slices a stacked labelled array along its leading axis, or
// builds leaves directly from a one-dimensional array's values.
func (m *Mapper) convertArray(a *labarr.Array, name string) *Node {
	coords := a.Coords()
	args := make([]*Node, len(coords))

	if a.IsLeaf() {
		for i, v := range a.Values() {
			args[i] = m.Convert(v, name+"."+coords[i])
		}
	} else {
		for i, s := range a.Slices() {
			args[i] = m.Convert(s, name+"."+coords[i])
		}
	}

	return Array(a.Dim(), coords, args)
}

// convertComplex defers complex construction only when a part is free;
// a fully fixed pair collapses to a constant complex128.
func (m *Mapper) convertComplex(c *prior.ComplexPrior, name string) *Node {
	if !c.HasFreePart() {
		return Constant(c.Guess())
	}

	return Complex(
		m.Convert(c.Real, name+".real"),
		m.Convert(c.Imag, name+".imag"),
	)
}
