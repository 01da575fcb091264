// Package labarr provides a small labelled array: values indexed by
// coordinate labels along one named leading dimension, optionally stacked
// over further labelled arrays for higher dimensions. It is the shape the
// mapping engine understands for per-label parameter grids, for example a
// refractive index per layer.
package labarr

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrShapeMismatch = errors.New("coords and values must have the same length")
	ErrUnknownLabel  = errors.New("no such coordinate label")
)

// Array is a labelled array with one named leading dimension. It is either a
// leaf holding one value per coordinate label, or a stack of equally shaped
// sub-arrays, one per label.
type Array struct {
	dim    string
	coords []string
	values []any    // leaf entries, set iff slices is nil
	slices []*Array // stacked entries, set iff values is nil
}

// New creates a leaf array with one value per coordinate label.
func New(dim string, coords []string, values []any) (*Array, error) {
	if len(coords) != len(values) {
		return nil, fmt.Errorf("%w: %d coords, %d values", ErrShapeMismatch, len(coords), len(values))
	}

	return &Array{dim: dim, coords: append([]string{}, coords...), values: append([]any{}, values...)}, nil
}

// Stack creates a higher-dimensional array from one sub-array per label.
func Stack(dim string, coords []string, slices []*Array) (*Array, error) {
	if len(coords) != len(slices) {
		return nil, fmt.Errorf("%w: %d coords, %d slices", ErrShapeMismatch, len(coords), len(slices))
	}

	return &Array{dim: dim, coords: append([]string{}, coords...), slices: append([]*Array{}, slices...)}, nil
}

// Dim returns the name of the leading dimension.
func (a *Array) Dim() string { return a.dim }

// Coords returns a copy of the coordinate labels.
func (a *Array) Coords() []string {
	return append([]string{}, a.coords...)
}

// Len returns the number of coordinate labels.
func (a *Array) Len() int { return len(a.coords) }

// IsLeaf reports whether the array holds direct values rather than stacked
// sub-arrays.
func (a *Array) IsLeaf() bool { return a.slices == nil }

// Values returns a copy of the leaf entries. Nil for stacked arrays.
func (a *Array) Values() []any {
	if a.values == nil {
		return nil
	}

	return append([]any{}, a.values...)
}

// Slices returns a copy of the stacked sub-arrays. Nil for leaf arrays.
func (a *Array) Slices() []*Array {
	if a.slices == nil {
		return nil
	}

	return append([]*Array{}, a.slices...)
}

// Slice returns the entry for the given coordinate label: a value for leaf
// arrays, a sub-array for stacked ones.
func (a *Array) Slice(label string) (any, error) {
	for i, c := range a.coords {
		if c != label {
			continue
		}

		if a.IsLeaf() {
			return a.values[i], nil
		}

		return a.slices[i], nil
	}

	return nil, fmt.Errorf("%w: %q along %q", ErrUnknownLabel, label, a.dim)
}

// Equal reports deep structural equality of two arrays.
func (a *Array) Equal(other *Array) bool {
	if a == nil || other == nil {
		return a == other
	}

	if a.dim != other.dim || len(a.coords) != len(other.coords) || a.IsLeaf() != other.IsLeaf() {
		return false
	}

	for i, c := range a.coords {
		if c != other.coords[i] {
			return false
		}
	}

	if a.IsLeaf() {
		for i, v := range a.values {
			if v != other.values[i] {
				return false
			}
		}

		return true
	}

	for i, s := range a.slices {
		if !s.Equal(other.slices[i]) {
			return false
		}
	}

	return true
}

// String returns a compact description like "Array(layer: a, b)".
func (a *Array) String() string {
	return fmt.Sprintf("Array(%s: %s)", a.dim, strings.Join(a.coords, ", "))
}
