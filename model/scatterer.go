package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scatterer describes a physical scattering object by its nested parameter
// tree. Free parts of the tree are priors; the mapping engine flattens them
// into the model's parameter vector and the factory rebuilds a concrete
// scatterer from resolved values.
type Scatterer interface {
	// Parameters returns the nested parameter description.
	Parameters() map[string]any

	// FromParameters builds a concrete scatterer from resolved values with
	// the same shape Parameters returned.
	FromParameters(params map[string]any) (Scatterer, error)
}

// InvalidScattererError reports parameter values that describe a physically
// impossible scatterer, for example a negative radius. The model layer
// treats it as a probability of zero rather than a failure.
type InvalidScattererError struct {
	Reason string
}

func (e *InvalidScattererError) Error() string {
	return "invalid scatterer: " + e.Reason
}

// Sphere is a single spherical scatterer: refractive index n, radius r, and
// center coordinates. Any field may hold a fixed value or a prior.
type Sphere struct {
	N      any
	R      any
	Center []any
}

// Parameters returns the sphere's parameter tree.
func (s *Sphere) Parameters() map[string]any {
	return map[string]any{
		"n":      s.N,
		"r":      s.R,
		"center": s.Center,
	}
}

// FromParameters builds a sphere from resolved values, rejecting
// non-positive radii.
func (s *Sphere) FromParameters(params map[string]any) (Scatterer, error) {
	out := &Sphere{N: params["n"], R: params["r"]}

	if center, ok := params["center"].([]any); ok {
		out.Center = center
	}

	if r, ok := out.R.(float64); ok && r <= 0 {
		return nil, &InvalidScattererError{Reason: fmt.Sprintf("radius %v is not positive", r)}
	}

	return out, nil
}

// Spheres is an ordered collection of spheres. Its parameter keys carry the
// sphere index as a group prefix, "0:r" for the first sphere's radius, so a
// prior shared between spheres keeps one recognizable name after tying.
type Spheres struct {
	Scatterers []*Sphere
}

// Parameters returns the flattened per-sphere parameter tree.
func (s *Spheres) Parameters() map[string]any {
	out := make(map[string]any)
	for i, sphere := range s.Scatterers {
		for key, value := range sphere.Parameters() {
			out[strconv.Itoa(i)+":"+key] = value
		}
	}

	return out
}

// FromParameters rebuilds the collection from resolved values.
func (s *Spheres) FromParameters(params map[string]any) (Scatterer, error) {
	perSphere := make(map[int]map[string]any)

	for key, value := range params {
		idx, bare, found := strings.Cut(key, ":")
		if !found {
			return nil, fmt.Errorf("sphere parameter %q is missing its index prefix", key)
		}

		i, err := strconv.Atoi(idx)
		if err != nil {
			return nil, fmt.Errorf("sphere parameter %q has a bad index: %w", key, err)
		}

		if perSphere[i] == nil {
			perSphere[i] = make(map[string]any)
		}

		perSphere[i][bare] = value
	}

	out := &Spheres{Scatterers: make([]*Sphere, len(perSphere))}
	for i := range out.Scatterers {
		params, ok := perSphere[i]
		if !ok {
			return nil, fmt.Errorf("sphere %d has no parameters", i)
		}

		rebuilt, err := (&Sphere{}).FromParameters(params)
		if err != nil {
			return nil, err
		}

		out.Scatterers[i] = rebuilt.(*Sphere)
	}

	return out, nil
}

// LargestOverlap returns the deepest pairwise overlap between spheres, in
// the same units as the radii. Zero or negative means no overlap. Spheres
// without resolved numeric radii and centers are skipped.
func (s *Spheres) LargestOverlap() float64 {
	largest := math.Inf(-1)

	for i, a := range s.Scatterers {
		for _, b := range s.Scatterers[i+1:] {
			ra, ca, okA := sphereGeometry(a)
			rb, cb, okB := sphereGeometry(b)

			if !okA || !okB {
				continue
			}

			overlap := ra + rb - distance(ca, cb)
			if overlap > largest {
				largest = overlap
			}
		}
	}

	if math.IsInf(largest, -1) {
		return 0
	}

	return largest
}

// MinRadius returns the smallest resolved radius in the collection.
func (s *Spheres) MinRadius() float64 {
	minR := math.Inf(1)
	for _, sphere := range s.Scatterers {
		if r, _, ok := sphereGeometry(sphere); ok && r < minR {
			minR = r
		}
	}

	return minR
}

func sphereGeometry(s *Sphere) (r float64, center []float64, ok bool) {
	r, ok = s.R.(float64)
	if !ok || len(s.Center) == 0 {
		return 0, nil, false
	}

	center = make([]float64, len(s.Center))
	for i, c := range s.Center {
		center[i], ok = c.(float64)
		if !ok {
			return 0, nil, false
		}
	}

	return r, center, true
}

func distance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum)
}

// Constraint vetoes scatterer configurations before likelihood evaluation.
type Constraint interface {
	Check(s Scatterer) bool
}

// LimitOverlaps prohibits sphere overlaps beyond a tolerance expressed as a
// fraction of the smallest sphere's diameter.
type LimitOverlaps struct {
	Fraction float64
}

// Check reports whether the scatterer's overlaps stay within tolerance.
// Non-sphere scatterers pass.
func (l LimitOverlaps) Check(s Scatterer) bool {
	spheres, ok := s.(*Spheres)
	if !ok {
		return true
	}

	return spheres.LargestOverlap() <= spheres.MinRadius()*2*l.Fraction
}

// RawScatterer is a scatterer known only by its parameter tree. Models
// loaded from disk use it until a concrete factory is attached.
type RawScatterer struct {
	Params map[string]any
}

// Parameters returns the stored tree.
func (r *RawScatterer) Parameters() map[string]any { return r.Params }

// FromParameters wraps resolved values in a new RawScatterer.
func (r *RawScatterer) FromParameters(params map[string]any) (Scatterer, error) {
	return &RawScatterer{Params: params}, nil
}
