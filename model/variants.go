package model

// AlphaModel scales the forward model by a fitted parameter alpha, itself a
// fixed value or a prior living in the model's "model" map.
type AlphaModel struct {
	*Model
}

// NewAlpha builds an AlphaModel. alpha may be a float64 or a prior.
func NewAlpha(scatterer Scatterer, alpha any, forward ForwardFunc, cfg Config) (*AlphaModel, error) {
	m, err := New(scatterer, cfg)
	if err != nil {
		return nil, err
	}

	m.maps["model"] = m.mapper.Convert(map[string]any{"alpha": alpha}, "")
	m.forward = forward

	return &AlphaModel{Model: m}, nil
}

// Alpha returns the scaling value, a prior while alpha is still free.
func (m *AlphaModel) Alpha() (any, error) {
	rebuilt, err := parmapReadDict(m.maps["model"], m.symbolicValues())
	if err != nil {
		return nil, err
	}

	return rebuilt["alpha"], nil
}

// ExactModel evaluates an arbitrary forward function with no scaling
// parameter.
type ExactModel struct {
	*Model
}

// NewExact builds an ExactModel around the given forward function.
func NewExact(scatterer Scatterer, forward ForwardFunc, cfg Config) (*ExactModel, error) {
	m, err := New(scatterer, cfg)
	if err != nil {
		return nil, err
	}

	m.forward = forward

	return &ExactModel{Model: m}, nil
}

// PerfectLensModel images through a high-NA objective: alongside alpha it
// fits the lens acceptance angle, carried in a separate "theory" map and
// handed to the forward evaluator as a theory setting.
type PerfectLensModel struct {
	*Model
}

// NewPerfectLens builds a PerfectLensModel. alpha and lensAngle may each be
// a float64 or a prior.
func NewPerfectLens(scatterer Scatterer, alpha, lensAngle any, forward ForwardFunc, cfg Config) (*PerfectLensModel, error) {
	m, err := New(scatterer, cfg)
	if err != nil {
		return nil, err
	}

	m.maps["model"] = m.mapper.Convert(map[string]any{"alpha": alpha}, "")
	m.maps["theory"] = m.mapper.Convert(map[string]any{"lens_angle": lensAngle}, "")
	m.forward = forward

	return &PerfectLensModel{Model: m}, nil
}

// LensAngle returns the lens acceptance angle, a prior while still free.
func (m *PerfectLensModel) LensAngle() (any, error) {
	rebuilt, err := parmapReadDict(m.maps["theory"], m.symbolicValues())
	if err != nil {
		return nil, err
	}

	return rebuilt["lens_angle"], nil
}
