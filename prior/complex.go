package prior

// ComplexPrior pairs independent real and imaginary parts into one
// complex-valued parameter. Each part is either a fixed float64 or a Prior.
//
// ComplexPrior deliberately does not implement Prior: the mapping engine
// decomposes it into its parts, registering only the free ones.
type ComplexPrior struct {
	Real any
	Imag any
	Name string
}

// Guess returns the starting complex value, taking each free part's guess.
func (c *ComplexPrior) Guess() complex128 {
	return complex(partGuess(c.Real), partGuess(c.Imag))
}

// HasFreePart reports whether at least one part is a Prior.
func (c *ComplexPrior) HasFreePart() bool {
	_, realFree := c.Real.(Prior)
	_, imagFree := c.Imag.(Prior)

	return realFree || imagFree
}

func partGuess(part any) float64 {
	switch v := part.(type) {
	case Prior:
		return v.Guess()
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}
