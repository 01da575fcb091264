package parmap

import (
	"fmt"
	"strconv"

	"github.com/PeBelle/holopy/internal/common"
	"github.com/PeBelle/holopy/labarr"
	"github.com/PeBelle/holopy/prior"
	"github.com/PeBelle/holopy/utils"
)

// Read evaluates a Map against a vector of slot values and returns the
// rebuilt nested value. It is a pure function of its arguments: reading
// never mutates the Map or any registry, so concurrent reads of one Map are
// safe.
//
// A nil values vector means the recipe was loaded without its parameters and
// yields a *MissingParameterError on the first slot reference; a vector
// shorter than a referenced slot is a caller contract violation reported as
// *OutOfRangeError.
func Read(n *Node, values []any) (any, error) {
	switch n.Kind {
	case KindConstant:
		return n.Value, nil

	case KindSlot:
		if values == nil {
			return nil, &MissingParameterError{Key: "slot " + strconv.Itoa(n.Slot)}
		}

		if !utils.IsInRange(0, n.Slot, len(values)-1) {
			return nil, &OutOfRangeError{Slot: n.Slot, Len: len(values)}
		}

		return values[n.Slot], nil

	case KindSequence:
		items := make([]any, len(n.Items))
		for i, child := range n.Items {
			item, err := Read(child, values)
			if err != nil {
				return nil, err
			}

			items[i] = item
		}

		return items, nil

	case KindApply:
		return readApply(n, values)

	default:
		return nil, fmt.Errorf("cannot read node of kind %s", n.Kind)
	}
}

// ReadFloats evaluates a Map against a concrete float vector.
func ReadFloats(n *Node, values []float64) (any, error) {
	boxed := make([]any, len(values))
	for i, v := range values {
		boxed[i] = v
	}

	return Read(n, boxed)
}

func readApply(n *Node, values []any) (any, error) {
	args := make([]any, len(n.Args))
	for i, child := range n.Args {
		arg, err := Read(child, values)
		if err != nil {
			return nil, err
		}

		args[i] = arg
	}

	switch n.Op {
	case OpDict:
		return applyDict(n.Keys, args)
	case OpArray:
		return applyArray(n.Dim, n.Coords, args)
	case OpComplex:
		return applyComplex(args)
	default:
		return nil, fmt.Errorf("cannot apply op %s", n.Op)
	}
}

func applyDict(keys []string, args []any) (any, error) {
	if len(keys) != len(args) {
		return nil, fmt.Errorf("dict construction needs %d values for %d keys", len(keys), len(args))
	}

	out := make(map[string]any, len(keys))
	for i, key := range keys {
		out[key] = args[i]
	}

	return out, nil
}

// applyArray stacks sub-arrays when every argument is itself a labelled
// array, and otherwise builds a one-dimensional leaf from the values.
func applyArray(dim string, coords []string, args []any) (any, error) {
	subs := make([]*labarr.Array, 0, len(args))
	for _, arg := range args {
		sub, ok := arg.(*labarr.Array)
		if !ok {
			return labarr.New(dim, coords, args)
		}

		subs = append(subs, sub)
	}

	if common.IsEmpty(subs) {
		return labarr.New(dim, coords, args)
	}

	return labarr.Stack(dim, coords, subs)
}

// applyComplex mirrors the build-side collapse rule: a still-free part keeps
// the pair symbolic, two concrete parts combine into a complex128.
func applyComplex(args []any) (any, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("complex construction needs 2 arguments, got %d", len(args))
	}

	rePart, imPart := utils.Unpack2(args)

	_, realFree := rePart.(prior.Prior)
	_, imagFree := imPart.(prior.Prior)

	if realFree || imagFree {
		return &prior.ComplexPrior{Real: rePart, Imag: imPart}, nil
	}

	real, err := asFloat(rePart)
	if err != nil {
		return nil, fmt.Errorf("complex real part: %w", err)
	}

	imag, err := asFloat(imPart)
	if err != nil {
		return nil, fmt.Errorf("complex imaginary part: %w", err)
	}

	return complex(real, imag), nil
}

func asFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
}
