package parmap

import (
	"errors"
	"fmt"
)

// ErrEmptyTie is returned when a merge is requested over no indices.
var ErrEmptyTie = errors.New("tie needs at least one parameter")

// TieError reports an attempted tie between parameters whose underlying
// distributions differ. The registry is left untouched.
type TieError struct {
	First, Second string
}

func (e *TieError) Error() string {
	return fmt.Sprintf("cannot tie unequal parameters %s and %s", e.Second, e.First)
}

// UnknownParameterError reports a tie request naming a parameter absent from
// the registry.
type UnknownParameterError struct {
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("parameter %s is not present in the model", e.Name)
}

// MissingParameterError reports a required quantity that is neither mapped
// as a free parameter nor available from a companion data source.
type MissingParameterError struct {
	Key string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing parameter %s", e.Key)
}

// OutOfRangeError reports a slot reference beyond the supplied values
// vector. This is a caller contract violation, never recovered internally.
type OutOfRangeError struct {
	Slot, Len int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("slot %d out of range for %d values", e.Slot, e.Len)
}
