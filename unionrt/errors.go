package unionrt

import (
	"errors"
	"fmt"
)

// ErrInvalidState is matched (via errors.Is) by every InvalidStateError.
var ErrInvalidState = errors.New("union is in an invalid state")

// ErrNilHandler is matched (via errors.Is) by every NilHandlerError.
var ErrNilHandler = errors.New("nil match handler")

// InvalidStateError reports a case-dependent operation on a union whose
// discriminant does not identify a declared case. Tag 0 is the zero value of
// every generated union.
type InvalidStateError struct {
	Union string
	Tag   int
}

func (e *InvalidStateError) Error() string {
	if e.Tag == 0 {
		return fmt.Sprintf("%s: uninitialized union (discriminant 0)", e.Union)
	}

	return fmt.Sprintf("%s: unknown discriminant %d", e.Union, e.Tag)
}

// Is reports whether target is ErrInvalidState.
func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// InvalidState builds the error generated code panics with.
func InvalidState(union string, tag int) error {
	return &InvalidStateError{Union: union, Tag: tag}
}

// NilHandlerError reports a Match call with a missing case handler.
type NilHandlerError struct {
	Union string
	Case  string
}

func (e *NilHandlerError) Error() string {
	return fmt.Sprintf("%s: nil handler for case %s", e.Union, e.Case)
}

// Is reports whether target is ErrNilHandler.
func (e *NilHandlerError) Is(target error) bool {
	return target == ErrNilHandler
}

// NilHandler builds the error generated Match functions panic with.
func NilHandler(union, caseName string) error {
	return &NilHandlerError{Union: union, Case: caseName}
}

// Recovered converts a value recovered from a panic raised by generated code
// back into an error. It returns nil for any other panic value.
func Recovered(v any) error {
	err, ok := v.(error)
	if !ok {
		return nil
	}

	if errors.Is(err, ErrInvalidState) || errors.Is(err, ErrNilHandler) {
		return err
	}

	return nil
}
