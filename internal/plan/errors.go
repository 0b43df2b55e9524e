package plan

import (
	"fmt"
)

// PlanErrorKind enumerates layout planning failures.
type PlanErrorKind uint8

const (
	// PlanErrInvalidDeclaration wraps a model validation failure.
	PlanErrInvalidDeclaration PlanErrorKind = iota + 1
	// PlanErrUnclassified means a parameter type fell into no storage class.
	PlanErrUnclassified
	// PlanErrIncomplete means a parameter ended without an accessor.
	PlanErrIncomplete
	// PlanErrRepresentation means the representation is not supported.
	PlanErrRepresentation
)

// PlanError is returned by Build.
type PlanError struct {
	Kind  PlanErrorKind
	Union string
	Case  string
	Param string
	Err   error
}

func (e *PlanError) Error() string {
	if e == nil {
		return "<nil>"
	}

	switch e.Kind {
	case PlanErrInvalidDeclaration:
		return fmt.Sprintf("plan %s: %v", e.Union, e.Err)
	case PlanErrUnclassified:
		return fmt.Sprintf("plan %s: case %s parameter %s: type could not be classified", e.Union, e.Case, e.Param)
	case PlanErrIncomplete:
		return fmt.Sprintf("plan %s: case %s parameter %s has no storage", e.Union, e.Case, e.Param)
	case PlanErrRepresentation:
		return fmt.Sprintf("plan %s: %v", e.Union, e.Err)
	default:
		return fmt.Sprintf("plan %s: error kind=%d", e.Union, e.Kind)
	}
}

func (e *PlanError) Unwrap() error {
	return e.Err
}
