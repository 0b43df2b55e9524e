package driver

import (
	"errors"
	"fmt"

	"unionsynth/internal/analyze"
	"unionsynth/internal/diagnostic"
	"unionsynth/internal/model"
	"unionsynth/internal/plan"
)

// GenerationError reports why one union produced no output.
type GenerationError struct {
	// Union is the qualified union name.
	Union string
	// Pos is the declaration position.
	Pos string
	// Code is the diagnostic code of the failing stage.
	Code string
	Err  error
}

func (e *GenerationError) Error() string {
	if e.Pos != "" {
		return fmt.Sprintf("%s: union %s: %v", e.Pos, e.Union, e.Err)
	}

	return fmt.Sprintf("union %s: %v", e.Union, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// discoveryCode classifies an error attached to a discovered union.
func discoveryCode(err error) string {
	var de *analyze.DirectiveError
	if errors.As(err, &de) {
		return diagnostic.CodeDirective
	}

	return diagnostic.CodeYAML
}

// stageCode returns the diagnostic code for an error of a pipeline stage.
func stageCode(err error) string {
	var (
		ve *model.ValidationError
		pe *plan.PlanError
	)

	switch {
	case errors.As(err, &ve):
		return diagnostic.CodeValidation
	case errors.As(err, &pe):
		return diagnostic.CodePlan
	default:
		return diagnostic.CodeSynth
	}
}
