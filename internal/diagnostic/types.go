package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"unionsynth/internal/common"
)

// Diagnostic codes.
const (
	CodeLoad       = "load"
	CodeDirective  = "directive"
	CodeYAML       = "yaml"
	CodeValidation = "validation"
	CodePlan       = "plan"
	CodeSynth      = "synth"
	CodeEmit       = "emit"
	CodeConflict   = "conflict"
	CodeStale      = "stale"
	CodeGenerated  = "generated"
	CodeInternal   = "internal"
)

// Diagnostics holds all diagnostic information from one generation pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Union identifies the union this relates to (if any).
	Union string
	// Pos is the source position of the declaration (if known).
	Pos string
	// Err is the underlying error, if any.
	Err error
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic wrapping err.
func (d *Diagnostics) AddError(code, union, pos string, err error) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: DiagnosticError,
		Code:     code,
		Message:  err.Error(),
		Union:    union,
		Pos:      pos,
		Err:      err,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, union, pos string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: DiagnosticWarning,
		Code:     code,
		Message:  message,
		Union:    union,
		Pos:      pos,
	})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, union, pos string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity: DiagnosticInfo,
		Code:     code,
		Message:  message,
		Union:    union,
		Pos:      pos,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error returns a combined error from all error diagnostics, or nil if valid.
// The result matches every underlying error under errors.Is.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	errs := make([]error, 0, len(d.Errors))
	for _, e := range d.Errors {
		errs = append(errs, diagError{d: e})
	}

	return errors.Join(errs...)
}

type diagError struct {
	d Diagnostic
}

func (e diagError) Error() string { return e.d.String() }
func (e diagError) Unwrap() error { return e.d.Err }

// Location returns "pos union", "union" or "pos", whichever is known.
func (d Diagnostic) Location() string {
	var prefix []string
	if d.Pos != "" {
		prefix = append(prefix, d.Pos)
	}

	if d.Union != "" {
		prefix = append(prefix, "["+d.Union+"]")
	}

	return strings.Join(prefix, " ")
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if loc := d.Location(); loc != "" {
		return loc + ": " + msg
	}

	return msg
}
