package model

import (
	"fmt"
	"go/token"
	"strings"

	"unionsynth/internal/common"
)

// reservedNames are identifiers the emitter uses for receivers and locals in
// generated bodies; parameters may not shadow them.
var reservedNames = map[string]bool{
	"u":     true,
	"other": true,
	"state": true,
	"h":     true,
}

// ValidationError lists every problem found in one declaration.
type ValidationError struct {
	Union    string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid union %s: %s", e.Union, strings.Join(e.Problems, "; "))
}

// Validate checks the declaration for problems that would make the generated
// type uncompilable or ambiguous. A union with zero cases is invalid.
func (u *UnionDeclaration) Validate() error {
	var problems []string

	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !token.IsIdentifier(u.Name) {
		addf("name %q is not a valid identifier", u.Name)
	}

	if len(u.Cases) == 0 {
		addf("no cases declared")
	}

	seenTypeParams := make(map[string]bool, len(u.TypeParams))
	for _, tp := range u.TypeParams {
		switch {
		case !token.IsIdentifier(tp.Name):
			addf("type parameter %q is not a valid identifier", tp.Name)
		case reservedNames[tp.Name]:
			addf("type parameter name %q is reserved", tp.Name)
		}

		if seenTypeParams[tp.Name] {
			addf("duplicate type parameter %s", tp.Name)
		}

		seenTypeParams[tp.Name] = true
	}

	seenCases := make(map[string]bool, len(u.Cases))
	skip := make(map[int]bool)

	for i, c := range u.Cases {
		if !token.IsIdentifier(c.Name) {
			addf("case name %q is not a valid identifier", c.Name)
			skip[i] = true
		}

		// Generated names use the exported spelling, so "circle" and
		// "Circle" collide.
		if key := common.Exported(c.Name); seenCases[key] {
			addf("duplicate case %s", c.Name)
			skip[i] = true
		} else {
			seenCases[key] = true
		}

		seenParams := make(map[string]bool, len(c.Parameters))
		for _, p := range c.Parameters {
			switch {
			case !token.IsIdentifier(p.Name) || p.Name == "_":
				addf("case %s: parameter name %q is not a valid identifier", c.Name, p.Name)
			case reservedNames[p.Name]:
				addf("case %s: parameter name %q is reserved", c.Name, p.Name)
			case p.Name == u.Name || p.Name == TagConstName(u.Name, c.Name) || seenTypeParams[p.Name]:
				addf("case %s: parameter name %q shadows a generated identifier", c.Name, p.Name)
			case seenParams[p.Name]:
				addf("case %s: duplicate parameter %s", c.Name, p.Name)
			}

			seenParams[p.Name] = true

			if strings.TrimSpace(p.Type.Expr) == "" {
				addf("case %s: parameter %s has no type", c.Name, p.Name)
			}
		}
	}

	if token.IsIdentifier(u.Name) {
		problems = append(problems, u.nameClashes(skip)...)
	}

	if len(problems) > 0 {
		return &ValidationError{Union: u.ID(), Problems: problems}
	}

	return nil
}
