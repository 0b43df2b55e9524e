package mapping

import (
	"errors"
	"fmt"
	"go/token"

	"unionsynth/internal/diagnostic"
	"unionsynth/internal/suggest"
)

// Validate checks the structure of a declaration file. It does not classify
// types; per-union problems found later are reported by Resolve.
func Validate(df *DeclFile, path string) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if df == nil {
		res.AddError(diagnostic.CodeYAML, "", path, errors.New("declaration file is nil"))
		return res
	}

	if df.Version != CurrentVersion {
		res.AddError(diagnostic.CodeYAML, "", path, fmt.Errorf("unsupported version %q", df.Version))
	}

	if !token.IsIdentifier(df.Package) {
		res.AddError(diagnostic.CodeYAML, "", path, fmt.Errorf("package %q is not a valid package name", df.Package))
	}

	for alias := range df.Imports {
		if !token.IsIdentifier(alias) {
			res.AddError(diagnostic.CodeYAML, "", path, fmt.Errorf("import qualifier %q is not an identifier", alias))
		}
	}

	if len(df.Unions) == 0 {
		res.AddWarning(diagnostic.CodeYAML, "no unions declared", "", path)
	}

	for i := range df.Unions {
		validateUnion(res, &df.Unions[i], i, path)
	}

	return res
}

func validateUnion(res *diagnostic.Diagnostics, u *UnionDef, idx int, path string) {
	pos := unionPos(path, idx)

	if u.Name == "" {
		res.AddError(diagnostic.CodeYAML, "", pos, errors.New("union has no name"))
		return
	}

	for ci := range u.Cases {
		c := &u.Cases[ci]
		if c.Name == "" {
			res.AddError(diagnostic.CodeYAML, u.Name, pos, fmt.Errorf("case %d has no name", ci+1))
			continue
		}

		for _, p := range c.Params {
			if p.Type == "" {
				res.AddError(diagnostic.CodeYAML, u.Name, pos,
					fmt.Errorf("case %s: parameter %q has no type", c.Name, p.Name))
			}

			switch p.Class {
			case "", ClassUnmanaged, ClassReference, ClassOther:
			default:
				res.AddError(diagnostic.CodeYAML, u.Name, pos,
					fmt.Errorf("case %s: parameter %q has unknown class %q%s", c.Name, p.Name, p.Class,
						suggest.Hint(p.Class, ClassUnmanaged, ClassReference, ClassOther)))
			}
		}
	}
}

func unionPos(path string, idx int) string {
	return fmt.Sprintf("%s:unions[%d]", path, idx)
}
