package analyze

import (
	"fmt"
	"strings"

	"unionsynth/internal/model"
	"unionsynth/internal/suggest"
)

// Directive marks an interface as a union declaration.
const Directive = "//unionsynth:union"

// Package holds the unions found in one loaded package.
type Package struct {
	Path string // Import path
	Name string // Package name
	Dir  string // Directory of the package sources
	// Unions in file order, then declaration order.
	Unions []Union
	// Errors reported by the loader. Type errors are expected while
	// generated files are masked and do not stop discovery.
	Errors []error
}

// Union is one discovered declaration.
type Union struct {
	// Decl is the declaration. When Err is set only Name and Pos are
	// meaningful.
	Decl *model.UnionDeclaration
	// File is the absolute path of the declaring file.
	File string
	Err  error
}

// DirectiveError reports a malformed union directive or declaration.
type DirectiveError struct {
	Pos string
	Msg string
}

func (e *DirectiveError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Msg)
}

// parseDirective parses the arguments of a union directive line:
// "<Name> [repr=value|reference]".
func parseDirective(line string) (name string, repr model.Representation, err error) {
	rest, ok := strings.CutPrefix(line, Directive)
	if !ok || (rest != "" && rest[0] != ' ' && rest[0] != '\t') {
		return "", 0, fmt.Errorf("not a union directive: %q", line)
	}

	for _, f := range strings.Fields(rest) {
		key, value, isKV := strings.Cut(f, "=")
		if !isKV {
			if name != "" {
				return "", 0, fmt.Errorf("unexpected argument %q", f)
			}

			name = f

			continue
		}

		switch key {
		case "repr":
			r, ok := model.ParseRepresentation(value)
			if !ok {
				return "", 0, fmt.Errorf("unknown representation %q%s", value,
					suggest.Hint(value, model.RepresentationNames...))
			}

			repr = r
		default:
			return "", 0, fmt.Errorf("unknown option %q%s", key, suggest.Hint(key, "repr"))
		}
	}

	if name == "" {
		return "", 0, fmt.Errorf("missing union name")
	}

	return name, repr, nil
}

// isDirective reports whether a comment line is a union directive.
func isDirective(text string) bool {
	rest, ok := strings.CutPrefix(text, Directive)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}
