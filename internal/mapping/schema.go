package mapping

// DeclFile is the root of a union declaration file.
type DeclFile struct {
	Version string `yaml:"version"`
	// Package is the name of the generated package.
	Package string `yaml:"package"`
	// PackagePath is the import path used to identify unions in diagnostics.
	PackagePath string `yaml:"package_path,omitempty"`
	// Output is the output directory, relative to the file.
	Output string `yaml:"output,omitempty"`
	// Imports maps qualifiers used in type expressions to import paths.
	Imports map[string]string `yaml:"imports,omitempty"`
	Unions  []UnionDef        `yaml:"unions"`
}

// UnionDef declares one union.
type UnionDef struct {
	Name       string        `yaml:"name"`
	Repr       string        `yaml:"repr,omitempty"`
	Doc        string        `yaml:"doc,omitempty"`
	TypeParams StringOrArray `yaml:"type_params,omitempty"`
	Cases      []CaseDef     `yaml:"cases"`
}

// CaseDef declares one case.
type CaseDef struct {
	Name   string     `yaml:"name"`
	Doc    string     `yaml:"doc,omitempty"`
	Params []ParamDef `yaml:"params,omitempty"`
}

// ParamDef declares one parameter. In YAML it is either the shorthand
// "name type" or a mapping with explicit facts.
type ParamDef struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	// Class overrides classification: unmanaged, reference or other.
	Class string `yaml:"class,omitempty"`
	// Comparable overrides whether values support ==.
	Comparable *bool `yaml:"comparable,omitempty"`
	// Size and Align are reported by the plan command for unmanaged types.
	Size  int64 `yaml:"size,omitempty"`
	Align int64 `yaml:"align,omitempty"`
}

// Parameter classes accepted in ParamDef.Class.
const (
	ClassUnmanaged = "unmanaged"
	ClassReference = "reference"
	ClassOther     = "other"
)

// StringOrArray represents a field that can be a single string or array of strings.
type StringOrArray []string
