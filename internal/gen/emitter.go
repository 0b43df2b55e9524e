package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"slices"
	"strings"

	"unionsynth/internal/common"
	"unionsynth/internal/typemodel"
)

// Defaults used when EmitterConfig leaves a field empty.
const (
	DefaultSuffix      = "_union.go"
	DefaultRuntimePath = "unionsynth/unionrt"
	ToolName           = "unionsynth"
)

// EmitterConfig holds configuration for code generation.
type EmitterConfig struct {
	// Suffix is appended to the snake_case union name to form the file name.
	Suffix string
	// RuntimePath is the import path of the runtime support package.
	RuntimePath string
	// Header is an optional comment placed above the generated-code marker.
	Header string
	// GenerateComments enables doc comments on generated declarations.
	GenerateComments bool
	// DebugUnformatted writes a .unformatted.go sidecar when formatting fails.
	DebugUnformatted bool
}

// DefaultEmitterConfig returns the default emitter configuration.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		Suffix:           DefaultSuffix,
		RuntimePath:      DefaultRuntimePath,
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Unit is one union to emit.
type Unit struct {
	// Package is the name of the package the file belongs to.
	Package string
	// Dir is the directory the file is written to.
	Dir string
	// Source names the declaring file, recorded in the header.
	Source string
	Type   *typemodel.Type
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the output directory.
	Dir string
	// Filename is the name of the file (e.g., "shape_union.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Path returns the full output path.
func (f GeneratedFile) Path() string {
	return filepath.Join(f.Dir, f.Filename)
}

// Emitter renders generated types to Go source.
type Emitter struct {
	config EmitterConfig
}

// NewEmitter creates a new Emitter with the given configuration.
func NewEmitter(config EmitterConfig) *Emitter {
	if config.Suffix == "" {
		config.Suffix = DefaultSuffix
	}

	if config.RuntimePath == "" {
		config.RuntimePath = DefaultRuntimePath
	}

	return &Emitter{config: config}
}

// Filename returns the output file name of a union.
func (e *Emitter) Filename(unionName string) string {
	return common.Snake(unionName) + e.config.Suffix
}

// Emit renders one union. The output depends only on the unit, so equal
// units always yield byte-identical files.
func (e *Emitter) Emit(u Unit) (GeneratedFile, error) {
	if u.Type == nil {
		return GeneratedFile{}, fmt.Errorf("emit %s: no type", u.Source)
	}

	file := GeneratedFile{Dir: u.Dir, Filename: e.Filename(u.Type.Name)}

	data := e.buildTemplateData(u)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return GeneratedFile{}, fmt.Errorf("executing template for %s: %w", u.Type.Name, err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if e.config.DebugUnformatted {
			_ = writeUnformatted(u.Dir, file.Filename, buf.Bytes())
		}

		return GeneratedFile{}, fmt.Errorf("formatting %s: %w", file.Filename, err)
	}

	file.Content = formatted

	return file, nil
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

type caseData struct {
	Const string
	Name  string
	Tag   int
}

type fieldData struct {
	Name string
	Type string
}

type recordData struct {
	Name   string
	Fields []fieldData
}

type funcData struct {
	Doc  []string
	Decl string
}

type templateData struct {
	Tool    string
	Header  []string
	Source  string
	Package string
	Imports []importSpec
	RT      string

	Name       string
	TypeParams string
	Doc        []string
	TagName    string
	TagType    string
	Cases      []caseData
	Records    []recordData
	Fields     []fieldData
	Funcs      []funcData
	Comments   bool
}

func (e *Emitter) buildTemplateData(u Unit) *templateData {
	t := u.Type
	r := newRenderer(t, common.PkgAlias(e.config.RuntimePath))

	data := &templateData{
		Tool:       ToolName,
		Header:     commentLines(e.config.Header),
		Source:     u.Source,
		Package:    u.Package,
		Imports:    e.imports(t),
		RT:         r.rt,
		Name:       t.Name,
		TypeParams: typeParamList(t.TypeParams),
		TagName:    t.TagName,
		TagType:    t.TagType.Expr,
		Comments:   e.config.GenerateComments,
	}

	doc := t.Doc
	if doc == "" {
		names := make([]string, len(t.Cases))
		for i, c := range t.Cases {
			names[i] = c.Name
		}

		doc = fmt.Sprintf("%s is a tagged union of the cases %s. The zero value holds no case.",
			t.Name, strings.Join(names, ", "))
	}

	data.Doc = commentLines(doc)

	for _, c := range t.Cases {
		data.Cases = append(data.Cases, caseData{Const: t.TagName + c.Name, Name: c.Name, Tag: c.Tag})
	}

	for _, n := range t.Nested {
		rec := recordData{Name: n.Name}
		for _, f := range n.Fields {
			rec.Fields = append(rec.Fields, fieldData{Name: f.Name, Type: f.Type.Expr})
		}

		data.Records = append(data.Records, rec)
	}

	for _, f := range t.Fields {
		data.Fields = append(data.Fields, fieldData{Name: f.Name, Type: r.fieldType(f)})
	}

	add := func(doc, decl string) {
		fd := funcData{Decl: decl}
		if e.config.GenerateComments {
			fd.Doc = commentLines(doc)
		}

		data.Funcs = append(data.Funcs, fd)
	}

	for _, m := range t.Methods {
		if m.Kind == typemodel.MethodTagOf || m.Kind == typemodel.MethodRecordAccessor {
			add(m.Doc, r.method(m))
		}
	}

	for _, c := range t.Constructors {
		add(c.Doc, r.constructor(c))
	}

	for _, p := range t.Properties {
		add(p.Doc, r.property(p))
	}

	for _, m := range t.Methods {
		if m.Kind != typemodel.MethodTagOf && m.Kind != typemodel.MethodRecordAccessor {
			add(m.Doc, r.method(m))
		}
	}

	for _, op := range t.Operators {
		if decl, doc, ok := r.operator(op); ok {
			add(doc, decl)
		}
	}

	return data
}

// imports returns the deduplicated imports of the generated file, sorted by
// path.
func (e *Emitter) imports(t *typemodel.Type) []importSpec {
	byPath := map[string]importSpec{
		e.config.RuntimePath: {Path: e.config.RuntimePath},
	}

	if len(t.Nested) > 0 {
		byPath["unsafe"] = importSpec{Path: "unsafe"}
	}

	for _, imp := range t.Imports {
		spec := importSpec{Path: imp.Path}
		if imp.Name != "" && imp.Name != common.PkgAlias(imp.Path) {
			spec.Alias = imp.Name
		}

		byPath[imp.Path] = spec
	}

	out := make([]importSpec, 0, len(byPath))
	for _, spec := range byPath {
		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int {
		return strings.Compare(a.Path, b.Path)
	})

	return out
}

// commentLines splits text into comment lines; blank lines are kept.
func commentLines(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}
