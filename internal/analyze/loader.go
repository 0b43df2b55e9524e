package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/tools/go/packages"

	"unionsynth/internal/logging"
	"unionsynth/internal/model"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// generatedMarker identifies files written by a previous generation pass.
const generatedMarker = "// Code generated by unionsynth. DO NOT EDIT."

// Config holds loader options.
type Config struct {
	// Dir is the directory patterns are resolved in; empty means the
	// current directory.
	Dir string
	// GOARCH selects type sizes; empty means the host architecture.
	GOARCH string
	// Suffix is the file name suffix of generated files. Generated files are
	// masked before discovery so that every pass sees the same input.
	Suffix string
}

// Analyzer loads Go packages and discovers union declarations.
type Analyzer struct {
	config Config
	sizes  types.Sizes
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(config Config) (*Analyzer, error) {
	if config.GOARCH == "" {
		config.GOARCH = runtime.GOARCH
	}

	sizes := types.SizesFor("gc", config.GOARCH)
	if sizes == nil {
		return nil, fmt.Errorf("unknown GOARCH %q", config.GOARCH)
	}

	return &Analyzer{config: config, sizes: sizes}, nil
}

// Sizes returns the type sizes of the configured architecture.
func (a *Analyzer) Sizes() types.Sizes {
	return a.sizes
}

// LoadPackages loads the specified packages and discovers their unions.
// Patterns are standard Go package patterns (e.g., "./...", "example.com/shapes").
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, error) {
	pkgs, err := a.load(nil, patterns)
	if err != nil {
		return nil, err
	}

	if overlay := a.maskGenerated(pkgs); len(overlay) > 0 {
		logging.Logger().Debug("masking generated files", zap.Int("files", len(overlay)))

		pkgs, err = a.load(overlay, patterns)
		if err != nil {
			return nil, err
		}
	}

	out := make([]*Package, 0, len(pkgs))

	for _, pkg := range pkgs {
		p := a.processPackage(pkg)
		if len(p.Errors) > 0 {
			logging.Logger().Debug("package loaded with errors",
				zap.String("package", p.Path), zap.Errors("errors", p.Errors))
		}

		out = append(out, p)
	}

	return out, nil
}

func (a *Analyzer) load(overlay map[string][]byte, patterns []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:    LoadMode,
		Dir:     a.config.Dir,
		Overlay: overlay,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	return pkgs, nil
}

// maskGenerated returns an overlay replacing every previously generated file
// with an empty file of the same package.
func (a *Analyzer) maskGenerated(pkgs []*packages.Package) map[string][]byte {
	if a.config.Suffix == "" {
		return nil
	}

	overlay := make(map[string][]byte)

	for _, pkg := range pkgs {
		for i, f := range pkg.Syntax {
			if i >= len(pkg.CompiledGoFiles) {
				break
			}

			name := pkg.CompiledGoFiles[i]
			if !strings.HasSuffix(name, a.config.Suffix) || !hasMarker(f) {
				continue
			}

			overlay[name] = []byte("package " + pkg.Name + "\n")
		}
	}

	return overlay
}

func hasMarker(f *ast.File) bool {
	for _, cg := range f.Comments {
		if cg.Pos() > f.Package {
			break
		}

		for _, c := range cg.List {
			if c.Text == generatedMarker {
				return true
			}
		}
	}

	return false
}

// processPackage discovers the unions of one loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	for _, e := range pkg.Errors {
		p.Errors = append(p.Errors, e)
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	if pkg.TypesInfo == nil {
		return p
	}

	for i, f := range pkg.Syntax {
		file := pkg.Fset.Position(f.Package).Filename
		if i < len(pkg.CompiledGoFiles) {
			file = pkg.CompiledGoFiles[i]
		}

		d := &describer{
			sizes:   a.sizes,
			info:    pkg.TypesInfo,
			imports: fileImports(f),
		}

		for _, decl := range f.Decls {
			gen, ok := decl.(*ast.GenDecl)
			if !ok || gen.Tok != token.TYPE {
				continue
			}

			for _, spec := range gen.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				doc := ts.Doc
				if doc == nil && len(gen.Specs) == 1 {
					doc = gen.Doc
				}

				line := directiveLine(doc)
				if line == "" {
					continue
				}

				u := a.discover(pkg, d, ts, doc, line)
				u.File = file
				p.Unions = append(p.Unions, u)
			}
		}
	}

	return p
}

func directiveLine(doc *ast.CommentGroup) string {
	if doc == nil {
		return ""
	}

	for _, c := range doc.List {
		if isDirective(c.Text) {
			return c.Text
		}
	}

	return ""
}

func fileImports(f *ast.File) map[string]string {
	out := make(map[string]string, len(f.Imports))

	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}

		name := filepath.Base(path)
		if imp.Name != nil {
			name = imp.Name.Name
		}

		out[name] = path
	}

	return out
}

// discover turns one annotated type spec into a union declaration.
func (a *Analyzer) discover(
	pkg *packages.Package,
	d *describer,
	ts *ast.TypeSpec,
	doc *ast.CommentGroup,
	line string,
) Union {
	pos := pkg.Fset.Position(ts.Pos())
	posStr := filepath.Base(pos.Filename) + ":" + strconv.Itoa(pos.Line)

	fail := func(name, format string, args ...any) Union {
		if name == "" {
			name = ts.Name.Name
		}

		return Union{
			Decl: &model.UnionDeclaration{Name: name, Package: pkg.PkgPath, Pos: posStr},
			Err:  &DirectiveError{Pos: posStr, Msg: fmt.Sprintf(format, args...)},
		}
	}

	name, repr, err := parseDirective(line)
	if err != nil {
		return fail("", "%v", err)
	}

	iface, ok := ts.Type.(*ast.InterfaceType)
	if !ok {
		return fail(name, "union %s must be declared on an interface type", name)
	}

	u := &model.UnionDeclaration{
		Name:           name,
		Package:        pkg.PkgPath,
		Representation: repr,
		Doc:            strings.TrimSpace(doc.Text()),
		Pos:            posStr,
	}

	d.typeParams = make(map[string]bool)

	if ts.TypeParams != nil {
		for _, field := range ts.TypeParams.List {
			for _, n := range field.Names {
				u.TypeParams = append(u.TypeParams, model.TypeParam{
					Name:       n.Name,
					Constraint: types.ExprString(field.Type),
					Imports:    d.importsOf(field.Type),
				})
				d.typeParams[n.Name] = true
			}
		}
	}

	for _, m := range iface.Methods.List {
		if len(m.Names) == 0 {
			return fail(name, "union %s: embedded interfaces are not supported", name)
		}

		ft, ok := m.Type.(*ast.FuncType)
		if !ok {
			return fail(name, "union %s: unexpected method syntax", name)
		}

		c := model.Case{Name: m.Names[0].Name, Doc: strings.TrimSpace(m.Doc.Text())}

		if ft.Results != nil && len(ft.Results.List) > 0 {
			return fail(name, "case %s.%s: cases must not declare results", name, c.Name)
		}

		for i, field := range ft.Params.List {
			if _, ok := field.Type.(*ast.Ellipsis); ok {
				return fail(name, "case %s.%s: variadic parameters are not supported", name, c.Name)
			}

			if len(field.Names) == 0 {
				return fail(name, "case %s.%s: parameter %d has no name", name, c.Name, i+1)
			}

			desc := d.describe(field.Type)
			for _, n := range field.Names {
				c.Parameters = append(c.Parameters, model.CaseParameter{Name: n.Name, Type: desc})
			}
		}

		u.Cases = append(u.Cases, c)
	}

	return Union{Decl: u}
}
