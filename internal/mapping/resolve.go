package mapping

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"unionsynth/internal/analyze"
	"unionsynth/internal/model"
	"unionsynth/internal/suggest"
)

// Resolve converts a validated declaration file loaded from path into a
// discovered package. Output paths are resolved relative to the file.
func Resolve(df *DeclFile, path string, sizes types.Sizes) *analyze.Package {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	pkgPath := df.PackagePath
	if pkgPath == "" {
		pkgPath = df.Package
	}

	p := &analyze.Package{
		Path: pkgPath,
		Name: df.Package,
		Dir:  filepath.Join(filepath.Dir(abs), df.Output),
	}

	for i := range df.Unions {
		u := &df.Unions[i]
		pos := unionPos(filepath.Base(path), i)

		decl, err := resolveUnion(df, u, pkgPath, sizes)
		if err != nil {
			p.Unions = append(p.Unions, analyze.Union{
				Decl: &model.UnionDeclaration{Name: u.Name, Package: pkgPath, Pos: pos},
				File: abs,
				Err:  err,
			})

			continue
		}

		decl.Pos = pos
		p.Unions = append(p.Unions, analyze.Union{Decl: decl, File: abs})
	}

	return p
}

func resolveUnion(df *DeclFile, u *UnionDef, pkgPath string, sizes types.Sizes) (*model.UnionDeclaration, error) {
	repr, ok := model.ParseRepresentation(u.Repr)
	if !ok {
		return nil, fmt.Errorf("unknown representation %q%s", u.Repr, suggest.Hint(u.Repr, model.RepresentationNames...))
	}

	decl := &model.UnionDeclaration{
		Name:           u.Name,
		Package:        pkgPath,
		Representation: repr,
		Doc:            strings.TrimSpace(u.Doc),
	}

	typeParams := make(map[string]bool, len(u.TypeParams))

	for _, spec := range u.TypeParams {
		tp, err := resolveTypeParam(spec, df.Imports)
		if err != nil {
			return nil, err
		}

		decl.TypeParams = append(decl.TypeParams, tp)
		typeParams[tp.Name] = true
	}

	for _, c := range u.Cases {
		mc := model.Case{Name: c.Name, Doc: strings.TrimSpace(c.Doc)}

		for _, p := range c.Params {
			desc, err := describe(p, typeParams, df.Imports, sizes)
			if err != nil {
				return nil, fmt.Errorf("case %s: parameter %s: %w", c.Name, p.Name, err)
			}

			mc.Parameters = append(mc.Parameters, model.CaseParameter{Name: p.Name, Type: desc})
		}

		decl.Cases = append(decl.Cases, mc)
	}

	return decl, nil
}

// resolveTypeParam parses a "Name Constraint" entry. The constraint defaults
// to any.
func resolveTypeParam(spec string, imports map[string]string) (model.TypeParam, error) {
	name, constraint, _ := strings.Cut(strings.TrimSpace(spec), " ")

	constraint = strings.TrimSpace(constraint)
	if constraint == "" {
		constraint = "any"
	}

	expr, err := parser.ParseExpr(constraint)
	if err != nil {
		return model.TypeParam{}, fmt.Errorf("type parameter %s: invalid constraint %q: %w", name, constraint, err)
	}

	if err := checkQualifiers(expr, imports); err != nil {
		return model.TypeParam{}, fmt.Errorf("type parameter %s: %w", name, err)
	}

	return model.TypeParam{
		Name:       name,
		Constraint: constraint,
		Imports:    analyze.DescribeSyntax(expr, nil, imports).Imports,
	}, nil
}

// checkQualifiers reports the first package qualifier in expr that is not
// declared in imports.
func checkQualifiers(expr ast.Expr, imports map[string]string) error {
	var err error

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok || err != nil {
			return err == nil
		}

		if id, ok := sel.X.(*ast.Ident); ok {
			if _, known := imports[id.Name]; !known {
				err = fmt.Errorf("unknown package qualifier %q", id.Name)
			}
		}

		return false
	})

	return err
}

// describe builds the descriptor of a declared parameter type. Types built
// only from predeclared identifiers are resolved in the universe scope; the
// rest are classified from syntax. Explicit facts always win.
func describe(p ParamDef, typeParams map[string]bool, imports map[string]string, sizes types.Sizes) (model.TypeDescriptor, error) {
	expr, err := parser.ParseExpr(p.Type)
	if err != nil {
		return model.TypeDescriptor{}, fmt.Errorf("invalid type %q: %w", p.Type, err)
	}

	if err := checkQualifiers(expr, imports); err != nil {
		return model.TypeDescriptor{}, err
	}

	selfContained := true

	ast.Inspect(expr, func(n ast.Node) bool {
		switch x := n.(type) {
		case *ast.SelectorExpr:
			selfContained = false
			return false
		case *ast.Ident:
			if typeParams[x.Name] {
				selfContained = false
			}
		}

		return true
	})

	desc := analyze.DescribeSyntax(expr, typeParams, imports)

	if selfContained {
		tv, err := types.Eval(token.NewFileSet(), nil, token.NoPos, p.Type)
		if err == nil && tv.IsType() {
			desc = analyze.DescribeType(tv.Type, sizes)
			desc.Expr = types.ExprString(expr)
		}
	}

	switch p.Class {
	case ClassUnmanaged:
		desc.Unmanaged, desc.Reference = true, false
	case ClassReference:
		desc.Unmanaged, desc.Reference = false, true
	case ClassOther:
		desc.Unmanaged, desc.Reference = false, false
	}

	if p.Comparable != nil {
		desc.Comparable = *p.Comparable
	}

	if p.Size != 0 {
		desc.Size = p.Size
	}

	if p.Align != 0 {
		desc.Align = p.Align
	}

	return desc, nil
}
