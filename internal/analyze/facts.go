package analyze

import (
	"go/ast"
	"go/types"

	"unionsynth/internal/model"
)

// describer builds type descriptors for parameters of one package.
type describer struct {
	sizes types.Sizes
	info  *types.Info
	// typeParams are the names of the union's type parameters.
	typeParams map[string]bool
	// imports maps import names of the current file to paths.
	imports map[string]string
}

// describe returns the descriptor of a parameter type expression.
func (d *describer) describe(expr ast.Expr) model.TypeDescriptor {
	t := d.info.TypeOf(expr)
	if t == nil || hasInvalid(t) {
		return d.fromSyntax(expr)
	}

	desc := DescribeType(t, d.sizes)
	desc.Expr = types.ExprString(expr)
	desc.Imports = d.importsOf(expr)

	return desc
}

// DescribeType returns the facts of a resolved type. Expr is left to the
// caller, which knows how the type is spelled in the generated package.
func DescribeType(t types.Type, sizes types.Sizes) model.TypeDescriptor {
	desc := model.TypeDescriptor{
		Key:         types.TypeString(t, nil),
		OpenGeneric: isOpenGeneric(t),
		Reference:   isReference(t),
		Comparable:  types.Comparable(t),
		Lenable:     isLenable(t),
	}

	desc.Unmanaged = !desc.OpenGeneric && isUnmanaged(t, nil)

	if !desc.OpenGeneric {
		desc.Size = sizes.Sizeof(t)
		desc.Align = sizes.Alignof(t)
	}

	return desc
}

// DescribeSyntax classifies a type from its syntax alone. typeParams names
// the type parameters in scope; imports maps qualifiers to import paths.
func DescribeSyntax(expr ast.Expr, typeParams map[string]bool, imports map[string]string) model.TypeDescriptor {
	d := &describer{typeParams: typeParams, imports: imports}
	return d.fromSyntax(expr)
}

// fromSyntax classifies an unresolved type from its shape alone. Anything
// that is not syntactically a reference is described as an opaque value.
func (d *describer) fromSyntax(expr ast.Expr) model.TypeDescriptor {
	desc := model.TypeDescriptor{
		Expr:    types.ExprString(expr),
		Imports: d.importsOf(expr),
	}

	switch expr.(type) {
	case *ast.StarExpr, *ast.ChanType, *ast.InterfaceType:
		desc.Reference = true
		desc.Comparable = true
	case *ast.MapType:
		desc.Reference = true
		desc.Lenable = true
	case *ast.FuncType:
		desc.Reference = true
	case *ast.ArrayType:
		// Comparability of an unresolved element type is unknown; equality
		// falls back to deep comparison.
		desc.Lenable = true
	}

	ast.Inspect(expr, func(n ast.Node) bool {
		if id, ok := n.(*ast.Ident); ok && d.typeParams[id.Name] {
			desc.OpenGeneric = true
		}

		return !desc.OpenGeneric
	})

	return desc
}

// importsOf returns the packages referenced by qualified identifiers in expr.
func (d *describer) importsOf(expr ast.Expr) []model.Import {
	var out []model.Import

	seen := make(map[string]bool)

	ast.Inspect(expr, func(n ast.Node) bool {
		sel, ok := n.(*ast.SelectorExpr)
		if !ok {
			return true
		}

		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return true
		}

		path := d.imports[id.Name]
		if d.info != nil {
			if pkgName, ok := d.info.Uses[id].(*types.PkgName); ok {
				path = pkgName.Imported().Path()
			}
		}

		if path != "" && !seen[path] {
			seen[path] = true
			out = append(out, model.Import{Name: id.Name, Path: path})
		}

		return false
	})

	return out
}

// walk reports whether pred holds for t or any type it is built from. Named
// types are not expanded; only their type arguments are visited.
func walk(t types.Type, pred func(types.Type) bool) bool {
	if pred(t) {
		return true
	}

	switch tt := t.(type) {
	case *types.Named:
		args := tt.TypeArgs()
		for i := range args.Len() {
			if walk(args.At(i), pred) {
				return true
			}
		}
	case *types.Alias:
		return walk(types.Unalias(tt), pred)
	case *types.Pointer:
		return walk(tt.Elem(), pred)
	case *types.Slice:
		return walk(tt.Elem(), pred)
	case *types.Array:
		return walk(tt.Elem(), pred)
	case *types.Chan:
		return walk(tt.Elem(), pred)
	case *types.Map:
		return walk(tt.Key(), pred) || walk(tt.Elem(), pred)
	case *types.Struct:
		for i := range tt.NumFields() {
			if walk(tt.Field(i).Type(), pred) {
				return true
			}
		}
	case *types.Signature:
		return walkTuple(tt.Params(), pred) || walkTuple(tt.Results(), pred)
	}

	return false
}

func walkTuple(tup *types.Tuple, pred func(types.Type) bool) bool {
	for i := range tup.Len() {
		if walk(tup.At(i).Type(), pred) {
			return true
		}
	}

	return false
}

func hasInvalid(t types.Type) bool {
	return walk(t, func(t types.Type) bool {
		b, ok := t.(*types.Basic)
		return ok && b.Kind() == types.Invalid
	})
}

func isOpenGeneric(t types.Type) bool {
	return walk(t, func(t types.Type) bool {
		_, ok := t.(*types.TypeParam)
		return ok
	})
}

// isUnmanaged reports whether t is a flat value without pointers: booleans,
// numbers, and arrays or structs of those.
func isUnmanaged(t types.Type, seen map[types.Type]bool) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	if seen[t] {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Basic:
		info := u.Info()
		return info&(types.IsBoolean|types.IsNumeric) != 0 && info&types.IsUntyped == 0
	case *types.Array:
		return isUnmanaged(u.Elem(), seen)
	case *types.Struct:
		if seen == nil {
			seen = make(map[types.Type]bool)
		}

		seen[t] = true

		for i := range u.NumFields() {
			if !isUnmanaged(u.Field(i).Type(), seen) {
				return false
			}
		}

		return true
	default:
		return false
	}
}

func isReference(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Pointer, *types.Map, *types.Chan, *types.Signature, *types.Interface:
		return true
	case *types.Basic:
		return u.Kind() == types.UnsafePointer
	default:
		return false
	}
}

func isLenable(t types.Type) bool {
	if _, ok := t.(*types.TypeParam); ok {
		return false
	}

	switch u := t.Underlying().(type) {
	case *types.Slice, *types.Map, *types.Chan, *types.Array:
		return true
	case *types.Basic:
		return u.Info()&types.IsString != 0
	case *types.Pointer:
		_, ok := u.Elem().Underlying().(*types.Array)
		return ok
	default:
		return false
	}
}
