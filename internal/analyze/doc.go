// Package analyze discovers union declarations in Go packages.
//
// It uses golang.org/x/tools/go/packages with AST and go/types. A union is
// declared by an interface annotated with the union directive:
//
//	// Shape is a plane figure.
//	//
//	//unionsynth:union Shape
//	type shapeCases interface {
//		Circle(radius float64)
//		Square(side float64)
//		Empty()
//	}
//
// Each method is a case and its parameters are the case parameters, both in
// source order. Type parameters of the interface become type parameters of
// the union. Parameter types are described with go/types facts; types that
// do not resolve (typically the union itself before its first generation)
// are described from their syntax.
package analyze
