package model

import (
	"strings"

	"unionsynth/internal/common"
)

// Representation selects how a union is laid out in memory.
type Representation int

const (
	// RepresentationPackedValue is a value type whose parameters share slots
	// and an overlay across mutually exclusive cases.
	RepresentationPackedValue Representation = iota
	// RepresentationTaggedReference is a heap-allocated type where every
	// parameter owns a dedicated field.
	RepresentationTaggedReference
)

// String returns a human-readable representation name.
func (r Representation) String() string {
	switch r {
	case RepresentationPackedValue:
		return "value"
	case RepresentationTaggedReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// RepresentationNames are the canonical spellings accepted by
// ParseRepresentation.
var RepresentationNames = []string{"value", "reference"}

// ParseRepresentation parses the directive/YAML spelling of a representation.
// The empty string selects RepresentationPackedValue.
func ParseRepresentation(s string) (Representation, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "value", "packed":
		return RepresentationPackedValue, true
	case "reference", "ref":
		return RepresentationTaggedReference, true
	default:
		return 0, false
	}
}

// Import is a package the generated file must import for a type expression.
type Import struct {
	Name string // package name used as qualifier in Expr
	Path string // import path
}

// TypeDescriptor describes a declared parameter type.
//
// The facts (Unmanaged, Reference, OpenGeneric, ...) are supplied by the
// collector; the classifier only reads them.
type TypeDescriptor struct {
	// Expr is the Go type expression valid inside the generated package,
	// e.g. "float64", "*ast.File", "[]T".
	Expr string
	// Key is the canonical identity used for slot sharing. Empty means Expr.
	Key string
	// Unmanaged is true for pointer-free flat values (numbers, bools, arrays
	// and structs of those).
	Unmanaged bool
	// Reference is true for pointers, maps, channels, funcs and interfaces.
	Reference bool
	// OpenGeneric is true when the type is or contains a type parameter.
	OpenGeneric bool
	// Comparable is true when values support ==.
	Comparable bool
	// Lenable is true when len() applies (used to hash non-comparable values).
	Lenable bool
	// Size and Align are the byte size and alignment for the configured
	// GOARCH, zero when unknown.
	Size  int64
	Align int64
	// Imports lists the packages referenced by Expr.
	Imports []Import
}

// Identity returns the key under which two descriptors are the same slot type.
func (d TypeDescriptor) Identity() string {
	if d.Key != "" {
		return d.Key
	}

	return d.Expr
}

// SameSlotType reports whether d and other are structurally the same type.
func (d TypeDescriptor) SameSlotType(other TypeDescriptor) bool {
	return d.Identity() == other.Identity()
}

// CaseParameter is one named, typed parameter of a case.
type CaseParameter struct {
	Name string
	Type TypeDescriptor
}

// ContainsOpenGeneric reports whether the parameter type mentions a type
// parameter of the union.
func (p CaseParameter) ContainsOpenGeneric() bool {
	return p.Type.OpenGeneric
}

// Case is one alternative of a union. Parameter order is load-bearing: it
// fixes factory argument order and Match callback argument order.
type Case struct {
	Name       string
	Parameters []CaseParameter
	Doc        string
}

// TypeParam is a type parameter of a generic union.
type TypeParam struct {
	Name       string
	Constraint string
	// Imports lists the packages referenced by Constraint.
	Imports []Import
}

// UnionDeclaration is the normalized description of one union.
type UnionDeclaration struct {
	// Name of the generated type.
	Name string
	// Package is the import path of the package the union is generated into.
	Package string
	// TypeParams of a generic union, in declaration order.
	TypeParams []TypeParam
	// Cases in declaration order. Discriminants follow this order.
	Cases          []Case
	Representation Representation
	// Doc is copied onto the generated type.
	Doc string
	// Pos is a human readable source position ("file.go:12"), if known.
	Pos string
}

// ID returns the identity used in diagnostics.
func (u *UnionDeclaration) ID() string {
	if u.Package == "" {
		return u.Name
	}

	return u.Package + "." + u.Name
}

// IsGeneric reports whether the union declares type parameters.
func (u *UnionDeclaration) IsGeneric() bool {
	return len(u.TypeParams) > 0
}

// CaseIndex returns the index of the named case, or -1.
func (u *UnionDeclaration) CaseIndex(name string) int {
	for i := range u.Cases {
		if u.Cases[i].Name == name {
			return i
		}
	}

	return -1
}

// Discriminant returns the tag value of the case at index i. Tags start at 1;
// 0 is reserved for the uninitialized state.
func Discriminant(i int) int {
	return i + 1
}
