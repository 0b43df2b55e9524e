package typemodel

import (
	"unionsynth/internal/common"
	"unionsynth/internal/model"
)

// Access is member visibility.
type Access int

const (
	Public Access = iota
	Private
)

// Layout is the memory layout marker of a type.
type Layout int

const (
	// LayoutAuto lets the target compiler order and pad fields.
	LayoutAuto Layout = iota
	// LayoutSequential keeps declared field order (overlay records).
	LayoutSequential
	// LayoutOverlay places every member at offset 0.
	LayoutOverlay
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case LayoutAuto:
		return "auto"
	case LayoutSequential:
		return "sequential"
	case LayoutOverlay:
		return "overlay"
	default:
		return common.UnknownStr
	}
}

// TypeRef references a type in target syntax together with the facts the
// emitter needs to pick equality and hashing.
type TypeRef struct {
	Expr       string
	Comparable bool
	Lenable    bool
}

// RefOf converts a model descriptor.
func RefOf(d model.TypeDescriptor) TypeRef {
	return TypeRef{Expr: d.Expr, Comparable: d.Comparable, Lenable: d.Lenable}
}

// Field is a stored member.
type Field struct {
	Name   string
	Type   TypeRef
	Access Access
	Doc    string
	// Overlay is set when the field is the shared overlay; Type is then
	// ignored and storage is sized for the largest record.
	Overlay []*Type
}

// Param is a named parameter.
type Param struct {
	Name string
	Type TypeRef
}

// Property is a computed, read-only member (IsCircle).
type Property struct {
	Name string
	Type TypeRef
	Doc  string
	Body []Op
}

// Constructor is a per-case factory.
type Constructor struct {
	Name   string
	Case   int
	Params []Param
	Doc    string
	Body   []Op
}

// MethodKind tags the role of a method so emitters can map it onto the
// target's conventions.
type MethodKind int

const (
	MethodMatch MethodKind = iota
	MethodTryGet
	MethodEqual
	MethodHash
	MethodString
	MethodTag
	MethodIsValid
	MethodRecordAccessor
	MethodTagOf
)

// Handler is one per-case callback parameter of a Match method.
type Handler struct {
	Name   string
	Case   int
	Params []Param
}

// Method is a behavior member.
type Method struct {
	Name string
	Kind MethodKind
	Doc  string
	// Static methods take the union as their first parameter instead of a
	// receiver (needed when a method introduces its own type parameters).
	Static bool
	// TypeParams introduced by the method, beyond the union's own.
	TypeParams []model.TypeParam
	// State is the type of the pass-through state parameter, if any.
	State *TypeRef
	// Handlers are the per-case callbacks of a Match method.
	Handlers []Handler
	// HandlerResult is the callback result type of value-producing Match.
	HandlerResult *TypeRef
	Params        []Param
	Results       []TypeRef
	// Record is set for MethodRecordAccessor.
	Record *Type
	Body   []Op
}

// Operator is an operator overload built on a method.
type Operator struct {
	Symbol string
	Doc    string
	Body   []Op
}

// CaseInfo is a case name with its discriminant.
type CaseInfo struct {
	Name string
	Tag  int
}

// Type is a generated type.
type Type struct {
	Name       string
	Access     Access
	Layout     Layout
	Doc        string
	TypeParams []model.TypeParam
	// Reference types are used through a pointer; a nil pointer is the
	// invalid state.
	Reference bool
	// TagType is the discriminant storage type; TagName names the generated
	// enum of discriminant constants.
	TagType TypeRef
	TagName string
	Cases   []CaseInfo
	// Imports needed by the parameter types, sorted by path.
	Imports []model.Import

	Fields       []*Field
	Properties   []*Property
	Constructors []*Constructor
	Methods      []*Method
	Operators    []*Operator
	Nested       []*Type
}

// Method returns the method with the given name, or nil.
func (t *Type) Method(name string) *Method {
	for _, m := range t.Methods {
		if m.Name == name {
			return m
		}
	}

	return nil
}

// Field returns the field with the given name, or nil.
func (t *Type) Field(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}

	return nil
}
