package model

import (
	"unionsynth/internal/common"
)

// Fields every generated union may declare.
const (
	TagField     = "tag"
	OverlayField = "overlay"
)

// Methods every generated union declares.
const (
	MethodTag      = "Tag"
	MethodIsValid  = "IsValid"
	MethodMatch    = "Match"
	MethodEqual    = "Equal"
	MethodNotEqual = "NotEqual"
	MethodHash     = "Hash"
	MethodString   = "String"
	// MethodTagOf reads the discriminant through a possibly nil pointer.
	MethodTagOf = "tagOf"
)

// Suffixes of the package-level Match forms.
const (
	MatchWith      = "With"
	MatchValue     = "Value"
	MatchValueWith = "ValueWith"
)

// TagTypeName is the discriminant type of a union.
func TagTypeName(union string) string {
	return union + "Tag"
}

// TagConstName is the discriminant constant of a case.
func TagConstName(union, caseName string) string {
	return TagTypeName(union) + common.Exported(caseName)
}

// FactoryName is the package-level constructor of a case.
func FactoryName(union, caseName string) string {
	return union + common.Exported(caseName)
}

// PredicateName is the Is<Case> method.
func PredicateName(caseName string) string {
	return "Is" + common.Exported(caseName)
}

// TryGetName is the TryGet<Case>Data method.
func TryGetName(caseName string) string {
	return "TryGet" + common.Exported(caseName) + "Data"
}

// MatchFuncName is the package-level Match form with the given suffix.
func MatchFuncName(union, suffix string) string {
	return MethodMatch + union + suffix
}

// RecordTypeName is the overlay record type of a case.
func RecordTypeName(union, caseName string) string {
	return common.Unexported(union) + common.Exported(caseName) + "Overlay"
}

// RecordAccessorName is the method reinterpreting the overlay as the record
// of a case.
func RecordAccessorName(caseName string) string {
	return common.Unexported(caseName) + "Overlay"
}

// DedicatedFieldName is the field of one parameter in the tagged reference
// layout.
func DedicatedFieldName(caseName, param string) string {
	return common.Unexported(caseName) + common.Exported(param)
}

// Decl is a generated identifier and the declaration owning it.
type Decl struct {
	Name string
	What string
}

// overlaid reports whether a case gets an overlay record.
func overlaid(c Case) bool {
	for _, p := range c.Parameters {
		if p.Type.Unmanaged && !p.Type.OpenGeneric && !p.Type.Reference {
			return true
		}
	}

	return false
}

// PackageDecls lists the package-level identifiers declared by the generated
// file of u, in declaration order.
func (u *UnionDeclaration) PackageDecls() []Decl {
	return u.packageDecls(nil)
}

func (u *UnionDeclaration) packageDecls(skip map[int]bool) []Decl {
	decls := []Decl{
		{u.Name, "the union type " + u.Name},
		{TagTypeName(u.Name), "the tag type of " + u.Name},
	}

	for _, form := range []string{MatchWith, MatchValue, MatchValueWith} {
		decls = append(decls, Decl{MatchFuncName(u.Name, form), "the Match" + form + " function of " + u.Name})
	}

	for i, c := range u.Cases {
		if skip[i] {
			continue
		}

		of := " of case " + u.Name + "." + c.Name

		decls = append(decls,
			Decl{TagConstName(u.Name, c.Name), "the tag constant" + of},
			Decl{FactoryName(u.Name, c.Name), "the factory" + of},
		)

		if u.Representation == RepresentationPackedValue && overlaid(c) {
			decls = append(decls, Decl{RecordTypeName(u.Name, c.Name), "the overlay record" + of})
		}
	}

	return decls
}

// memberDecls lists the fields and methods of the generated type.
func (u *UnionDeclaration) memberDecls(skip map[int]bool) []Decl {
	reference := u.Representation == RepresentationTaggedReference

	decls := []Decl{{TagField, "the tag field"}}

	if reference {
		decls = append(decls, Decl{MethodTagOf, "the tagOf method"})
	} else {
		decls = append(decls, Decl{OverlayField, "the overlay field"})
	}

	for _, m := range []string{MethodTag, MethodIsValid, MethodMatch, MethodEqual, MethodNotEqual, MethodHash, MethodString} {
		decls = append(decls, Decl{m, "the " + m + " method"})
	}

	for i, c := range u.Cases {
		if skip[i] {
			continue
		}

		of := " of case " + c.Name

		decls = append(decls,
			Decl{PredicateName(c.Name), "the Is method" + of},
			Decl{TryGetName(c.Name), "the TryGet method" + of},
		)

		switch {
		case reference:
			for _, p := range c.Parameters {
				decls = append(decls, Decl{DedicatedFieldName(c.Name, p.Name), "the field of parameter " + c.Name + "." + p.Name})
			}
		case overlaid(c):
			decls = append(decls, Decl{RecordAccessorName(c.Name), "the overlay accessor" + of})
		}
	}

	return decls
}

// nameClashes lists generated identifiers declared twice in the package or
// in the method set of the union. Cases in skip are left out.
func (u *UnionDeclaration) nameClashes(skip map[int]bool) []string {
	var clashes []string

	for _, decls := range [][]Decl{u.packageDecls(skip), u.memberDecls(skip)} {
		owners := make(map[string]string, len(decls))

		for _, d := range decls {
			if prev, ok := owners[d.Name]; ok {
				clashes = append(clashes, prev+" and "+d.What+" are both named "+d.Name)
				continue
			}

			owners[d.Name] = d.What
		}
	}

	return clashes
}
