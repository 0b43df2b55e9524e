package synth

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"fortio.org/safecast"

	"unionsynth/internal/common"
	"unionsynth/internal/model"
	"unionsynth/internal/plan"
	"unionsynth/internal/typemodel"
)

// Field names of the generated type.
const (
	TagField   = model.TagField
	OtherParam = "other"
)

var (
	// ErrPlanMismatch is returned when the plan was built for another union.
	ErrPlanMismatch = errors.New("layout plan does not belong to union")
	// ErrTooManyCases is returned when the discriminant does not fit 16 bits.
	ErrTooManyCases = errors.New("too many cases")
)

// Synthesize builds the generated type of u from its layout plan.
func Synthesize(u *model.UnionDeclaration, p *plan.LayoutPlan) (*typemodel.Type, error) {
	if p == nil || p.Union != u {
		return nil, fmt.Errorf("%s: %w", u.ID(), ErrPlanMismatch)
	}

	tagType, err := discriminantType(len(u.Cases))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", u.ID(), err)
	}

	s := &synthesizer{
		u:    u,
		p:    p,
		self: selfRef(u),
		t: &typemodel.Type{
			Name:       u.Name,
			Access:     typemodel.Public,
			Layout:     typemodel.LayoutAuto,
			Doc:        u.Doc,
			TypeParams: u.TypeParams,
			Reference:  u.Representation == model.RepresentationTaggedReference,
			TagType:    typemodel.TypeRef{Expr: tagType, Comparable: true},
			TagName:    model.TagTypeName(u.Name),
		},
	}

	s.cases()
	s.imports()
	s.fields()
	s.properties()
	s.constructors()
	s.accessors()
	s.match()
	s.tryGet()
	s.equality()
	s.hash()
	s.format()

	return s.t, nil
}

// discriminantType returns the narrowest unsigned type able to hold every
// discriminant of n cases.
func discriminantType(n int) (string, error) {
	if _, err := safecast.Conv[uint8](n); err == nil {
		return "uint8", nil
	}

	if _, err := safecast.Conv[uint16](n); err == nil {
		return "uint16", nil
	}

	return "", fmt.Errorf("%w: %d", ErrTooManyCases, n)
}

// selfRef is the type expression of the union as used in its own methods.
func selfRef(u *model.UnionDeclaration) typemodel.TypeRef {
	expr := u.Name
	if u.IsGeneric() {
		names := make([]string, len(u.TypeParams))
		for i, tp := range u.TypeParams {
			names[i] = tp.Name
		}

		expr += "[" + strings.Join(names, ", ") + "]"
	}

	return typemodel.TypeRef{Expr: expr}
}

type synthesizer struct {
	u    *model.UnionDeclaration
	p    *plan.LayoutPlan
	t    *typemodel.Type
	self typemodel.TypeRef
	// records maps case index to the nested overlay type.
	records map[int]*typemodel.Type
}

func (s *synthesizer) cases() {
	for i, c := range s.u.Cases {
		s.t.Cases = append(s.t.Cases, typemodel.CaseInfo{
			Name: common.Exported(c.Name),
			Tag:  model.Discriminant(i),
		})
	}
}

func (s *synthesizer) imports() {
	seen := make(map[string]bool)

	add := func(imps []model.Import) {
		for _, imp := range imps {
			if seen[imp.Path] {
				continue
			}

			seen[imp.Path] = true
			s.t.Imports = append(s.t.Imports, imp)
		}
	}

	for _, tp := range s.u.TypeParams {
		add(tp.Imports)
	}

	for _, c := range s.u.Cases {
		for _, p := range c.Parameters {
			add(p.Type.Imports)
		}
	}

	slices.SortFunc(s.t.Imports, func(a, b model.Import) int {
		return strings.Compare(a.Path, b.Path)
	})
}

func (s *synthesizer) fields() {
	s.t.Fields = append(s.t.Fields, &typemodel.Field{
		Name:   TagField,
		Type:   typemodel.TypeRef{Expr: s.t.TagName, Comparable: true},
		Access: typemodel.Private,
	})

	if g := s.p.Overlay; g != nil {
		s.records = make(map[int]*typemodel.Type, len(g.Records))

		var nested []*typemodel.Type

		for _, rec := range g.Records {
			rt := &typemodel.Type{
				Name:   rec.TypeName,
				Access: typemodel.Private,
				Layout: typemodel.LayoutSequential,
			}
			for _, m := range rec.Members {
				rt.Fields = append(rt.Fields, &typemodel.Field{
					Name:   m.Name,
					Type:   typemodel.RefOf(m.Type),
					Access: typemodel.Private,
				})
			}

			s.records[rec.Case] = rt
			nested = append(nested, rt)
		}

		s.t.Fields = append(s.t.Fields, &typemodel.Field{
			Name:    g.Field,
			Access:  typemodel.Private,
			Overlay: nested,
		})
		s.t.Nested = append(s.t.Nested, nested...)
	}

	for _, slot := range s.p.Slots {
		s.t.Fields = append(s.t.Fields, &typemodel.Field{
			Name:   slot.Name,
			Type:   typemodel.RefOf(slot.Type),
			Access: typemodel.Private,
		})
	}
}

func (s *synthesizer) properties() {
	for i, c := range s.u.Cases {
		name := model.PredicateName(c.Name)
		s.t.Properties = append(s.t.Properties, &typemodel.Property{
			Name: name,
			Type: typemodel.TypeRef{Expr: "bool", Comparable: true},
			Doc:  fmt.Sprintf("%s reports whether the %s case is active.", name, common.Exported(c.Name)),
			Body: []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{typemodel.TagIs{Case: i}}}},
		})
	}
}

func (s *synthesizer) constructors() {
	for i, c := range s.u.Cases {
		name := model.FactoryName(s.u.Name, c.Name)

		ctor := &typemodel.Constructor{
			Name:   name,
			Case:   i,
			Params: s.params(i),
			Doc:    fmt.Sprintf("%s returns a %s holding the %s case.", name, s.u.Name, common.Exported(c.Name)),
		}
		if c.Doc != "" {
			ctor.Doc += "\n\n" + c.Doc
		}

		ctor.Body = append(ctor.Body, typemodel.AssignTag{Case: i})
		for pi, param := range c.Parameters {
			ctor.Body = append(ctor.Body, typemodel.Store{Param: param.Name, Loc: s.location(i, pi)})
		}
		ctor.Body = append(ctor.Body, typemodel.ReturnSelf{})

		s.t.Constructors = append(s.t.Constructors, ctor)
	}
}

// accessors adds the discriminant accessors and, for each overlay record,
// the method reinterpreting the overlay as that record.
func (s *synthesizer) accessors() {
	if s.t.Reference {
		s.t.Methods = append(s.t.Methods, &typemodel.Method{
			Name:    model.MethodTagOf,
			Kind:    typemodel.MethodTagOf,
			Results: []typemodel.TypeRef{{Expr: s.t.TagName, Comparable: true}},
		})
	}

	s.t.Methods = append(s.t.Methods,
		&typemodel.Method{
			Name:    model.MethodTag,
			Kind:    typemodel.MethodTag,
			Doc:     "Tag returns the discriminant of the active case, zero when unset.",
			Results: []typemodel.TypeRef{{Expr: s.t.TagName, Comparable: true}},
			Body:    []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{typemodel.TagValue{}}}},
		},
		&typemodel.Method{
			Name:    model.MethodIsValid,
			Kind:    typemodel.MethodIsValid,
			Doc:     "IsValid reports whether the value was built by a factory.",
			Results: []typemodel.TypeRef{{Expr: "bool", Comparable: true}},
			Body:    []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{typemodel.TagValid{}}}},
		},
	)

	if s.p.Overlay == nil {
		return
	}

	for _, rec := range s.p.Overlay.Records {
		rt := s.records[rec.Case]
		s.t.Methods = append(s.t.Methods, &typemodel.Method{
			Name:    rec.Accessor,
			Kind:    typemodel.MethodRecordAccessor,
			Record:  rt,
			Results: []typemodel.TypeRef{{Expr: "*" + rt.Name}},
			Body: []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{
				typemodel.FieldRecord{Field: s.p.Overlay.Field, Record: rt.Name},
			}}},
		})
	}
}

// params returns the declared parameters of a case.
func (s *synthesizer) params(caseID int) []typemodel.Param {
	c := s.u.Cases[caseID]

	out := make([]typemodel.Param, len(c.Parameters))
	for i, p := range c.Parameters {
		out[i] = typemodel.Param{Name: p.Name, Type: typemodel.RefOf(p.Type)}
	}

	return out
}

// location converts a planned accessor into a body location.
func (s *synthesizer) location(caseID, param int) typemodel.Location {
	a := s.p.MustLookup(caseID, param)

	loc := typemodel.Location{Type: typemodel.RefOf(a.Type)}

	switch a.Kind {
	case plan.AccessOverlay:
		loc.Kind = typemodel.LocOverlay
		loc.Accessor = a.Record.Accessor
		loc.Member = a.Member
	case plan.AccessErasedSlot:
		loc.Kind = typemodel.LocErased
		loc.Field = a.Slot.Name
	case plan.AccessSlot, plan.AccessDedicated:
		loc.Kind = typemodel.LocField
		loc.Field = a.Slot.Name
	}

	return loc
}

func (s *synthesizer) locations(caseID int) []typemodel.Location {
	n := len(s.u.Cases[caseID].Parameters)

	out := make([]typemodel.Location, n)
	for i := range n {
		out[i] = s.location(caseID, i)
	}

	return out
}

// arms returns one dispatch arm per case, built by body.
func (s *synthesizer) arms(body func(caseID int) []typemodel.Op) []typemodel.Arm {
	arms := make([]typemodel.Arm, len(s.u.Cases))
	for i := range s.u.Cases {
		arms[i] = typemodel.Arm{Cases: []int{i}, Body: body(i)}
	}

	return arms
}

func (s *synthesizer) tryGet() {
	for i, c := range s.u.Cases {
		name := common.Exported(c.Name)

		results := make([]typemodel.TypeRef, 0, len(c.Parameters)+1)
		found := make([]typemodel.Expr, 0, len(c.Parameters)+1)
		missing := make([]typemodel.Expr, 0, len(c.Parameters)+1)

		for pi, p := range c.Parameters {
			ref := typemodel.RefOf(p.Type)
			results = append(results, ref)
			found = append(found, typemodel.Load{Loc: s.location(i, pi)})
			missing = append(missing, typemodel.Zero{Type: ref})
		}

		results = append(results, typemodel.TypeRef{Expr: "bool", Comparable: true})
		found = append(found, typemodel.Bool(true))
		missing = append(missing, typemodel.Bool(false))

		arms := []typemodel.Arm{{Cases: []int{i}, Body: []typemodel.Op{typemodel.Return{Values: found}}}}

		others := make([]int, 0, len(s.u.Cases)-1)
		for j := range s.u.Cases {
			if j != i {
				others = append(others, j)
			}
		}

		if len(others) > 0 {
			arms = append(arms, typemodel.Arm{Cases: others, Body: []typemodel.Op{typemodel.Return{Values: missing}}})
		}

		s.t.Methods = append(s.t.Methods, &typemodel.Method{
			Name: model.TryGetName(c.Name),
			Kind: typemodel.MethodTryGet,
			Doc: fmt.Sprintf("%s returns the %s parameters and true when the %s case is active.",
				model.TryGetName(c.Name), name, name),
			Results: results,
			Body: []typemodel.Op{typemodel.Dispatch{
				Arms:     arms,
				Fallback: []typemodel.Op{typemodel.FailInvalid{}},
			}},
		})
	}
}

func (s *synthesizer) equality() {
	boolRef := typemodel.TypeRef{Expr: "bool", Comparable: true}

	s.t.Methods = append(s.t.Methods, &typemodel.Method{
		Name:    model.MethodEqual,
		Kind:    typemodel.MethodEqual,
		Doc:     "Equal reports whether both values hold the same case with equal parameters.",
		Params:  []typemodel.Param{{Name: OtherParam, Type: s.operand()}},
		Results: []typemodel.TypeRef{boolRef},
		Body: []typemodel.Op{
			typemodel.ReturnIfTagsDiffer{Other: OtherParam},
			typemodel.Dispatch{
				Arms: s.arms(func(i int) []typemodel.Op {
					return []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{
						typemodel.EqualAll{Other: OtherParam, Locs: s.locations(i)},
					}}}
				}),
				Fallback: []typemodel.Op{typemodel.FailInvalid{}},
			},
		},
	})

	for _, sym := range []string{"==", "!="} {
		s.t.Operators = append(s.t.Operators, &typemodel.Operator{
			Symbol: sym,
			Body: []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{
				typemodel.CallEqual{Other: OtherParam, Negate: sym == "!="},
			}}},
		})
	}
}

// operand is the type of the other operand of binary methods.
func (s *synthesizer) operand() typemodel.TypeRef {
	if s.t.Reference {
		return typemodel.TypeRef{Expr: "*" + s.self.Expr}
	}

	return s.self
}

func (s *synthesizer) hash() {
	s.t.Methods = append(s.t.Methods, &typemodel.Method{
		Name:    model.MethodHash,
		Kind:    typemodel.MethodHash,
		Doc:     "Hash returns a hash consistent with Equal.",
		Results: []typemodel.TypeRef{{Expr: "uint64", Comparable: true}},
		Body: []typemodel.Op{typemodel.Dispatch{
			Arms: s.arms(func(i int) []typemodel.Op {
				return []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{
					typemodel.HashAll{Locs: s.locations(i)},
				}}}
			}),
			Fallback: []typemodel.Op{typemodel.FailInvalid{}},
		}},
	})
}

func (s *synthesizer) format() {
	s.t.Methods = append(s.t.Methods, &typemodel.Method{
		Name:    model.MethodString,
		Kind:    typemodel.MethodString,
		Doc:     "String returns the case name followed by its parameters.",
		Results: []typemodel.TypeRef{{Expr: "string", Comparable: true, Lenable: true}},
		Body: []typemodel.Op{typemodel.Dispatch{
			Arms: s.arms(func(i int) []typemodel.Op {
				c := s.u.Cases[i]

				names := make([]string, len(c.Parameters))
				for pi, p := range c.Parameters {
					names[pi] = p.Name
				}

				return []typemodel.Op{typemodel.Return{Values: []typemodel.Expr{
					typemodel.Format{Case: common.Exported(c.Name), Names: names, Locs: s.locations(i)},
				}}}
			}),
			Fallback: []typemodel.Op{typemodel.FailInvalid{}},
		}},
	})
}

// freshName returns base, or base followed by a number, not clashing with
// any type parameter of the union.
func (s *synthesizer) freshName(base string, taken ...string) string {
	used := make([]string, 0, len(s.u.TypeParams)+len(taken))
	for _, tp := range s.u.TypeParams {
		used = append(used, tp.Name)
	}

	used = append(used, taken...)

	name := base
	for n := 1; slices.Contains(used, name); n++ {
		name = fmt.Sprintf("%s%d", base, n)
	}

	return name
}
