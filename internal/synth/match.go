package synth

import (
	"fmt"

	"unionsynth/internal/common"
	"unionsynth/internal/model"
	"unionsynth/internal/typemodel"
)

// StateParam is the name of the pass-through state parameter.
const StateParam = "state"

// HandlerName returns the Match callback name of a case.
func HandlerName(caseName string) string {
	return "on" + common.Exported(caseName)
}

// match adds the four Match forms: with or without state, with or without a
// result. Forms that need their own type parameters are static.
func (s *synthesizer) match() {
	state := s.freshName("S")
	result := s.freshName("R", state)

	s.t.Methods = append(s.t.Methods,
		s.matchForm(model.MethodMatch, nil, nil),
		s.matchForm(model.MatchFuncName(s.u.Name, model.MatchWith), &typemodel.TypeRef{Expr: state}, nil),
		s.matchForm(model.MatchFuncName(s.u.Name, model.MatchValue), nil, &typemodel.TypeRef{Expr: result}),
		s.matchForm(model.MatchFuncName(s.u.Name, model.MatchValueWith), &typemodel.TypeRef{Expr: state}, &typemodel.TypeRef{Expr: result}),
	)
}

func (s *synthesizer) matchForm(name string, state, result *typemodel.TypeRef) *typemodel.Method {
	m := &typemodel.Method{
		Name:          name,
		Kind:          typemodel.MethodMatch,
		Static:        state != nil || result != nil,
		State:         state,
		HandlerResult: result,
	}

	if state != nil {
		m.TypeParams = append(m.TypeParams, model.TypeParam{Name: state.Expr, Constraint: "any"})
	}

	if result != nil {
		m.TypeParams = append(m.TypeParams, model.TypeParam{Name: result.Expr, Constraint: "any"})
		m.Results = []typemodel.TypeRef{*result}
	}

	for i, c := range s.u.Cases {
		m.Handlers = append(m.Handlers, typemodel.Handler{
			Name:   HandlerName(c.Name),
			Case:   i,
			Params: s.params(i),
		})
	}

	switch {
	case state == nil && result == nil:
		m.Doc = "Match calls the handler of the active case with its parameters."
	case result == nil:
		m.Doc = fmt.Sprintf("%s is Match with a state value passed through to the handler.", name)
	case state == nil:
		m.Doc = fmt.Sprintf("%s calls the handler of the active case and returns its result.", name)
	default:
		m.Doc = fmt.Sprintf("%s is %s with a state value passed through to the handler.",
			name, model.MatchFuncName(s.u.Name, model.MatchValue))
	}

	m.Body = []typemodel.Op{
		typemodel.RequireHandlers{Handlers: m.Handlers},
		typemodel.Dispatch{
			Arms: s.arms(func(i int) []typemodel.Op {
				call := typemodel.Invoke{
					Handler:   HandlerName(s.u.Cases[i].Name),
					WithState: state != nil,
					Args:      s.locations(i),
					Returns:   result != nil,
				}
				if result != nil {
					return []typemodel.Op{call}
				}

				return []typemodel.Op{call, typemodel.Return{}}
			}),
			Fallback: []typemodel.Op{typemodel.FailInvalid{}},
		},
	}

	return m
}
