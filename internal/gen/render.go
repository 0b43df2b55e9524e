package gen

import (
	"fmt"
	"strconv"
	"strings"

	"unionsynth/internal/model"
	"unionsynth/internal/typemodel"
)

// Receiver and operand names used in generated bodies.
const (
	recvName  = "u"
	stateName = "state"
)

// renderer turns member bodies into Go source.
type renderer struct {
	t  *typemodel.Type
	rt string
	// self is the union type with its type arguments, e.g. "Result[T]".
	self string
}

func newRenderer(t *typemodel.Type, rt string) *renderer {
	return &renderer{t: t, rt: rt, self: t.Name + typeArgList(t.TypeParams)}
}

// typeParamList renders "[T any, U comparable]", or "" for none.
func typeParamList(tps []model.TypeParam) string {
	if len(tps) == 0 {
		return ""
	}

	parts := make([]string, len(tps))
	for i, tp := range tps {
		c := tp.Constraint
		if c == "" {
			c = "any"
		}

		parts[i] = tp.Name + " " + c
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// typeArgList renders "[T, U]", or "" for none.
func typeArgList(tps []model.TypeParam) string {
	if len(tps) == 0 {
		return ""
	}

	names := make([]string, len(tps))
	for i, tp := range tps {
		names[i] = tp.Name
	}

	return "[" + strings.Join(names, ", ") + "]"
}

// operand is the type of a union value as passed to its functions.
func (r *renderer) operand() string {
	if r.t.Reference {
		return "*" + r.self
	}

	return r.self
}

func (r *renderer) receiver() string {
	return "(" + recvName + " " + r.operand() + ")"
}

func (r *renderer) fieldType(f *typemodel.Field) string {
	if len(f.Overlay) == 0 {
		return f.Type.Expr
	}

	sizes := make([]string, len(f.Overlay))
	for i, rec := range f.Overlay {
		sizes[i] = "unsafe.Sizeof(" + rec.Name + "{})"
	}

	return "[(max(" + strings.Join(sizes, ", ") + ") + 7) / 8]uint64"
}

// tag returns the discriminant expression of an operand.
func (r *renderer) tag(of string) string {
	if r.t.Reference {
		return of + ".tagOf()"
	}

	return of + ".tag"
}

func (r *renderer) caseConst(i int) string {
	return r.t.TagName + r.t.Cases[i].Name
}

func (r *renderer) caseName(i int) string {
	return r.t.Cases[i].Name
}

func params(ps []typemodel.Param) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Name + " " + p.Type.Expr
	}

	return strings.Join(parts, ", ")
}

func results(rs []typemodel.TypeRef) string {
	switch len(rs) {
	case 0:
		return ""
	case 1:
		return " " + rs[0].Expr
	}

	parts := make([]string, len(rs))
	for i, t := range rs {
		parts[i] = t.Expr
	}

	return " (" + strings.Join(parts, ", ") + ")"
}

func (r *renderer) handlerType(h typemodel.Handler, m *typemodel.Method) string {
	ps := make([]string, 0, len(h.Params)+1)
	if m.State != nil {
		ps = append(ps, stateName+" "+m.State.Expr)
	}

	for _, p := range h.Params {
		ps = append(ps, p.Name+" "+p.Type.Expr)
	}

	out := "func(" + strings.Join(ps, ", ") + ")"
	if m.HandlerResult != nil {
		out += " " + m.HandlerResult.Expr
	}

	return out
}

func (r *renderer) constructor(c *typemodel.Constructor) string {
	b := &body{r: r}

	if r.t.Reference {
		b.line("%s := &%s{}", recvName, r.self)
	} else {
		b.line("var %s %s", recvName, r.self)
	}

	b.ops(c.Body)

	return fmt.Sprintf("func %s%s(%s) %s {\n%s}",
		c.Name, typeParamList(r.t.TypeParams), params(c.Params), r.operand(), b.String())
}

func (r *renderer) property(p *typemodel.Property) string {
	b := &body{r: r}
	b.ops(p.Body)

	return fmt.Sprintf("func %s %s() %s {\n%s}", r.receiver(), p.Name, p.Type.Expr, b.String())
}

func (r *renderer) method(m *typemodel.Method) string {
	b := &body{r: r}

	switch m.Kind {
	case typemodel.MethodTagOf:
		b.line("if %s == nil {", recvName)
		b.depth++
		b.line("return 0")
		b.depth--
		b.line("}")
		b.blank()
		b.line("return %s.tag", recvName)

		return fmt.Sprintf("func (%s *%s) %s()%s {\n%s}", recvName, r.self, m.Name, results(m.Results), b.String())

	case typemodel.MethodRecordAccessor:
		b.ops(m.Body)

		return fmt.Sprintf("func (%s *%s) %s()%s {\n%s}", recvName, r.self, m.Name, results(m.Results), b.String())

	case typemodel.MethodMatch:
		return r.match(m)
	}

	b.ops(m.Body)

	return fmt.Sprintf("func %s %s(%s)%s {\n%s}", r.receiver(), m.Name, params(m.Params), results(m.Results), b.String())
}

func (r *renderer) match(m *typemodel.Method) string {
	ps := make([]string, 0, len(m.Handlers)+2)

	if m.Static {
		ps = append(ps, recvName+" "+r.operand())
	}

	if m.State != nil {
		ps = append(ps, stateName+" "+m.State.Expr)
	}

	for _, h := range m.Handlers {
		ps = append(ps, h.Name+" "+r.handlerType(h, m))
	}

	b := &body{r: r, state: m.State != nil}
	b.ops(m.Body)

	if !m.Static {
		return fmt.Sprintf("func %s %s(%s)%s {\n%s}",
			r.receiver(), m.Name, strings.Join(ps, ", "), results(m.Results), b.String())
	}

	tps := append(append([]model.TypeParam{}, r.t.TypeParams...), m.TypeParams...)

	return fmt.Sprintf("func %s%s(%s)%s {\n%s}",
		m.Name, typeParamList(tps), strings.Join(ps, ", "), results(m.Results), b.String())
}

// operator renders an operator as a method. Go has no operator overloading:
// == is served by Equal itself and != becomes NotEqual.
func (r *renderer) operator(op *typemodel.Operator) (decl, doc string, ok bool) {
	if op.Symbol != "!=" {
		return "", "", false
	}

	b := &body{r: r}
	b.ops(op.Body)

	decl = fmt.Sprintf("func %s %s(other %s) bool {\n%s}", r.receiver(), model.MethodNotEqual, r.operand(), b.String())

	return decl, model.MethodNotEqual + " reports whether the values differ.", true
}

// body accumulates indented statements.
type body struct {
	r     *renderer
	sb    strings.Builder
	depth int
	state bool
}

func (b *body) line(format string, args ...any) {
	b.sb.WriteString(strings.Repeat("\t", b.depth+1))
	fmt.Fprintf(&b.sb, format, args...)
	b.sb.WriteByte('\n')
}

func (b *body) blank() {
	b.sb.WriteByte('\n')
}

func (b *body) String() string {
	return b.sb.String()
}

func (b *body) ops(ops []typemodel.Op) {
	for _, op := range ops {
		b.op(op)
	}
}

func (b *body) op(op typemodel.Op) {
	r := b.r

	switch o := op.(type) {
	case typemodel.AssignTag:
		b.line("%s.tag = %s", recvName, r.caseConst(o.Case))

	case typemodel.Store:
		b.line("%s = %s", r.lvalue(o.Loc, recvName), o.Param)

	case typemodel.ReturnSelf:
		b.blank()
		b.line("return %s", recvName)

	case typemodel.RequireHandlers:
		for _, h := range o.Handlers {
			b.line("if %s == nil {", h.Name)
			b.depth++
			b.line("panic(%s.NilHandler(%q, %q))", r.rt, r.t.Name, r.caseName(h.Case))
			b.depth--
			b.line("}")
		}

		b.blank()

	case typemodel.Dispatch:
		b.line("switch %s {", r.tag(recvName))

		for _, arm := range o.Arms {
			consts := make([]string, len(arm.Cases))
			for i, c := range arm.Cases {
				consts[i] = r.caseConst(c)
			}

			b.line("case %s:", strings.Join(consts, ", "))
			b.depth++
			b.ops(arm.Body)
			b.depth--
		}

		b.line("}")
		b.blank()
		b.ops(o.Fallback)

	case typemodel.Invoke:
		args := make([]string, 0, len(o.Args)+1)
		if o.WithState {
			args = append(args, stateName)
		}

		for _, loc := range o.Args {
			args = append(args, r.load(loc, recvName))
		}

		call := o.Handler + "(" + strings.Join(args, ", ") + ")"
		if o.Returns {
			call = "return " + call
		}

		b.line("%s", call)

	case typemodel.Return:
		if len(o.Values) == 0 {
			b.line("return")
			return
		}

		vals := make([]string, len(o.Values))
		for i, v := range o.Values {
			vals[i] = r.expr(v)
		}

		b.line("return %s", strings.Join(vals, ", "))

	case typemodel.ReturnIfTagsDiffer:
		b.line("if %s != %s {", r.tag(recvName), r.tag(o.Other))
		b.depth++
		b.line("return false")
		b.depth--
		b.line("}")
		b.blank()

	case typemodel.FailInvalid:
		b.line("panic(%s.InvalidState(%q, int(%s)))", r.rt, r.t.Name, r.tag(recvName))

	default:
		panic(fmt.Sprintf("gen: unsupported op %T", op))
	}
}

// lvalue is the assignable form of a location.
func (r *renderer) lvalue(loc typemodel.Location, of string) string {
	if loc.Kind == typemodel.LocOverlay {
		return of + "." + loc.Accessor + "()." + loc.Member
	}

	return of + "." + loc.Field
}

// load reads a location, reapplying the static type of erased slots.
func (r *renderer) load(loc typemodel.Location, of string) string {
	switch loc.Kind {
	case typemodel.LocErased:
		return r.rt + ".As[" + loc.Type.Expr + "](" + of + "." + loc.Field + ")"
	case typemodel.LocOverlay:
		return of + "." + loc.Accessor + "()." + loc.Member
	default:
		return of + "." + loc.Field
	}
}

func (r *renderer) expr(e typemodel.Expr) string {
	switch x := e.(type) {
	case typemodel.Load:
		of := x.Of
		if of == "" {
			of = recvName
		}

		return r.load(x.Loc, of)

	case typemodel.Zero:
		return zeroValue(x.Type)

	case typemodel.Bool:
		return strconv.FormatBool(bool(x))

	case typemodel.TagIs:
		return r.tag(recvName) + " == " + r.caseConst(x.Case)

	case typemodel.TagValue:
		return r.tag(recvName)

	case typemodel.TagValid:
		tag := r.tag(recvName)
		return tag + " != 0 && " + tag + " <= " + r.caseConst(len(r.t.Cases)-1)

	case typemodel.FieldRecord:
		return "(*" + x.Record + ")(unsafe.Pointer(&" + recvName + "." + x.Field + "))"

	case typemodel.EqualAll:
		if len(x.Locs) == 0 {
			return "true"
		}

		terms := make([]string, len(x.Locs))
		for i, loc := range x.Locs {
			a, b := r.load(loc, recvName), r.load(loc, x.Other)
			if loc.Type.Comparable {
				terms[i] = a + " == " + b
			} else {
				terms[i] = r.rt + ".Equal(" + a + ", " + b + ")"
			}
		}

		return strings.Join(terms, " && ")

	case typemodel.HashAll:
		h := "uint64(" + r.tag(recvName) + ")"

		for _, loc := range x.Locs {
			v := r.load(loc, recvName)

			switch {
			case loc.Type.Comparable:
				h = r.rt + ".Combine(" + h + ", " + r.rt + ".Hash(" + v + "))"
			case loc.Type.Lenable:
				h = r.rt + ".Combine(" + h + ", " + r.rt + ".HashLen(len(" + v + ")))"
			}
		}

		return h

	case typemodel.Format:
		args := []string{strconv.Quote(x.Case)}
		for i, loc := range x.Locs {
			args = append(args, strconv.Quote(x.Names[i]), r.load(loc, recvName))
		}

		return r.rt + ".Format(" + strings.Join(args, ", ") + ")"

	case typemodel.CallEqual:
		call := recvName + ".Equal(" + x.Other + ")"
		if x.Negate {
			return "!" + call
		}

		return call

	default:
		panic(fmt.Sprintf("gen: unsupported expression %T", e))
	}
}

var numericTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"float32": true, "float64": true, "complex64": true, "complex128": true,
	"byte": true, "rune": true,
}

// zeroValue returns the literal zero value of a type expression.
func zeroValue(t typemodel.TypeRef) string {
	e := t.Expr

	switch {
	case numericTypes[e]:
		return "0"
	case e == "bool":
		return "false"
	case e == "string":
		return `""`
	case e == "any", e == "error", e == "unsafe.Pointer":
		return "nil"
	}

	for _, prefix := range []string{"*", "[]", "map[", "chan ", "chan<-", "<-chan", "func(", "interface{"} {
		if strings.HasPrefix(e, prefix) {
			return "nil"
		}
	}

	return "*new(" + e + ")"
}
