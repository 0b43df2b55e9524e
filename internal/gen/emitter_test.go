package gen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unionsynth/internal/model"
	"unionsynth/internal/plan"
	"unionsynth/internal/synth"
	"unionsynth/internal/typemodel"
)

func f64() model.TypeDescriptor {
	return model.TypeDescriptor{Expr: "float64", Unmanaged: true, Comparable: true, Size: 8, Align: 8}
}

func shapeUnion() *model.UnionDeclaration {
	return &model.UnionDeclaration{
		Name: "Shape",
		Doc:  "Shape is a plane figure.",
		Cases: []model.Case{
			{Name: "Circle", Parameters: []model.CaseParameter{{Name: "radius", Type: f64()}}},
			{Name: "Square", Parameters: []model.CaseParameter{{Name: "side", Type: f64()}}},
			{Name: "Empty"},
		},
	}
}

func typeOf(t *testing.T, u *model.UnionDeclaration) *typemodel.Type {
	t.Helper()

	p, err := plan.Build(u)
	require.NoError(t, err)

	typ, err := synth.Synthesize(u, p)
	require.NoError(t, err)

	return typ
}

func emit(t *testing.T, u *model.UnionDeclaration) string {
	t.Helper()

	return emitIn(t, Unit{Package: "shapes", Source: "shapes.go"}, u)
}

func emitIn(t *testing.T, unit Unit, u *model.UnionDeclaration) string {
	t.Helper()

	unit.Type = typeOf(t, u)

	file, err := NewEmitter(DefaultEmitterConfig()).Emit(unit)
	require.NoError(t, err)

	return string(file.Content)
}

func TestEmit_Shape(t *testing.T) {
	t.Parallel()

	code := emit(t, shapeUnion())

	expected := []string{
		"// Code generated by unionsynth. DO NOT EDIT.",
		"// source: shapes.go",
		"package shapes",
		`"unionsynth/unionrt"`,
		`"unsafe"`,
		"type ShapeTag uint8",
		"ShapeTagCircle ShapeTag = 1",
		"ShapeTagEmpty  ShapeTag = 3",
		`return unionrt.UnknownTag("ShapeTag", int(t))`,
		"type shapeCircleOverlay struct {\n\tradius float64\n}",
		"// Shape is a plane figure.",
		"overlay [(max(unsafe.Sizeof(shapeCircleOverlay{}), unsafe.Sizeof(shapeSquareOverlay{})) + 7) / 8]uint64",
		"func (u *Shape) circleOverlay() *shapeCircleOverlay {\n\treturn (*shapeCircleOverlay)(unsafe.Pointer(&u.overlay))\n}",
		"func ShapeCircle(radius float64) Shape {\n\tvar u Shape\n\tu.tag = ShapeTagCircle\n\tu.circleOverlay().radius = radius\n\n\treturn u\n}",
		"func ShapeEmpty() Shape {",
		"func (u Shape) IsCircle() bool {\n\treturn u.tag == ShapeTagCircle\n}",
		"return u.tag != 0 && u.tag <= ShapeTagEmpty",
		"func (u Shape) Match(onCircle func(radius float64), onSquare func(side float64), onEmpty func()) {",
		`panic(unionrt.NilHandler("Shape", "Circle"))`,
		"\t\tonCircle(u.circleOverlay().radius)\n\t\treturn\n",
		"func MatchShapeWith[S any](u Shape, state S, onCircle func(state S, radius float64), onSquare func(state S, side float64), onEmpty func(state S)) {",
		"func MatchShapeValue[R any](u Shape, onCircle func(radius float64) R, onSquare func(side float64) R, onEmpty func() R) R {",
		"return onCircle(u.circleOverlay().radius)",
		"func MatchShapeValueWith[S any, R any](u Shape, state S,",
		"return onCircle(state, u.circleOverlay().radius)",
		`panic(unionrt.InvalidState("Shape", int(u.tag)))`,
		"func (u Shape) TryGetCircleData() (float64, bool) {",
		"case ShapeTagSquare, ShapeTagEmpty:\n\t\treturn 0, false",
		"func (u Shape) TryGetEmptyData() bool {",
		"func (u Shape) Equal(other Shape) bool {\n\tif u.tag != other.tag {\n\t\treturn false\n\t}",
		"return u.circleOverlay().radius == other.circleOverlay().radius",
		"case ShapeTagEmpty:\n\t\treturn true",
		"func (u Shape) NotEqual(other Shape) bool {\n\treturn !u.Equal(other)\n}",
		"return unionrt.Combine(uint64(u.tag), unionrt.Hash(u.circleOverlay().radius))",
		"case ShapeTagEmpty:\n\t\treturn uint64(u.tag)",
		`return unionrt.Format("Circle", "radius", u.circleOverlay().radius)`,
		`return unionrt.Format("Empty")`,
	}

	for _, want := range expected {
		assert.Contains(t, code, want)
	}

	assert.NotContains(t, code, "tagOf")
}

func TestEmit_Deterministic(t *testing.T) {
	t.Parallel()

	first := emit(t, shapeUnion())
	for range 5 {
		assert.Equal(t, first, emit(t, shapeUnion()))
	}
}

func TestEmit_SlotsAndImports(t *testing.T) {
	t.Parallel()

	u := &model.UnionDeclaration{
		Name: "Event",
		Cases: []model.Case{
			{Name: "Parsed", Parameters: []model.CaseParameter{{Name: "file", Type: model.TypeDescriptor{
				Expr: "*ast.File", Reference: true, Comparable: true,
				Imports: []model.Import{{Name: "ast", Path: "go/ast"}},
			}}}},
			{Name: "Lines", Parameters: []model.CaseParameter{{Name: "lines", Type: model.TypeDescriptor{
				Expr: "[]string", Lenable: true,
			}}}},
			{Name: "Named", Parameters: []model.CaseParameter{{Name: "name", Type: model.TypeDescriptor{
				Expr: "string", Comparable: true, Lenable: true,
			}}}},
		},
	}

	code := emit(t, u)

	assert.Contains(t, code, "import (\n\t\"go/ast\"\n\t\"unionsynth/unionrt\"\n)")
	assert.NotContains(t, code, `"unsafe"`)
	assert.NotContains(t, code, "overlay")
	assert.Contains(t, code, "ref0 any")
	assert.Contains(t, code, "val0 []string")
	assert.Contains(t, code, "val1 string")
	assert.Contains(t, code, "u.ref0 = file")
	assert.Contains(t, code, "onParsed(unionrt.As[*ast.File](u.ref0))")
	assert.Contains(t, code, "return nil, false")
	assert.Contains(t, code, "return unionrt.Equal(u.val0, other.val0)")
	assert.Contains(t, code, "unionrt.HashLen(len(u.val0))")
	assert.Contains(t, code, `return "", false`)
}

func TestEmit_Generic(t *testing.T) {
	t.Parallel()

	u := &model.UnionDeclaration{
		Name:       "Result",
		TypeParams: []model.TypeParam{{Name: "T", Constraint: "any"}},
		Cases: []model.Case{
			{Name: "Ok", Parameters: []model.CaseParameter{{Name: "value", Type: model.TypeDescriptor{Expr: "T", OpenGeneric: true}}}},
			{Name: "Err", Parameters: []model.CaseParameter{{Name: "err", Type: model.TypeDescriptor{Expr: "error", Reference: true, Comparable: true}}}},
		},
	}

	code := emit(t, u)

	assert.Contains(t, code, "type Result[T any] struct {")
	assert.Contains(t, code, "val0 T")
	assert.Contains(t, code, "func ResultOk[T any](value T) Result[T] {\n\tvar u Result[T]")
	assert.Contains(t, code, "func (u Result[T]) IsOk() bool")
	assert.Contains(t, code, "func MatchResultValueWith[T any, S any, R any](u Result[T], state S,")
	assert.Contains(t, code, "return *new(T), false")
	assert.Contains(t, code, "return unionrt.Equal(u.val0, other.val0)")
	assert.Contains(t, code, "unionrt.As[error](u.ref0) == unionrt.As[error](other.ref0)")
}

func TestEmit_ConstraintImports(t *testing.T) {
	t.Parallel()

	v := model.TypeDescriptor{Expr: "T", OpenGeneric: true, Comparable: true}
	u := &model.UnionDeclaration{
		Name: "Bound",
		TypeParams: []model.TypeParam{{
			Name: "T", Constraint: "cmp.Ordered",
			Imports: []model.Import{{Name: "cmp", Path: "cmp"}},
		}},
		Cases: []model.Case{
			{Name: "Lo", Parameters: []model.CaseParameter{{Name: "v", Type: v}}},
			{Name: "Hi", Parameters: []model.CaseParameter{{Name: "v", Type: v}}},
		},
	}

	code := emit(t, u)

	assert.Contains(t, code, "import (\n\t\"cmp\"\n\t\"unionsynth/unionrt\"\n)")
	assert.Contains(t, code, "type Bound[T cmp.Ordered] struct {")
	assert.Contains(t, code, "func BoundLo[T cmp.Ordered](v T) Bound[T] {")
}

func TestEmit_TaggedReference(t *testing.T) {
	t.Parallel()

	u := shapeUnion()
	u.Representation = model.RepresentationTaggedReference

	code := emit(t, u)

	assert.Contains(t, code, "circleRadius float64")
	assert.Contains(t, code, "func (u *Shape) tagOf() ShapeTag {\n\tif u == nil {\n\t\treturn 0\n\t}\n\n\treturn u.tag\n}")
	assert.Contains(t, code, "func ShapeCircle(radius float64) *Shape {\n\tu := &Shape{}")
	assert.Contains(t, code, "u.circleRadius = radius")
	assert.Contains(t, code, "func (u *Shape) IsCircle() bool {\n\treturn u.tagOf() == ShapeTagCircle\n}")
	assert.Contains(t, code, "if u.tagOf() != other.tagOf() {")
	assert.Contains(t, code, "func (u *Shape) Equal(other *Shape) bool {")
	assert.NotContains(t, code, "unsafe")
}

func TestEmit_Options(t *testing.T) {
	t.Parallel()

	e := NewEmitter(EmitterConfig{
		Suffix:      "_gen.go",
		RuntimePath: "example.com/rt/unionrt",
		Header:      "Copyright example.",
	})

	file, err := e.Emit(Unit{Package: "shapes", Dir: "/tmp/x", Type: typeOf(t, shapeUnion())})
	require.NoError(t, err)

	code := string(file.Content)

	assert.Equal(t, "shape_gen.go", file.Filename)
	assert.Equal(t, filepath.Join("/tmp/x", "shape_gen.go"), file.Path())
	assert.True(t, strings.HasPrefix(code, "// Copyright example.\n\n// Code generated by unionsynth. DO NOT EDIT.\n"))
	assert.Contains(t, code, `"example.com/rt/unionrt"`)
	assert.NotContains(t, code, "// source:")
	assert.NotContains(t, code, "// IsCircle reports")
}

func TestEmit_FormatFailureWritesSidecar(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	u := &model.UnionDeclaration{
		Name: "Broken",
		Cases: []model.Case{
			{Name: "Bad", Parameters: []model.CaseParameter{{Name: "x", Type: model.TypeDescriptor{Expr: "[[[", Comparable: true}}}},
		},
	}

	e := NewEmitter(DefaultEmitterConfig())

	_, err := e.Emit(Unit{Package: "broken", Dir: dir, Type: typeOf(t, u)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "formatting broken_union.go")

	raw, readErr := os.ReadFile(filepath.Join(dir, "broken_union.unformatted.go"))
	require.NoError(t, readErr)
	assert.Contains(t, string(raw), "type Broken struct")
}

func TestEmit_NoType(t *testing.T) {
	t.Parallel()

	_, err := NewEmitter(DefaultEmitterConfig()).Emit(Unit{Source: "a.go"})
	require.Error(t, err)
}

func TestWriteFilesAndStale(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := []GeneratedFile{
		{Dir: dir, Filename: "a_union.go", Content: []byte("package a\n")},
		{Dir: filepath.Join(dir, "sub"), Filename: "b_union.go", Content: []byte("package b\n")},
	}

	stale, err := Stale(files)
	require.NoError(t, err)
	assert.Len(t, stale, 2)

	require.NoError(t, WriteFiles(files))

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Empty(t, stale)

	files[0].Content = []byte("package a\n\nvar x = 1\n")

	stale, err = Stale(files)
	require.NoError(t, err)
	assert.Equal(t, []string{files[0].Path()}, stale)
}

func TestZeroValue(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"int":            "0",
		"float64":        "0",
		"bool":           "false",
		"string":         `""`,
		"*ast.File":      "nil",
		"[]byte":         "nil",
		"map[string]int": "nil",
		"func()":         "nil",
		"error":          "nil",
		"chan int":       "nil",
		"T":              "*new(T)",
		"time.Duration":  "*new(time.Duration)",
		"[4]int":         "*new([4]int)",
	}

	for expr, want := range tests {
		assert.Equal(t, want, zeroValue(typemodel.TypeRef{Expr: expr}), expr)
	}
}

func TestEmit_MatchesCheckedInExample(t *testing.T) {
	t.Parallel()

	u := &model.UnionDeclaration{
		Name: "Shape",
		Doc:  "Shape is a plane figure.",
		Cases: []model.Case{
			{Name: "Circle", Doc: "Circle is round.", Parameters: []model.CaseParameter{{Name: "radius", Type: f64()}}},
			{Name: "Square", Parameters: []model.CaseParameter{{Name: "side", Type: f64()}}},
			{Name: "Label", Parameters: []model.CaseParameter{{Name: "text", Type: model.TypeDescriptor{
				Expr: "string", Comparable: true, Lenable: true, Size: 16, Align: 8,
			}}}},
			{Name: "Empty"},
		},
	}

	want, err := os.ReadFile(filepath.Join("..", "..", "examples", "shapes", "shape_union.go"))
	require.NoError(t, err)

	assert.Equal(t, string(want), emit(t, u))
}

func param(name string, d model.TypeDescriptor) model.CaseParameter {
	return model.CaseParameter{Name: name, Type: d}
}

func flat(expr string, size int64) model.TypeDescriptor {
	return model.TypeDescriptor{Expr: expr, Unmanaged: true, Comparable: true, Size: size, Align: size}
}

func TestEmit_MatchesCheckedInEvents(t *testing.T) {
	t.Parallel()

	event := &model.UnionDeclaration{
		Name: "Event",
		Doc:  "Event is an input event read from a terminal.",
		Cases: []model.Case{
			{Name: "Key", Doc: "Key is a key press.", Parameters: []model.CaseParameter{
				param("code", flat("int32", 4)),
				param("shift", flat("bool", 1)),
			}},
			{Name: "Resize", Parameters: []model.CaseParameter{
				param("width", flat("uint16", 2)),
				param("height", flat("uint16", 2)),
			}},
			{Name: "Paste", Parameters: []model.CaseParameter{
				param("lines", model.TypeDescriptor{Expr: "[]string", Lenable: true, Size: 24, Align: 8}),
			}},
			{Name: "Fail", Parameters: []model.CaseParameter{
				param("err", model.TypeDescriptor{Expr: "error", Reference: true, Comparable: true, Size: 16, Align: 8}),
			}},
			{Name: "Hook", Parameters: []model.CaseParameter{
				param("run", model.TypeDescriptor{Expr: "func() string", Reference: true, Size: 8, Align: 8}),
			}},
			{Name: "Quit"},
		},
	}

	option := &model.UnionDeclaration{
		Name:       "Option",
		TypeParams: []model.TypeParam{{Name: "T", Constraint: "any"}},
		Cases: []model.Case{
			{Name: "Some", Parameters: []model.CaseParameter{
				param("value", model.TypeDescriptor{Expr: "T", OpenGeneric: true}),
			}},
			{Name: "None"},
			{Name: "Many", Parameters: []model.CaseParameter{
				param("items", model.TypeDescriptor{Expr: "[]T", OpenGeneric: true, Lenable: true}),
				param("count", flat("int", 8)),
			}},
		},
	}

	node := model.TypeDescriptor{Expr: "*Node", Reference: true, Comparable: true}
	tree := &model.UnionDeclaration{
		Name:           "Node",
		Doc:            "Node is a binary tree of integers.",
		Representation: model.RepresentationTaggedReference,
		Cases: []model.Case{
			{Name: "Leaf", Parameters: []model.CaseParameter{param("value", flat("int", 8))}},
			{Name: "Branch", Parameters: []model.CaseParameter{param("left", node), param("right", node)}},
		},
	}

	tests := []struct {
		file  string
		union *model.UnionDeclaration
	}{
		{"event_union.go", event},
		{"option_union.go", option},
		{"node_union.go", tree},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()

			want, err := os.ReadFile(filepath.Join("..", "..", "examples", "events", tt.file))
			require.NoError(t, err)

			assert.Equal(t, string(want), emitIn(t, Unit{Package: "events", Source: "events.go"}, tt.union))
		})
	}
}
