package analyze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unionsynth/internal/model"
)

const testPkg = "unionsynth/internal/analyze/testdata/shapes"

func load(t *testing.T, suffix string) *Package {
	t.Helper()

	a, err := NewAnalyzer(Config{GOARCH: "amd64", Suffix: suffix})
	require.NoError(t, err)

	pkgs, err := a.LoadPackages("./testdata/shapes")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	return pkgs[0]
}

func unionByName(t *testing.T, p *Package, name string) Union {
	t.Helper()

	for _, u := range p.Unions {
		if u.Decl.Name == name {
			return u
		}
	}

	require.Failf(t, "union not found", "%s", name)

	return Union{}
}

func TestAnalyzer_LoadPackages(t *testing.T) {
	t.Parallel()

	p := load(t, "_union.go")

	assert.Equal(t, testPkg, p.Path)
	assert.Equal(t, "shapes", p.Name)
	assert.NotEmpty(t, p.Dir)

	names := make([]string, 0, len(p.Unions))
	for _, u := range p.Unions {
		names = append(names, u.Decl.Name)
	}

	assert.Equal(t, []string{"Shape", "Event", "Option", "Bound", "Broken", "namelessCases"}, names)
}

func TestAnalyzer_Shape(t *testing.T) {
	t.Parallel()

	u := unionByName(t, load(t, "_union.go"), "Shape")
	require.NoError(t, u.Err)

	d := u.Decl
	assert.Equal(t, testPkg, d.Package)
	assert.Equal(t, "Shape is a plane figure.", d.Doc)
	assert.Equal(t, model.RepresentationPackedValue, d.Representation)
	assert.Contains(t, d.Pos, "shapes.go:")
	assert.Contains(t, u.File, "shapes.go")

	require.Len(t, d.Cases, 3)
	assert.Equal(t, "Circle", d.Cases[0].Name)
	assert.Equal(t, "Circle is round.", d.Cases[0].Doc)
	assert.Empty(t, d.Cases[2].Parameters)

	radius := d.Cases[0].Parameters[0]
	assert.Equal(t, "radius", radius.Name)
	assert.Equal(t, model.TypeDescriptor{
		Expr:       "float64",
		Key:        "float64",
		Unmanaged:  true,
		Comparable: true,
		Size:       8,
		Align:      8,
	}, radius.Type)
}

func TestAnalyzer_EventFacts(t *testing.T) {
	t.Parallel()

	u := unionByName(t, load(t, "_union.go"), "Event")
	require.NoError(t, u.Err)

	d := u.Decl
	assert.Equal(t, model.RepresentationTaggedReference, d.Representation)
	assert.Equal(t, "Event is something that happened.", d.Doc)

	file := d.Cases[0].Parameters[0].Type
	assert.Equal(t, "*ast.File", file.Expr)
	assert.Equal(t, "*go/ast.File", file.Key)
	assert.True(t, file.Reference)
	assert.False(t, file.Unmanaged)
	assert.Equal(t, []model.Import{{Name: "ast", Path: "go/ast"}}, file.Imports)

	lines := d.Cases[0].Parameters[1].Type
	assert.True(t, lines.Lenable)
	assert.False(t, lines.Comparable)
	assert.False(t, lines.Reference)

	after := d.Cases[1].Parameters[0].Type
	assert.Equal(t, "tm.Duration", after.Expr)
	assert.Equal(t, "time.Duration", after.Key)
	assert.True(t, after.Unmanaged)
	assert.Equal(t, []model.Import{{Name: "tm", Path: "time"}}, after.Imports)

	moved := d.Cases[3].Parameters[0].Type
	assert.True(t, moved.Unmanaged)
	assert.Equal(t, int64(8), moved.Size)
	assert.Equal(t, int64(4), moved.Align)
}

func TestAnalyzer_MasksGeneratedFiles(t *testing.T) {
	t.Parallel()

	masked := unionByName(t, load(t, "_union.go"), "Event")
	next := masked.Decl.Cases[2].Parameters[0].Type
	history := masked.Decl.Cases[2].Parameters[1].Type

	// With the generated file masked, Event does not resolve and the
	// parameters are described from syntax.
	assert.Empty(t, next.Key)
	assert.True(t, next.Reference)
	assert.True(t, next.Comparable)
	assert.Empty(t, history.Key)
	assert.True(t, history.Lenable)
	assert.False(t, history.Reference)

	unmasked := unionByName(t, load(t, ""), "Event")
	assert.Equal(t, "[]"+testPkg+".Event", unmasked.Decl.Cases[2].Parameters[1].Type.Key)
}

func TestAnalyzer_GenericUnion(t *testing.T) {
	t.Parallel()

	u := unionByName(t, load(t, "_union.go"), "Option")
	require.NoError(t, u.Err)

	d := u.Decl
	assert.Equal(t, []model.TypeParam{{Name: "T", Constraint: "any"}}, d.TypeParams)

	value := d.Cases[0].Parameters[0].Type
	assert.True(t, value.OpenGeneric)
	assert.False(t, value.Unmanaged)
	assert.Zero(t, value.Size)

	items := d.Cases[2].Parameters[0].Type
	assert.True(t, items.OpenGeneric)
	assert.True(t, items.Lenable)

	count := d.Cases[2].Parameters[1].Type
	assert.True(t, count.Unmanaged)
	assert.False(t, count.OpenGeneric)
}

func TestAnalyzer_ConstraintImports(t *testing.T) {
	t.Parallel()

	u := unionByName(t, load(t, "_union.go"), "Bound")
	require.NoError(t, u.Err)

	assert.Equal(t, []model.TypeParam{{
		Name:       "T",
		Constraint: "cmp.Ordered",
		Imports:    []model.Import{{Name: "cmp", Path: "cmp"}},
	}}, u.Decl.TypeParams)

	v := u.Decl.Cases[0].Parameters[0].Type
	assert.True(t, v.OpenGeneric)
	assert.Empty(t, v.Imports)
}

func TestAnalyzer_DirectiveErrors(t *testing.T) {
	t.Parallel()

	p := load(t, "_union.go")

	broken := unionByName(t, p, "Broken")
	require.Error(t, broken.Err)
	assert.Contains(t, broken.Err.Error(), "must be declared on an interface type")

	nameless := unionByName(t, p, "namelessCases")
	require.Error(t, nameless.Err)
	assert.Contains(t, nameless.Err.Error(), "missing union name")

	var de *DirectiveError
	require.ErrorAs(t, nameless.Err, &de)
	assert.Contains(t, de.Pos, "shapes.go:")
}

func TestNewAnalyzer_UnknownArch(t *testing.T) {
	t.Parallel()

	_, err := NewAnalyzer(Config{GOARCH: "z80"})
	require.Error(t, err)
}

func TestParseDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line    string
		name    string
		repr    model.Representation
		wantErr string
	}{
		{line: "//unionsynth:union Shape", name: "Shape"},
		{line: "//unionsynth:union Shape repr=value", name: "Shape"},
		{line: "//unionsynth:union repr=reference Node", name: "Node", repr: model.RepresentationTaggedReference},
		{line: "//unionsynth:union", wantErr: "missing union name"},
		{line: "//unionsynth:union A B", wantErr: "unexpected argument"},
		{line: "//unionsynth:union A repr=heap", wantErr: "unknown representation"},
		{line: "//unionsynth:union A mode=x", wantErr: "unknown option"},
		{line: "//unionsynth:union A repr=refrence", wantErr: `did you mean "reference"?`},
		{line: "//unionsynth:union A rep=value", wantErr: `unknown option "rep" (did you mean "repr"?)`},
		{line: "//unionsynth:unions A", wantErr: "not a union directive"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			t.Parallel()

			name, repr, err := parseDirective(tt.line)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.repr, repr)
		})
	}
}
