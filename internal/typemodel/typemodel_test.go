package typemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unionsynth/internal/model"
)

func TestRefOf(t *testing.T) {
	t.Parallel()

	ref := RefOf(model.TypeDescriptor{Expr: "[]string", Lenable: true, Size: 24})
	assert.Equal(t, TypeRef{Expr: "[]string", Lenable: true}, ref)
}

func TestType_Lookup(t *testing.T) {
	t.Parallel()

	typ := &Type{
		Name:    "Shape",
		Fields:  []*Field{{Name: "tag"}, {Name: "val0"}},
		Methods: []*Method{{Name: "Match", Kind: MethodMatch}, {Name: "Hash", Kind: MethodHash}},
	}

	assert.Equal(t, MethodHash, typ.Method("Hash").Kind)
	assert.Nil(t, typ.Method("Missing"))
	assert.Equal(t, "val0", typ.Field("val0").Name)
	assert.Nil(t, typ.Field("overlay"))
}

func TestLayout_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auto", LayoutAuto.String())
	assert.Equal(t, "sequential", LayoutSequential.String())
	assert.Equal(t, "overlay", LayoutOverlay.String())
	assert.Equal(t, "unknown", Layout(42).String())
}
