package unionrt_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unionsynth/unionrt"
)

func TestInvalidState(t *testing.T) {
	t.Parallel()

	err := unionrt.InvalidState("Shape", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, unionrt.ErrInvalidState))
	assert.False(t, errors.Is(err, unionrt.ErrNilHandler))
	assert.Equal(t, "Shape: uninitialized union (discriminant 0)", err.Error())

	err = unionrt.InvalidState("Shape", 9)
	assert.Equal(t, "Shape: unknown discriminant 9", err.Error())

	var ise *unionrt.InvalidStateError
	require.ErrorAs(t, fmt.Errorf("wrapped: %w", err), &ise)
	assert.Equal(t, 9, ise.Tag)
}

func TestNilHandler(t *testing.T) {
	t.Parallel()

	err := unionrt.NilHandler("Shape", "Circle")
	assert.True(t, errors.Is(err, unionrt.ErrNilHandler))
	assert.Equal(t, "Shape: nil handler for case Circle", err.Error())
}

func TestRecovered(t *testing.T) {
	t.Parallel()

	assert.Nil(t, unionrt.Recovered("boom"))
	assert.Nil(t, unionrt.Recovered(errors.New("other")))
	assert.Error(t, unionrt.Recovered(unionrt.InvalidState("U", 0)))
	assert.Error(t, unionrt.Recovered(unionrt.NilHandler("U", "A")))
}

func TestHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, unionrt.Hash(2.5), unionrt.Hash(2.5))
	assert.Equal(t, unionrt.Hash("abc"), unionrt.Hash("abc"))
	assert.Equal(t, unionrt.HashLen(3), unionrt.HashLen(3))

	assert.Equal(t, uint64(1*31+7), unionrt.Combine(1, 7))
	assert.Equal(t, unionrt.Combine(unionrt.Combine(0, 1), 2), uint64(33))
}

func TestEqualAndAs(t *testing.T) {
	t.Parallel()

	assert.True(t, unionrt.Equal([]int{1, 2}, []int{1, 2}))
	assert.False(t, unionrt.Equal([]int{1, 2}, []int{2, 1}))

	var slot any = &struct{ N int }{N: 4}
	p := unionrt.As[*struct{ N int }](slot)
	require.NotNil(t, p)
	assert.Equal(t, 4, p.N)

	assert.Nil(t, unionrt.As[error](nil))
	assert.Nil(t, unionrt.As[*int](nil))
}

func upper(s string) string { return s + "!" }

func TestEqual_Funcs(t *testing.T) {
	t.Parallel()

	f := upper
	assert.True(t, unionrt.Equal(f, f))
	assert.True(t, unionrt.Equal(upper, f))
	assert.False(t, unionrt.Equal(f, strings.TrimSpace))
	assert.False(t, unionrt.Equal(f, nil))

	var none func(string) string
	assert.True(t, unionrt.Equal(none, nil))

	// Funcs inside other values keep deep-equality semantics.
	assert.False(t, unionrt.Equal([]func(string) string{f}, []func(string) string{f}))
	assert.True(t, unionrt.Equal([]func(string) string{nil}, []func(string) string{nil}))
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		kv   []any
		want string
	}{
		{name: "Empty", want: "Empty"},
		{name: "Circle", kv: []any{"radius", 2.0}, want: "Circle(radius = 2)"},
		{name: "Rect", kv: []any{"w", 1, "h", 3}, want: "Rect(w = 1, h = 3)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, unionrt.Format(tt.name, tt.kv...))
		})
	}
}

func TestUnknownTag(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ShapeTag(0)", unionrt.UnknownTag("ShapeTag", 0))
	assert.Equal(t, "ShapeTag(7)", unionrt.UnknownTag("ShapeTag", 7))
}
