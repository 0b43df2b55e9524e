package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"unionsynth/internal/model"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		desc model.TypeDescriptor
		want Class
	}{
		{"float64", model.TypeDescriptor{Expr: "float64", Unmanaged: true}, ClassUnmanaged},
		{"pointer", model.TypeDescriptor{Expr: "*Node", Reference: true}, ClassReference},
		{"interface", model.TypeDescriptor{Expr: "error", Reference: true}, ClassReference},
		{"string", model.TypeDescriptor{Expr: "string"}, ClassOther},
		{"slice", model.TypeDescriptor{Expr: "[]int"}, ClassOther},
		{"type param", model.TypeDescriptor{Expr: "T", OpenGeneric: true}, ClassOther},
		{"generic pointer", model.TypeDescriptor{Expr: "*List[T]", Reference: true, OpenGeneric: true}, ClassOther},
		// A collector should never report both, but open generics win regardless.
		{"generic flat", model.TypeDescriptor{Expr: "[2]T", Unmanaged: true, OpenGeneric: true}, ClassOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Classify(tt.desc))
		})
	}
}

func TestStorageType(t *testing.T) {
	t.Parallel()

	ptr := model.TypeDescriptor{Expr: "*Node", Reference: true}
	assert.Equal(t, Erased, StorageType(ptr, ClassReference))

	str := model.TypeDescriptor{Expr: "string", Comparable: true}
	assert.Equal(t, str, StorageType(str, ClassOther))
}

func TestClass_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Unmanaged", ClassUnmanaged.String())
	assert.Equal(t, "Reference", ClassReference.String())
	assert.Equal(t, "Other", ClassOther.String())
	assert.Equal(t, "Class(0)", Class(0).String())
}
