package unionrt

import (
	"hash/maphash"
	"reflect"
)

// HashMultiplier is the polynomial factor used by Combine.
const HashMultiplier = 31

var seed = maphash.MakeSeed()

// Hash returns the process-local hash of a comparable value. Values that are
// == hash identically.
func Hash[T comparable](v T) uint64 {
	return maphash.Comparable(seed, v)
}

// HashLen hashes a value that only supports len (slices, maps). It is
// consistent with reflect.DeepEqual: deeply equal values have equal length.
func HashLen(n int) uint64 {
	return uint64(n)
}

// Combine folds x into the running hash h.
func Combine(h, x uint64) uint64 {
	return h*HashMultiplier + x
}

// Equal compares values that do not support ==.
//
// Func values are equal when they point at the same code, so every func is
// equal to itself and two nil funcs are equal. Closures of one literal share
// code and compare equal whatever they capture. Funcs nested inside other
// values follow reflect.DeepEqual, where only nil funcs are equal.
func Equal[T any](a, b T) bool {
	if va := reflect.ValueOf(&a).Elem(); va.Kind() == reflect.Func {
		return va.Pointer() == reflect.ValueOf(&b).Elem().Pointer()
	}

	return reflect.DeepEqual(a, b)
}

// As reapplies the static type of a value stored in an erased slot.
// A nil slot yields the zero value of T.
func As[T any](v any) T {
	t, _ := v.(T)
	return t
}
