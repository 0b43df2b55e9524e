package classify

import (
	"unionsynth/internal/model"
)

//go:generate go tool stringer -type=Class -trimprefix=Class -output=class_string.go

// Class is the storage category of a parameter type.
type Class int

const (
	_ Class = iota // zero value is not a valid class

	// ClassUnmanaged types are flat, pointer-free and generic-free; they are
	// eligible for the blittable overlay.
	ClassUnmanaged
	// ClassReference types are stored in erased (any) slots; the precise
	// static type is reapplied at the read site.
	ClassReference
	// ClassOther covers values that cannot be proven overlay-safe and
	// anything containing an open type parameter. Slots keep the exact type.
	ClassOther
)

// Erased is the common storage type of every reference slot.
var Erased = model.TypeDescriptor{
	Expr:       "any",
	Key:        "any",
	Reference:  true,
	Comparable: true,
}

// Classify returns the storage category of d.
//
// Anything containing an open type parameter is ClassOther even when it is a
// pointer: generic code needs the precise static type on the field.
func Classify(d model.TypeDescriptor) Class {
	switch {
	case d.OpenGeneric:
		return ClassOther
	case d.Unmanaged:
		return ClassUnmanaged
	case d.Reference:
		return ClassReference
	default:
		return ClassOther
	}
}

// StorageType returns the descriptor of the slot a value of type d is stored
// in: Erased for references, d itself otherwise.
func StorageType(d model.TypeDescriptor, c Class) model.TypeDescriptor {
	if c == ClassReference {
		return Erased
	}

	return d
}
