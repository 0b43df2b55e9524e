// Package synth derives the generated type of a union from its declaration
// and layout plan: discriminant, per-case predicates and factories, the
// Match family, TryGet accessors, equality, hashing and formatting.
package synth
