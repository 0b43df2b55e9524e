// Package unionrt is the runtime support library imported by code generated
// with unionsynth.
//
// Generated unions call into this package for the few operations that are
// identical across every union:
//   - raising the invalid-state error when a case-dependent operation runs on
//     a zero or corrupted discriminant
//   - rejecting nil Match handlers
//   - hashing parameters and combining hash codes
//   - formatting a case for String()
//
// The package has no dependencies beyond the standard library so generated
// code stays cheap to import.
package unionrt
