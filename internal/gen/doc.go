// Package gen renders generated union types to Go source.
//
// Generation approach uses text/template + go/format for readable,
// deterministic Go code.
//
// Codegen patterns:
//   - Discriminant enum with String method
//   - Per-case overlay records reinterpreted through unsafe.Pointer
//   - Erased any slots read back with unionrt.As
//   - Switch-based dispatch ending in an invalid-state panic
//   - Package-level generic functions for Match forms with type parameters
package gen
