// Package model defines the normalized declarative input of the synthesizer:
// a union name, its ordered cases and each case's ordered, typed parameters.
//
// Declarations are produced by a collector (Go source discovery or YAML) and
// are read exactly once per generation pass. Nothing downstream mutates them.
//
// Key types:
//   - UnionDeclaration: name, type parameters, ordered cases, representation
//   - Case: name plus ordered CaseParameter list
//   - TypeDescriptor: the Go type expression and the facts the collector
//     established about it (unmanaged, reference, open generic, comparable)
package model
