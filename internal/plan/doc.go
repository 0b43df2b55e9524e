// Package plan computes the storage layout of a union: the mapping from every
// (case, parameter) pair to a storage location plus the accessor used to read
// and write it.
//
// Layout pipeline (per union, no shared state):
//  1. Classify each parameter type (package classify)
//  2. Unmanaged parameters go to the Overlay: one flat record per case, all
//     records overlaid on one shared field
//  3. Reference and other parameters go to the Pool: first-fit reuse of
//     same-typed slots across cases
//  4. The resulting LayoutPlan is total: every parameter has one accessor
//
// The pool is optimal within one slot type but does not trade slots between
// differently typed groups.
package plan
