// Package diagnostic provides structured warnings and errors for union
// generation.
//
// Every diagnostic carries the identity of the union it concerns, so a
// failure in one union is reported without hiding the others.
package diagnostic
