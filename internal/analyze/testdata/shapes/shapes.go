package shapes

import (
	"cmp"
	"go/ast"
	tm "time"
)

// Shape is a plane figure.
//
//unionsynth:union Shape
type shapeCases interface {
	// Circle is round.
	Circle(radius float64)
	Square(side float64)
	Empty()
}

// Event is something that happened.
//
//unionsynth:union Event repr=reference
type eventCases interface {
	Parsed(file *ast.File, lines []string)
	Timeout(after tm.Duration)
	Linked(next *Event, history []Event)
	Moved(to point)
}

type point struct{ x, y int32 }

//unionsynth:union Option
type optionCases[T any] interface {
	Some(value T)
	None()
	Pair(items []T, count int)
}

// Bound is one end of an ordered range.
//
//unionsynth:union Bound
type boundCases[T cmp.Ordered] interface {
	Lo(v T)
	Hi(v T)
}

//unionsynth:union Broken
type brokenCases struct{}

//unionsynth:union
type namelessCases interface{ A() }
