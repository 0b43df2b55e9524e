// Package driver runs the generation pipeline over discovered unions.
//
// Every union is processed on its own: validation, layout planning, API
// synthesis and emission. Unions run concurrently but each owns its slot
// pool and planner, and results are reassembled in declaration order, so
// the output does not depend on scheduling. A failing union becomes an error
// diagnostic and never stops the others.
package driver
