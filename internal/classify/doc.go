// Package classify sorts parameter types into the three storage categories
// the layout planner understands.
//
// Classification is purely structural: it reads the facts a collector put on
// a model.TypeDescriptor and never looks at how many parameters of the type
// exist elsewhere. Packing is the planner's job.
package classify
