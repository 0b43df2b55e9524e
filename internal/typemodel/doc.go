// Package typemodel is the language-neutral structural description of a
// generated union: fields, properties, factories, methods, operators and
// nested types. Member bodies are sequences of abstract operations (store a
// parameter, dispatch on the discriminant, invoke a handler, fail) that an
// emitter renders into a concrete language.
package typemodel
