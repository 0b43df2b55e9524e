// Package mapping provides the YAML schema, parsing and validation of union
// declaration files.
//
// YAML declarations describe unions without Go source, for example when the
// cases come from another tool.
//
// # Schema Overview
//
//	version: "1"
//	package: shapes
//	output: ./shapes        # relative to the YAML file
//	imports:
//	  ast: go/ast
//	unions:
//	  - name: Shape
//	    repr: value         # or reference
//	    doc: Shape is a plane figure.
//	    cases:
//	      - name: Circle
//	        params:
//	          - radius float64
//	      - name: Parsed
//	        params:
//	          - name: file
//	            type: "*ast.File"
//	      - name: Empty
//	  - name: Option
//	    type_params: T any
//	    cases:
//	      - name: Some
//	        params: [value T]
//	      - name: None
//
// Builtin types (numbers, strings, and composites of those such as
// []string or map[string]int) are classified automatically. Other types are
// classified from their syntax unless the parameter states the facts
// explicitly with class (unmanaged, reference, other), comparable, size and
// align.
package mapping
