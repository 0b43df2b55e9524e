// Package config loads the unionsynth.toml project file.
//
// The file is found by walking up from the working directory. Paths in it
// are relative to the directory holding the file:
//
//	[generate]
//	patterns = ["./..."]
//	yaml     = ["unions.yaml"]
//	suffix   = "_union.go"
//	jobs     = 4
//	goarch   = "amd64"
//	header   = "Copyright ..."
//	comments = true
//	runtime  = "example.com/project/unionrt"
//
// Command-line flags override file values.
package config
