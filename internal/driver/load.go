package driver

import (
	"path/filepath"

	"go.uber.org/zap"

	"unionsynth/internal/analyze"
	"unionsynth/internal/diagnostic"
	"unionsynth/internal/logging"
	"unionsynth/internal/mapping"
)

// Sources selects the declarations of a pass.
type Sources struct {
	// Dir is the directory patterns and relative YAML paths are resolved in.
	Dir string
	// Patterns are Go package patterns to scan for union directives.
	Patterns []string
	// YAML lists declaration files.
	YAML []string
	// GOARCH selects type sizes; empty means the host architecture.
	GOARCH string
	// Suffix is the generated file suffix, used to mask previous output.
	Suffix string
}

// Load discovers the unions of src. Problems with individual YAML files are
// added to diags and the file is skipped.
func Load(src Sources, diags *diagnostic.Diagnostics) ([]*analyze.Package, error) {
	a, err := analyze.NewAnalyzer(analyze.Config{Dir: src.Dir, GOARCH: src.GOARCH, Suffix: src.Suffix})
	if err != nil {
		return nil, err
	}

	var pkgs []*analyze.Package

	if len(src.Patterns) > 0 {
		pkgs, err = a.LoadPackages(src.Patterns...)
		if err != nil {
			return nil, err
		}
	}

	for _, path := range src.YAML {
		if !filepath.IsAbs(path) && src.Dir != "" {
			path = filepath.Join(src.Dir, path)
		}

		p, ok := loadYAML(a, path, diags)
		if ok {
			pkgs = append(pkgs, p)
		}
	}

	n := 0
	for _, p := range pkgs {
		n += len(p.Unions)
	}

	logging.Logger().Debug("discovery finished", zap.Int("packages", len(pkgs)), zap.Int("unions", n))

	return pkgs, nil
}

func loadYAML(a *analyze.Analyzer, path string, diags *diagnostic.Diagnostics) (*analyze.Package, bool) {
	df, err := mapping.LoadFile(path)
	if err != nil {
		diags.AddError(diagnostic.CodeYAML, "", path, err)
		return nil, false
	}

	res := mapping.Validate(df, path)
	diags.Merge(*res)

	if res.HasErrors() {
		return nil, false
	}

	return mapping.Resolve(df, path, a.Sizes()), true
}
