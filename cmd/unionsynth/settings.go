package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"unionsynth/internal/config"
	"unionsynth/internal/driver"
	"unionsynth/internal/gen"
)

const configFileName = config.FileName

// settings is the merged result of the project file and flags.
type settings struct {
	cfg     *config.Config
	sources driver.Sources
	opts    driver.Options
	verbose bool
	color   bool
}

func loadSettings(cmd *cobra.Command, args []string) (*settings, error) {
	flags := cmd.Flags()

	cfgPath, err := flags.GetString("config")
	if err != nil {
		return nil, err
	}

	var cfg *config.Config
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
	} else {
		cfg, err = config.Discover(".")
	}

	if err != nil {
		return nil, err
	}

	s := &settings{cfg: cfg}

	if s.verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, err
	}

	colorMode, err := flags.GetString("color")
	if err != nil {
		return nil, err
	}

	if s.color, err = useColor(colorMode, isTerminal(os.Stderr)); err != nil {
		return nil, err
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	g := cfg.Generate

	s.sources = driver.Sources{
		Dir:      cfg.Root,
		Patterns: g.Patterns,
		YAML:     cfg.YAMLPaths(),
		GOARCH:   g.GOARCH,
		Suffix:   g.Suffix,
	}

	// Explicit patterns are relative to the working directory.
	if len(args) > 0 {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}

		s.sources.Dir = wd
		s.sources.Patterns = args
	}

	if s.sources.Suffix == "" {
		s.sources.Suffix = gen.DefaultSuffix
	}

	s.opts.Jobs = g.Jobs
	s.opts.Emitter = gen.DefaultEmitterConfig()
	s.opts.Emitter.Suffix = s.sources.Suffix
	s.opts.Emitter.Header = g.Header
	s.opts.Emitter.GenerateComments = cfg.CommentsEnabled()

	if g.Runtime != "" {
		s.opts.Emitter.RuntimePath = g.Runtime
	}

	return s, nil
}

// applyFlags overrides project file values with explicitly set flags.
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	g := &cfg.Generate

	var err error

	if flags.Changed("yaml") {
		paths, err := flags.GetStringSlice("yaml")
		if err != nil {
			return err
		}

		g.YAML = g.YAML[:0]

		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return fmt.Errorf("failed to resolve %q: %w", p, err)
			}

			g.YAML = append(g.YAML, abs)
		}

		// Without a project file, --yaml alone selects no Go packages.
		if cfg.Path == "" {
			g.Patterns = nil
		}
	}

	if flags.Changed("suffix") {
		if g.Suffix, err = flags.GetString("suffix"); err != nil {
			return err
		}
	}

	if flags.Changed("goarch") {
		if g.GOARCH, err = flags.GetString("goarch"); err != nil {
			return err
		}
	}

	if flags.Changed("jobs") {
		if g.Jobs, err = flags.GetInt("jobs"); err != nil {
			return err
		}
	}

	return nil
}
