package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"unionsynth/internal/diagnostic"
	"unionsynth/internal/driver"
)

func newGenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate union types",
		Long: `Generate discovers union declarations and writes one file per union.
Without arguments the packages and YAML files of unionsynth.toml are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, res, err := runPipeline(cmd, args)
			if err != nil {
				return err
			}

			if err := res.Write(); err != nil {
				return err
			}

			diagnostic.NewPrinter(cmd.ErrOrStderr(), s.color).Print(res.Diagnostics, s.verbose)

			if res.Diagnostics.HasErrors() {
				return errReported
			}

			fmt.Fprintf(cmd.OutOrStdout(), "generated %d file(s)\n", len(res.Files()))

			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [packages]",
		Short: "Verify generated files are up to date",
		Long: `Check regenerates every union in memory and fails when a file on disk
differs from the output gen would write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, res, err := runPipeline(cmd, args)
			if err != nil {
				return err
			}

			stale, err := res.Check()
			if err != nil {
				return err
			}

			diagnostic.NewPrinter(cmd.ErrOrStderr(), s.color).Print(res.Diagnostics, s.verbose)

			if res.Diagnostics.HasErrors() {
				return errReported
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d file(s) up to date\n", len(res.Files())-len(stale))

			return nil
		},
	}
}

// runPipeline loads the declarations and runs the generator in memory. The
// result diagnostics hold load problems followed by per-union results.
func runPipeline(cmd *cobra.Command, args []string) (*settings, *driver.Result, error) {
	s, err := loadSettings(cmd, args)
	if err != nil {
		return nil, nil, err
	}

	diags := &diagnostic.Diagnostics{}

	pkgs, err := driver.Load(s.sources, diags)
	if err != nil {
		return nil, nil, err
	}

	res, err := driver.Run(cmd.Context(), pkgs, s.opts)
	if err != nil {
		return nil, nil, err
	}

	diags.Merge(*res.Diagnostics)
	res.Diagnostics = diags

	return s, res, nil
}
