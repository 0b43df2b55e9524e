// Package main provides the CLI entrypoint for unionsynth.
//
// unionsynth reads union declarations from Go interfaces annotated with
// //unionsynth:union or from YAML declaration files, and writes one compact
// tagged-union type per declaration.
//
// Commands: gen | check | plan | version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"unionsynth/internal/logging"
)

// errReported signals a failure whose diagnostics were already printed.
var errReported = errors.New("generation failed")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "unionsynth",
		Short:         "Tagged-union code generator",
		Long:          `unionsynth generates compact tagged-union types with exhaustive matching from declared cases`,
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}

			l, err := logging.New(verbose)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			logging.SetLogger(l)

			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.BoolP("verbose", "v", false, "enable debug logging and informational diagnostics")
	pf.String("color", "auto", "colorize diagnostics (auto|always|never)")
	pf.String("config", "", "path to "+configFileName+" (default: search upward from the working directory)")
	pf.StringSlice("yaml", nil, "YAML declaration files (overrides [generate].yaml)")
	pf.String("suffix", "", "generated file suffix (default \"_union.go\")")
	pf.Int("jobs", 0, "number of unions processed concurrently (default GOMAXPROCS)")
	pf.String("goarch", "", "architecture used for type sizes (default host)")

	root.AddCommand(newGenCmd(), newCheckCmd(), newPlanCmd(), newVersionCmd())

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)

	stop()

	_ = logging.Logger().Sync()

	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}

		os.Exit(1)
	}
}

// isTerminal reports whether f is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color mode.
func useColor(mode string, tty bool) (bool, error) {
	switch mode {
	case "auto":
		return tty, nil
	case "always":
		return true, nil
	case "never":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --color %q (must be auto, always or never)", mode)
	}
}
