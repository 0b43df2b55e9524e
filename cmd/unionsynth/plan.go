package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"unionsynth/internal/diagnostic"
	"unionsynth/internal/plan"
)

func newPlanCmd() *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "plan [packages]",
		Short: "Show the storage layout of each union",
		Long: `Plan prints the slots and overlay records chosen for every union without
writing files.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, res, err := runPipeline(cmd, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			for _, u := range res.Unions {
				if u.Plan == nil {
					continue
				}

				st := u.Plan.Stats()
				if dump {
					spew.Fdump(out, st)
					continue
				}

				printStats(out, u.Pos, st)
			}

			diagnostic.NewPrinter(cmd.ErrOrStderr(), s.color).Print(res.Diagnostics, s.verbose)

			if res.Diagnostics.HasErrors() {
				return errReported
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&dump, "dump", false, "dump raw layout statistics")

	return cmd
}

func printStats(w io.Writer, pos string, st plan.Stats) {
	fmt.Fprintf(w, "%s", st.Union)

	if pos != "" {
		fmt.Fprintf(w, " (%s)", pos)
	}

	fmt.Fprintln(w)

	overlay := "none"
	if len(st.Records) > 0 {
		overlay = fmt.Sprintf("%d bytes", st.OverlaySize)
		if !st.OverlayKnown {
			overlay = "unknown size"
		}
	}

	fmt.Fprintf(w, "  params: %d, slots: %d, overlay: %s\n", st.Params, len(st.Slots), overlay)

	slots := make([][]string, len(st.Slots))
	for i, sl := range st.Slots {
		slots[i] = []string{"slot", sl.Name, sl.Kind.String(), sl.Type, "cases: " + strings.Join(sl.Cases, ", ")}
	}

	records := make([][]string, len(st.Records))
	for i, r := range st.Records {
		size := fmt.Sprintf("size %d align %d", r.Size, r.Align)
		if !r.Known {
			size = "size unknown"
		}

		records[i] = []string{"record", r.Case, fmt.Sprintf("members %d,", r.Members), size}
	}

	writeRows(w, slots)
	writeRows(w, records)

	for _, key := range st.SortedTypes() {
		fmt.Fprintf(w, "  type %s: %d slot(s)\n", key, st.SlotsByType[key])
	}
}

// writeRows prints rows indented by two spaces with columns aligned by
// display width.
func writeRows(w io.Writer, rows [][]string) {
	var widths []int

	for _, row := range rows {
		for i, cell := range row {
			if i == len(widths) {
				widths = append(widths, 0)
			}

			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			if i < len(row)-1 {
				cell = runewidth.FillRight(cell, widths[i])
			}

			cells[i] = cell
		}

		fmt.Fprintf(w, "  %s\n", strings.Join(cells, " "))
	}
}
