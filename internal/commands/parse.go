package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/feed"
	"github.com/paysys/paysys/internal/summary"
)

func newParseCommand() *cobra.Command {
	var filterName string
	var format string

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a saved history blob offline",
		Long:  "Parse a transaction history blob as returned by the backend. Reads stdin when file is absent or \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := summary.ParseFilter(filterName)
			if err != nil {
				return err
			}

			p := feed.DefaultRegistry().Get(format)
			if p == nil {
				return fmt.Errorf("unknown format %q (available: %v)", format, feed.DefaultRegistry().Formats())
			}

			in := cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening history file: %w", err)
				}
				defer file.Close()
				in = file
			}

			return runParse(cmd.OutOrStdout(), in, p, f)
		},
	}

	cmd.Flags().StringVar(&filterName, "filter", string(summary.FilterAll), "view: all, credit, debit, transfer, pending")
	cmd.Flags().StringVar(&format, "format", "keyvalue", "history format")

	return cmd
}

func runParse(out io.Writer, in io.Reader, p feed.Parser, f summary.Filter) error {
	txns, err := p.Parse(in)
	if err != nil {
		return err
	}

	if err := printRecords(out, summary.Collect(txns, f)); err != nil {
		return err
	}
	fmt.Fprintln(out)
	printSummary(out, summary.Compute(txns, nil))
	printCounts(out, txns)
	return nil
}
