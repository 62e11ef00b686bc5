package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/export"
	"github.com/paysys/paysys/internal/history"
	"github.com/paysys/paysys/internal/summary"
)

func newExportCommand(a *app) *cobra.Command {
	var user int
	var out string
	var filterName string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a user's transaction history to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.userID(user)
			if err != nil {
				return err
			}
			f, err := summary.ParseFilter(filterName)
			if err != nil {
				return err
			}

			store := history.NewStore(a.client(), a.logger.Named("history"))
			if err := store.Refresh(cmd.Context(), userID); err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			txns := store.GetFiltered(f)
			if err := export.WriteFile(out, txns); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d transactions to %s\n", len(txns), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&user, "user", 0, "user ID (default session.user_id)")
	cmd.Flags().StringVar(&out, "out", "exports/history.csv", "output CSV file")
	cmd.Flags().StringVar(&filterName, "filter", string(summary.FilterAll), "view: all, credit, debit, transfer, pending")

	return cmd
}
