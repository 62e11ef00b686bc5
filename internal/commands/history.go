package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/history"
	"github.com/paysys/paysys/internal/summary"
)

func newHistoryCommand(a *app) *cobra.Command {
	var user int
	var filterName string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show a user's transaction history and balance",
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
			store.Dispatch(history.FilterChanged{Filter: f})
			if err := store.Refresh(cmd.Context(), userID); err != nil {
				return fmt.Errorf("loading history: %w", err)
			}

			out := cmd.OutOrStdout()
			st := store.State()
			if err := printRecords(out, st.Visible()); err != nil {
				return err
			}
			fmt.Fprintln(out)
			printSummary(out, st.Summary())
			printCounts(out, st.Transactions)
			return nil
		},
	}

	cmd.Flags().IntVar(&user, "user", 0, "user ID (default session.user_id)")
	cmd.Flags().StringVar(&filterName, "filter", string(summary.FilterAll), "view: all, credit, debit, transfer, pending")

	return cmd
}
