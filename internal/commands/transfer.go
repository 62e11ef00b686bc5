package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/api"
)

func newTransferCommand(a *app) *cobra.Command {
	var req api.TransferRequest
	var description string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Send money to another account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if description != "" {
				req.Description = &description
			}

			resp, err := a.client().Transfer(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("transfer: %w", err)
			}

			out := cmd.OutOrStdout()
			msg := "Transfer successful"
			if resp.Success != nil {
				msg = *resp.Success
			}
			fmt.Fprintf(out, "%s: %s from %s to %s\n", msg, dollars(req.Amount), req.FromAccountNumber, req.ToAccountNumber)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FromAccountNumber, "from-account", "", "source account number")
	cmd.Flags().IntVar(&req.FromRoutingNumber, "from-routing", 0, "source routing number")
	cmd.Flags().StringVar(&req.ToAccountNumber, "to-account", "", "destination account number")
	cmd.Flags().IntVar(&req.ToRoutingNumber, "to-routing", 0, "destination routing number")
	cmd.Flags().Int64Var(&req.Amount, "amount", 0, "amount in whole dollars")
	cmd.Flags().StringVar(&description, "description", "", "optional note")

	return cmd
}
