package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/paysys/paysys/internal/api"
)

func newAccountCommand(a *app) *cobra.Command {
	var user int

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show a user's bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.userID(user)
			if err != nil {
				return err
			}

			res, err := a.client().GetAccount(cmd.Context(), userID)
			if err != nil {
				return fmt.Errorf("fetching account: %w", err)
			}
			acct, _ := res.Account()
			printAccount(cmd.OutOrStdout(), acct)
			return nil
		},
	}

	cmd.Flags().IntVar(&user, "user", 0, "user ID (default session.user_id)")
	cmd.AddCommand(newAccountCreateCommand(a))

	return cmd
}

func newAccountCreateCommand(a *app) *cobra.Command {
	var user int
	var amount string
	var accountNumber string
	var routingNumber int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Open a bank account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := a.userID(user)
			if err != nil {
				return err
			}
			opening, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing amount %q: %w", amount, err)
			}

			req := api.CreateAccountRequest{AmountAvail: opening}
			if accountNumber != "" {
				req.AccountNumber = &accountNumber
			}
			if routingNumber != 0 {
				req.RoutingNumber = &routingNumber
			}

			acct, err := a.client().CreateAccount(cmd.Context(), userID, req)
			if err != nil {
				return fmt.Errorf("creating account: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Account created")
			printAccount(out, acct)
			return nil
		},
	}

	cmd.Flags().IntVar(&user, "user", 0, "user ID (default session.user_id)")
	cmd.Flags().StringVar(&amount, "amount", "0", "opening balance in dollars")
	cmd.Flags().StringVar(&accountNumber, "account-number", "", "account number (default assigned by the backend)")
	cmd.Flags().IntVar(&routingNumber, "routing-number", 0, "routing number (default assigned by the backend)")

	return cmd
}
