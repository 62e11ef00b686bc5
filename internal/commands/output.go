package commands

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/paysys/paysys/internal/model"
	"github.com/paysys/paysys/internal/summary"
)

// dollars formats whole dollars as USD, e.g. "$1,250.00".
func dollars(n int64) string {
	return balance(decimal.NewFromInt(n))
}

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// balance formats a decimal amount as USD, rounded to the cent. Amounts
// beyond what go-money holds in int64 cents are printed without grouping.
func balance(d decimal.Decimal) string {
	cents := d.Shift(2).Round(0)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		if d.IsNegative() {
			return "-$" + d.Abs().StringFixed(2)
		}
		return "$" + d.StringFixed(2)
	}
	return money.New(cents.IntPart(), money.USD).Display()
}

// signedAmount prefixes credits with "+" and everything else with "-".
func signedAmount(txn model.Transaction) string {
	prefix := "-"
	if txn.Type.Kind() == model.TypeCredit {
		prefix = "+"
	}
	return prefix + balance(decimal.NewFromInt(txn.Amount).Abs())
}

func printRecords(w io.Writer, txns []model.Transaction) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, "No transactions yet")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tTYPE\tSTATUS\tAMOUNT\tDESCRIPTION")
	for _, txn := range txns {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			txn.DateLabel(),
			txn.Type.DisplayName(),
			txn.Status.DisplayName(),
			signedAmount(txn),
			txn.Title())
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s summary.Summary) {
	fmt.Fprintf(w, "Total Balance: %s\n", balance(s.TotalBalance))
	fmt.Fprintf(w, "Income: +%s\n", dollars(s.TotalIncome))
	fmt.Fprintf(w, "Expenses: -%s\n", dollars(s.TotalExpenses))
}

func printCounts(w io.Writer, txns []model.Transaction) {
	fmt.Fprintf(w, "Total: %d  %s: %d  %s: %d\n",
		len(txns),
		summary.FilterCredit.DisplayName(), summary.CountBy(txns, summary.FilterCredit),
		summary.FilterDebit.DisplayName(), summary.CountBy(txns, summary.FilterDebit))
}

func printAccount(w io.Writer, acct *model.Account) {
	if acct == nil {
		fmt.Fprintln(w, "No bank account. Create one with `paysys account create`.")
		return
	}
	fmt.Fprintf(w, "Account Number: %s\n", acct.AccountNumber)
	fmt.Fprintf(w, "Routing Number: %d\n", acct.RoutingNumber)
	fmt.Fprintf(w, "Available: %s\n", balance(acct.AmountAvail))
}
