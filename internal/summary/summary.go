package summary

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/paysys/paysys/internal/model"
)

// Summary holds the figures shown on the balance card.
type Summary struct {
	TotalBalance  decimal.Decimal
	TotalIncome   int64
	TotalExpenses int64
}

// Compute derives the summary. The balance is acct.AmountAvail when an
// account is known, otherwise RawTotal(txns). Compute is total: nil or empty
// input yields zeros.
func Compute(txns []model.Transaction, acct *model.Account) Summary {
	balance := decimal.NewFromInt(RawTotal(txns))
	if acct != nil {
		balance = acct.AmountAvail
	}
	return Summary{
		TotalBalance:  balance,
		TotalIncome:   Income(txns),
		TotalExpenses: Expenses(txns),
	}
}

// RawTotal sums Amount as stored. It does not adjust the sign by type, so
// it is only as meaningful as the backend's sign convention.
func RawTotal(txns []model.Transaction) int64 {
	var total int64
	for _, txn := range txns {
		total += txn.Amount
	}
	return total
}

// Income sums abs(Amount) over CREDIT transactions.
func Income(txns []model.Transaction) int64 {
	return sumAbs(txns, model.TypeCredit)
}

// Expenses sums abs(Amount) over DEBIT transactions.
func Expenses(txns []model.Transaction) int64 {
	return sumAbs(txns, model.TypeDebit)
}

func sumAbs(txns []model.Transaction, kind model.TxType) int64 {
	var total int64
	for _, txn := range txns {
		if txn.Type.Kind() != kind {
			continue
		}
		total = addSat(total, abs(txn.Amount))
	}
	return total
}

// abs saturates at MaxInt64 for MinInt64.
func abs(n int64) int64 {
	switch {
	case n == math.MinInt64:
		return math.MaxInt64
	case n < 0:
		return -n
	default:
		return n
	}
}

// addSat adds two non-negative values, saturating at MaxInt64.
func addSat(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
