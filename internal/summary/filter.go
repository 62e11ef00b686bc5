package summary

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/paysys/paysys/internal/model"
)

// ErrUnknownFilter is returned by ParseFilter for names it does not know.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects a view over a transaction list.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterCredit   Filter = "credit"
	FilterDebit    Filter = "debit"
	FilterTransfer Filter = "transfer"
	FilterPending  Filter = "pending"
)

// Filters returns every filter in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterCredit, FilterDebit, FilterTransfer, FilterPending}
}

// ParseFilter looks up a filter by name, ignoring case.
func ParseFilter(name string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Filters() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// DisplayName is the label shown on the filter pill.
func (f Filter) DisplayName() string {
	switch f {
	case FilterAll:
		return "All"
	case FilterCredit:
		return "Credits"
	case FilterDebit:
		return "Debits"
	case FilterTransfer:
		return "Transfers"
	case FilterPending:
		return "Pending"
	default:
		return string(f)
	}
}

// Match reports whether txn belongs in the view. "pending" looks at the
// status; the others look at the type. The zero Filter matches everything.
func (f Filter) Match(txn model.Transaction) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterCredit:
		return txn.Type.Kind() == model.TypeCredit
	case FilterDebit:
		return txn.Type.Kind() == model.TypeDebit
	case FilterTransfer:
		return txn.Type.Kind() == model.TypeTransfer
	case FilterPending:
		return txn.Status.Kind() == model.StatusPending
	default:
		return false
	}
}

// Filtered yields the transactions matching f, in order. The input slice is
// not modified.
func Filtered(txns []model.Transaction, f Filter) iter.Seq[model.Transaction] {
	return func(yield func(model.Transaction) bool) {
		for _, txn := range txns {
			if !f.Match(txn) {
				continue
			}
			if !yield(txn) {
				return
			}
		}
	}
}

// Collect materializes Filtered. The result is never nil.
func Collect(txns []model.Transaction, f Filter) []model.Transaction {
	out := []model.Transaction{}
	for txn := range Filtered(txns, f) {
		out = append(out, txn)
	}
	return out
}

// CountBy counts the transactions matching f.
func CountBy(txns []model.Transaction, f Filter) int {
	n := 0
	for range Filtered(txns, f) {
		n++
	}
	return n
}
