package history

import (
	"github.com/paysys/paysys/internal/model"
	"github.com/paysys/paysys/internal/summary"
)

// State is a snapshot of a user's history view.
type State struct {
	// Seq identifies the most recent fetch started. Completions carrying
	// an older Seq are dropped.
	Seq          uint64
	Loading      bool
	Transactions []model.Transaction
	Account      *model.Account
	ErrorMessage string
	Filter       summary.Filter
}

// Summary derives the balance card figures.
func (s State) Summary() summary.Summary {
	return summary.Compute(s.Transactions, s.Account)
}

// Visible returns the transactions that pass the current filter.
func (s State) Visible() []model.Transaction {
	return summary.Collect(s.Transactions, s.Filter)
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// FetchStarted marks the start of fetch Seq.
type FetchStarted struct {
	Seq uint64
}

// Loaded delivers the parsed history and the account of fetch Seq and
// ends it. Both are applied in one transition. A nil Account means the user
// has none.
type Loaded struct {
	Seq          uint64
	Transactions []model.Transaction
	Account      *model.Account
}

// FetchFailed ends fetch Seq with a user-facing message.
type FetchFailed struct {
	Seq     uint64
	Message string
}

// FilterChanged selects a different view.
type FilterChanged struct {
	Filter summary.Filter
}

func (FetchStarted) event()  {}
func (Loaded) event()        {}
func (FetchFailed) event()   {}
func (FilterChanged) event() {}

// Reduce applies e to s and returns the next state. It does not modify s.
func Reduce(s State, e Event) State {
	next, _ := reduce(s, e)
	return next
}

// reduce also reports whether the state changed.
func reduce(s State, e Event) (State, bool) {
	switch e := e.(type) {
	case FetchStarted:
		if e.Seq <= s.Seq {
			return s, false
		}
		s.Seq = e.Seq
		s.Loading = true
		s.ErrorMessage = ""
		return s, true

	case Loaded:
		if Stale(s, e) {
			return s, false
		}
		s.Transactions = append([]model.Transaction{}, e.Transactions...)
		if e.Account != nil {
			acct := *e.Account
			s.Account = &acct
		} else {
			s.Account = nil
		}
		s.Loading = false
		return s, true

	case FetchFailed:
		if Stale(s, e) {
			return s, false
		}
		s.Loading = false
		s.ErrorMessage = e.Message
		return s, true

	case FilterChanged:
		if e.Filter == s.Filter {
			return s, false
		}
		s.Filter = e.Filter
		return s, true
	}
	return s, false
}

// Stale reports whether e completes a fetch older than the one s tracks.
// Events that do not belong to a fetch are never stale.
func Stale(s State, e Event) bool {
	switch e := e.(type) {
	case Loaded:
		return e.Seq < s.Seq
	case FetchFailed:
		return e.Seq < s.Seq
	}
	return false
}
