package history

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/paysys/paysys/internal/api"
	"github.com/paysys/paysys/internal/feed"
	"github.com/paysys/paysys/internal/model"
	"github.com/paysys/paysys/internal/summary"
)

// Fetcher loads a user's raw history and account. *api.Client satisfies it.
type Fetcher interface {
	TransactionHistory(ctx context.Context, userID int) (api.HistoryResult, error)
	GetAccount(ctx context.Context, userID int) (api.AccountResult, error)
}

// fallbackError is shown when the backend fails without saying why.
const fallbackError = "Failed to load transactions"

// Store holds the current State and notifies subscribers of changes.
type Store struct {
	fetcher Fetcher
	logger  *zap.Logger

	mu         sync.Mutex
	state      State
	version    uint64
	lastSeq    uint64
	subs       map[int]func(State)
	nextSub    int
	delivering bool
}

// NewStore creates a Store with an empty history. A nil logger discards logs.
func NewStore(fetcher Fetcher, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		fetcher: fetcher,
		logger:  logger,
		state:   State{Transactions: []model.Transaction{}, Filter: summary.FilterAll},
		subs:    make(map[int]func(State)),
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to run after every state change. Call the returned
// func to unsubscribe.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Dispatch applies e. State reflects it as soon as Dispatch returns.
//
// Notifications are delivered by one goroutine at a time. A Dispatch that
// arrives while another is delivering, including one made from inside a
// subscriber, leaves delivery to that goroutine, which runs another round
// with the newest state. Intermediate states may be coalesced, but every
// subscriber's last notification is the current state.
func (s *Store) Dispatch(e Event) {
	s.mu.Lock()
	if Stale(s.state, e) {
		s.logger.Debug("dropping stale event",
			zap.String("event", fmt.Sprintf("%T", e)),
			zap.Uint64("current_seq", s.state.Seq))
	}
	next, changed := reduce(s.state, e)
	if !changed {
		s.mu.Unlock()
		return
	}
	s.state = next
	s.version++
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true

	for {
		st, version := s.state, s.version
		subs := s.subscribers()
		s.mu.Unlock()

		for _, fn := range subs {
			fn(st)
		}

		s.mu.Lock()
		if s.version == version {
			break
		}
	}
	s.delivering = false
	s.mu.Unlock()
}

// subscribers returns the registered callbacks in subscription order.
// Callers hold s.mu.
func (s *Store) subscribers() []func(State) {
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(State), len(ids))
	for i, id := range ids {
		fns[i] = s.subs[id]
	}
	return fns
}

// Refresh fetches the user's history and account and folds both into the
// state in one transition. A refresh overtaken by a newer one leaves no
// trace. Only a failed history fetch fails the refresh; the returned error
// is the one recorded as the failure message.
func (s *Store) Refresh(ctx context.Context, userID int) error {
	s.mu.Lock()
	s.lastSeq++
	seq := s.lastSeq
	s.mu.Unlock()

	s.logger.Debug("refreshing history", zap.Int("user_id", userID), zap.Uint64("seq", seq))
	s.Dispatch(FetchStarted{Seq: seq})

	res, err := s.fetcher.TransactionHistory(ctx, userID)
	if err != nil {
		return s.fail(seq, fmt.Errorf("fetching history: %w", err))
	}
	if res.ErrorMessage != nil {
		return s.fail(seq, &api.ServerError{Message: *res.ErrorMessage})
	}
	if !res.Success {
		return s.fail(seq, &api.ServerError{Message: fallbackError})
	}
	txns := feed.Parse(res.Blob())

	// No account is normal for new users, and some backends answer that
	// with an error status. The balance then falls back to the record sum.
	var acct *model.Account
	acctRes, err := s.fetcher.GetAccount(ctx, userID)
	if err != nil {
		s.logger.Warn("account unavailable, showing history without it",
			zap.Int("user_id", userID),
			zap.Uint64("seq", seq),
			zap.Error(err))
	} else {
		acct, _ = acctRes.Account()
	}

	s.Dispatch(Loaded{Seq: seq, Transactions: txns, Account: acct})
	s.logger.Debug("history loaded",
		zap.Uint64("seq", seq),
		zap.Int("transactions", len(txns)),
		zap.Bool("has_account", acct != nil))
	return nil
}

func (s *Store) fail(seq uint64, err error) error {
	s.logger.Warn("refresh failed", zap.Uint64("seq", seq), zap.Error(err))
	s.Dispatch(FetchFailed{Seq: seq, Message: api.UserMessage(err)})
	return err
}

// GetTransactions returns every loaded transaction in backend order.
func (s *Store) GetTransactions() []model.Transaction {
	st := s.State()
	return append([]model.Transaction{}, st.Transactions...)
}

// GetSummary returns the balance card figures for the loaded data.
func (s *Store) GetSummary() summary.Summary {
	return s.State().Summary()
}

// GetFiltered returns the loaded transactions matching f.
func (s *Store) GetFiltered(f summary.Filter) []model.Transaction {
	return summary.Collect(s.State().Transactions, f)
}
