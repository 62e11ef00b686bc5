package devserver

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/paysys/paysys/internal/model"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("username already exists")
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("user already has an account")
	ErrBadAmount       = errors.New("amount must be > 0")
	ErrInsufficient    = errors.New("insufficient balance")
	ErrSameAccount     = errors.New("from and to are same")
)

// DefaultRoutingNumber is assigned to accounts opened without one.
const DefaultRoutingNumber = 110000000

const dateFormat = "2006-01-02"

// Profile is a stored user.
type Profile struct {
	User     model.User
	Password string
}

// Bank is the in-memory state behind the dev server. Accounts are keyed by
// the owning user's ID, which doubles as the account ID.
type Bank struct {
	mu         sync.Mutex
	users      map[int]*Profile
	byUsername map[string]int
	accounts   map[int]*model.Account
	history    map[int][]model.Transaction
	nextUserID int
	nextAcct   int
	now        func() time.Time
}

// NewBank returns an empty bank.
func NewBank() *Bank {
	return &Bank{
		users:      make(map[int]*Profile),
		byUsername: make(map[string]int),
		accounts:   make(map[int]*model.Account),
		history:    make(map[int][]model.Transaction),
		nextUserID: 1,
		nextAcct:   100000001,
		now:        time.Now,
	}
}

// AddUser stores a user and returns its new ID.
func (b *Bank) AddUser(u model.User, password string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.byUsername[u.Username]; ok {
		return 0, ErrUserExists
	}
	u.UserID = b.nextUserID
	b.nextUserID++
	b.users[u.UserID] = &Profile{User: u, Password: password}
	b.byUsername[u.Username] = u.UserID
	return u.UserID, nil
}

// UserByName looks a user up by username.
func (b *Bank) UserByName(username string) (model.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id, ok := b.byUsername[username]
	if !ok {
		return model.User{}, ErrUserNotFound
	}
	return b.users[id].User, nil
}

// HasUser reports whether userID exists.
func (b *Bank) HasUser(userID int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.users[userID]
	return ok
}

// OpenAccount creates the user's account. Empty number or zero routing
// get generated values.
func (b *Bank) OpenAccount(userID int, number string, routing int, opening decimal.Decimal) (model.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[userID]; !ok {
		return model.Account{}, ErrUserNotFound
	}
	if _, ok := b.accounts[userID]; ok {
		return model.Account{}, ErrAccountExists
	}
	if opening.IsNegative() {
		return model.Account{}, ErrBadAmount
	}
	if number == "" {
		number = fmt.Sprintf("%012d", b.nextAcct)
		b.nextAcct++
	}
	if routing == 0 {
		routing = DefaultRoutingNumber
	}
	acct := &model.Account{AccountNumber: number, RoutingNumber: routing, AmountAvail: opening}
	b.accounts[userID] = acct
	return *acct, nil
}

// Account returns a copy of the user's account.
func (b *Bank) Account(userID int) (model.Account, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[userID]
	if !ok {
		return model.Account{}, false
	}
	return *acct, true
}

// History returns a copy of the user's transactions, oldest first.
func (b *Bank) History(userID int) ([]model.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.users[userID]; !ok {
		return nil, ErrUserNotFound
	}
	return append([]model.Transaction(nil), b.history[userID]...), nil
}

// Record appends a transaction to an account's history. The balance is
// not touched; records are informational.
func (b *Bank) Record(accountID int, txn model.Transaction) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[accountID]
	if !ok {
		return ErrAccountNotFound
	}
	if txn.Date == "" {
		txn.Date = b.now().Format(dateFormat)
	}
	txn.AccountNumber = acct.AccountNumber
	b.history[accountID] = append(b.history[accountID], txn)
	return nil
}

// Transfer moves amount between two accounts identified by number and
// routing number, recording a DEBIT on the sender and a CREDIT on the
// receiver.
func (b *Bank) Transfer(fromNum string, fromRouting int, toNum string, toRouting int, amount int64, desc string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if amount <= 0 {
		return ErrBadAmount
	}
	fromID, from := b.find(fromNum, fromRouting)
	toID, to := b.find(toNum, toRouting)
	if from == nil || to == nil {
		return ErrAccountNotFound
	}
	if fromID == toID {
		return ErrSameAccount
	}
	amt := decimal.NewFromInt(amount)
	if from.AmountAvail.LessThan(amt) {
		return ErrInsufficient
	}

	from.AmountAvail = from.AmountAvail.Sub(amt)
	to.AmountAvail = to.AmountAvail.Add(amt)

	if desc == "" {
		desc = "Transfer"
	}
	date := b.now().Format(dateFormat)
	b.history[fromID] = append(b.history[fromID], model.Transaction{
		Amount: amount, Date: date, Type: model.TypeDebit, Status: model.StatusComplete,
		Description: desc, AccountNumber: from.AccountNumber,
	})
	b.history[toID] = append(b.history[toID], model.Transaction{
		Amount: amount, Date: date, Type: model.TypeCredit, Status: model.StatusComplete,
		Description: desc, AccountNumber: to.AccountNumber,
	})
	return nil
}

func (b *Bank) find(number string, routing int) (int, *model.Account) {
	for id, acct := range b.accounts {
		if acct.AccountNumber == number && acct.RoutingNumber == routing {
			return id, acct
		}
	}
	return 0, nil
}
