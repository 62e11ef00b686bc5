package devserver

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysys/paysys/internal/model"
)

func fixedBank(t *testing.T) *Bank {
	t.Helper()
	b := NewBank()
	b.now = func() time.Time { return time.Date(2025, 2, 3, 12, 0, 0, 0, time.UTC) }
	return b
}

func addUserWithAccount(t *testing.T, b *Bank, username string, balance int64) (int, model.Account) {
	t.Helper()
	id, err := b.AddUser(model.User{Username: username}, "secret1")
	require.NoError(t, err)
	acct, err := b.OpenAccount(id, "", 0, decimal.NewFromInt(balance))
	require.NoError(t, err)
	return id, acct
}

func TestAddUser_Duplicate(t *testing.T) {
	b := fixedBank(t)
	_, err := b.AddUser(model.User{Username: "ada"}, "pw")
	require.NoError(t, err)
	_, err = b.AddUser(model.User{Username: "ada"}, "pw")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestOpenAccount(t *testing.T) {
	b := fixedBank(t)
	id, acct := addUserWithAccount(t, b, "ada", 100)
	assert.Len(t, acct.AccountNumber, 12)
	assert.Equal(t, DefaultRoutingNumber, acct.RoutingNumber)

	_, err := b.OpenAccount(id, "", 0, decimal.Zero)
	assert.ErrorIs(t, err, ErrAccountExists)

	_, err = b.OpenAccount(999, "", 0, decimal.Zero)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRecord_FillsDateAndAccount(t *testing.T) {
	b := fixedBank(t)
	id, acct := addUserWithAccount(t, b, "ada", 0)

	require.NoError(t, b.Record(id, model.Transaction{Amount: 5, Type: model.TypeDebit}))
	txns, err := b.History(id)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, "2025-02-03", txns[0].Date)
	assert.Equal(t, acct.AccountNumber, txns[0].AccountNumber)

	assert.ErrorIs(t, b.Record(12345, model.Transaction{}), ErrAccountNotFound)
}

func TestTransfer(t *testing.T) {
	b := fixedBank(t)
	fromID, from := addUserWithAccount(t, b, "ada", 100)
	toID, to := addUserWithAccount(t, b, "bob", 0)

	err := b.Transfer(from.AccountNumber, from.RoutingNumber, to.AccountNumber, to.RoutingNumber, 40, "Lunch")
	require.NoError(t, err)

	gotFrom, _ := b.Account(fromID)
	gotTo, _ := b.Account(toID)
	assert.Equal(t, "60", gotFrom.AmountAvail.String())
	assert.Equal(t, "40", gotTo.AmountAvail.String())

	fromHist, _ := b.History(fromID)
	toHist, _ := b.History(toID)
	require.Len(t, fromHist, 1)
	require.Len(t, toHist, 1)
	assert.Equal(t, model.TypeDebit, fromHist[0].Type)
	assert.Equal(t, model.TypeCredit, toHist[0].Type)
	assert.Equal(t, "Lunch", toHist[0].Description)
}

func TestTransfer_Errors(t *testing.T) {
	b := fixedBank(t)
	_, from := addUserWithAccount(t, b, "ada", 10)
	_, to := addUserWithAccount(t, b, "bob", 0)

	assert.ErrorIs(t, b.Transfer(from.AccountNumber, from.RoutingNumber, to.AccountNumber, to.RoutingNumber, 0, ""), ErrBadAmount)
	assert.ErrorIs(t, b.Transfer(from.AccountNumber, from.RoutingNumber, to.AccountNumber, to.RoutingNumber, 11, ""), ErrInsufficient)
	assert.ErrorIs(t, b.Transfer(from.AccountNumber, from.RoutingNumber, from.AccountNumber, from.RoutingNumber, 1, ""), ErrSameAccount)
	assert.ErrorIs(t, b.Transfer("nope", 1, to.AccountNumber, to.RoutingNumber, 1, ""), ErrAccountNotFound)
}

func TestSeed(t *testing.T) {
	b := fixedBank(t)
	id, err := Seed(b)
	require.NoError(t, err)

	txns, err := b.History(id)
	require.NoError(t, err)
	assert.Len(t, txns, 5)

	acct, ok := b.Account(id)
	require.True(t, ok)
	assert.Equal(t, "1250", acct.AmountAvail.String())
}
