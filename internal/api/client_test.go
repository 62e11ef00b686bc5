package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysys/paysys/internal/config"
	"github.com/paysys/paysys/internal/devserver"
	"github.com/paysys/paysys/internal/feed"
	"github.com/paysys/paysys/internal/model"
)

func newTestClient(t *testing.T) (*Client, *devserver.Bank) {
	t.Helper()
	bank := devserver.NewBank()
	srv := httptest.NewServer(devserver.New(bank, nil).Handler())
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL + "/", Timeout: 5 * time.Second}, nil), bank
}

func rawServer(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
}

func TestTransactionHistory_Sentinel(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := bank.AddUser(model.User{Username: "ada"}, "pw")
	require.NoError(t, err)

	res, err := c.TransactionHistory(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Nil(t, res.ErrorMessage)
	assert.Equal(t, feed.NoDataSentinel, res.Blob())
	assert.Empty(t, feed.Parse(res.Blob()))
}

func TestTransactionHistory_Lines(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := devserver.Seed(bank)
	require.NoError(t, err)

	res, err := c.TransactionHistory(context.Background(), id)
	require.NoError(t, err)
	txns := feed.Parse(res.Blob())
	require.Len(t, txns, 5)
	assert.Equal(t, "Payroll", txns[0].Description)
	assert.Equal(t, int64(2400), txns[0].Amount)
}

func TestTransactionHistory_BackendError(t *testing.T) {
	c, _ := newTestClient(t)
	res, err := c.TransactionHistory(context.Background(), 404)
	require.NoError(t, err)
	assert.False(t, res.Success)
	require.NotNil(t, res.ErrorMessage)
	assert.Equal(t, devserver.ErrUserNotFound.Error(), *res.ErrorMessage)
}

func TestGetAccount(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := devserver.Seed(bank)
	require.NoError(t, err)

	res, err := c.GetAccount(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, res.HasAccount)

	acct, ok := res.Account()
	require.True(t, ok)
	assert.Equal(t, devserver.DefaultRoutingNumber, acct.RoutingNumber)
	assert.Equal(t, "1250.00", acct.AmountAvail.StringFixed(2))
}

func TestGetAccount_None(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := bank.AddUser(model.User{Username: "ada"}, "pw")
	require.NoError(t, err)

	res, err := c.GetAccount(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, res.HasAccount)
	_, ok := res.Account()
	assert.False(t, ok)
}

func TestAccountResult_NonNumericRouting(t *testing.T) {
	num, routing := "123", "abc"
	_, ok := AccountResult{HasAccount: true, AccountNumber: &num, RoutingNumber: &routing}.Account()
	assert.False(t, ok)
}

func TestGetAccount_NumericFields(t *testing.T) {
	c := rawServer(t, http.StatusOK, `{"hasAccount":true,"accountNumber":987,"routingNumber":111,"balance":"10.5"}`)
	res, err := c.GetAccount(context.Background(), 1)
	require.NoError(t, err)

	acct, ok := res.Account()
	require.True(t, ok)
	assert.Equal(t, "987", acct.AccountNumber)
	assert.Equal(t, 111, acct.RoutingNumber)
	assert.Equal(t, "10.5", acct.AmountAvail.String())
}

func TestCreateAccount(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := bank.AddUser(model.User{Username: "ada"}, "pw")
	require.NoError(t, err)

	acct, err := c.CreateAccount(context.Background(), id, CreateAccountRequest{AmountAvail: decimal.NewFromInt(75)})
	require.NoError(t, err)
	assert.NotEmpty(t, acct.AccountNumber)
	assert.Equal(t, "75", acct.AmountAvail.String())

	_, err = c.CreateAccount(context.Background(), id, CreateAccountRequest{})
	var se *ServerError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, devserver.ErrAccountExists.Error(), se.Message)
}

func TestCreateAccount_Negative(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.CreateAccount(context.Background(), 1, CreateAccountRequest{AmountAvail: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreateTransaction_DefaultsToPending(t *testing.T) {
	c, bank := newTestClient(t)
	id, err := devserver.Seed(bank)
	require.NoError(t, err)

	msg, err := c.CreateTransaction(context.Background(), id, CreateTransactionRequest{
		Description: "Groceries",
		Amount:      35,
		Type:        model.TypeDebit,
	})
	require.NoError(t, err)
	assert.Equal(t, "Transaction created", msg)

	txns, err := bank.History(id)
	require.NoError(t, err)
	last := txns[len(txns)-1]
	assert.Equal(t, model.StatusPending, last.Status)
	assert.Equal(t, "Groceries", last.Description)
}

func TestTransfer(t *testing.T) {
	c, bank := newTestClient(t)
	fromID, err := devserver.Seed(bank)
	require.NoError(t, err)
	toID, err := bank.AddUser(model.User{Username: "bob"}, "pw")
	require.NoError(t, err)
	to, err := bank.OpenAccount(toID, "", 0, decimal.Zero)
	require.NoError(t, err)
	from, _ := bank.Account(fromID)

	desc := "Rent share"
	resp, err := c.Transfer(context.Background(), TransferRequest{
		FromAccountNumber: from.AccountNumber,
		FromRoutingNumber: from.RoutingNumber,
		ToAccountNumber:   to.AccountNumber,
		ToRoutingNumber:   to.RoutingNumber,
		Amount:            200,
		Description:       &desc,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Success)
	assert.Equal(t, "Transfer successful", *resp.Success)

	got, _ := bank.Account(toID)
	assert.Equal(t, "200", got.AmountAvail.String())
}

func TestTransfer_Insufficient(t *testing.T) {
	c, bank := newTestClient(t)
	fromID, err := devserver.Seed(bank)
	require.NoError(t, err)
	toID, _ := bank.AddUser(model.User{Username: "bob"}, "pw")
	to, _ := bank.OpenAccount(toID, "", 0, decimal.Zero)
	from, _ := bank.Account(fromID)

	resp, err := c.Transfer(context.Background(), TransferRequest{
		FromAccountNumber: from.AccountNumber,
		FromRoutingNumber: from.RoutingNumber,
		ToAccountNumber:   to.AccountNumber,
		ToRoutingNumber:   to.RoutingNumber,
		Amount:            1_000_000,
	})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, devserver.ErrInsufficient.Error(), UserMessage(err))
}

func TestTransfer_InvalidNotSent(t *testing.T) {
	c := rawServer(t, http.StatusInternalServerError, "should not be called")
	_, err := c.Transfer(context.Background(), TransferRequest{})
	require.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "Amount must be greater than zero")
}

func TestLoginAndSignup(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	exists, err := c.UsernameExists(ctx, "grace")
	require.NoError(t, err)
	assert.False(t, exists)

	msg, err := c.CreateUser(ctx, CreateUserRequest{
		Name: "Grace", LastName: "Hopper", Address: "1 Navy Way", AccountType: "Savings",
		PhoneNumber: "555-0101", Username: "grace", Password: "cobol59", ConfirmPassword: "cobol59",
	})
	require.NoError(t, err)
	assert.Equal(t, "User created", msg)

	exists, err = c.UsernameExists(ctx, "grace")
	require.NoError(t, err)
	assert.True(t, exists)

	u, err := c.Login(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, 1, u.UserID)
	assert.Equal(t, "Grace Hopper", u.FullName())
	assert.Equal(t, model.AccountTypeSavings, u.AccountType)
	assert.Equal(t, "555-0101", u.PhoneNumber)
	assert.Equal(t, "grace", u.Username)
}

func TestLogin_Unknown(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.Login(context.Background(), "nobody")
	require.ErrorIs(t, err, ErrRequestFailed)
	assert.Equal(t, "Request failed. Please try again.", UserMessage(err))
}

func TestDecodingFailure(t *testing.T) {
	c := rawServer(t, http.StatusOK, "<html>oops</html>")
	_, err := c.TransactionHistory(context.Background(), 1)
	require.ErrorIs(t, err, ErrDecodingFailed)
	assert.Equal(t, "Failed to process server response", UserMessage(err))
}

func TestNon2xx(t *testing.T) {
	c := rawServer(t, http.StatusBadGateway, `{"Success":"True"}`)
	_, err := c.TransactionHistory(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestInvalidURL(t *testing.T) {
	c := NewClient(config.APIConfig{BaseURL: "not a url"}, nil)
	_, err := c.TransactionHistory(context.Background(), 1)
	require.ErrorIs(t, err, ErrInvalidURL)
	assert.Equal(t, "Invalid URL", UserMessage(err))
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(config.APIConfig{BaseURL: url, Timeout: time.Second}, nil)
	_, err := c.GetAccount(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRequestFailed)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{"hasAccount":false}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: time.Second}, nil)
	_, err := c.GetAccount(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Len(t, got.Get("X-Request-ID"), 36)
}

func TestUserMessage_Nil(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
}
