package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paysys/paysys/internal/model"
)

// backendTrue is how the backend spells a successful "Success" field.
const backendTrue = "True"

// historyRequest is the body of POST user-transaction.
type historyRequest struct {
	UserID int `json:"userID"`
}

// historyEnvelope is the raw response of POST user-transaction.
type historyEnvelope struct {
	Success *string `json:"Success"`
	Error   *string `json:"Error"`
	Info    *string `json:"info"`
}

// HistoryResult is what the transport hands the parser. RawInfo carries
// the unparsed blob, which may be the "no data" sentinel.
type HistoryResult struct {
	Success      bool
	RawInfo      *string
	ErrorMessage *string
}

// Blob returns RawInfo, or "" when absent.
func (r HistoryResult) Blob() string {
	if r.RawInfo == nil {
		return ""
	}
	return *r.RawInfo
}

// flexFloat accepts a JSON number or a numeric string.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := strings.Trim(string(data), `"`)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing number %s: %w", data, err)
	}
	*f = flexFloat(v)
	return nil
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// accountEnvelope is the raw response of GET getAccount/{userID}.
type accountEnvelope struct {
	HasAccount    bool        `json:"hasAccount"`
	AccountNumber *flexString `json:"accountNumber"`
	RoutingNumber *flexString `json:"routingNumber"`
	Balance       *flexFloat  `json:"balance"`
	Error         *string     `json:"error"`
}

// AccountResult is the transport's view of a user's bank account.
type AccountResult struct {
	HasAccount    bool
	AccountNumber *string
	RoutingNumber *string
	Balance       *float64
}

// Account builds the model when the backend reported an account with a
// number and a numeric routing number.
func (r AccountResult) Account() (*model.Account, bool) {
	if !r.HasAccount || r.AccountNumber == nil || r.RoutingNumber == nil {
		return nil, false
	}
	routing, err := strconv.Atoi(strings.TrimSpace(*r.RoutingNumber))
	if err != nil {
		return nil, false
	}
	acct := &model.Account{
		AccountNumber: *r.AccountNumber,
		RoutingNumber: routing,
	}
	if r.Balance != nil {
		acct.AmountAvail = decimal.NewFromFloat(*r.Balance)
	}
	return acct, true
}

// CreateAccountRequest opens a bank account for a user.
type CreateAccountRequest struct {
	RoutingNumber *int
	AccountNumber *string
	AmountAvail   decimal.Decimal
}

// MarshalJSON sends the balance as a JSON number.
func (r CreateAccountRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		RoutingNumber *int    `json:"routingNumber,omitempty"`
		AccountNumber *string `json:"accountNumber,omitempty"`
		AmountAvail   float64 `json:"amountAvail"`
	}{r.RoutingNumber, r.AccountNumber, r.AmountAvail.InexactFloat64()})
}

// CreateAccountResponse is the backend's reply to createAccount.
type CreateAccountResponse struct {
	Success       *string     `json:"success"`
	Error         *string     `json:"error"`
	AccountNumber *string     `json:"accountNumber"`
	RoutingNumber *flexString `json:"routingNumber"`
}

// CreateTransactionRequest records a transaction against an account.
type CreateTransactionRequest struct {
	Description string         `json:"description"`
	Amount      int64          `json:"transAmount"`
	Type        model.TxType   `json:"type"`
	Status      model.TxStatus `json:"status,omitempty"`
}

// MessageResponse is the common {success, error} reply.
type MessageResponse struct {
	Success *string `json:"success"`
	Error   *string `json:"error"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccountNumber string  `json:"fromAccountNumber"`
	FromRoutingNumber int     `json:"fromRoutingNumber"`
	ToAccountNumber   string  `json:"toAccountNumber"`
	ToRoutingNumber   int     `json:"toRoutingNumber"`
	Amount            int64   `json:"amount"`
	Description       *string `json:"description,omitempty"`
}

// TransferResponse is the backend's reply to a transfer.
type TransferResponse struct {
	Success *string     `json:"success"`
	Error   *string     `json:"error"`
	Amount  *flexString `json:"amount"`
	From    *string     `json:"from"`
	To      *string     `json:"to"`
}

// loginResponse is the profile returned by get-data-byUsername.
type loginResponse struct {
	ID          flexString `json:"id"`
	Name        string     `json:"name"`
	LastName    string     `json:"lastName"`
	Address     string     `json:"address"`
	AccountType string     `json:"accountType"`
	PhoneNumber string     `json:"Phone Number"`
}

func (r loginResponse) user(username string) model.User {
	id, _ := strconv.Atoi(string(r.ID))
	return model.User{
		UserID:      id,
		Name:        r.Name,
		LastName:    r.LastName,
		Address:     r.Address,
		AccountType: model.AccountType(r.AccountType),
		PhoneNumber: r.PhoneNumber,
		Username:    username,
	}
}

// CreateUserRequest signs up a new user.
type CreateUserRequest struct {
	Name            string `json:"name"`
	LastName        string `json:"lastName"`
	Address         string `json:"address"`
	AccountType     string `json:"accountType"`
	PhoneNumber     string `json:"phoneNumber"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// signupEnvelope is the reply to createUser.
type signupEnvelope struct {
	Success *string `json:"Success"`
	Error   *string `json:"Error"`
}

// existsEnvelope is the reply to user-data-exist.
type existsEnvelope struct {
	Exists  *string `json:"Exists"`
	Message *string `json:"Message"`
	Error   *string `json:"Error"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
