package model

import "github.com/shopspring/decimal"

// AccountType is the kind of bank account a user signed up for.
type AccountType string

const (
	AccountTypeChecking AccountType = "Checking"
	AccountTypeSavings  AccountType = "Savings"
	AccountTypeBusiness AccountType = "Business"
)

// AccountTypes returns the account types offered at signup.
func AccountTypes() []AccountType {
	return []AccountType{AccountTypeChecking, AccountTypeSavings, AccountTypeBusiness}
}

// Account mirrors the backend's bank account. It is replaced wholesale on
// every fetch or creation.
type Account struct {
	AccountNumber string // opaque; not checked for length or digits
	RoutingNumber int
	AmountAvail   decimal.Decimal // authoritative balance
}

// User is the profile returned by login.
type User struct {
	UserID      int
	Name        string
	LastName    string
	Address     string
	AccountType AccountType
	PhoneNumber string
	Username    string
}

// FullName joins first and last name.
func (u User) FullName() string {
	if u.LastName == "" {
		return u.Name
	}
	if u.Name == "" {
		return u.LastName
	}
	return u.Name + " " + u.LastName
}
