package model

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TxType is the backend's transaction type. Values the backend sends that
// are not one of the known constants are kept verbatim for display.
type TxType string

const (
	TypeDebit    TxType = "DEBIT"
	TypeCredit   TxType = "CREDIT"
	TypeTransfer TxType = "TRANSFER"
	TypeUnknown  TxType = "UNKNOWN"
)

// Kind returns the canonical type for a case-insensitive match, or TypeUnknown.
func (t TxType) Kind() TxType {
	switch TxType(strings.ToUpper(string(t))) {
	case TypeDebit:
		return TypeDebit
	case TypeCredit:
		return TypeCredit
	case TypeTransfer:
		return TypeTransfer
	default:
		return TypeUnknown
	}
}

// DisplayName returns "Debit", "Credit", "Transfer" or the title-cased raw value.
func (t TxType) DisplayName() string {
	return title(strings.ToLower(string(t)))
}

// TxStatus is the backend's transaction status.
type TxStatus string

const (
	StatusComplete TxStatus = "COMPLETE"
	StatusPending  TxStatus = "PENDING"
	StatusFail     TxStatus = "FAIL"
	StatusUnknown  TxStatus = "UNKNOWN"
)

// Kind returns the canonical status for a case-insensitive match, or StatusUnknown.
func (s TxStatus) Kind() TxStatus {
	switch TxStatus(strings.ToUpper(string(s))) {
	case StatusComplete:
		return StatusComplete
	case StatusPending:
		return StatusPending
	case StatusFail:
		return StatusFail
	default:
		return StatusUnknown
	}
}

// DisplayName returns "Complete", "Pending", "Failed" or the title-cased raw value.
func (s TxStatus) DisplayName() string {
	if s.Kind() == StatusFail {
		return "Failed"
	}
	return title(strings.ToLower(string(s)))
}

// title builds a fresh Caser per call; Casers are stateful.
func title(s string) string {
	return cases.Title(language.English).String(s)
}

// Transaction is one parsed line of the backend's transaction history.
// It is derived data: a fresh slice is built on every fetch.
type Transaction struct {
	RawText       string
	Description   string
	Amount        int64 // whole dollars, sign as sent by the backend
	Date          string
	Type          TxType
	Status        TxStatus
	AccountNumber string
}

// Title is the description, or "Transaction" when there is none.
func (t Transaction) Title() string {
	if t.Description == "" {
		return "Transaction"
	}
	return t.Description
}

// DateLabel is the date, or "-" when the backend sent none.
func (t Transaction) DateLabel() string {
	if t.Date == "" {
		return "-"
	}
	return t.Date
}
