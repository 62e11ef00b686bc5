package feed

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paysys/paysys/internal/model"
)

// Wire format of the backend's transaction history. One transaction per
// line, fields as "Key: Value" pairs joined by ", ":
//
//	Transaction: Amount: $100, Date: 2025-01-01, Type: DEBIT, Status: COMPLETE, Description: Rent, Account: 123456789012
//
// Delimiters are never escaped. A value that itself contains ", " splits
// into extra tokens; the part after the separator is dropped or misread as
// another key.
const (
	NoDataSentinel    = "No transaction data found for the given user ID."
	LinePrefix        = "Transaction: "
	FieldSeparator    = ", "
	KeyValueSeparator = ": "
)

const currencySymbol = "$"

// Field keys, lower-cased.
const (
	keyAmount      = "amount"
	keyDate        = "date"
	keyType        = "type"
	keyStatus      = "status"
	keyDescription = "description"
	keyAccount     = "account"
)

// Field is one "Key: Value" token of a line. Key is lower-cased.
type Field struct {
	Key   string
	Value string
}

// IsEmpty reports whether blob means "no transactions": empty or the sentinel.
func IsEmpty(blob string) bool {
	return blob == "" || blob == NoDataSentinel
}

// Parse converts a history blob into transactions, one per non-blank line,
// in input order. It never fails; unrecognized lines degrade to a
// transaction whose description is the raw line.
func Parse(blob string) []model.Transaction {
	txns := []model.Transaction{}
	if IsEmpty(blob) {
		return txns
	}
	for _, line := range strings.Split(blob, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		txns = append(txns, ParseLine(line))
	}
	return txns
}

// ParseLine converts a single line. Fields that fail to parse keep their
// zero value.
func ParseLine(line string) model.Transaction {
	txn := model.Transaction{RawText: line}

	for _, f := range Tokenize(line) {
		switch f.Key {
		case keyAmount:
			txn.Amount = parseAmount(f.Value)
		case keyDate:
			txn.Date = f.Value
		case keyType:
			txn.Type = model.TxType(f.Value)
		case keyStatus:
			txn.Status = model.TxStatus(f.Value)
		case keyDescription:
			txn.Description = f.Value
		case keyAccount:
			txn.AccountNumber = f.Value
		}
	}

	if txn.Description == "" && txn.Amount == 0 {
		txn.Description = line
	}
	return txn
}

// Tokenize splits a line into fields. A leading LinePrefix is removed;
// tokens without KeyValueSeparator are dropped.
func Tokenize(line string) []Field {
	body := strings.TrimPrefix(line, LinePrefix)

	var fields []Field
	for _, tok := range strings.Split(body, FieldSeparator) {
		key, value, ok := strings.Cut(tok, KeyValueSeparator)
		if !ok {
			continue
		}
		fields = append(fields, Field{
			Key:   strings.ToLower(strings.TrimSpace(key)),
			Value: strings.TrimSpace(value),
		})
	}
	return fields
}

// parseAmount reads "$250", "250", "-$40" or "-40" as whole dollars.
// Anything else is 0.
func parseAmount(s string) int64 {
	sign := ""
	if strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimPrefix(s, currencySymbol)

	n, err := strconv.ParseInt(sign+s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// FormatLine renders txn in the backend's line format, LinePrefix included.
// Values containing FieldSeparator are written as-is, exactly as the
// backend does.
func FormatLine(txn model.Transaction) string {
	amount := fmt.Sprintf("%s%d", currencySymbol, txn.Amount)
	if txn.Amount < 0 {
		amount = fmt.Sprintf("-%s%d", currencySymbol, -txn.Amount)
	}
	fields := []string{
		"Amount" + KeyValueSeparator + amount,
		"Date" + KeyValueSeparator + txn.Date,
		"Type" + KeyValueSeparator + string(txn.Type),
		"Status" + KeyValueSeparator + string(txn.Status),
		"Description" + KeyValueSeparator + txn.Description,
		"Account" + KeyValueSeparator + txn.AccountNumber,
	}
	return LinePrefix + strings.Join(fields, FieldSeparator)
}

// Format renders a history blob, or the sentinel when txns is empty.
func Format(txns []model.Transaction) string {
	if len(txns) == 0 {
		return NoDataSentinel
	}
	lines := make([]string, len(txns))
	for i, txn := range txns {
		lines[i] = FormatLine(txn)
	}
	return strings.Join(lines, "\n")
}
