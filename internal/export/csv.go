package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/paysys/paysys/internal/model"
)

// Header is the CSV header of an exported history.
const Header = "date,type,status,amount,description,account,raw"

const (
	numFields  = 7
	colDate    = 0
	colType    = 1
	colStatus  = 2
	colAmount  = 3
	colDesc    = 4
	colAccount = 5
	colRaw     = 6
)

// MarshalRecord converts a Transaction to a CSV row.
func MarshalRecord(txn model.Transaction) []string {
	row := make([]string, numFields)
	row[colDate] = txn.Date
	row[colType] = string(txn.Type)
	row[colStatus] = string(txn.Status)
	row[colAmount] = strconv.FormatInt(txn.Amount, 10)
	row[colDesc] = txn.Description
	row[colAccount] = txn.AccountNumber
	row[colRaw] = txn.RawText
	return row
}

// UnmarshalRecord converts a CSV row to a Transaction.
func UnmarshalRecord(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	amount, err := strconv.ParseInt(record[colAmount], 10, 64)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		RawText:       record[colRaw],
		Description:   record[colDesc],
		Amount:        amount,
		Date:          record[colDate],
		Type:          model.TxType(record[colType]),
		Status:        model.TxStatus(record[colStatus]),
		AccountNumber: record[colAccount],
	}, nil
}

// WriteRecords writes the header and one row per transaction.
func WriteRecords(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalRecord(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadRecords reads an exported history. A file holding only the header
// yields no transactions.
func ReadRecords(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading history CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}
	if got := strings.Join(records[0], ","); got != Header {
		return nil, fmt.Errorf("unexpected header %q", got)
	}

	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteFile writes txns to path, creating parent directories as needed.
func WriteFile(path string, txns []model.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if err := WriteRecords(f, txns); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return f.Close()
}
