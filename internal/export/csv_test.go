package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paysys/paysys/internal/feed"
	"github.com/paysys/paysys/internal/model"
)

func TestWriteRecords_Header(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, nil))
	assert.Equal(t, Header+"\n", buf.String())

	txns, err := ReadRecords(&buf)
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestWriteRecords_QuotesDelimiters(t *testing.T) {
	txn := feed.ParseLine("Transaction: Amount: $20, Date: 2025-01-09, Type: DEBIT, Description: Dinner, drinks")

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, []model.Transaction{txn}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `2025-01-09,DEBIT,,20,Dinner,,"Transaction: Amount: $20, Date: 2025-01-09, Type: DEBIT, Description: Dinner, drinks"`, lines[1])
}

func TestReadRecords_FromParsedFeed(t *testing.T) {
	data, err := os.ReadFile("../../testdata/history.txt")
	require.NoError(t, err)
	want := feed.Parse(string(data))

	var buf bytes.Buffer
	require.NoError(t, WriteRecords(&buf, want))

	got, err := ReadRecords(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadRecords_BadHeader(t *testing.T) {
	_, err := ReadRecords(strings.NewReader("a,b,c,d,e,f,g\n"))
	assert.ErrorContains(t, err, "unexpected header")
}

func TestReadRecords_BadAmount(t *testing.T) {
	in := Header + "\n2025-01-01,DEBIT,COMPLETE,1.5,Lunch,1,raw\n"
	_, err := ReadRecords(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing amount")
}

func TestReadRecords_WrongFieldCount(t *testing.T) {
	_, err := ReadRecords(strings.NewReader(Header + "\nonly,three,fields\n"))
	assert.Error(t, err)
}

func TestUnmarshalRecord_WrongLength(t *testing.T) {
	_, err := UnmarshalRecord([]string{"x"})
	assert.ErrorContains(t, err, "expected 7 fields, got 1")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "history.csv")
	txns := []model.Transaction{{Amount: -40, Type: model.TypeDebit, Description: "Refund"}}
	require.NoError(t, WriteFile(path, txns))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := ReadRecords(f)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, int64(-40), got[0].Amount)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteRecords_ReportsWriteFailure(t *testing.T) {
	err := WriteRecords(failingWriter{}, []model.Transaction{{Amount: 1, Description: "a"}})
	assert.ErrorContains(t, err, "disk full")
}
