package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallybook-dev/tallybook/internal/auditlog"
	"github.com/tallybook-dev/tallybook/internal/store"
)

func newLedgerDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, runInit(dir, false))
	return dir
}

func TestAccountAddAndDelete(t *testing.T) {
	dir := newLedgerDir(t)

	require.NoError(t, runAccountAdd(dir, "Checking", "asset", "200"))
	require.NoError(t, runAccountAdd(dir, "Food", "expense", "0"))
	require.NoError(t, runRecordAdd(dir, "Groceries", "50", "Checking", "Food", "2025-03-10", "food"))

	s, err := store.Open(dir, slog.Default())
	require.NoError(t, err)
	assert.Len(t, s.Accounts(), 2)
	assert.Len(t, s.Records(), 1)
	s.Close()

	require.NoError(t, runAccountDelete(dir, "Checking"))

	s, err = store.Open(dir, slog.Default())
	require.NoError(t, err)
	assert.Len(t, s.Accounts(), 1, "Checking is gone")
	assert.Empty(t, s.Records(), "its record cascaded away")
	s.Close()

	entries, err := auditlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4)
	assert.Equal(t, "account-add", entries[0].Action)
	assert.Equal(t, "record-add", entries[2].Action)
	assert.Equal(t, "account-delete", entries[3].Action)
}

func TestAccountAddRejectsUnknownKind(t *testing.T) {
	dir := newLedgerDir(t)
	err := runAccountAdd(dir, "Checking", "current", "0")
	assert.ErrorContains(t, err, "unknown account kind")
}

func TestRecordAddValidation(t *testing.T) {
	dir := newLedgerDir(t)
	require.NoError(t, runAccountAdd(dir, "Checking", "asset", "200"))
	require.NoError(t, runAccountAdd(dir, "Food", "expense", "0"))

	tests := []struct {
		name    string
		run     func() error
		wantErr string
	}{
		{"negative amount", func() error {
			return runRecordAdd(dir, "Refund", "-5", "Checking", "Food", "", "food")
		}, "must not be negative"},
		{"unknown tag", func() error {
			return runRecordAdd(dir, "Groceries", "5", "Checking", "Food", "", "snacks")
		}, "unknown tag"},
		{"same account both sides", func() error {
			return runRecordAdd(dir, "Loop", "5", "Checking", "Checking", "", "food")
		}, "must differ"},
		{"unknown account", func() error {
			return runRecordAdd(dir, "Groceries", "5", "Checking", "Ghost", "", "food")
		}, "no account matches"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorContains(t, tt.run(), tt.wantErr)
		})
	}
}

func TestFindAccountByIDPrefix(t *testing.T) {
	dir := newLedgerDir(t)
	require.NoError(t, runAccountAdd(dir, "Checking", "asset", "0"))

	e, err := openLedger(dir)
	require.NoError(t, err)
	defer e.close()

	want := e.store.Accounts()[0]
	got, err := e.findAccount(want.ID.String()[:8])
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)

	_, err = e.findAccount("zzzzzzzz")
	assert.ErrorContains(t, err, "no account matches")
}

func TestDemoSeedsAndRefusesOverwrite(t *testing.T) {
	dir := newLedgerDir(t)

	require.NoError(t, runDemo(dir, false))

	s, err := store.Open(dir, slog.Default())
	require.NoError(t, err)
	assert.NotEmpty(t, s.Accounts())
	assert.NotEmpty(t, s.Records())
	s.Close()

	err = runDemo(dir, false)
	assert.ErrorContains(t, err, "not empty")

	require.NoError(t, runDemo(dir, true))
}

func TestExportRecordsToFile(t *testing.T) {
	dir := newLedgerDir(t)
	require.NoError(t, runAccountAdd(dir, "Checking", "asset", "200"))
	require.NoError(t, runAccountAdd(dir, "Food", "expense", "0"))
	require.NoError(t, runRecordAdd(dir, "Groceries", "50", "Checking", "Food", "2025-03-10", "food"))

	out := filepath.Join(t.TempDir(), "records.csv")
	require.NoError(t, runExport(dir, "records", out))

	s, err := store.Open(dir, slog.Default())
	require.NoError(t, err)
	defer s.Close()
	require.Len(t, s.Records(), 1)
}

func TestImportRoundTrip(t *testing.T) {
	dir := newLedgerDir(t)
	require.NoError(t, runAccountAdd(dir, "Checking", "asset", "200"))
	require.NoError(t, runAccountAdd(dir, "Food", "expense", "0"))

	csvPath := filepath.Join(t.TempDir(), "in.csv")
	content := "date,name,amount,credit_account,debit_account,tag\n" +
		"2025-03-10,Groceries,50,Checking,Food,food\n"
	require.NoError(t, writeFile(csvPath, content))

	require.NoError(t, runImport(dir, csvPath, "simple"))

	s, err := store.Open(dir, slog.Default())
	require.NoError(t, err)
	defer s.Close()
	require.Len(t, s.Records(), 1)
	assert.Equal(t, "Groceries", s.Records()[0].Name)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestImportUnknownFormat(t *testing.T) {
	dir := newLedgerDir(t)
	err := runImport(dir, "whatever.csv", "chase")
	assert.ErrorContains(t, err, "unknown format")
}
