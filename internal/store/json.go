package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tallybook-dev/tallybook/internal/model"
)

// Ledger data lives as two JSON documents in the ledger directory,
// each serializing its model field-for-field.
const (
	accountsFile = "accounts.json"
	recordsFile  = "records.json"
)

// Init creates dir with empty ledger files. Existing files are left
// untouched.
func Init(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}
	for _, name := range []string{accountsFile, recordsFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte("[]\n"), 0o644); err != nil {
			return fmt.Errorf("creating %s: %w", name, err)
		}
	}
	return nil
}

func readLedger(dir string) ([]model.Account, []model.Record, error) {
	var accounts []model.Account
	if err := readJSON(filepath.Join(dir, accountsFile), &accounts); err != nil {
		return nil, nil, fmt.Errorf("loading accounts: %w", err)
	}
	var records []model.Record
	if err := readJSON(filepath.Join(dir, recordsFile), &records); err != nil {
		return nil, nil, fmt.Errorf("loading records: %w", err)
	}
	return accounts, records, nil
}

func writeLedger(dir string, accounts []model.Account, records []model.Record) error {
	// Empty lists persist as [] rather than null.
	if accounts == nil {
		accounts = []model.Account{}
	}
	if records == nil {
		records = []model.Record{}
	}
	if err := writeJSON(filepath.Join(dir, accountsFile), accounts); err != nil {
		return fmt.Errorf("saving accounts: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, recordsFile), records); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

// writeJSON writes atomically via a temp file so a crashed save never
// truncates the ledger.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
