package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tallybook-dev/tallybook/internal/auditlog"
	"github.com/tallybook-dev/tallybook/internal/config"
	"github.com/tallybook-dev/tallybook/internal/gitops"
	"github.com/tallybook-dev/tallybook/internal/model"
	"github.com/tallybook-dev/tallybook/internal/store"
)

// env bundles what every data command needs: the resolved ledger
// directory, its config, and an open store.
type env struct {
	dir   string
	cfg   *config.Config
	store *store.Store
}

// openLedger resolves dir, loads tallybook.yaml (defaults when absent)
// and opens the store.
func openLedger(dir string) (*env, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, config.FileName))
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return nil, err
	}

	s, err := store.Open(absDir, slog.Default())
	if err != nil {
		return nil, err
	}
	return &env{dir: absDir, cfg: cfg, store: s}, nil
}

// close flushes pending saves.
func (e *env) close() {
	e.store.Close()
}

// audit appends a mutation to the audit trail. Audit failures are
// reported but never abort the mutation that already happened.
func (e *env) audit(action, entityID, details string) {
	err := auditlog.Append(e.dir, auditlog.Entry{
		Timestamp: time.Now(),
		Action:    action,
		EntityID:  entityID,
		Details:   details,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log: %v\n", err)
	}
}

// finishMutation drains saves and, when configured, commits the ledger
// directory.
func (e *env) finishMutation(message string) {
	e.close()
	if !e.cfg.Git.AutoCommit || !gitops.IsRepo(e.dir) {
		return
	}
	changed, err := gitops.HasChanges(e.dir)
	if err != nil || !changed {
		return
	}
	if _, err := gitops.CommitAll(e.dir, message, e.cfg.Git.AuthorName, e.cfg.Git.AuthorEmail); err != nil {
		fmt.Fprintf(os.Stderr, "warning: git commit: %v\n", err)
	}
}

// money formats an amount per the ledger's display config.
func (e *env) money(v decimal.Decimal) string {
	return fmt.Sprintf("%s %s", v.StringFixed(int32(e.cfg.Ledger.Precision)), e.cfg.Ledger.Currency)
}

// findAccount resolves an account by exact name, then by id prefix.
func (e *env) findAccount(ref string) (model.Account, error) {
	accounts := e.store.Accounts()
	for _, a := range accounts {
		if a.Name == ref {
			return a, nil
		}
	}
	var matched []model.Account
	for _, a := range accounts {
		if strings.HasPrefix(a.ID.String(), strings.ToLower(ref)) {
			matched = append(matched, a)
		}
	}
	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return model.Account{}, fmt.Errorf("no account matches %q", ref)
	default:
		return model.Account{}, fmt.Errorf("account reference %q is ambiguous", ref)
	}
}
