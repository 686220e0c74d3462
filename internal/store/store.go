// Package store owns the canonical, persisted account and record lists.
// The query engine never sees this state directly: readers take
// immutable snapshots, and mutations are serialized behind a single
// writer with persistence performed asynchronously off the mutation
// path.
package store

import (
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/tallybook-dev/tallybook/internal/ledger"
	"github.com/tallybook-dev/tallybook/internal/model"
)

// Store holds the live account/record lists for one ledger directory.
type Store struct {
	dir    string
	logger *slog.Logger

	mu       sync.Mutex
	accounts []model.Account
	records  []model.Record

	saves     chan payload
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Open loads the ledger files from dir and starts the background
// writer. Missing files read as empty lists.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	accounts, records, err := readLedger(dir)
	if err != nil {
		return nil, err
	}

	if errs := CheckIntegrity(accounts, records); len(errs) > 0 {
		for _, e := range errs {
			logger.Warn("ledger integrity violation", "err", e)
		}
		return nil, IntegrityError{Violations: errs}
	}

	s := &Store{
		dir:      dir,
		logger:   logger,
		accounts: accounts,
		records:  records,
		saves:    make(chan payload, 8),
	}
	s.wg.Add(1)
	go s.writeLoop()
	return s, nil
}

// Close drains pending saves and stops the background writer. Safe to
// call more than once.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.saves)
		s.wg.Wait()
	})
}

// Snapshot returns an immutable copy of the current state for the query
// engine. Later mutations of the store never show through.
func (s *Store) Snapshot() *ledger.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	// NewSnapshot copies both slices; element values are plain data.
	return ledger.NewSnapshot(s.accounts, s.records)
}

// AddAccount appends an account and schedules a save.
func (s *Store) AddAccount(a model.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append(s.accounts, a)
	s.scheduleSave()
}

// AddRecord appends a record and schedules a save. The record's two
// account ids must resolve; unknown ids are rejected to keep the
// referential-integrity invariant.
func (s *Store) AddRecord(r model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasAccount(r.CreditAccountID) {
		return ledger.UnknownAccountError{ID: r.CreditAccountID}
	}
	if !s.hasAccount(r.DebitAccountID) {
		return ledger.UnknownAccountError{ID: r.DebitAccountID}
	}
	s.records = append(s.records, r)
	s.scheduleSave()
	return nil
}

// DeleteRecord removes the record with the given id. It reports whether
// a record was removed.
func (s *Store) DeleteRecord(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			s.scheduleSave()
			return true
		}
	}
	return false
}

// DeleteAccount removes the account and cascade-deletes every record
// referencing it on either side, restoring referential integrity before
// any subsequent query. It returns the number of cascaded records and
// whether the account existed.
func (s *Store) DeleteAccount(id uuid.UUID) (cascaded int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i, a := range s.accounts {
		if a.ID == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return 0, false
	}

	kept := s.records[:0]
	for _, r := range s.records {
		if r.Touches(id) {
			cascaded++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept
	s.scheduleSave()
	return cascaded, true
}

// ReplaceAll swaps in a whole new dataset (demo seeding).
func (s *Store) ReplaceAll(accounts []model.Account, records []model.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = append([]model.Account(nil), accounts...)
	s.records = append([]model.Record(nil), records...)
	s.scheduleSave()
}

// DeleteAll clears both lists.
func (s *Store) DeleteAll() {
	s.ReplaceAll(nil, nil)
}

// Accounts returns a copy of the canonical account list.
func (s *Store) Accounts() []model.Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Account(nil), s.accounts...)
}

// Records returns a copy of the canonical record list.
func (s *Store) Records() []model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Record(nil), s.records...)
}

// Account returns the account with the given id.
func (s *Store) Account(id uuid.UUID) (model.Account, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.ID == id {
			return a, true
		}
	}
	return model.Account{}, false
}

func (s *Store) hasAccount(id uuid.UUID) bool {
	for _, a := range s.accounts {
		if a.ID == id {
			return true
		}
	}
	return false
}

// scheduleSave enqueues a deep-copied payload for the background
// writer. Called with s.mu held. When the queue is full the oldest
// pending payload is dropped; the newest state always wins.
func (s *Store) scheduleSave() {
	p := payload{
		accounts: append([]model.Account(nil), s.accounts...),
		records:  append([]model.Record(nil), s.records...),
	}
	for {
		select {
		case s.saves <- p:
			return
		default:
		}
		select {
		case <-s.saves:
		default:
		}
	}
}

type payload struct {
	accounts []model.Account
	records  []model.Record
}

// writeLoop persists queued payloads. Write failures are logged, never
// surfaced to the mutation path.
func (s *Store) writeLoop() {
	defer s.wg.Done()
	for p := range s.saves {
		if err := writeLedger(s.dir, p.accounts, p.records); err != nil {
			s.logger.Error("saving ledger", "dir", s.dir, "err", err)
		}
	}
}
