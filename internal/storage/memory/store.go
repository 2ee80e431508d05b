package memory

import (
	"sync"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

// Store is an in-memory implementation of both the AccountStore and the
// TransactionLog, used by tests and ephemeral runs. It is thread-safe and
// hands out copies so callers cannot modify internal state.
type Store struct {
	mu       sync.Mutex
	accounts map[string]models.AccountRecord
	entries  map[string][]models.TransactionEntry
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]models.AccountRecord),
		entries:  make(map[string][]models.TransactionEntry),
	}
}

func (m *Store) EnsureReady() error {
	return nil
}

func (m *Store) Exists(username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.accounts[username]
	return ok, nil
}

func (m *Store) Load(username string) (models.AccountRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.accounts[username]
	if !ok {
		return models.AccountRecord{}, models.ErrNoSuchAccount
	}
	return record, nil
}

func (m *Store) Save(username string, record models.AccountRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[username] = record
	return nil
}

func (m *Store) Append(entry models.TransactionEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.Username] = append(m.entries[entry.Username], entry)
	return nil
}

func (m *Store) Read(username string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := m.entries[username]
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}
	return lines, nil
}

// Entries returns a copy of the raw entries for a user, for tests that check
// more than the formatted lines.
func (m *Store) Entries(username string) []models.TransactionEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := make([]models.TransactionEntry, len(m.entries[username]))
	copy(copied, m.entries[username])
	return copied
}

// Compile-time checks: Store implements both storage ports.
var (
	_ interfaces.AccountStore   = (*Store)(nil)
	_ interfaces.TransactionLog = (*Store)(nil)
)
