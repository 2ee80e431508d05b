package interfaces

import "github.com/sheikh-saqib/cli-banking-system/internal/models"

// AccountStore persists one account record per username. Save fully
// overwrites the persisted record (last save wins); no locking between
// sessions is provided.
type AccountStore interface {
	// EnsureReady prepares the backing storage (data directory, tables).
	// Idempotent; called once before any other store operation.
	EnsureReady() error
	Exists(username string) (bool, error)
	// Load returns models.ErrNoSuchAccount if no record exists and
	// models.ErrCorruptData if the persisted encoding cannot be parsed.
	Load(username string) (models.AccountRecord, error)
	Save(username string, record models.AccountRecord) error
}
