package interfaces

import "github.com/sheikh-saqib/cli-banking-system/internal/models"

// TransactionLog is the append-only per-user history of monetary events.
type TransactionLog interface {
	// Append writes one entry. The caller's balance change is already
	// committed by the time Append runs, so a failure is reported to the
	// user but never rolls the balance back.
	Append(entry models.TransactionEntry) error
	// Read returns the full history as formatted lines in entry order.
	// A user with no history yields an empty slice, not an error.
	Read(username string) ([]string, error)
}
