package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferCompleted is emitted after both legs of a main-to-savings transfer
// have been applied and logged.
type TransferCompleted struct {
	TransferID  string          `json:"transfer_id"`
	Username    string          `json:"username"`
	FromAccount string          `json:"from_account"`
	ToAccount   string          `json:"to_account"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
