package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Action labels as they appear in the transaction log.
const (
	ActionDeposit     = "Deposit"
	ActionWithdraw    = "Withdraw"
	ActionTransferOut = "Transfer to Savings"
	ActionTransferIn  = "Transfer from Main"
)

// Account labels for log entries.
const (
	AccountMain    = "Main"
	AccountSavings = "Savings"
)

// TransactionEntry is one immutable record of a monetary event. Entries are
// append-only; the system never rewrites or deletes them.
type TransactionEntry struct {
	ID        string
	Username  string
	Action    string
	Amount    decimal.Decimal
	Account   string
	CreatedAt time.Time
}

// NewTransactionEntry stamps a new entry with a unique ID and the current time.
func NewTransactionEntry(username, action string, amount decimal.Decimal, account string) TransactionEntry {
	return TransactionEntry{
		ID:        uuid.New().String(),
		Username:  username,
		Action:    action,
		Amount:    amount,
		Account:   account,
		CreatedAt: time.Now(),
	}
}

// Line renders the entry in the log file format, e.g.
// [2025-09-01 14:03:12] Deposit $250.00 in Main Account
func (e TransactionEntry) Line() string {
	return fmt.Sprintf("[%s] %s $%s in %s Account",
		e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.Amount.StringFixed(2), e.Account)
}

// ParseAmount converts free-text user input into a positive decimal amount.
// It returns ErrInvalidAmount for non-numeric input and ErrNonPositiveAmount
// for zero or negative values.
func ParseAmount(raw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidAmount
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return decimal.Decimal{}, ErrNonPositiveAmount
	}
	return amount, nil
}
