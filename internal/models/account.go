package models

import "github.com/shopspring/decimal"

// Opening balances for every newly created account.
var (
	StartingMainBalance    = decimal.NewFromInt(1000)
	StartingSavingsBalance = decimal.NewFromInt(500)
)

// AccountRecord is the persisted state of one user's account, keyed by
// username in the store. Password holds a bcrypt hash of the user's secret.
// Both balances stay >= 0; no operation may drive either negative.
type AccountRecord struct {
	Password       string          `json:"password"`
	MainBalance    decimal.Decimal `json:"main_balance"`
	SavingsBalance decimal.Decimal `json:"savings_balance"`
}

// NewAccountRecord returns a record with the fixed opening balances.
func NewAccountRecord(passwordHash string) AccountRecord {
	return AccountRecord{
		Password:       passwordHash,
		MainBalance:    StartingMainBalance,
		SavingsBalance: StartingSavingsBalance,
	}
}
