package bank

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/cli-banking-system/internal/auth"
	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
	"github.com/sheikh-saqib/cli-banking-system/internal/models/events"
)

var logger = log.With().Str("pkg", "session").Logger()

// Session is one authenticated menu loop over a user's account, from login to
// logout. The record is reloaded from the store at the top of every menu
// cycle, so external edits are visible turn-to-turn; balance mutations are
// written through to the store as they happen, while a changed password is
// held on the session and only persisted at logout. Exiting without logout
// therefore leaves the old password on disk.
type Session struct {
	username  string
	store     interfaces.AccountStore
	txlog     interfaces.TransactionLog
	console   interfaces.Console
	publisher interfaces.EventPublisher // optional, may be nil

	// bcrypt hash of an unsaved in-session password change
	pendingPassword string
	hasPending      bool
}

func NewSession(username string, store interfaces.AccountStore, txlog interfaces.TransactionLog,
	console interfaces.Console, publisher interfaces.EventPublisher) *Session {
	return &Session{
		username:  username,
		store:     store,
		txlog:     txlog,
		console:   console,
		publisher: publisher,
	}
}

// Run drives the menu loop until logout. Input validation errors are reported
// and the loop continues; a record that cannot be loaded ends the session.
func (s *Session) Run() error {
	for {
		record, err := s.store.Load(s.username)
		if err != nil {
			s.console.Printf("Could not load account: %v\n\n", err)
			return err
		}
		s.showMenu()
		choice, err := s.console.ReadLine("Choose an option (1-7): ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			s.checkBalance(record)
		case "2":
			s.deposit(&record)
		case "3":
			s.withdraw(&record)
		case "4":
			s.transfer(&record)
		case "5":
			s.changePassword(record)
		case "6":
			s.viewHistory()
		case "7":
			return s.logout(record)
		default:
			s.console.Printf("Invalid option. Choose between 1 and 7.\n\n")
		}
	}
}

func (s *Session) showMenu() {
	s.console.Printf("==== ATM MAIN MENU ====\n")
	s.console.Printf("1. Check Balance\n")
	s.console.Printf("2. Deposit Money\n")
	s.console.Printf("3. Withdraw Money\n")
	s.console.Printf("4. Transfer to Savings\n")
	s.console.Printf("5. Change Password\n")
	s.console.Printf("6. View Transaction History\n")
	s.console.Printf("7. Logout\n")
}

// checkBalance is a pure read: no mutation, no log entry.
func (s *Session) checkBalance(record models.AccountRecord) {
	s.console.Printf("\nMain Account Balance: $%s\n", record.MainBalance.StringFixed(2))
	s.console.Printf("Savings Account Balance: $%s\n\n", record.SavingsBalance.StringFixed(2))
}

func (s *Session) deposit(record *models.AccountRecord) {
	amount, ok := s.promptAmount("Enter amount to deposit into Main Account: $")
	if !ok {
		return
	}
	record.MainBalance = record.MainBalance.Add(amount)
	if err := s.store.Save(s.username, *record); err != nil {
		s.console.Printf("Deposit failed: %v\n\n", err)
		return
	}
	s.logEntry(models.ActionDeposit, amount, models.AccountMain)
	s.console.Printf("$%s deposited successfully.\n\n", amount.StringFixed(2))
}

func (s *Session) withdraw(record *models.AccountRecord) {
	amount, ok := s.promptAmount("Enter amount to withdraw: $")
	if !ok {
		return
	}
	if amount.GreaterThan(record.MainBalance) {
		s.console.Printf("Insufficient balance.\n\n")
		return
	}
	record.MainBalance = record.MainBalance.Sub(amount)
	if err := s.store.Save(s.username, *record); err != nil {
		s.console.Printf("Withdrawal failed: %v\n\n", err)
		return
	}
	s.logEntry(models.ActionWithdraw, amount, models.AccountMain)
	s.console.Printf("$%s withdrawn successfully.\n\n", amount.StringFixed(2))
}

// transfer moves money from main to savings and logs both legs, Main leg
// first. If the second append fails after the first succeeded the transfer
// stays half-logged; there is no compensating action.
func (s *Session) transfer(record *models.AccountRecord) {
	amount, ok := s.promptAmount("Enter amount to transfer to Savings: $")
	if !ok {
		return
	}
	if amount.GreaterThan(record.MainBalance) {
		s.console.Printf("Insufficient funds.\n\n")
		return
	}
	record.MainBalance = record.MainBalance.Sub(amount)
	record.SavingsBalance = record.SavingsBalance.Add(amount)
	if err := s.store.Save(s.username, *record); err != nil {
		s.console.Printf("Transfer failed: %v\n\n", err)
		return
	}
	outLeg := s.logEntry(models.ActionTransferOut, amount, models.AccountMain)
	s.logEntry(models.ActionTransferIn, amount, models.AccountSavings)
	s.publishTransfer(outLeg.ID, amount)
	s.console.Printf("$%s transferred to savings.\n\n", amount.StringFixed(2))
}

// changePassword verifies the current secret, captures a confirmed new one
// and holds its hash on the session. Nothing reaches the store until logout.
func (s *Session) changePassword(record models.AccountRecord) {
	current, err := s.console.ReadSecret("Enter current password: ")
	if err != nil {
		return
	}
	if !auth.VerifySecret(s.currentSecret(record), current) {
		s.console.Printf("Incorrect password.\n\n")
		return
	}
	newPassword, err := s.console.ReadSecret("New password: ")
	if err != nil {
		return
	}
	confirm, err := s.console.ReadSecret("Confirm new password: ")
	if err != nil {
		return
	}
	if newPassword != confirm {
		s.console.Printf("Passwords do not match.\n\n")
		return
	}
	hash, err := auth.HashSecret(newPassword)
	if err != nil {
		s.console.Printf("Could not change password: %v\n\n", err)
		return
	}
	s.pendingPassword = hash
	s.hasPending = true
	s.console.Printf("Password changed successfully.\n\n")
}

// currentSecret is the hash a credential check must run against: the pending
// in-session change if one exists, otherwise the loaded record's hash.
func (s *Session) currentSecret(record models.AccountRecord) string {
	if s.hasPending {
		return s.pendingPassword
	}
	return record.Password
}

func (s *Session) viewHistory() {
	s.console.Printf("\n==== Transaction History ====\n")
	lines, err := s.txlog.Read(s.username)
	if err != nil {
		s.console.Printf("Could not read transactions: %v\n\n", err)
		return
	}
	if len(lines) == 0 {
		s.console.Printf("No transactions found.\n\n")
		return
	}
	for _, line := range lines {
		s.console.Printf("%s\n", line)
	}
	s.console.Printf("\n")
}

// logout applies any pending password change to the current record, persists
// it and ends the session.
func (s *Session) logout(record models.AccountRecord) error {
	if s.hasPending {
		record.Password = s.pendingPassword
	}
	if err := s.store.Save(s.username, record); err != nil {
		s.console.Printf("Could not save account: %v\n\n", err)
		return err
	}
	logger.Info().Str("username", s.username).Msg("session ended")
	s.console.Printf("Goodbye, %s!\n\n", s.username)
	return nil
}

func (s *Session) promptAmount(prompt string) (decimal.Decimal, bool) {
	raw, err := s.console.ReadLine(prompt)
	if err != nil {
		return decimal.Decimal{}, false
	}
	amount, err := models.ParseAmount(raw)
	if err != nil {
		if errors.Is(err, models.ErrNonPositiveAmount) {
			s.console.Printf("Amount must be greater than zero.\n\n")
		} else {
			s.console.Printf("Invalid input.\n\n")
		}
		return decimal.Decimal{}, false
	}
	return amount, true
}

// logEntry appends one line to the transaction log. The balance change is
// already committed when this runs, so a failed append is reported only.
func (s *Session) logEntry(action string, amount decimal.Decimal, account string) models.TransactionEntry {
	entry := models.NewTransactionEntry(s.username, action, amount, account)
	if err := s.txlog.Append(entry); err != nil {
		logger.Error().Err(err).Str("username", s.username).Str("action", action).Msg("transaction log append failed")
		s.console.Printf("Warning: could not record transaction: %v\n", err)
	}
	return entry
}

func (s *Session) publishTransfer(transferID string, amount decimal.Decimal) {
	if s.publisher == nil {
		return
	}
	event := events.TransferCompleted{
		TransferID:  transferID,
		Username:    s.username,
		FromAccount: models.AccountMain,
		ToAccount:   models.AccountSavings,
		Amount:      amount,
		OccurredAt:  time.Now(),
	}
	if err := s.publisher.Publish("transfer_completed", event); err != nil {
		logger.Error().Err(err).Str("username", s.username).Msg("failed to publish transfer event")
	}
}
