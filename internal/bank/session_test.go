package bank

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/sheikh-saqib/cli-banking-system/internal/auth"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
	"github.com/sheikh-saqib/cli-banking-system/internal/models/events"
	"github.com/sheikh-saqib/cli-banking-system/internal/storage/memory"
)

// scriptConsole replays a fixed input script and captures all output. When
// the script runs out it returns io.EOF, which doubles as a simulated abrupt
// termination of the session.
type scriptConsole struct {
	inputs []string
	out    strings.Builder
}

func (c *scriptConsole) next() (string, error) {
	if len(c.inputs) == 0 {
		return "", io.EOF
	}
	v := c.inputs[0]
	c.inputs = c.inputs[1:]
	return v, nil
}

func (c *scriptConsole) ReadLine(prompt string) (string, error) {
	c.out.WriteString(prompt)
	return c.next()
}

func (c *scriptConsole) ReadSecret(prompt string) (string, error) {
	c.out.WriteString(prompt)
	return c.next()
}

func (c *scriptConsole) Printf(format string, args ...any) {
	fmt.Fprintf(&c.out, format, args...)
}

type capturePublisher struct {
	events []any
}

func (p *capturePublisher) Publish(topic string, event any) error {
	p.events = append(p.events, event)
	return nil
}

func seedAccount(t *testing.T, store *memory.Store, username, password string) {
	t.Helper()
	hash, err := auth.HashSecret(password)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Save(username, models.NewAccountRecord(hash)); err != nil {
		t.Fatal(err)
	}
}

func runSession(store *memory.Store, username string, inputs ...string) (*scriptConsole, error) {
	console := &scriptConsole{inputs: inputs}
	s := NewSession(username, store, store, console, nil)
	return console, s.Run()
}

func mustLoad(t *testing.T, store *memory.Store, username string) models.AccountRecord {
	t.Helper()
	rec, err := store.Load(username)
	if err != nil {
		t.Fatalf("Load(%s) err=%v", username, err)
	}
	return rec
}

// The full walkthrough: deposit, rejected over-withdrawal, transfer, logout.
func TestSessionDepositWithdrawTransferScenario(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice",
		"2", "250.00", // deposit
		"3", "2000.00", // withdraw more than balance, rejected
		"4", "300.00", // transfer to savings
		"7", // logout
	)
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Insufficient balance.") {
		t.Fatalf("over-withdrawal not rejected:\n%s", console.out.String())
	}

	rec := mustLoad(t, store, "alice")
	if !rec.MainBalance.Equal(decimal.RequireFromString("950")) {
		t.Fatalf("main=%s want 950", rec.MainBalance)
	}
	if !rec.SavingsBalance.Equal(decimal.RequireFromString("800")) {
		t.Fatalf("savings=%s want 800", rec.SavingsBalance)
	}

	entries := store.Entries("alice")
	if len(entries) != 3 {
		t.Fatalf("entries=%d want 3 (deposit + two transfer legs): %+v", len(entries), entries)
	}
	if entries[0].Action != models.ActionDeposit || entries[0].Account != models.AccountMain {
		t.Fatalf("entries[0]=%+v", entries[0])
	}
	if entries[1].Action != models.ActionTransferOut || entries[1].Account != models.AccountMain {
		t.Fatalf("transfer Main leg must come first: %+v", entries[1])
	}
	if entries[2].Action != models.ActionTransferIn || entries[2].Account != models.AccountSavings {
		t.Fatalf("transfer Savings leg must come second: %+v", entries[2])
	}
	if !entries[1].Amount.Equal(decimal.RequireFromString("300")) || !entries[2].Amount.Equal(decimal.RequireFromString("300")) {
		t.Fatalf("transfer leg amounts: %s / %s", entries[1].Amount, entries[2].Amount)
	}
}

func TestSessionDepositSurvivesNextMenuCycle(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	// Deposit happens in one cycle; the balance check reads the record
	// freshly loaded in the next cycle.
	console, err := runSession(store, "alice", "2", "250", "1", "7")
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Main Account Balance: $1250.00") {
		t.Fatalf("deposit lost before next cycle:\n%s", console.out.String())
	}
}

func TestSessionBalanceCheckIsPure(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	if _, err := runSession(store, "alice", "1", "1", "1", "7"); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	rec := mustLoad(t, store, "alice")
	if !rec.MainBalance.Equal(decimal.NewFromInt(1000)) || !rec.SavingsBalance.Equal(decimal.NewFromInt(500)) {
		t.Fatalf("balances mutated: %s/%s", rec.MainBalance, rec.SavingsBalance)
	}
	if entries := store.Entries("alice"); len(entries) != 0 {
		t.Fatalf("balance check must not log entries: %+v", entries)
	}
}

func TestSessionRejectsBadAmounts(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice",
		"2", "abc",
		"2", "-5",
		"3", "0",
		"7",
	)
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	out := console.out.String()
	if !strings.Contains(out, "Invalid input.") {
		t.Fatalf("non-numeric input not reported:\n%s", out)
	}
	if !strings.Contains(out, "Amount must be greater than zero.") {
		t.Fatalf("non-positive amount not reported:\n%s", out)
	}
	rec := mustLoad(t, store, "alice")
	if !rec.MainBalance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("balance changed on rejected input: %s", rec.MainBalance)
	}
	if entries := store.Entries("alice"); len(entries) != 0 {
		t.Fatalf("rejected operations must not log: %+v", entries)
	}
}

func TestSessionInvalidMenuChoiceLoops(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice", "9", "7")
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Invalid option. Choose between 1 and 7.") {
		t.Fatalf("invalid choice not reported:\n%s", console.out.String())
	}
}

func TestSessionChangePasswordWrongCurrent(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice", "5", "wrong", "7")
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Incorrect password.") {
		t.Fatalf("wrong current password not reported:\n%s", console.out.String())
	}
	rec := mustLoad(t, store, "alice")
	if !auth.VerifySecret(rec.Password, "pw1") {
		t.Fatal("stored secret changed despite wrong current password")
	}
}

func TestSessionChangePasswordMismatch(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice", "5", "pw1", "new1", "new2", "7")
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Passwords do not match.") {
		t.Fatalf("mismatch not reported:\n%s", console.out.String())
	}
	rec := mustLoad(t, store, "alice")
	if !auth.VerifySecret(rec.Password, "pw1") {
		t.Fatal("stored secret changed despite mismatch")
	}
}

func TestSessionChangePasswordPersistsAtLogout(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	if _, err := runSession(store, "alice", "5", "pw1", "new1", "new1", "7"); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	rec := mustLoad(t, store, "alice")
	if !auth.VerifySecret(rec.Password, "new1") {
		t.Fatal("new secret not persisted at logout")
	}
	if auth.VerifySecret(rec.Password, "pw1") {
		t.Fatal("old secret still accepted after change")
	}
}

func TestSessionChangePasswordLostOnAbruptExit(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	// Script ends right after the change; the session dies on the next
	// prompt without reaching logout.
	_, err := runSession(store, "alice", "5", "pw1", "new1", "new1")
	if err == nil {
		t.Fatal("expected the session to end on exhausted input")
	}
	rec := mustLoad(t, store, "alice")
	if !auth.VerifySecret(rec.Password, "pw1") {
		t.Fatal("old secret must remain persisted without logout")
	}
	if auth.VerifySecret(rec.Password, "new1") {
		t.Fatal("unlogged-out change leaked to the store")
	}
}

func TestSessionSecondChangeVerifiesAgainstPending(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice",
		"5", "pw1", "a", "a",
		"5", "pw1", "x", "x", // old secret no longer valid mid-session
		"5", "a", "b", "b",
		"7",
	)
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if !strings.Contains(console.out.String(), "Incorrect password.") {
		t.Fatalf("stale current password accepted:\n%s", console.out.String())
	}
	rec := mustLoad(t, store, "alice")
	if !auth.VerifySecret(rec.Password, "b") {
		t.Fatal("final secret should be the last confirmed change")
	}
}

func TestSessionHistory(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	console, err := runSession(store, "alice", "6", "2", "25", "6", "7")
	if err != nil {
		t.Fatalf("Run err=%v", err)
	}
	out := console.out.String()
	if !strings.Contains(out, "No transactions found.") {
		t.Fatalf("empty history message missing:\n%s", out)
	}
	if !strings.Contains(out, "Deposit $25.00 in Main Account") {
		t.Fatalf("deposit line missing from history:\n%s", out)
	}
}

func TestSessionTransferPublishesEvent(t *testing.T) {
	store := memory.NewStore()
	seedAccount(t, store, "alice", "pw1")

	publisher := &capturePublisher{}
	console := &scriptConsole{inputs: []string{"4", "300", "7"}}
	s := NewSession("alice", store, store, console, publisher)
	if err := s.Run(); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("events=%d want 1", len(publisher.events))
	}
	evt, ok := publisher.events[0].(events.TransferCompleted)
	if !ok {
		t.Fatalf("event type %T", publisher.events[0])
	}
	if evt.Username != "alice" || !evt.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("event=%+v", evt)
	}
	if evt.FromAccount != models.AccountMain || evt.ToAccount != models.AccountSavings {
		t.Fatalf("event accounts=%s->%s", evt.FromAccount, evt.ToAccount)
	}
	if evt.TransferID == "" {
		t.Fatal("event should carry the transfer leg ID")
	}
}

// externalEditStore flips the main balance once between menu cycles,
// standing in for another process editing the persisted record.
type externalEditStore struct {
	*memory.Store
	loads  int
	edited bool
}

func (s *externalEditStore) Load(username string) (models.AccountRecord, error) {
	s.loads++
	if s.loads == 2 && !s.edited {
		rec, err := s.Store.Load(username)
		if err != nil {
			return rec, err
		}
		rec.MainBalance = decimal.NewFromInt(42)
		if err := s.Store.Save(username, rec); err != nil {
			return rec, err
		}
		s.edited = true
	}
	return s.Store.Load(username)
}

func TestSessionReloadsRecordEveryCycle(t *testing.T) {
	inner := memory.NewStore()
	seedAccount(t, inner, "alice", "pw1")
	store := &externalEditStore{Store: inner}

	console := &scriptConsole{inputs: []string{"1", "1", "7"}}
	s := NewSession("alice", store, inner, console, nil)
	if err := s.Run(); err != nil {
		t.Fatalf("Run err=%v", err)
	}
	out := console.out.String()
	if !strings.Contains(out, "Main Account Balance: $1000.00") {
		t.Fatalf("first cycle should show the original balance:\n%s", out)
	}
	if !strings.Contains(out, "Main Account Balance: $42.00") {
		t.Fatalf("external edit not visible on the next cycle:\n%s", out)
	}
	if store.loads < 3 {
		t.Fatalf("loads=%d, record must be reloaded once per cycle", store.loads)
	}
}
