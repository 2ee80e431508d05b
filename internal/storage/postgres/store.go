package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

// Store is an optional SQL backend behind the same ports as the file store.
// One row per account, one row per transaction entry.
type Store struct {
	db *sql.DB
}

// Open connects and pings the database.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid postgres dsn: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}
	return db, nil
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// EnsureReady creates the schema if it is missing.
func (p *Store) EnsureReady() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS accounts (
		username        TEXT PRIMARY KEY,
		password        TEXT NOT NULL,
		main_balance    NUMERIC(20,2) NOT NULL,
		savings_balance NUMERIC(20,2) NOT NULL
	);
	CREATE TABLE IF NOT EXISTS transactions (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		action        TEXT NOT NULL,
		amount        NUMERIC(20,2) NOT NULL,
		account_label TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL
	);`
	_, err := p.db.Exec(schema)
	return err
}

func (p *Store) Exists(username string) (bool, error) {
	const query = `SELECT 1 FROM accounts WHERE username = $1 LIMIT 1`

	var exists int
	err := p.db.QueryRow(query, username).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (p *Store) Load(username string) (models.AccountRecord, error) {
	const query = `SELECT password, main_balance, savings_balance
	FROM accounts WHERE username = $1`

	var record models.AccountRecord
	err := p.db.QueryRow(query, username).Scan(
		&record.Password,
		&record.MainBalance,
		&record.SavingsBalance,
	)
	if err == sql.ErrNoRows {
		return record, models.ErrNoSuchAccount
	}
	if err != nil {
		return record, err
	}
	return record, nil
}

func (p *Store) Save(username string, record models.AccountRecord) error {
	const query = `INSERT INTO accounts (username, password, main_balance, savings_balance)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (username) DO UPDATE
	SET password = EXCLUDED.password,
	    main_balance = EXCLUDED.main_balance,
	    savings_balance = EXCLUDED.savings_balance`

	_, err := p.db.Exec(query, username, record.Password, record.MainBalance, record.SavingsBalance)
	return err
}

func (p *Store) Append(entry models.TransactionEntry) error {
	const query = `INSERT INTO transactions (id, username, action, amount, account_label, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := p.db.Exec(query, entry.ID, entry.Username, entry.Action, entry.Amount, entry.Account, entry.CreatedAt)
	return err
}

func (p *Store) Read(username string) ([]string, error) {
	const query = `SELECT id, username, action, amount, account_label, created_at
	FROM transactions WHERE username = $1 ORDER BY created_at, id`

	rows, err := p.db.Query(query, username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var entry models.TransactionEntry
		if err := rows.Scan(&entry.ID, &entry.Username, &entry.Action, &entry.Amount, &entry.Account, &entry.CreatedAt); err != nil {
			return nil, err
		}
		lines = append(lines, entry.Line())
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

var (
	_ interfaces.AccountStore   = (*Store)(nil)
	_ interfaces.TransactionLog = (*Store)(nil)
)
