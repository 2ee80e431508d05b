package cli

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/sheikh-saqib/cli-banking-system/internal/auth"
	"github.com/sheikh-saqib/cli-banking-system/internal/bank"
	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

var logger = log.With().Str("pkg", "cli").Logger()

// App is the top-level dispatcher: it cycles the Login / Create Account /
// Exit menu. A successful login enters the account session loop; when that
// loop ends control returns here.
type App struct {
	console   interfaces.Console
	auth      *auth.Service
	store     interfaces.AccountStore
	txlog     interfaces.TransactionLog
	publisher interfaces.EventPublisher
}

func NewApp(console interfaces.Console, authService *auth.Service, store interfaces.AccountStore,
	txlog interfaces.TransactionLog, publisher interfaces.EventPublisher) *App {
	return &App{
		console:   console,
		auth:      authService,
		store:     store,
		txlog:     txlog,
		publisher: publisher,
	}
}

// Run loops the top menu until the user exits. Returns nil on a clean exit.
func (a *App) Run() error {
	for {
		a.console.Printf("==== CLI BANK ====\n")
		a.console.Printf("1. Login\n")
		a.console.Printf("2. Create Account\n")
		a.console.Printf("3. Exit\n")
		choice, err := a.console.ReadLine("Select an option (1-3): ")
		if err != nil {
			return err
		}
		switch strings.TrimSpace(choice) {
		case "1":
			username, ok := a.login()
			if !ok {
				continue
			}
			session := bank.NewSession(username, a.store, a.txlog, a.console, a.publisher)
			if err := session.Run(); err != nil {
				logger.Error().Err(err).Str("username", username).Msg("session ended with error")
			}
		case "2":
			a.createAccount()
		case "3":
			a.console.Printf("Exiting system. Goodbye!\n")
			return nil
		default:
			a.console.Printf("Invalid option.\n\n")
		}
	}
}

func (a *App) login() (string, bool) {
	a.console.Printf("\n=== Login ===\n")
	username, err := a.console.ReadLine("Username: ")
	if err != nil {
		return "", false
	}
	username = strings.TrimSpace(username)
	if exists, err := a.store.Exists(username); err == nil && !exists {
		a.console.Printf("Account does not exist.\n\n")
		return "", false
	}
	password, err := a.console.ReadSecret("Password: ")
	if err != nil {
		return "", false
	}
	username, err = a.auth.Login(username, password)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrNoSuchAccount):
			a.console.Printf("Account does not exist.\n\n")
		case errors.Is(err, models.ErrInvalidCredentials):
			a.console.Printf("Incorrect password.\n\n")
		default:
			a.console.Printf("Login failed: %v\n\n", err)
		}
		return "", false
	}
	a.console.Printf("Welcome, %s!\n\n", username)
	return username, true
}

func (a *App) createAccount() {
	a.console.Printf("\n=== Create New Account ===\n")
	username, err := a.console.ReadLine("Choose a username: ")
	if err != nil {
		return
	}
	password, err := a.console.ReadSecret("Create a password: ")
	if err != nil {
		return
	}
	confirm, err := a.console.ReadSecret("Confirm password: ")
	if err != nil {
		return
	}
	if err := a.auth.CreateAccount(username, password, confirm); err != nil {
		switch {
		case errors.Is(err, models.ErrDuplicateUsername):
			a.console.Printf("Username already exists. Try another one.\n\n")
		case errors.Is(err, models.ErrPasswordMismatch):
			a.console.Printf("Passwords do not match.\n\n")
		default:
			a.console.Printf("Could not create account: %v\n\n", err)
		}
		return
	}
	a.console.Printf("Account '%s' created successfully!\n\n", strings.TrimSpace(username))
}
