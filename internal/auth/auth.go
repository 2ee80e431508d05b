package auth

import (
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	interfaces "github.com/sheikh-saqib/cli-banking-system/internal/interfaces"
	"github.com/sheikh-saqib/cli-banking-system/internal/models"
)

var logger = log.With().Str("pkg", "auth").Logger()

// Service handles account creation and login against an AccountStore.
// Secrets are stored as bcrypt hashes; the external contract stays
// username + secret -> accept/reject.
type Service struct {
	store interfaces.AccountStore
}

func NewService(store interfaces.AccountStore) *Service {
	return &Service{store: store}
}

// HashSecret derives the stored form of a password.
func HashSecret(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifySecret reports whether password matches the stored hash.
func VerifySecret(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// CreateAccount registers username with the fixed opening balances and
// persists the new record. Nothing existing is ever overwritten.
func (s *Service) CreateAccount(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New("username required")
	}
	exists, err := s.store.Exists(username)
	if err != nil {
		return err
	}
	if exists {
		return models.ErrDuplicateUsername
	}
	if password != confirm {
		return models.ErrPasswordMismatch
	}
	hash, err := HashSecret(password)
	if err != nil {
		return err
	}
	if err := s.store.Save(username, models.NewAccountRecord(hash)); err != nil {
		return err
	}
	logger.Info().Str("username", username).Msg("account created")
	return nil
}

// Login verifies credentials and returns the canonical (trimmed) username a
// session should be bound to. Failed logins never touch balances or the
// transaction log.
func (s *Service) Login(username, password string) (string, error) {
	username = strings.TrimSpace(username)
	record, err := s.store.Load(username)
	if err != nil {
		return "", err
	}
	if !VerifySecret(record.Password, password) {
		logger.Info().Str("username", username).Msg("login rejected")
		return "", models.ErrInvalidCredentials
	}
	return username, nil
}
