package models

import "errors"

// Domain errors shared by the auth, session and storage layers. Input
// validation errors are reported at the menu and never end the session;
// ErrCorruptData surfaces an unreadable persisted record.
var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNoSuchAccount      = errors.New("account does not exist")
	ErrInvalidCredentials = errors.New("incorrect password")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrNonPositiveAmount  = errors.New("amount must be greater than zero")
	ErrInsufficientFunds  = errors.New("insufficient balance")
	ErrCorruptData        = errors.New("corrupt account data")
)
