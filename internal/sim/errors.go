package sim

import (
	"errors"

	"MoneySmartz/internal/event"
)

var (
	// ErrValidation rejects a malformed request before anything is mutated.
	ErrValidation = errors.New("validation failed")
	// ErrInvalidChoice is returned for an unknown event id, an option that was not offered or one
	// the player cannot afford. The event stays pending.
	ErrInvalidChoice = event.ErrInvalidChoice
	// ErrAwaitingChoice is returned by AdvanceMonth while an event is pending.
	ErrAwaitingChoice = errors.New("an event is awaiting a choice")
	// ErrGameOver is returned by every command once the session has ended.
	ErrGameOver          = errors.New("session has ended")
	ErrNotEligible       = errors.New("not eligible")
	ErrNotFound          = errors.New("not found")
	ErrNoBankAccount     = errors.New("no bank account")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
)
