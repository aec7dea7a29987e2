package service

import "errors"

var (
	ErrUnauthorized      = errors.New("administrator permission required")
	ErrSlotsFull         = errors.New("all slots are full")
	ErrDuplicateTeamName = errors.New("team name is already registered")
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrNoTeamForCaller   = errors.New("caller has no registered team")
	ErrAlreadyConfirmed  = errors.New("team is already confirmed")
	ErrInvalidSlotCount  = errors.New("slot count must not be negative")

	// ErrPersist wraps store failures; the mutation was not applied.
	ErrPersist = errors.New("failed to save tournament data")
)
