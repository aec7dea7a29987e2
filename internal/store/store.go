package store

import (
	"context"

	"github.com/AdamBeresnev/tourney-bot/internal/tournament"
)

// Store persists the single tournament record.
//
// Load returns a fresh default record when nothing has been saved yet, or when
// the saved contents cannot be decoded. It only fails on I/O errors.
// Save replaces the stored record so that a concurrent Load sees either the
// old or the new record, never a mix.
type Store interface {
	Load(ctx context.Context) (*tournament.Record, error)
	Save(ctx context.Context, record *tournament.Record) error
}
