package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/AdamBeresnev/tourney-bot/internal/tournament"
	"github.com/jmoiron/sqlx"
)

// The record lives in a single row so a save is one upsert.
const recordRowID = 1

const (
	getRecordQuery    = "SELECT data FROM tournament_record WHERE id = ?"
	upsertRecordQuery = `
		INSERT INTO tournament_record (id, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
		data = excluded.data,
		updated_at = excluded.updated_at
	`
)

// TournamentStore keeps the record in SQLite or Postgres.
type TournamentStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewTournamentStore(db *sqlx.DB, logger *slog.Logger) *TournamentStore {
	return &TournamentStore{db: db, logger: logger}
}

func (s *TournamentStore) Load(ctx context.Context) (*tournament.Record, error) {
	var data string
	err := s.db.GetContext(ctx, &data, s.db.Rebind(getRecordQuery), recordRowID)
	if errors.Is(err, sql.ErrNoRows) {
		return tournament.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("select tournament record: %w", err)
	}

	var record tournament.Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		s.logger.WarnContext(ctx, "stored tournament record is unreadable, starting from an empty record", "error", err)
		return tournament.NewRecord(), nil
	}

	record.Normalize()
	return &record, nil
}

func (s *TournamentStore) Save(ctx context.Context, record *tournament.Record) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode tournament record: %w", err)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, tx.Rebind(upsertRecordQuery), recordRowID, string(data), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert tournament record: %w", err)
	}

	return tx.Commit()
}
