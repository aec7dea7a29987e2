package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/AdamBeresnev/tourney-bot/internal/tournament"
)

// FileStore keeps the record as an indented JSON document on disk.
type FileStore struct {
	path   string
	logger *slog.Logger
}

func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(ctx context.Context) (*tournament.Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return tournament.NewRecord(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var record tournament.Record
	if err := json.Unmarshal(data, &record); err != nil {
		corruptPath := s.path + ".corrupt"
		s.logger.WarnContext(ctx, "tournament data is unreadable, starting from an empty record",
			"path", s.path, "moved_to", corruptPath, "error", err)
		if renameErr := os.Rename(s.path, corruptPath); renameErr != nil {
			s.logger.WarnContext(ctx, "could not move unreadable tournament data aside",
				"path", s.path, "error", renameErr)
		}
		return tournament.NewRecord(), nil
	}

	record.Normalize()
	return &record, nil
}

func (s *FileStore) Save(ctx context.Context, record *tournament.Record) error {
	data, err := json.MarshalIndent(record, "", "    ")
	if err != nil {
		return fmt.Errorf("encode tournament record: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write tournament record: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("sync tournament record: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	success = true

	s.logger.DebugContext(ctx, "tournament record saved", "path", s.path, "teams", len(record.Teams))
	return nil
}
