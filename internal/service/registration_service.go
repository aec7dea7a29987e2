package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/AdamBeresnev/tourney-bot/internal/store"
	"github.com/AdamBeresnev/tourney-bot/internal/tournament"
	users "github.com/AdamBeresnev/tourney-bot/internal/user"
)

// RegistrationService owns the tournament record. All operations are
// serialized; a mutation only becomes visible once it has been saved.
type RegistrationService struct {
	mu     sync.Mutex
	record *tournament.Record
	store  store.Store
	logger *slog.Logger
}

type SlotsStatus struct {
	Filled int
	Total  int
}

func NewRegistrationService(ctx context.Context, store store.Store, logger *slog.Logger) (*RegistrationService, error) {
	record, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tournament record: %w", err)
	}
	logger.InfoContext(ctx, "tournament record loaded",
		"slots", record.Slots, "teams", len(record.Teams), "confirmed", len(record.Confirmed))

	return &RegistrationService{record: record, store: store, logger: logger}, nil
}

// mutate runs fn against a copy of the record and commits the copy after it is saved.
func (s *RegistrationService) mutate(ctx context.Context, fn func(r *tournament.Record) error) error {
	next := s.record.Clone()
	if err := fn(next); err != nil {
		return err
	}

	if err := s.store.Save(ctx, next); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist tournament record", "error", err)
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	s.record = next
	return nil
}

func (s *RegistrationService) SetSlots(ctx context.Context, caller users.User, n int) error {
	if !caller.IsAdmin {
		return ErrUnauthorized
	}
	if n < 0 {
		return ErrInvalidSlotCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(r *tournament.Record) error {
		r.Slots = n
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "slots updated", "slots", n, "by", caller.ID)
	return nil
}

func (s *RegistrationService) Register(ctx context.Context, caller users.User, teamName string, players []string) (tournament.Team, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return tournament.Team{}, ErrTeamNameRequired
	}

	team := tournament.Team{
		Name:      teamName,
		Players:   make([]string, len(players)),
		CaptainID: tournament.CaptainID(caller.ID),
	}
	copy(team.Players, players)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(r *tournament.Record) error {
		if r.IsFull() {
			return ErrSlotsFull
		}
		if _, exists := r.FindTeamByName(teamName); exists {
			return ErrDuplicateTeamName
		}
		r.Teams = append(r.Teams, team)
		return nil
	})
	if err != nil {
		return tournament.Team{}, err
	}

	s.logger.InfoContext(ctx, "team registered", "team", team.Name, "players", len(team.Players), "captain", caller.ID)
	return team, nil
}

// Confirm marks the caller's first registered team as confirmed.
func (s *RegistrationService) Confirm(ctx context.Context, caller users.User) (tournament.Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var confirmed tournament.Team
	err := s.mutate(ctx, func(r *tournament.Record) error {
		team, ok := r.FindTeamByCaptain(tournament.CaptainID(caller.ID))
		if !ok {
			return ErrNoTeamForCaller
		}
		confirmed = *team
		if r.IsConfirmed(team.Name) {
			return ErrAlreadyConfirmed
		}
		r.Confirmed = append(r.Confirmed, team.Name)
		return nil
	})
	if err != nil {
		return confirmed, err
	}

	s.logger.InfoContext(ctx, "team confirmed", "team", confirmed.Name, "captain", caller.ID)
	return confirmed, nil
}

// ListTeams returns a copy of the registered teams in registration order.
func (s *RegistrationService) ListTeams(ctx context.Context, caller users.User) ([]tournament.Team, error) {
	if !caller.IsAdmin {
		return nil, ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.record.Clone().Teams, nil
}

func (s *RegistrationService) SlotsStatus(ctx context.Context) SlotsStatus {
	s.mu.Lock()
	defer s.mu.Unlock()

	return SlotsStatus{Filled: s.record.Filled(), Total: s.record.Slots}
}

func (s *RegistrationService) Reset(ctx context.Context, caller users.User) error {
	if !caller.IsAdmin {
		return ErrUnauthorized
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.mutate(ctx, func(r *tournament.Record) error {
		*r = *tournament.NewRecord()
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "tournament reset", "by", caller.ID)
	return nil
}

// Snapshot returns a copy of the current record.
func (s *RegistrationService) Snapshot() *tournament.Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.record.Clone()
}
