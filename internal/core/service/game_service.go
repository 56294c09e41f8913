package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// GameService drives server-side play sessions. Each click loads the session,
// applies the state machine, and writes the new state back before returning,
// so a session never observes a half-applied move.
type GameService struct {
	store ports.SessionStore
	log   zerolog.Logger
}

func NewGameService(store ports.SessionStore, log zerolog.Logger) *GameService {
	return &GameService{store: store, log: log}
}

// CreateSession starts a new game from the fixed initial layout.
func (s *GameService) CreateSession(ctx context.Context) (*domain.GameSession, error) {
	session := &domain.GameSession{
		ID:        newSessionID(),
		Puzzle:    *domain.NewPuzzle(),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.log.Debug().Str("session_id", session.ID).Msg("game session created")
	return session, nil
}

// GetSession returns the current state of a session.
func (s *GameService) GetSession(ctx context.Context, id string) (*domain.GameSession, error) {
	return s.store.Find(ctx, id)
}

// Click applies a single select-or-swap to the session and persists the
// resulting state.
func (s *GameService) Click(ctx context.Context, id string, index int) (*domain.GameSession, domain.ClickResult, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, domain.ClickResult{}, err
	}

	result, err := session.Puzzle.Click(index)
	if err != nil {
		return nil, domain.ClickResult{}, err
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, domain.ClickResult{}, err
	}

	if result.Solved {
		s.log.Info().
			Str("session_id", id).
			Int("moves", result.MoveCount).
			Msg("puzzle solved")
	}

	return session, result, nil
}

// ResetSession restores the session to the initial layout.
func (s *GameService) ResetSession(ctx context.Context, id string) (*domain.GameSession, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Puzzle.Reset()

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// newSessionID returns a random identifier in the format GS-XXXXXXXXXXXXXXXX.
func newSessionID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("GS-%016X", time.Now().UnixNano())
	}
	return fmt.Sprintf("GS-%016X", b)
}
