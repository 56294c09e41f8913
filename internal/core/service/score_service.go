package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// AuditSink receives score events for asynchronous persistence to the audit
// trail. Enqueueing must never fail the submission itself.
type AuditSink interface {
	Enqueue(event domain.ScoreEvent)
}

// ScoreService applies the monotonic-improvement rule to submissions. The
// compare-and-write itself happens in the repository so concurrent
// submissions from one player cannot both create a record.
type ScoreService struct {
	players ports.PlayerRepository
	scores  ports.ScoreRepository
	audit   AuditSink
	log     zerolog.Logger
}

func NewScoreService(players ports.PlayerRepository, scores ports.ScoreRepository, audit AuditSink, log zerolog.Logger) *ScoreService {
	return &ScoreService{players: players, scores: scores, audit: audit, log: log}
}

// Submit records a completed game. A record is created on the player's first
// completion, replaced when the submission is strictly better, and left
// untouched otherwise; the stored record is returned in all three cases.
func (s *ScoreService) Submit(ctx context.Context, playerID string, moves int) (*ports.SubmitScoreResult, error) {
	if moves < 1 {
		return nil, domain.ErrInvalidMoves
	}

	if _, err := s.players.FindByID(ctx, playerID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record := &domain.ScoreRecord{
		PlayerID:     playerID,
		Moves:        moves,
		CompletedAt:  now,
		StartingGrid: domain.InitialLayout(),
	}

	stored, improved, created, err := s.scores.SubmitIfBetter(ctx, record)
	if err != nil {
		s.log.Error().Err(err).Str("player_id", playerID).Msg("score submission failed")
		return nil, err
	}

	s.log.Info().
		Str("player_id", playerID).
		Int("moves", moves).
		Bool("improved", improved).
		Msg("score submitted")

	if s.audit != nil {
		s.audit.Enqueue(domain.ScoreEvent{
			PlayerID:    playerID,
			Moves:       moves,
			Improved:    improved,
			SubmittedAt: now,
		})
	}

	return &ports.SubmitScoreResult{
		Moves:       stored.Moves,
		CompletedAt: stored.CompletedAt,
		Improved:    improved,
		Created:     created,
	}, nil
}
