package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

// LeaderboardService ranks the score ledger: moves ascending, ties broken by
// earlier completion. Pages may be served from a short-lived cache; a page
// can be stale against concurrent submissions, which is acceptable.
type LeaderboardService struct {
	scores ports.ScoreRepository
	cache  ports.LeaderboardCache
	log    zerolog.Logger
}

func NewLeaderboardService(scores ports.ScoreRepository, cache ports.LeaderboardCache, log zerolog.Logger) *LeaderboardService {
	return &LeaderboardService{scores: scores, cache: cache, log: log}
}

// GetLeaderboard returns one page of the global ranking. Non-positive page
// and limit fall back to 1 and 50; limit is capped at 100.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, page, limit int) (*ports.LeaderboardResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, page, limit)
		if err != nil {
			s.log.Warn().Err(err).Msg("leaderboard cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	skip := (page - 1) * limit
	rows, err := s.scores.List(ctx, int64(skip), int64(limit))
	if err != nil {
		return nil, err
	}

	total, err := s.scores.Count(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]ports.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = ports.LeaderboardEntry{
			Rank:        skip + i + 1,
			Name:        row.PlayerName,
			Email:       row.PlayerEmail,
			Moves:       row.Moves,
			CompletedAt: row.CompletedAt,
		}
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	result := &ports.LeaderboardResult{
		Entries: entries,
		Pagination: ports.Pagination{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalScores: total,
			HasNext:     int64(page*limit) < total,
			HasPrev:     page > 1,
		},
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, page, limit, result); err != nil {
			s.log.Warn().Err(err).Msg("leaderboard cache write failed")
		}
	}

	return result, nil
}

// GetPlayerRank computes a single player's standing as one plus the number of
// strictly better records.
func (s *LeaderboardService) GetPlayerRank(ctx context.Context, playerID string) (*ports.PlayerRankResult, error) {
	record, err := s.scores.FindByPlayerID(ctx, playerID)
	if err != nil {
		if errors.Is(err, domain.ErrScoreNotFound) {
			return &ports.PlayerRankResult{HasScore: false}, nil
		}
		return nil, err
	}

	better, err := s.scores.CountBetter(ctx, record.Moves, record.CompletedAt)
	if err != nil {
		return nil, err
	}

	return &ports.PlayerRankResult{
		HasScore:    true,
		Moves:       record.Moves,
		CompletedAt: record.CompletedAt,
		Rank:        better + 1,
	}, nil
}
