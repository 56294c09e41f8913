package service

import (
	"context"
	"math"

	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// StatsService derives summary metrics over the score ledger.
type StatsService struct {
	players ports.PlayerRepository
	scores  ports.ScoreRepository
}

func NewStatsService(players ports.PlayerRepository, scores ports.ScoreRepository) *StatsService {
	return &StatsService{players: players, scores: scores}
}

// GetStats aggregates player and score counts, move averages and extrema,
// and the completion rate. Everything is 0 when no records exist.
func (s *StatsService) GetStats(ctx context.Context) (*ports.StatsResult, error) {
	totalUsers, err := s.players.Count(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.scores.Stats(ctx)
	if err != nil {
		return nil, err
	}

	completionRate := 0
	if totalUsers > 0 {
		completionRate = int(math.Round(100 * float64(stats.TotalScores) / float64(totalUsers)))
	}

	return &ports.StatsResult{
		TotalUsers:     totalUsers,
		TotalScores:    stats.TotalScores,
		AverageMoves:   math.Round(stats.AverageMoves*10) / 10,
		BestScore:      stats.BestScore,
		WorstScore:     stats.WorstScore,
		CompletionRate: completionRate,
	}, nil
}
