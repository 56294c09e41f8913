package service

import (
	"context"
	"testing"

	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// fixedStatsRepo returns canned aggregates, standing in for the Mongo $group
// pipeline.
type fixedStatsRepo struct {
	rankingRepo
	stats ports.ScoreStats
}

func (r *fixedStatsRepo) Stats(_ context.Context) (*ports.ScoreStats, error) {
	return &r.stats, nil
}

func (r *fixedStatsRepo) Count(_ context.Context) (int64, error) {
	return r.stats.TotalScores, nil
}

type fixedCountPlayers struct {
	stubPlayerRepo
	total int64
}

func (r *fixedCountPlayers) Count(_ context.Context) (int64, error) {
	return r.total, nil
}

func TestStatsService_GetStats(t *testing.T) {
	players := &fixedCountPlayers{total: 10}
	scores := &fixedStatsRepo{stats: ports.ScoreStats{
		TotalScores:  4,
		AverageMoves: 23.333333,
		BestScore:    14,
		WorstScore:   40,
	}}
	svc := NewStatsService(players, scores)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}

	if stats.TotalUsers != 10 || stats.TotalScores != 4 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if stats.AverageMoves != 23.3 {
		t.Fatalf("average must round to one decimal: %v", stats.AverageMoves)
	}
	if stats.BestScore != 14 || stats.WorstScore != 40 {
		t.Fatalf("unexpected extrema: %+v", stats)
	}
	if stats.CompletionRate != 40 {
		t.Fatalf("expected completion rate 40, got %d", stats.CompletionRate)
	}
}

func TestStatsService_CompletionRateRounds(t *testing.T) {
	players := &fixedCountPlayers{total: 3}
	scores := &fixedStatsRepo{stats: ports.ScoreStats{TotalScores: 2, AverageMoves: 15}}
	svc := NewStatsService(players, scores)

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	// 2 of 3 players: 66.66... rounds to 67.
	if stats.CompletionRate != 67 {
		t.Fatalf("expected completion rate 67, got %d", stats.CompletionRate)
	}
}

func TestStatsService_NoUsers(t *testing.T) {
	svc := NewStatsService(&fixedCountPlayers{total: 0}, &fixedStatsRepo{})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stats.TotalUsers != 0 || stats.TotalScores != 0 || stats.CompletionRate != 0 {
		t.Fatalf("empty system must report zeros: %+v", stats)
	}
	if stats.AverageMoves != 0 || stats.BestScore != 0 || stats.WorstScore != 0 {
		t.Fatalf("empty system must report zeros: %+v", stats)
	}
}
