package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// stubScoreRepo applies the monotonic-improvement rule in memory, mirroring
// what the Mongo repository guarantees through its unique index.
type stubScoreRepo struct {
	records map[string]*domain.ScoreRecord
}

func newStubScoreRepo() *stubScoreRepo {
	return &stubScoreRepo{records: make(map[string]*domain.ScoreRecord)}
}

func cloneRecord(rec *domain.ScoreRecord) *domain.ScoreRecord {
	if rec == nil {
		return nil
	}
	clone := *rec
	return &clone
}

func (r *stubScoreRepo) SubmitIfBetter(_ context.Context, record *domain.ScoreRecord) (*domain.ScoreRecord, bool, bool, error) {
	existing, ok := r.records[record.PlayerID]
	if !ok {
		r.records[record.PlayerID] = cloneRecord(record)
		return cloneRecord(record), true, true, nil
	}
	if record.Moves < existing.Moves {
		existing.Moves = record.Moves
		existing.CompletedAt = record.CompletedAt
		return cloneRecord(existing), true, false, nil
	}
	return cloneRecord(existing), false, false, nil
}

func (r *stubScoreRepo) FindByPlayerID(_ context.Context, playerID string) (*domain.ScoreRecord, error) {
	if rec, ok := r.records[playerID]; ok {
		return cloneRecord(rec), nil
	}
	return nil, domain.ErrScoreNotFound
}

func (r *stubScoreRepo) List(_ context.Context, skip, limit int64) ([]ports.RankedScore, error) {
	return nil, nil
}

func (r *stubScoreRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.records)), nil
}

func (r *stubScoreRepo) CountBetter(_ context.Context, moves int, completedAt time.Time) (int64, error) {
	var n int64
	for _, rec := range r.records {
		if rec.Moves < moves || (rec.Moves == moves && rec.CompletedAt.Before(completedAt)) {
			n++
		}
	}
	return n, nil
}

func (r *stubScoreRepo) Stats(_ context.Context) (*ports.ScoreStats, error) {
	stats := &ports.ScoreStats{TotalScores: int64(len(r.records))}
	var sum int
	for _, rec := range r.records {
		sum += rec.Moves
		if stats.BestScore == 0 || rec.Moves < stats.BestScore {
			stats.BestScore = rec.Moves
		}
		if rec.Moves > stats.WorstScore {
			stats.WorstScore = rec.Moves
		}
	}
	if stats.TotalScores > 0 {
		stats.AverageMoves = float64(sum) / float64(stats.TotalScores)
	}
	return stats, nil
}

type stubAuditSink struct {
	events []domain.ScoreEvent
}

func (s *stubAuditSink) Enqueue(event domain.ScoreEvent) {
	s.events = append(s.events, event)
}

func registerTestPlayer(t *testing.T, repo *stubPlayerRepo) *domain.Player {
	t.Helper()
	player, err := repo.Create(context.Background(), &domain.Player{
		Name:         "Alice",
		Email:        "cs22b1001@iiitdm.ac.in",
		RegisteredAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("create player: %v", err)
	}
	return player
}

func TestScoreService_Submit_FirstScore(t *testing.T) {
	players := newStubPlayerRepo()
	scores := newStubScoreRepo()
	audit := &stubAuditSink{}
	svc := NewScoreService(players, scores, audit, zerolog.Nop())
	player := registerTestPlayer(t, players)

	result, err := svc.Submit(context.Background(), player.ID, 42)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Improved || !result.Created {
		t.Fatalf("first submission must create and improve: %+v", result)
	}
	if result.Moves != 42 {
		t.Fatalf("expected 42 moves, got %d", result.Moves)
	}

	stored := scores.records[player.ID]
	if stored == nil || stored.Moves != 42 {
		t.Fatalf("record not stored: %+v", stored)
	}
	if len(stored.StartingGrid) != domain.GridSize {
		t.Fatalf("starting configuration not recorded: %v", stored.StartingGrid)
	}

	if len(audit.events) != 1 || audit.events[0].PlayerID != player.ID || !audit.events[0].Improved {
		t.Fatalf("unexpected audit events: %+v", audit.events)
	}
}

func TestScoreService_Submit_WorseScoreKeepsRecord(t *testing.T) {
	players := newStubPlayerRepo()
	scores := newStubScoreRepo()
	svc := NewScoreService(players, scores, nil, zerolog.Nop())
	player := registerTestPlayer(t, players)

	first, err := svc.Submit(context.Background(), player.ID, 10)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	result, err := svc.Submit(context.Background(), player.ID, 15)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Improved || result.Created {
		t.Fatalf("worse submission must not improve: %+v", result)
	}
	if result.Moves != 10 {
		t.Fatalf("expected existing 10 moves back, got %d", result.Moves)
	}
	if !result.CompletedAt.Equal(first.CompletedAt) {
		t.Fatalf("timestamp must not change on a worse submission")
	}
	if scores.records[player.ID].Moves != 10 {
		t.Fatalf("stored record mutated: %+v", scores.records[player.ID])
	}
}

func TestScoreService_Submit_EqualScoreKeepsRecord(t *testing.T) {
	players := newStubPlayerRepo()
	scores := newStubScoreRepo()
	svc := NewScoreService(players, scores, nil, zerolog.Nop())
	player := registerTestPlayer(t, players)

	_, _ = svc.Submit(context.Background(), player.ID, 10)
	result, err := svc.Submit(context.Background(), player.ID, 10)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Improved {
		t.Fatalf("equal submission must not improve")
	}
}

func TestScoreService_Submit_BetterScoreUpdates(t *testing.T) {
	players := newStubPlayerRepo()
	scores := newStubScoreRepo()
	svc := NewScoreService(players, scores, nil, zerolog.Nop())
	player := registerTestPlayer(t, players)

	_, _ = svc.Submit(context.Background(), player.ID, 10)
	result, err := svc.Submit(context.Background(), player.ID, 5)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Improved || result.Created {
		t.Fatalf("better submission must improve without creating: %+v", result)
	}
	if scores.records[player.ID].Moves != 5 {
		t.Fatalf("record not updated: %+v", scores.records[player.ID])
	}
}

func TestScoreService_Submit_InvalidMoves(t *testing.T) {
	players := newStubPlayerRepo()
	svc := NewScoreService(players, newStubScoreRepo(), nil, zerolog.Nop())
	player := registerTestPlayer(t, players)

	for _, moves := range []int{0, -1, -100} {
		if _, err := svc.Submit(context.Background(), player.ID, moves); err != domain.ErrInvalidMoves {
			t.Fatalf("moves %d: expected ErrInvalidMoves, got %v", moves, err)
		}
	}
}

func TestScoreService_Submit_UnknownPlayer(t *testing.T) {
	svc := NewScoreService(newStubPlayerRepo(), newStubScoreRepo(), nil, zerolog.Nop())

	if _, err := svc.Submit(context.Background(), "ghost", 10); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}
