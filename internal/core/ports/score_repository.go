package ports

import (
	"context"
	"time"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

// RankedScore is a ledger entry joined with its player, in leaderboard order.
type RankedScore struct {
	PlayerName  string
	PlayerEmail string
	Moves       int
	CompletedAt time.Time
}

// ScoreStats holds the aggregate view over all score records. All fields are
// zero when no records exist.
type ScoreStats struct {
	TotalScores  int64
	AverageMoves float64
	BestScore    int
	WorstScore   int
}

// ScoreRepository defines persistence operations for the score ledger.
type ScoreRepository interface {
	// SubmitIfBetter atomically applies the monotonic-improvement rule for a
	// single player: create the record when none exists, update it when the
	// submitted moves are strictly lower, otherwise leave it untouched.
	// It returns the record now stored, whether the submission improved it,
	// and whether the record was newly created.
	SubmitIfBetter(ctx context.Context, record *domain.ScoreRecord) (stored *domain.ScoreRecord, improved, created bool, err error)

	FindByPlayerID(ctx context.Context, playerID string) (*domain.ScoreRecord, error)

	// List returns one leaderboard page ordered by moves ascending, ties
	// broken by earlier completion.
	List(ctx context.Context, skip, limit int64) ([]RankedScore, error)

	Count(ctx context.Context) (int64, error)

	// CountBetter counts records strictly better than the given score:
	// fewer moves, or equal moves completed earlier.
	CountBetter(ctx context.Context, moves int, completedAt time.Time) (int64, error)

	Stats(ctx context.Context) (*ScoreStats, error)
}

// ScoreEventRepository appends score submissions to the audit trail.
type ScoreEventRepository interface {
	Insert(ctx context.Context, event *domain.ScoreEvent) error
}
