package ports

import "context"

// StatsResult is the derived summary over all players and score records.
type StatsResult struct {
	TotalUsers   int64
	TotalScores  int64
	AverageMoves float64
	BestScore    int
	WorstScore   int
	// CompletionRate is round(100 * TotalScores / TotalUsers), 0 when there
	// are no registered players.
	CompletionRate int
}

// StatsService aggregates summary metrics over the score ledger.
type StatsService interface {
	GetStats(ctx context.Context) (*StatsResult, error)
}
