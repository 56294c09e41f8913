package ports

import (
	"context"
	"time"
)

// LeaderboardEntry is a single ranked row. Rank is the 1-based position in
// the global ordering, independent of the pagination window.
type LeaderboardEntry struct {
	Rank        int
	Name        string
	Email       string
	Moves       int
	CompletedAt time.Time
}

// Pagination describes the window a leaderboard page was cut from.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalScores int64
	HasNext     bool
	HasPrev     bool
}

// LeaderboardResult is one page of the ranked leaderboard.
type LeaderboardResult struct {
	Entries    []LeaderboardEntry
	Pagination Pagination
}

// PlayerRankResult is a single player's standing. When HasScore is false the
// remaining fields are meaningless.
type PlayerRankResult struct {
	HasScore    bool
	Moves       int
	CompletedAt time.Time
	Rank        int64
}

// LeaderboardService serves ranked, paginated snapshots of the score ledger.
// Reads are eventually consistent with concurrent submissions.
type LeaderboardService interface {
	GetLeaderboard(ctx context.Context, page, limit int) (*LeaderboardResult, error)
	GetPlayerRank(ctx context.Context, playerID string) (*PlayerRankResult, error)
}

// LeaderboardCache is a short-lived snapshot cache for leaderboard pages.
// Get returns (nil, nil) on a miss.
type LeaderboardCache interface {
	Get(ctx context.Context, page, limit int) (*LeaderboardResult, error)
	Set(ctx context.Context, page, limit int, result *LeaderboardResult) error
}
