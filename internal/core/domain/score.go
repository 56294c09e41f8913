package domain

import (
	"errors"
	"time"
)

var (
	ErrInvalidMoves  = errors.New("moves must be a positive integer")
	ErrScoreNotFound = errors.New("score not found")
)

// ScoreRecord is a player's best completion. At most one record exists per
// player; moves only ever decreases across updates.
type ScoreRecord struct {
	PlayerID     string
	Moves        int
	CompletedAt  time.Time
	StartingGrid []int
}

// ScoreEvent is a single audit-trail entry for a score submission, including
// submissions that did not improve the stored record.
type ScoreEvent struct {
	PlayerID    string
	Moves       int
	Improved    bool
	SubmittedAt time.Time
}
