package ports

import (
	"context"
	"time"
)

// SubmitScoreResult is returned by ScoreService.Submit. Moves and CompletedAt
// reflect the record as stored, which is the pre-existing record when the
// submission did not improve it.
type SubmitScoreResult struct {
	Moves       int
	CompletedAt time.Time
	Improved    bool
	// Created is true when this submission created the player's first record.
	Created bool
}

// ScoreService applies the update-if-better rule to authenticated score
// submissions.
type ScoreService interface {
	Submit(ctx context.Context, playerID string, moves int) (*SubmitScoreResult, error)
}
