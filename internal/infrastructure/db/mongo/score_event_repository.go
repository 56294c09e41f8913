package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

const collectionScoreEvents = "score_events"

// ScoreEventRepository appends submissions to the score_events audit
// collection. Entries are write-only from the application's point of view.
type ScoreEventRepository struct {
	db *mongo.Database
}

func NewScoreEventRepository(db *mongo.Database) ports.ScoreEventRepository {
	return &ScoreEventRepository{db: db}
}

// Insert persists a single score event.
func (r *ScoreEventRepository) Insert(ctx context.Context, event *domain.ScoreEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"player_id":    event.PlayerID,
		"moves":        event.Moves,
		"improved":     event.Improved,
		"submitted_at": event.SubmittedAt.UTC(),
		"recorded_at":  time.Now().UTC(),
	}

	_, err := r.db.Collection(collectionScoreEvents).InsertOne(ctx, doc)
	return err
}
