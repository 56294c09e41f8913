package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

const collectionScores = "scores"

// ScoreRepository implements ports.ScoreRepository using MongoDB. The unique
// index on player_id plus insert-then-conditional-update makes the
// read-compare-write sequence for one player effectively atomic.
type ScoreRepository struct {
	col *mongo.Collection
}

func NewScoreRepository(db *mongo.Database) *ScoreRepository {
	return &ScoreRepository{col: db.Collection(collectionScores)}
}

type mongoScore struct {
	PlayerID     primitive.ObjectID `bson:"player_id"`
	Moves        int                `bson:"moves"`
	CompletedAt  time.Time          `bson:"completed_at"`
	StartingGrid []int              `bson:"starting_grid"`
}

// SubmitIfBetter applies the monotonic-improvement rule:
//
//  1. Try to insert; the unique index rejects a second record per player.
//  2. On duplicate, update only when the stored moves are strictly greater.
//  3. When neither wrote, return the stored record untouched.
func (r *ScoreRepository) SubmitIfBetter(ctx context.Context, record *domain.ScoreRecord) (*domain.ScoreRecord, bool, bool, error) {
	oid, err := primitive.ObjectIDFromHex(record.PlayerID)
	if err != nil {
		return nil, false, false, domain.ErrPlayerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoScore{
		PlayerID:     oid,
		Moves:        record.Moves,
		CompletedAt:  record.CompletedAt.UTC(),
		StartingGrid: record.StartingGrid,
	}

	_, err = r.col.InsertOne(ctx, doc)
	if err == nil {
		return record, true, true, nil
	}
	if !mongo.IsDuplicateKeyError(err) {
		return nil, false, false, fmt.Errorf("insert score: %w", err)
	}

	filter := bson.M{"player_id": oid, "moves": bson.M{"$gt": record.Moves}}
	update := bson.M{"$set": bson.M{
		"moves":        record.Moves,
		"completed_at": record.CompletedAt.UTC(),
	}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, false, false, fmt.Errorf("update score: %w", err)
	}
	if res.MatchedCount > 0 {
		return record, true, false, nil
	}

	existing, err := r.FindByPlayerID(ctx, record.PlayerID)
	if err != nil {
		return nil, false, false, err
	}
	return existing, false, false, nil
}

// FindByPlayerID retrieves a player's score record.
func (r *ScoreRepository) FindByPlayerID(ctx context.Context, playerID string) (*domain.ScoreRecord, error) {
	oid, err := primitive.ObjectIDFromHex(playerID)
	if err != nil {
		return nil, domain.ErrScoreNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ms mongoScore
	if err := r.col.FindOne(ctx, bson.M{"player_id": oid}).Decode(&ms); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrScoreNotFound
		}
		return nil, fmt.Errorf("find score: %w", err)
	}

	return &domain.ScoreRecord{
		PlayerID:     ms.PlayerID.Hex(),
		Moves:        ms.Moves,
		CompletedAt:  ms.CompletedAt.UTC(),
		StartingGrid: ms.StartingGrid,
	}, nil
}

// List returns one leaderboard page joined with player documents, ordered by
// moves ascending then completion time ascending.
func (r *ScoreRepository) List(ctx context.Context, skip, limit int64) ([]ports.RankedScore, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "moves", Value: 1}, {Key: "completed_at", Value: 1}}}},
		{{Key: "$skip", Value: skip}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionPlayers,
			"localField":   "player_id",
			"foreignField": "_id",
			"as":           "player",
		}}},
		{{Key: "$unwind", Value: "$player"}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	defer cursor.Close(ctx)

	type row struct {
		Moves       int         `bson:"moves"`
		CompletedAt time.Time   `bson:"completed_at"`
		Player      mongoPlayer `bson:"player"`
	}

	var out []ports.RankedScore
	for cursor.Next(ctx) {
		var rw row
		if err := cursor.Decode(&rw); err != nil {
			return nil, fmt.Errorf("decode score row: %w", err)
		}
		out = append(out, ports.RankedScore{
			PlayerName:  rw.Player.Name,
			PlayerEmail: rw.Player.Email,
			Moves:       rw.Moves,
			CompletedAt: rw.CompletedAt.UTC(),
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list scores: %w", err)
	}
	return out, nil
}

// Count returns the number of score records.
func (r *ScoreRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count scores: %w", err)
	}
	return n, nil
}

// CountBetter counts records that rank strictly above the given score.
func (r *ScoreRepository) CountBetter(ctx context.Context, moves int, completedAt time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"moves": bson.M{"$lt": moves}},
		{"moves": moves, "completed_at": bson.M{"$lt": completedAt.UTC()}},
	}}

	n, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count better scores: %w", err)
	}
	return n, nil
}

// Stats aggregates count, average, minimum and maximum moves in one pipeline.
func (r *ScoreRepository) Stats(ctx context.Context) (*ports.ScoreStats, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": 1},
			"avg":   bson.M{"$avg": "$moves"},
			"best":  bson.M{"$min": "$moves"},
			"worst": bson.M{"$max": "$moves"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}
	defer cursor.Close(ctx)

	var agg struct {
		Total int64   `bson:"total"`
		Avg   float64 `bson:"avg"`
		Best  int     `bson:"best"`
		Worst int     `bson:"worst"`
	}
	if cursor.Next(ctx) {
		if err := cursor.Decode(&agg); err != nil {
			return nil, fmt.Errorf("decode stats: %w", err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("aggregate stats: %w", err)
	}

	return &ports.ScoreStats{
		TotalScores:  agg.Total,
		AverageMoves: agg.Avg,
		BestScore:    agg.Best,
		WorstScore:   agg.Worst,
	}, nil
}

// EnsureIndexes creates the unique player_id index that backs the
// one-record-per-player invariant.
func (r *ScoreRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "player_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "moves", Value: 1}, {Key: "completed_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
