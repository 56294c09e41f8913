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
)

const collectionPlayers = "players"

// PlayerRepository implements ports.PlayerRepository using MongoDB.
type PlayerRepository struct {
	col *mongo.Collection
}

func NewPlayerRepository(db *mongo.Database) *PlayerRepository {
	return &PlayerRepository{col: db.Collection(collectionPlayers)}
}

type mongoPlayer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

// Create inserts a new player. The unique index on email turns a duplicate
// registration into domain.ErrPlayerExists.
func (r *PlayerRepository) Create(ctx context.Context, player *domain.Player) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoPlayer{
		Name:         player.Name,
		Email:        player.Email,
		RegisteredAt: player.RegisteredAt.UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrPlayerExists
		}
		return nil, fmt.Errorf("insert player: %w", err)
	}

	created := *player
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// FindByEmail retrieves a player by their (lower-cased) email address.
func (r *PlayerRepository) FindByEmail(ctx context.Context, email string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPlayer
	if err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("find player by email: %w", err)
	}
	return mp.toDomain(), nil
}

// FindByID retrieves a player by their hex object id.
func (r *PlayerRepository) FindByID(ctx context.Context, id string) (*domain.Player, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrPlayerNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mp mongoPlayer
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("find player by id: %w", err)
	}
	return mp.toDomain(), nil
}

// Count returns the number of registered players.
func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count players: %w", err)
	}
	return n, nil
}

// EnsureIndexes creates the unique email index. Registration relies on it to
// reject duplicates loudly instead of corrupting the one-player-per-email
// invariant.
func (r *PlayerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (mp *mongoPlayer) toDomain() *domain.Player {
	return &domain.Player{
		ID:           mp.ID.Hex(),
		Name:         mp.Name,
		Email:        mp.Email,
		RegisteredAt: mp.RegisteredAt.UTC(),
	}
}
