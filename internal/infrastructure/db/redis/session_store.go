package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

const sessionTTL = 24 * time.Hour

// SessionStore keeps game sessions in Redis as JSON documents.
// Key format: session:<id>. Sessions expire after sessionTTL; every save
// refreshes the clock.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Save writes the session state, resetting its TTL.
func (s *SessionStore) Save(ctx context.Context, session *domain.GameSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.ID), payload, sessionTTL).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Find loads a session by id. Unknown and expired ids both surface as
// domain.ErrSessionNotFound.
func (s *SessionStore) Find(ctx context.Context, id string) (*domain.GameSession, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var session domain.GameSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
