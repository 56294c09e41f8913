package ports

import (
	"context"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

// SessionStore holds ephemeral game sessions. Implementations apply their own
// TTL; Find returns domain.ErrSessionNotFound for unknown or expired ids.
type SessionStore interface {
	Save(ctx context.Context, session *domain.GameSession) error
	Find(ctx context.Context, id string) (*domain.GameSession, error)
}

// GameService drives server-side play sessions through the puzzle state
// machine.
type GameService interface {
	CreateSession(ctx context.Context) (*domain.GameSession, error)
	GetSession(ctx context.Context, id string) (*domain.GameSession, error)
	Click(ctx context.Context, id string, index int) (*domain.GameSession, domain.ClickResult, error)
	ResetSession(ctx context.Context, id string) (*domain.GameSession, error)
}
