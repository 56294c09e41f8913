package ports

import (
	"context"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

// PlayerRepository defines persistence operations for registered players.
type PlayerRepository interface {
	// Create inserts a new player. Returns domain.ErrPlayerExists when the
	// email is already registered (enforced by a unique index).
	Create(ctx context.Context, player *domain.Player) (*domain.Player, error)
	FindByEmail(ctx context.Context, email string) (*domain.Player, error)
	FindByID(ctx context.Context, id string) (*domain.Player, error)
	Count(ctx context.Context) (int64, error)
}
