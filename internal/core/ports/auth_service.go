package ports

import (
	"context"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

// AuthService registers players and issues bearer credentials. Identity is
// email-based only; there is no password. The issued token is therefore a
// convenience credential, not proof of control over the mailbox.
type AuthService interface {
	Register(ctx context.Context, name, email string) (*domain.Player, string, error)
	Login(ctx context.Context, email string) (*domain.Player, string, error)
}
