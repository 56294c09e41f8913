package service

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
	"github.com/slidearcade/puzzle-api/internal/core/ports"
)

// AuthService implements registration and login. Identity is the
// institutional email address alone; there is no password.
type AuthService struct {
	players   ports.PlayerRepository
	jwtSecret string
	tokenTTL  time.Duration
	emailRx   *regexp.Regexp
}

func NewAuthService(players ports.PlayerRepository, jwtSecret string, tokenTTL time.Duration, emailDomain string) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		players:   players,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		emailRx:   domain.EmailPattern(emailDomain),
	}
}

// Register validates the name and institutional email, persists the player,
// and returns it with a freshly issued token.
func (s *AuthService) Register(ctx context.Context, name, email string) (*domain.Player, string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < domain.MinNameLength || n > domain.MaxNameLength {
		return nil, "", domain.ErrInvalidName
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if !s.emailRx.MatchString(email) {
		return nil, "", domain.ErrInvalidEmail
	}

	player := &domain.Player{
		Name:         name,
		Email:        email,
		RegisteredAt: time.Now().UTC(),
	}

	created, err := s.players.Create(ctx, player)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login looks up the player by lower-cased email and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, email string) (*domain.Player, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, "", domain.ErrInvalidEmail
	}

	player, err := s.players.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	token, err := s.generateToken(player)
	if err != nil {
		return nil, "", err
	}
	return player, token, nil
}

func (s *AuthService) generateToken(player *domain.Player) (string, error) {
	claims := jwt.MapClaims{
		"user_id": player.ID,
		"email":   player.Email,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
