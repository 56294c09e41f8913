package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/slidearcade/puzzle-api/internal/core/domain"
)

type stubPlayerRepo struct {
	players map[string]*domain.Player // keyed by email
	nextID  int
}

func newStubPlayerRepo() *stubPlayerRepo {
	return &stubPlayerRepo{players: make(map[string]*domain.Player)}
}

func clonePlayer(p *domain.Player) *domain.Player {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPlayerRepo) Create(_ context.Context, player *domain.Player) (*domain.Player, error) {
	if _, exists := r.players[player.Email]; exists {
		return nil, domain.ErrPlayerExists
	}
	r.nextID++
	created := clonePlayer(player)
	created.ID = fmt.Sprintf("player-%d", r.nextID)
	r.players[created.Email] = clonePlayer(created)
	return created, nil
}

func (r *stubPlayerRepo) FindByEmail(_ context.Context, email string) (*domain.Player, error) {
	if p, ok := r.players[email]; ok {
		return clonePlayer(p), nil
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *stubPlayerRepo) FindByID(_ context.Context, id string) (*domain.Player, error) {
	for _, p := range r.players {
		if p.ID == id {
			return clonePlayer(p), nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *stubPlayerRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.players)), nil
}

func newTestAuthService(repo *stubPlayerRepo) *AuthService {
	return NewAuthService(repo, "secret", time.Hour, "iiitdm.ac.in")
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(newStubPlayerRepo())

	player, token, err := svc.Register(context.Background(), "  Alice  ", "CS22B1001@IIITDM.AC.IN")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if player.Name != "Alice" {
		t.Fatalf("expected trimmed name, got %q", player.Name)
	}
	if player.Email != "cs22b1001@iiitdm.ac.in" {
		t.Fatalf("expected lower-cased email, got %q", player.Email)
	}
	if player.ID == "" {
		t.Fatalf("expected assigned id")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["user_id"] != player.ID || claims["email"] != player.Email {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_NameValidation(t *testing.T) {
	svc := newTestAuthService(newStubPlayerRepo())

	cases := []string{"", "a", "  a  ", strings.Repeat("x", 51)}
	for _, name := range cases {
		if _, _, err := svc.Register(context.Background(), name, "cs22b1001@iiitdm.ac.in"); err != domain.ErrInvalidName {
			t.Fatalf("name %q: expected ErrInvalidName, got %v", name, err)
		}
	}

	// 50 characters is still valid.
	if _, _, err := svc.Register(context.Background(), strings.Repeat("x", 50), "cs22b1001@iiitdm.ac.in"); err != nil {
		t.Fatalf("50-char name rejected: %v", err)
	}
}

func TestAuthService_Register_EmailValidation(t *testing.T) {
	svc := newTestAuthService(newStubPlayerRepo())

	// Wrong digit counts, wrong prefix shape, wrong domain, and a domain
	// where the dot would only match as a regex wildcard.
	invalid := []string{
		"cs2b1001@iiitdm.ac.in",
		"cs22b100@iiitdm.ac.in",
		"c22b1001@iiitdm.ac.in",
		"cs22b1001@gmail.com",
		"cs22b1001@iiitdmxac.in",
		"xcs22b1001@iiitdm.ac.in",
		"cs22b10011@iiitdm.ac.in",
		"",
	}
	for _, email := range invalid {
		if _, _, err := svc.Register(context.Background(), "Alice", email); err != domain.ErrInvalidEmail {
			t.Fatalf("email %q: expected ErrInvalidEmail, got %v", email, err)
		}
	}

	if _, _, err := svc.Register(context.Background(), "Alice", "cs22b1001@iiitdm.ac.in"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubPlayerRepo())

	if _, _, err := svc.Register(context.Background(), "Alice", "cs22b1001@iiitdm.ac.in"); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "Bob", "CS22B1001@iiitdm.ac.in"); err != domain.ErrPlayerExists {
		t.Fatalf("expected ErrPlayerExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubPlayerRepo()
	svc := newTestAuthService(repo)

	registered, _, err := svc.Register(context.Background(), "Carol", "me22b1042@iiitdm.ac.in")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	player, token, err := svc.Login(context.Background(), "ME22B1042@iiitdm.ac.in")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if player.ID != registered.ID {
		t.Fatalf("unexpected player: %+v", player)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}
}

func TestAuthService_Login_NotFound(t *testing.T) {
	svc := newTestAuthService(newStubPlayerRepo())

	if _, _, err := svc.Login(context.Background(), "cs22b1001@iiitdm.ac.in"); err != domain.ErrPlayerNotFound {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestAuthService_TokenExpiry(t *testing.T) {
	svc := NewAuthService(newStubPlayerRepo(), "secret", 7*24*time.Hour, "iiitdm.ac.in")

	_, token, err := svc.Register(context.Background(), "Dave", "cs22b1003@iiitdm.ac.in")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		t.Fatalf("expiration claim: %v", err)
	}
	want := time.Now().Add(7 * 24 * time.Hour)
	if d := exp.Sub(want); d < -time.Minute || d > time.Minute {
		t.Fatalf("expected ~7 day expiry, got %v", exp.Time)
	}
}
