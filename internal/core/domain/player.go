package domain

import (
	"errors"
	"regexp"
	"time"
)

const (
	MinNameLength = 2
	MaxNameLength = 50
)

var (
	ErrInvalidName    = errors.New("name must be between 2 and 50 characters")
	ErrInvalidEmail   = errors.New("email must be a valid institutional address")
	ErrPlayerExists   = errors.New("player already registered")
	ErrPlayerNotFound = errors.New("player not found")
)

// Player is a registered participant. Created once at registration and
// immutable afterwards.
type Player struct {
	ID           string
	Name         string
	Email        string
	RegisteredAt time.Time
}

// EmailPattern compiles the institutional roll-number matcher for the given
// mail domain: two letters, two digits, one letter, four digits.
// Example: cs22b1001@iiitdm.ac.in.
func EmailPattern(mailDomain string) *regexp.Regexp {
	return regexp.MustCompile(`^[A-Za-z]{2}\d{2}[A-Za-z]\d{4}@` + regexp.QuoteMeta(mailDomain) + `$`)
}
