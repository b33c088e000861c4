package session

import (
	"errors"

	"github.com/brisatech/backoffice/pkg/models"
)

// ErrNotAuthenticated is returned by SetUser when no session exists.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Store is the credential holder shared by every outgoing request. It has two
// states: anonymous (no token, no user) and authenticated (both present).
// Save and Clear move between them; implementations must treat a partially
// persisted state as anonymous. Concrete implementations live under internal/
// (sqlite-backed) and in this package (in-memory).
type Store interface {
	// Save persists the access token and the cached user together.
	Save(token string, user *models.User) error
	// SetUser replaces only the cached user, leaving the token untouched.
	// Returns ErrNotAuthenticated when the store is anonymous.
	SetUser(user *models.User) error
	// Token returns the stored access token, or "" when anonymous.
	Token() string
	// User returns the cached user, or nil when absent or unreadable.
	User() *models.User
	// Clear removes both token and user.
	Clear() error
	// Authenticated reports whether a token is present.
	Authenticated() bool
}
