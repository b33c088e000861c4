package backoffice

import (
	"context"
	"log/slog"

	"github.com/brisatech/backoffice/pkg/models"
)

// AuthService manages login, logout, and the admin profile. It is the only
// resource service with state: the session store it shares with the client.
type AuthService struct {
	c *Client
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken is the token block of a login response.
type AuthToken struct {
	AccessToken string `json:"accessToken"`
	ExpiresIn   int64  `json:"expiresIn"`
	TokenType   string `json:"tokenType"`
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	User  models.User `json:"user"`
	Token AuthToken   `json:"token"`
}

// ProfileUpdate is a partial update of the signed-in admin. Nil fields are
// left untouched.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Password *string `json:"password,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Login authenticates and persists token and user together. On success the
// session moves to authenticated.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	var res LoginResult
	if err := s.c.post(ctx, "/api/auth/login", creds, &res); err != nil {
		return nil, err
	}

	res.User.SyncID()
	if err := s.c.session.Save(res.Token.AccessToken, &res.User); err != nil {
		return nil, &APIError{Message: msgUnexpected, Err: err}
	}

	return &res, nil
}

// Profile fetches the signed-in admin from the backend.
func (s *AuthService) Profile(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := s.c.get(ctx, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}

	u.SyncID()
	return &u, nil
}

// UpdateProfile applies a partial profile update and refreshes the cached
// user. The token is left untouched.
func (s *AuthService) UpdateProfile(ctx context.Context, update ProfileUpdate) (*models.User, error) {
	var u models.User
	if err := s.c.patch(ctx, "/api/auth/me", update, &u); err != nil {
		return nil, err
	}

	u.SyncID()
	if err := s.c.session.SetUser(&u); err != nil {
		logger.Warn("backoffice: refreshing cached user", slog.Any("err", err))
	}

	return &u, nil
}

// ChangePassword swaps the admin password. A wrong current password surfaces
// as a normal error and leaves the session authenticated.
func (s *AuthService) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return s.c.put(ctx, "/api/auth/change-password", body, nil)
}

// Logout notifies the backend best-effort and always clears the local
// session; an unreachable server never blocks signing out.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		logger.Warn("backoffice: server-side logout failed", slog.Any("err", err))
	}

	return s.c.session.Clear()
}

// IsAuthenticated reports whether a token is present locally.
func (s *AuthService) IsAuthenticated() bool {
	return s.c.session.Authenticated()
}

// CurrentUser returns the cached user without a network call, or nil.
func (s *AuthService) CurrentUser() *models.User {
	return s.c.session.User()
}

// AccessToken returns the stored token, or "" when anonymous.
func (s *AuthService) AccessToken() string {
	return s.c.session.Token()
}
