// Package store provides the sqlite-backed session store used by the CLI so
// that a signed-in admin survives process restarts. It is the disk analogue
// of a browser's persistent key-value storage, scoped to one user profile.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/brisatech/backoffice/internal/db"
	"github.com/brisatech/backoffice/pkg/models"
	"github.com/brisatech/backoffice/pkg/session"
)

const (
	keyAccessToken = "access_token"
	keyUser        = "user"

	opTimeout = 5 * time.Second
)

// SQLiteStore persists the session in a single key-value table. Token and
// user are written in one transaction so a partial state can never be read
// back; anything unreadable degrades to anonymous.
type SQLiteStore struct {
	conn   *db.DB
	logger *slog.Logger
}

var _ session.Store = (*SQLiteStore)(nil)

// New opens (and bootstraps) the session table at path.
func New(ctx context.Context, path string, logger *slog.Logger) (*SQLiteStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := db.New(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}

	if _, err := conn.Exec(ctx, `CREATE TABLE IF NOT EXISTS session (key TEXT PRIMARY KEY, value TEXT NOT NULL, updated INTEGER NOT NULL)`); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("bootstrap session table: %w", err)
	}

	return &SQLiteStore{conn: conn, logger: logger}, nil
}

// Close releases the underlying database.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

func (s *SQLiteStore) Save(token string, user *models.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	ctx, cancel := s.opCtx()
	defer cancel()

	return s.conn.Tx(ctx, func(tx *sql.Tx) error {
		for key, value := range map[string]string{
			keyAccessToken: token,
			keyUser:        string(raw),
		} {
			if _, err := tx.ExecContext(ctx, upsert, key, value, now()); err != nil {
				return fmt.Errorf("store %s: %w", key, err)
			}
		}
		return nil
	})
}

func (s *SQLiteStore) SetUser(user *models.User) error {
	if s.Token() == "" {
		return session.ErrNotAuthenticated
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}

	ctx, cancel := s.opCtx()
	defer cancel()

	_, err = s.conn.Exec(ctx, upsert, keyUser, string(raw), now())
	return err
}

func (s *SQLiteStore) Token() string {
	token, err := s.value(keyAccessToken)
	if err != nil {
		s.logger.Error("session: reading token", slog.Any("err", err))
		return ""
	}
	if token == "" {
		return ""
	}

	// A token without a stored user is a partial write; treat as anonymous.
	if rawUser, err := s.value(keyUser); err != nil || rawUser == "" {
		return ""
	}
	return token
}

func (s *SQLiteStore) User() *models.User {
	raw, err := s.value(keyUser)
	if err != nil {
		s.logger.Error("session: reading user", slog.Any("err", err))
		return nil
	}
	if raw == "" || raw == "null" {
		return nil
	}

	var u models.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// Corrupted cache reads as absent, never as a failure.
		s.logger.Warn("session: corrupted cached user, ignoring", slog.Any("err", err))
		return nil
	}
	return &u
}

func (s *SQLiteStore) Clear() error {
	ctx, cancel := s.opCtx()
	defer cancel()

	_, err := s.conn.Exec(ctx, `DELETE FROM session WHERE key IN (?, ?)`, keyAccessToken, keyUser)
	return err
}

func (s *SQLiteStore) Authenticated() bool {
	return s.Token() != ""
}

const upsert = `INSERT INTO session (key, value, updated) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated = excluded.updated`

func (s *SQLiteStore) value(key string) (string, error) {
	ctx, cancel := s.opCtx()
	defer cancel()

	var v string
	err := s.conn.QueryRow(ctx, `SELECT value FROM session WHERE key = ?`, key).Scan(&v)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// The Store interface is call-site agnostic, so operations carry their own
// short deadline instead of a caller context.
func (s *SQLiteStore) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}
