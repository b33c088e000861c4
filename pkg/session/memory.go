package session

import (
	"sync"

	"github.com/brisatech/backoffice/pkg/models"
)

// MemoryStore is an in-process Store. It backs tests and embedders that do not
// need credentials to outlive the process.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	user  *models.User
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.user = cloneUser(user)
	return nil
}

func (s *MemoryStore) SetUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		return ErrNotAuthenticated
	}
	s.user = cloneUser(user)
	return nil
}

func (s *MemoryStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

func (s *MemoryStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return cloneUser(s.user)
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.user = nil
	return nil
}

func (s *MemoryStore) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token != ""
}

// cloneUser keeps callers from mutating the cached copy in place.
func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
