// Package session owns the client's persisted session: the access token,
// the refresh token, and the last-known role.
//
// The store runs no expiry timer; staleness is only discovered reactively
// when a request using the stored access token is rejected.
package session

import (
	"sync"

	"github.com/masego-dev/clubctl/internal/model"
)

// Session is the persisted credential set
type Session struct {
	AccessToken  string     `json:"access"`
	RefreshToken string     `json:"refresh"`
	Role         model.Role `json:"role"`
}

// Store holds at most one active session
type Store interface {
	// Save persists all three values; subsequent reads observe them
	Save(s Session) error
	// Current returns the stored session, or ok=false when none is stored
	Current() (s Session, ok bool)
	// SetAccessToken replaces only the access token, keeping the refresh
	// token and role (used by the refresh flow)
	SetAccessToken(access string) error
	// Clear erases the session entirely
	Clear() error
}

// MemoryStore is an in-process Store, used in tests and by flows that must
// not touch the filesystem
type MemoryStore struct {
	mu      sync.RWMutex
	session Session
	set     bool
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = s
	m.set = true
	return nil
}

func (m *MemoryStore) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session, m.set
}

func (m *MemoryStore) SetAccessToken(access string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session.AccessToken = access
	m.set = true
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = Session{}
	m.set = false
	return nil
}
