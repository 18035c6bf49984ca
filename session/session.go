// Package session provides the signed-in identity to the views. Views only
// read it through Provider; the CLI drives Login and Logout.
package session

import (
	"errors"
	"sync"

	"library-client/library"
)

// ErrNotSignedIn is returned by operations that need an identity.
var ErrNotSignedIn = errors.New("not signed in")

// Provider is the read contract every view depends on.
type Provider interface {
	User() *library.User
	IsAuthenticated() bool
	IsLibrarian() bool
}

// Session is the process-wide identity. A nil store keeps it in memory only.
type Session struct {
	mu    sync.RWMutex
	user  *library.User
	store *Store
}

// New restores the identity saved in store, if any.
func New(store *Store) (*Session, error) {
	s := &Session{store: store}
	if store == nil {
		return s, nil
	}
	u, err := store.Load()
	if err != nil {
		return nil, err
	}
	s.user = u
	return s, nil
}

// Fixed returns an in-memory session already signed in as u (nil for anonymous).
func Fixed(u *library.User) *Session {
	s := &Session{}
	if u != nil {
		cp := *u
		s.user = &cp
	}
	return s
}

// User returns a copy of the current identity, or nil.
func (s *Session) User() *library.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	cp := *s.user
	return &cp
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Session) IsLibrarian() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil && s.user.IsLibrarian()
}

// Login makes u the current identity and persists it.
func (s *Session) Login(u library.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		if err := s.store.Save(u); err != nil {
			return err
		}
	}
	s.user = &u
	return nil
}

// Logout forgets the current identity.
func (s *Session) Logout() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return ErrNotSignedIn
	}
	if s.store != nil {
		if err := s.store.Clear(); err != nil {
			return err
		}
	}
	s.user = nil
	return nil
}
