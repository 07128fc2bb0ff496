// Package session holds the client's authentication state.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/dealflow/internal/core/domain"
)

// State is the authentication phase of a session.
type State int

const (
	// StateLoading means the persisted token has not been resolved yet.
	StateLoading State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ProfileResolver resolves the current token to a user, i.e. GET /auth/me.
type ProfileResolver interface {
	Me(ctx context.Context) (*domain.User, error)
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger for session transitions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// Session is the explicit application state shared by the client
// components. It is safe for concurrent use and doubles as the API
// client's token source.
type Session struct {
	store  TokenStore
	logger *slog.Logger

	mu    sync.RWMutex
	state State
	token string
	user  *domain.User
}

// New creates a session in the loading state.
func New(store TokenStore, opts ...Option) *Session {
	s := &Session{store: store, logger: slog.Default(), state: StateLoading}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AccessToken returns the token attached to API requests.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// State returns the current phase.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns a copy of the authenticated user, or nil.
func (s *Session) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Bootstrap resolves the persisted token. Any failure clears the stored
// token and leaves the session unauthenticated.
func (s *Session) Bootstrap(ctx context.Context, resolver ProfileResolver) State {
	token, err := s.store.Load()
	if err != nil {
		s.logger.Warn("Failed to load stored token", slog.String("error", err.Error()))
		s.reset()
		return StateUnauthenticated
	}
	if token == "" {
		s.setUnauthenticated()
		return StateUnauthenticated
	}

	if err := s.resolve(ctx, token, resolver); err != nil {
		s.logger.Info("Stored token rejected, logging out", slog.String("error", err.Error()))
		return StateUnauthenticated
	}
	return StateAuthenticated
}

// Login persists token and resolves the profile it belongs to. On failure
// the token is cleared and the error returned.
func (s *Session) Login(ctx context.Context, token string, resolver ProfileResolver) error {
	if token == "" {
		return errors.New("empty access token")
	}
	if err := s.store.Save(token); err != nil {
		s.reset()
		return fmt.Errorf("failed to persist token: %w", err)
	}
	return s.resolve(ctx, token, resolver)
}

// Logout clears the token and user synchronously.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.state = StateUnauthenticated
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	if err := s.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear stored token: %w", err)
	}
	return nil
}

func (s *Session) resolve(ctx context.Context, token string, resolver ProfileResolver) error {
	s.mu.Lock()
	s.state = StateLoading
	s.token = token
	s.user = nil
	s.mu.Unlock()

	user, err := resolver.Me(ctx)
	if err == nil && user == nil {
		err = errors.New("empty profile")
	}
	if err != nil {
		s.reset()
		return fmt.Errorf("failed to resolve profile: %w", err)
	}

	s.mu.Lock()
	s.state = StateAuthenticated
	s.user = user
	s.mu.Unlock()
	s.logger.Debug("Session authenticated", slog.String("email", user.Email), slog.String("role", string(user.Role)))
	return nil
}

// reset drops the token everywhere and ends unauthenticated.
func (s *Session) reset() {
	s.setUnauthenticated()
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("Failed to clear stored token", slog.String("error", err.Error()))
	}
}

func (s *Session) setUnauthenticated() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateUnauthenticated
	s.token = ""
	s.user = nil
}
