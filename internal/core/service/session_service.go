// Package service holds the gateway's state-orchestration layer: the session
// context and the cart badge synchronizer. Both are constructed once at the
// composition root and injected into handlers and guards; there are no
// package-level singletons.
package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
)

// SessionService is the single source of truth for "am I logged in, as whom,
// with what privilege". It is single-writer (only its own methods mutate
// state) with many readers; the in-memory snapshot is mutex-guarded.
//
// Authentication is re-derived on every read from both the in-memory user and
// the persisted token, so an external token wipe (the pipeline's 401 handler)
// is observed on the next read without an explicit logout.
type SessionService struct {
	store  ports.SessionStore
	auth   ports.AuthAPI
	logger zerolog.Logger

	changes *Notifier

	mu      sync.RWMutex
	user    *domain.User
	loading bool
}

func NewSessionService(store ports.SessionStore, auth ports.AuthAPI, logger zerolog.Logger) *SessionService {
	return &SessionService{
		store:   store,
		auth:    auth,
		logger:  logger,
		changes: NewNotifier(),
		loading: true,
	}
}

// Init restores the session from the persisted store. It always terminates in
// either the authenticated or anonymous state and flips the loading flag off,
// clearing any stale half-session it finds on the way.
func (s *SessionService) Init(ctx context.Context) {
	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
		s.changes.Broadcast()
	}()

	if err := s.store.ClearInvalidData(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear invalid session data")
	}

	token := s.store.Token(ctx)
	if token == "" {
		s.setUser(nil)
		return
	}

	user := s.store.CurrentUser(ctx)
	if user == nil {
		// Token without a usable profile is a stale session.
		s.logger.Info().Msg("stale session found, clearing")
		if err := s.store.ClearSession(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("failed to clear stale session")
		}
		s.setUser(nil)
		return
	}

	s.setUser(user)
	s.logger.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("session restored")
}

// Loading reports whether Init has finished.
func (s *SessionService) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns the current profile snapshot, or nil when anonymous.
func (s *SessionService) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	snapshot := *s.user
	return &snapshot
}

// IsAuthenticated is true iff both a user snapshot and a usable persisted
// token are present. It is computed, never cached.
func (s *SessionService) IsAuthenticated(ctx context.Context) bool {
	if s.User() == nil {
		return false
	}
	token := s.store.Token(ctx)
	return token != "" && tokenUsable(token)
}

// IsAdmin derives the admin flag from the user's role; it is never stored
// independently, so it cannot diverge from the profile.
func (s *SessionService) IsAdmin(ctx context.Context) bool {
	return s.IsAuthenticated(ctx) && s.User().IsAdmin()
}

// Changes exposes the auth-transition notifier. The header badge subscribes
// to it so a stale count never survives a login or logout.
func (s *SessionService) Changes() *Notifier {
	return s.changes
}

// Login authenticates against the backend. The auth client persists
// token+user before returning; this only mirrors the profile into memory.
// On failure the error propagates untouched and state is unchanged.
func (s *SessionService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	resp, err := s.auth.Login(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("login failed")
		return nil, err
	}
	s.setUser(resp.Profile())
	s.changes.Broadcast()
	return resp, nil
}

// Register has the same contract as Login, using the registration endpoint.
func (s *SessionService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	resp, err := s.auth.Register(ctx, req)
	if err != nil {
		s.logger.Warn().Err(err).Str("email", req.Email).Msg("registration failed")
		return nil, err
	}
	s.setUser(resp.Profile())
	s.changes.Broadcast()
	return resp, nil
}

// Logout clears the persisted store and the in-memory snapshot. Idempotent.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.store.ClearSession(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear session on logout")
	}
	s.setUser(nil)
	s.changes.Broadcast()
}

// HandleRemoteLogout reacts to the pipeline's 401 side effect: the persisted
// store is already wiped, so only the in-memory snapshot needs dropping.
func (s *SessionService) HandleRemoteLogout() {
	s.setUser(nil)
	s.changes.Broadcast()
}

func (s *SessionService) setUser(user *domain.User) {
	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// tokenUsable peeks at the bearer token's exp claim without verifying the
// signature (verification is the backend's job). Opaque or claimless tokens
// are treated as usable; only a parseable JWT that has expired counts as
// absent.
func tokenUsable(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return exp.After(time.Now())
}
