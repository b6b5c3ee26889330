package backend

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
)

// AuthService maps auth operations onto the backend's /Auth endpoints and
// persists the issued session before returning.
type AuthService struct {
	client *Client
	store  ports.SessionStore
	logger zerolog.Logger
}

func NewAuthService(client *Client, store ports.SessionStore, logger zerolog.Logger) *AuthService {
	return &AuthService{client: client, store: store, logger: logger}
}

// Login exchanges credentials for a token+profile and stores both. Failures
// propagate untouched; nothing is stored on failure.
func (s *AuthService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := s.client.post(ctx, "/Auth/login", req, &resp); err != nil {
		return nil, err
	}
	if err := s.storeSession(ctx, &resp); err != nil {
		return nil, err
	}
	s.logger.Info().Int("user_id", resp.UserID).Str("role", resp.Role).Msg("login succeeded")
	return &resp, nil
}

// Register creates an account; same session-storing contract as Login.
func (s *AuthService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	var resp domain.AuthResponse
	if err := s.client.post(ctx, "/Auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := s.storeSession(ctx, &resp); err != nil {
		return nil, err
	}
	s.logger.Info().Int("user_id", resp.UserID).Msg("registration succeeded")
	return &resp, nil
}

func (s *AuthService) storeSession(ctx context.Context, resp *domain.AuthResponse) error {
	if resp.Token == "" {
		return &APIError{Status: 502, Message: "no token received from server"}
	}
	if resp.UserID == 0 {
		return &APIError{Status: 502, Message: "no user identity received from server"}
	}
	return s.store.SetSession(ctx, resp.Token, resp.Profile())
}
