package redis

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
)

const (
	tokenKey = "byway:session:token"
	userKey  = "byway:session:user"
)

// SessionStore persists the two session slots in Redis. Reads never surface
// storage or parse errors: a corrupt local record degrades to "no session",
// it must not crash the app.
type SessionStore struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client, logger zerolog.Logger) *SessionStore {
	return &SessionStore{client: client, logger: logger}
}

// Token returns the stored bearer token, or "" for a missing or
// sentinel-invalid value.
func (s *SessionStore) Token(ctx context.Context) string {
	raw, err := s.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("session store: token read failed")
		}
		return ""
	}
	return SanitizeToken(raw)
}

// CurrentUser returns the stored profile snapshot, or nil when it is missing,
// unparsable, empty, or lacks an identity.
func (s *SessionStore) CurrentUser(ctx context.Context) *domain.User {
	raw, err := s.client.Get(ctx, userKey).Result()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("session store: user read failed")
		}
		return nil
	}
	return DecodeStoredUser([]byte(raw))
}

// SetSession writes both slots in a single pipeline so a concurrent reader
// never observes one slot updated without the other.
func (s *SessionStore) SetSession(ctx context.Context, token string, user *domain.User) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, tokenKey, token, 0)
		pipe.Set(ctx, userKey, string(encoded), 0)
		return nil
	})
	return err
}

// ClearSession removes both slots. Idempotent.
func (s *SessionStore) ClearSession(ctx context.Context) error {
	return s.client.Del(ctx, tokenKey, userKey).Err()
}

// ClearInvalidData removes sentinel-invalid entries left behind by older
// front-end builds. Run once at startup before any read.
func (s *SessionStore) ClearInvalidData(ctx context.Context) error {
	var stale []string

	token, err := s.client.Get(ctx, tokenKey).Result()
	if err == nil && SanitizeToken(token) == "" {
		stale = append(stale, tokenKey)
	}

	user, err := s.client.Get(ctx, userKey).Result()
	if err == nil && isSentinelUser(user) {
		stale = append(stale, userKey)
	}

	if len(stale) == 0 {
		return nil
	}
	return s.client.Del(ctx, stale...).Err()
}

// SanitizeToken maps sentinel-invalid stored values to the empty string.
// Older builds persisted the literal strings "undefined" and "null" when the
// backend response lacked a token.
func SanitizeToken(raw string) string {
	switch raw {
	case "", "undefined", "null":
		return ""
	}
	return raw
}

// DecodeStoredUser parses a stored user record. It accepts both historical
// field casings (PascalCase and camelCase; encoding/json matches field names
// case-insensitively) and returns the canonical shape, or nil when the record
// is a sentinel, fails to parse, or carries no identity.
func DecodeStoredUser(raw []byte) *domain.User {
	if isSentinelUser(string(raw)) {
		return nil
	}
	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil
	}
	if user.ID == 0 {
		return nil
	}
	return &user
}

func isSentinelUser(raw string) bool {
	switch raw {
	case "", "{}", "null", "undefined":
		return true
	}
	return false
}
