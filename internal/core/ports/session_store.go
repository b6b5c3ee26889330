package ports

import (
	"context"

	"github.com/byway/web-gateway/internal/core/domain"
)

// SessionStore is the two-slot durable record backing the session: a bearer
// token and a serialized user snapshot. Reads degrade to "no session" on any
// corruption or sentinel-invalid value; they never surface errors.
type SessionStore interface {
	// Token returns the stored bearer token, or "" when the slot is missing
	// or holds a sentinel-invalid value ("", "null", "undefined").
	Token(ctx context.Context) string

	// CurrentUser returns the stored profile snapshot, or nil when the slot
	// is missing, unparsable, empty, or lacks an identity.
	CurrentUser(ctx context.Context) *domain.User

	// SetSession writes both slots; from the caller's perspective no reader
	// observes one slot updated without the other.
	SetSession(ctx context.Context, token string, user *domain.User) error

	// ClearSession removes both slots. Idempotent.
	ClearSession(ctx context.Context) error

	// ClearInvalidData removes sentinel-invalid entries. Intended to run once
	// at startup before any read.
	ClearInvalidData(ctx context.Context) error
}
