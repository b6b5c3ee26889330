package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
)

type stubStore struct {
	token        string
	user         *domain.User
	clearedCalls int
}

func (s *stubStore) Token(context.Context) string             { return s.token }
func (s *stubStore) CurrentUser(context.Context) *domain.User { return s.user }
func (s *stubStore) ClearInvalidData(context.Context) error   { return nil }
func (s *stubStore) SetSession(_ context.Context, token string, user *domain.User) error {
	s.token, s.user = token, user
	return nil
}
func (s *stubStore) ClearSession(context.Context) error {
	s.token, s.user = "", nil
	s.clearedCalls++
	return nil
}

type stubAuth struct {
	store *stubStore
	resp  *domain.AuthResponse
	err   error
}

func (a *stubAuth) Login(ctx context.Context, _ domain.LoginRequest) (*domain.AuthResponse, error) {
	return a.respond(ctx)
}

func (a *stubAuth) Register(ctx context.Context, _ domain.RegisterRequest) (*domain.AuthResponse, error) {
	return a.respond(ctx)
}

// respond mimics the real auth client: persist the session, then return.
func (a *stubAuth) respond(ctx context.Context) (*domain.AuthResponse, error) {
	if a.err != nil {
		return nil, a.err
	}
	_ = a.store.SetSession(ctx, a.resp.Token, a.resp.Profile())
	return a.resp, nil
}

func newTestSession(store *stubStore, auth *stubAuth) *SessionService {
	return NewSessionService(store, auth, zerolog.Nop())
}

func adminResponse() *domain.AuthResponse {
	return &domain.AuthResponse{
		Token:     "tok-1",
		UserID:    9,
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Role:      "Admin",
	}
}

func TestSessionService_InitRestoresSession(t *testing.T) {
	store := &stubStore{token: "tok", user: &domain.User{ID: 4, Role: "Student"}}
	svc := newTestSession(store, &stubAuth{store: store})

	if !svc.Loading() {
		t.Fatalf("expected loading before Init")
	}
	svc.Init(context.Background())
	if svc.Loading() {
		t.Fatalf("expected loading false after Init")
	}
	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected authenticated after restoring a valid session")
	}
	if svc.IsAdmin(context.Background()) {
		t.Fatalf("student must not be admin")
	}
}

func TestSessionService_InitClearsStaleHalfSession(t *testing.T) {
	// Token present but no usable user snapshot.
	store := &stubStore{token: "tok"}
	svc := newTestSession(store, &stubAuth{store: store})

	svc.Init(context.Background())
	if svc.Loading() {
		t.Fatalf("Init must always terminate with loading false")
	}
	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected anonymous after stale session")
	}
	if store.token != "" {
		t.Fatalf("expected stale token cleared, got %q", store.token)
	}
}

func TestSessionService_IsAuthenticatedPresenceCombinations(t *testing.T) {
	cases := []struct {
		name  string
		token string
		user  *domain.User
		want  bool
	}{
		{"no token, no user", "", nil, false},
		{"token only", "tok", nil, false},
		{"user only", "", &domain.User{ID: 1}, false},
		{"token and user", "tok", &domain.User{ID: 1}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &stubStore{token: tc.token, user: tc.user}
			svc := newTestSession(store, &stubAuth{store: store})
			svc.Init(context.Background())
			if got := svc.IsAuthenticated(context.Background()); got != tc.want {
				t.Fatalf("IsAuthenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSessionService_LoginSuccess(t *testing.T) {
	store := &stubStore{}
	svc := newTestSession(store, &stubAuth{store: store, resp: adminResponse()})
	svc.Init(context.Background())

	resp, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.Token != "tok-1" {
		t.Fatalf("unexpected token %q", resp.Token)
	}
	if store.token != "tok-1" || store.user == nil || store.user.ID != 9 {
		t.Fatalf("session not persisted: token=%q user=%+v", store.token, store.user)
	}
	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected authenticated after login")
	}
	if !svc.IsAdmin(context.Background()) {
		t.Fatalf("expected admin for role %q", resp.Role)
	}
}

func TestSessionService_LoginFailureLeavesStateUnchanged(t *testing.T) {
	store := &stubStore{}
	wantErr := errors.New("invalid credentials")
	svc := newTestSession(store, &stubAuth{store: store, err: wantErr})
	svc.Init(context.Background())

	if _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "a@b.c", Password: "bad"}); !errors.Is(err, wantErr) {
		t.Fatalf("expected error propagated untouched, got %v", err)
	}
	if svc.IsAuthenticated(context.Background()) || svc.User() != nil {
		t.Fatalf("state must be unchanged on failed login")
	}
}

func TestSessionService_LogoutIsIdempotent(t *testing.T) {
	store := &stubStore{}
	svc := newTestSession(store, &stubAuth{store: store, resp: adminResponse()})
	svc.Init(context.Background())
	if _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	svc.Logout(context.Background())
	svc.Logout(context.Background())

	if svc.IsAuthenticated(context.Background()) || svc.User() != nil {
		t.Fatalf("expected anonymous after logout")
	}
	if store.token != "" || store.user != nil {
		t.Fatalf("store must be empty after logout")
	}
}

func TestSessionService_ExternalTokenWipeObservedOnNextRead(t *testing.T) {
	store := &stubStore{}
	svc := newTestSession(store, &stubAuth{store: store, resp: adminResponse()})
	svc.Init(context.Background())
	if _, err := svc.Login(context.Background(), domain.LoginRequest{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Simulate the pipeline's 401 handler wiping the persisted store behind
	// the session's back. No logout call.
	_ = store.ClearSession(context.Background())

	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected unauthenticated after external token wipe")
	}
}

func TestSessionService_ExpiredTokenCountsAsAbsent(t *testing.T) {
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	store := &stubStore{token: expired, user: &domain.User{ID: 3}}
	svc := newTestSession(store, &stubAuth{store: store})
	svc.Init(context.Background())

	if svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected expired token to count as absent")
	}

	// Opaque tokens have no exp claim to inspect and stay usable.
	store.token = "opaque-token"
	if !svc.IsAuthenticated(context.Background()) {
		t.Fatalf("expected opaque token to be usable")
	}
}
