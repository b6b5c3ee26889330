package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
)

type stubCartAPI struct {
	cart     *domain.Cart
	err      error
	getCalls int
}

func (c *stubCartAPI) Get(_ context.Context, userID int) (*domain.Cart, error) {
	c.getCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.cart, nil
}

func (c *stubCartAPI) AddItem(context.Context, int, int) error    { return nil }
func (c *stubCartAPI) RemoveItem(context.Context, int, int) error { return nil }
func (c *stubCartAPI) Clear(context.Context, int) error           { return nil }

func authenticatedSession(t *testing.T) (*SessionService, *stubStore) {
	t.Helper()
	store := &stubStore{token: "tok", user: &domain.User{ID: 42, Role: "Student"}}
	svc := newTestSession(store, &stubAuth{store: store})
	svc.Init(context.Background())
	return svc, store
}

func TestCartBadge_RefreshAfterMutation(t *testing.T) {
	session, _ := authenticatedSession(t)
	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 1, FinalTotal: 57.49}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	badge.Refresh(context.Background(), true)

	snap := badge.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count 1, got %d", snap.Count)
	}
	if !snap.Pulse {
		t.Fatalf("expected pulse after a mutation-triggered refresh")
	}
}

func TestCartBadge_PulseClearsItself(t *testing.T) {
	session, _ := authenticatedSession(t)
	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 2}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())
	badge.pulseTTL = 10 * time.Millisecond

	badge.Refresh(context.Background(), true)
	if !badge.Snapshot().Pulse {
		t.Fatalf("expected pulse set")
	}

	deadline := time.Now().Add(time.Second)
	for badge.Snapshot().Pulse {
		if time.Now().After(deadline) {
			t.Fatalf("pulse did not clear itself")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if got := badge.Snapshot().Count; got != 2 {
		t.Fatalf("count must survive the pulse clearing, got %d", got)
	}
}

func TestCartBadge_NotificationTriggersRefetch(t *testing.T) {
	session, _ := authenticatedSession(t)
	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 3}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	badge.Start(ctx)
	defer badge.Stop()

	badge.NotifyCartChanged()

	deadline := time.Now().Add(time.Second)
	for badge.Snapshot().Count != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("badge never reflected the mutation, count=%d", badge.Snapshot().Count)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCartBadge_RestoredSessionRefreshesOnStart(t *testing.T) {
	// The session is restored from the store before the badge subscribes, so
	// the restore broadcast has no listener. Start alone must still bring the
	// badge up to the restored session's cart.
	session, _ := authenticatedSession(t)
	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 3}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	badge.Start(ctx)
	defer badge.Stop()

	deadline := time.Now().Add(time.Second)
	for badge.Snapshot().Count != 3 {
		if time.Now().After(deadline) {
			t.Fatalf("badge never reflected the restored session's cart, count=%d", badge.Snapshot().Count)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if cart.getCalls == 0 {
		t.Fatalf("expected a refresh on start")
	}
}

func TestCartBadge_AuthTransitionRefetches(t *testing.T) {
	store := &stubStore{}
	session := newTestSession(store, &stubAuth{store: store, resp: adminResponse()})
	session.Init(context.Background())

	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 5}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	badge.Start(ctx)
	defer badge.Stop()

	if _, err := session.Login(ctx, domain.LoginRequest{Email: "ada@example.com", Password: "pw"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for badge.Snapshot().Count != 5 {
		if time.Now().After(deadline) {
			t.Fatalf("badge did not refresh on login")
		}
		time.Sleep(5 * time.Millisecond)
	}

	session.Logout(ctx)
	deadline = time.Now().Add(time.Second)
	for badge.Snapshot().Count != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("badge did not reset on logout")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestCartBadge_RefreshFailureKeepsLastCount(t *testing.T) {
	session, _ := authenticatedSession(t)
	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 4}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	badge.Refresh(context.Background(), true)
	if badge.Snapshot().Count != 4 {
		t.Fatalf("expected count 4")
	}

	cart.err = errors.New("backend down")
	badge.Refresh(context.Background(), true)
	if got := badge.Snapshot().Count; got != 4 {
		t.Fatalf("failed refresh must keep the last count, got %d", got)
	}
}

func TestCartBadge_AnonymousReadsZeroWithoutBackendCall(t *testing.T) {
	store := &stubStore{}
	session := newTestSession(store, &stubAuth{store: store})
	session.Init(context.Background())

	cart := &stubCartAPI{cart: &domain.Cart{ItemsCount: 9}}
	badge := NewCartBadgeService(cart, session, zerolog.Nop())

	badge.Refresh(context.Background(), false)
	if badge.Snapshot().Count != 0 {
		t.Fatalf("anonymous badge must read zero")
	}
	if cart.getCalls != 0 {
		t.Fatalf("anonymous refresh must not hit the backend, got %d calls", cart.getCalls)
	}
}
