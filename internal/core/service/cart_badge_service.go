package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
	"github.com/byway/web-gateway/internal/metrics"
)

const defaultPulseTTL = time.Second

// CartBadgeService keeps the header's cart indicator eventually consistent
// with server state. Components that mutate the cart call NotifyCartChanged
// after their own request resolves; the badge then re-fetches the
// authoritative summary. It also re-fetches once on every auth transition so
// a count never survives a login or logout.
//
// Ordering is deliberately loose: notifications are not queued against
// in-flight mutations, so rapid mutations may each trigger a redundant
// refresh. The last refresh wins.
type CartBadgeService struct {
	cart     ports.CartAPI
	session  *SessionService
	logger   zerolog.Logger
	updates  *Notifier
	pulseTTL time.Duration

	mu         sync.Mutex
	count      int
	pulse      bool
	pulseTimer *time.Timer

	stop chan struct{}
	done chan struct{}
}

func NewCartBadgeService(cart ports.CartAPI, session *SessionService, logger zerolog.Logger) *CartBadgeService {
	return &CartBadgeService{
		cart:     cart,
		session:  session,
		logger:   logger,
		updates:  NewNotifier(),
		pulseTTL: defaultPulseTTL,
	}
}

// Start subscribes to cart and auth notifications for the service's
// lifetime. It performs one refresh up front: a session restored from the
// store before Start has no subscriber to broadcast to, and the badge must
// still reflect that session's cart.
func (b *CartBadgeService) Start(ctx context.Context) {
	b.stop = make(chan struct{})
	b.done = make(chan struct{})
	cartCh := b.updates.Subscribe()
	authCh := b.session.Changes().Subscribe()

	go func() {
		defer close(b.done)
		defer b.updates.Unsubscribe(cartCh)
		defer b.session.Changes().Unsubscribe(authCh)
		b.Refresh(ctx, false)
		for {
			select {
			case <-b.stop:
				return
			case <-ctx.Done():
				return
			case <-cartCh:
				b.Refresh(ctx, true)
			case <-authCh:
				b.Refresh(ctx, false)
			}
		}
	}()
}

// Stop ends the subscription loop and waits for it to drain.
func (b *CartBadgeService) Stop() {
	if b.stop == nil {
		return
	}
	close(b.stop)
	<-b.done
	b.stop = nil
}

// NotifyCartChanged is the fire-and-forget broadcast a component sends after
// a successful cart mutation.
func (b *CartBadgeService) NotifyCartChanged() {
	b.updates.Broadcast()
}

// Snapshot returns the current badge state for rendering.
func (b *CartBadgeService) Snapshot() domain.CartBadge {
	b.mu.Lock()
	defer b.mu.Unlock()
	return domain.CartBadge{Count: b.count, Pulse: b.pulse}
}

// Refresh re-reads the authoritative cart summary. pulse triggers the
// transient emphasis effect, which clears itself after pulseTTL.
func (b *CartBadgeService) Refresh(ctx context.Context, pulse bool) {
	trigger := "auth"
	if pulse {
		trigger = "mutation"
	}

	user := b.session.User()
	if user == nil || !b.session.IsAuthenticated(ctx) {
		metrics.CartBadgeRefreshesTotal.WithLabelValues(trigger, "ok").Inc()
		b.setCount(0, false)
		return
	}

	cart, err := b.cart.Get(ctx, user.ID)
	if err != nil {
		metrics.CartBadgeRefreshesTotal.WithLabelValues(trigger, "error").Inc()
		b.logger.Warn().Err(err).Msg("cart badge refresh failed")
		return
	}

	metrics.CartBadgeRefreshesTotal.WithLabelValues(trigger, "ok").Inc()
	b.setCount(cart.ItemsCount, pulse)
}

func (b *CartBadgeService) setCount(count int, pulse bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.count = count
	if !pulse {
		return
	}

	b.pulse = true
	if b.pulseTimer != nil {
		b.pulseTimer.Stop()
	}
	b.pulseTimer = time.AfterFunc(b.pulseTTL, func() {
		b.mu.Lock()
		b.pulse = false
		b.mu.Unlock()
	})
}
