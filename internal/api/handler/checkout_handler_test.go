package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/service"
)

type stubSessionStore struct {
	token string
	user  *domain.User
}

func (s *stubSessionStore) Token(context.Context) string { return s.token }

func (s *stubSessionStore) CurrentUser(context.Context) *domain.User { return s.user }
func (s *stubSessionStore) SetSession(_ context.Context, token string, user *domain.User) error {
	s.token, s.user = token, user
	return nil
}
func (s *stubSessionStore) ClearSession(context.Context) error {
	s.token, s.user = "", nil
	return nil
}

func (s *stubSessionStore) ClearInvalidData(context.Context) error { return nil }

type stubAuthAPI struct{}

func (stubAuthAPI) Login(context.Context, domain.LoginRequest) (*domain.AuthResponse, error) {
	return nil, errors.New("not implemented")
}
func (stubAuthAPI) Register(context.Context, domain.RegisterRequest) (*domain.AuthResponse, error) {
	return nil, errors.New("not implemented")
}

type stubCartAPI struct {
	cart *domain.Cart
	err  error
}

func (s *stubCartAPI) Get(context.Context, int) (*domain.Cart, error) { return s.cart, s.err }

func (s *stubCartAPI) AddItem(context.Context, int, int) error { return s.err }

func (s *stubCartAPI) RemoveItem(context.Context, int, int) error { return s.err }

func (s *stubCartAPI) Clear(context.Context, int) error { return s.err }

type stubOrderAPI struct {
	created *domain.CreateOrder
	order   *domain.Order
	err     error
}

func (s *stubOrderAPI) Create(_ context.Context, order domain.CreateOrder) (*domain.Order, error) {
	s.created = &order
	return s.order, s.err
}
func (s *stubOrderAPI) ListForUser(context.Context, int) ([]domain.Order, error) {
	return nil, s.err
}
func (s *stubOrderAPI) Get(context.Context, int) (*domain.Order, error) { return s.order, s.err }

// loggedInSession builds a session service restored from a persisted session.
func loggedInSession(t *testing.T, user *domain.User) *service.SessionService {
	t.Helper()
	store := &stubSessionStore{token: "opaque-token", user: user}
	session := service.NewSessionService(store, stubAuthAPI{}, zerolog.Nop())
	session.Init(context.Background())
	return session
}

func newBadge(session *service.SessionService) *service.CartBadgeService {
	return service.NewCartBadgeService(&stubCartAPI{cart: &domain.Cart{}}, session, zerolog.Nop())
}

func postJSON(e *echo.Echo, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCheckoutSubmit_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	session := loggedInSession(t, &domain.User{ID: 7, Email: "alice@example.com"})
	orders := &stubOrderAPI{order: &domain.Order{ID: 42, FinalAmount: 59.98, Status: "Completed"}}
	h := NewCheckoutHandler(&stubCartAPI{}, orders, session, newBadge(session))

	c, rec := postJSON(e, "/checkout", `{"paymentMethod":"card","notes":"gift"}`)
	if err := h.Submit(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	if orders.created == nil {
		t.Fatal("order was never submitted")
	}
	if orders.created.UserID != 7 || orders.created.PaymentMethod != "card" || orders.created.Notes != "gift" {
		t.Fatalf("unexpected order payload: %+v", orders.created)
	}
	if orders.created.IdempotencyKey == "" {
		t.Fatal("expected a fresh idempotency key on the submission")
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["orderId"] != float64(42) || resp["status"] != "Completed" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestCheckoutSubmit_FreshKeyPerSubmission(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	session := loggedInSession(t, &domain.User{ID: 7})
	orders := &stubOrderAPI{order: &domain.Order{ID: 1}}
	h := NewCheckoutHandler(&stubCartAPI{}, orders, session, newBadge(session))

	c1, _ := postJSON(e, "/checkout", `{"paymentMethod":"card"}`)
	if err := h.Submit(c1); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	first := orders.created.IdempotencyKey

	c2, _ := postJSON(e, "/checkout", `{"paymentMethod":"card"}`)
	if err := h.Submit(c2); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if orders.created.IdempotencyKey == first {
		t.Fatal("expected a different idempotency key per submission")
	}
}

func TestCheckoutSubmit_RejectsUnknownPaymentMethod(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	session := loggedInSession(t, &domain.User{ID: 7})
	orders := &stubOrderAPI{}
	h := NewCheckoutHandler(&stubCartAPI{}, orders, session, newBadge(session))

	c, _ := postJSON(e, "/checkout", `{"paymentMethod":"cash"}`)
	err := h.Submit(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if orders.created != nil {
		t.Fatal("invalid payment method must not reach the backend")
	}
}

func TestCheckoutSubmit_AnonymousRejected(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()

	store := &stubSessionStore{}
	session := service.NewSessionService(store, stubAuthAPI{}, zerolog.Nop())
	session.Init(context.Background())
	orders := &stubOrderAPI{}
	h := NewCheckoutHandler(&stubCartAPI{}, orders, session, newBadge(session))

	c, _ := postJSON(e, "/checkout", `{"paymentMethod":"card"}`)
	if err := h.Submit(c); !errors.Is(err, domain.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
	if orders.created != nil {
		t.Fatal("anonymous submission must not reach the backend")
	}
}

func TestCheckoutSummary_ServesCartTotals(t *testing.T) {
	e := echo.New()

	session := loggedInSession(t, &domain.User{ID: 7})
	cart := &stubCartAPI{cart: &domain.Cart{TotalPrice: 39.99, ItemsCount: 2}}
	h := NewCheckoutHandler(cart, &stubOrderAPI{}, session, newBadge(session))

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()
	if err := h.Summary(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp checkoutSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Cart == nil || resp.Cart.TotalPrice != 39.99 || resp.Cart.ItemsCount != 2 {
		t.Fatalf("unexpected cart: %+v", resp.Cart)
	}
	if len(resp.PaymentMethods) == 0 {
		t.Fatal("expected the accepted payment methods in the summary")
	}
}
