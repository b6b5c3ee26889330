package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
	"github.com/byway/web-gateway/internal/core/service"
)

// CheckoutHandler serves the checkout screen: the order summary and the
// payment submission.
type CheckoutHandler struct {
	cart    ports.CartAPI
	orders  ports.OrderAPI
	session *service.SessionService
	badge   *service.CartBadgeService
}

func NewCheckoutHandler(cart ports.CartAPI, orders ports.OrderAPI, session *service.SessionService, badge *service.CartBadgeService) *CheckoutHandler {
	return &CheckoutHandler{cart: cart, orders: orders, session: session, badge: badge}
}

// paymentMethods are the options the checkout form offers; Submit rejects
// anything outside this set before the backend is involved.
var paymentMethods = []string{"card", "paypal", "bank_transfer"}

type checkoutSummaryResponse struct {
	Cart           *domain.Cart `json:"cart"`
	PaymentMethods []string     `json:"paymentMethods"`
}

// Summary serves the checkout screen: the cart with server-computed totals
// plus the accepted payment methods.
//
// @Summary      Checkout summary
// @Tags         checkout
// @Produce      json
// @Success      200  {object}  checkoutSummaryResponse
// @Router       /checkout [get]
func (h *CheckoutHandler) Summary(c echo.Context) error {
	user := h.session.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	cart, err := h.cart.Get(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, checkoutSummaryResponse{
		Cart:           cart,
		PaymentMethods: paymentMethods,
	})
}

type checkoutRequest struct {
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=card paypal bank_transfer"`
	Notes         string `json:"notes"`
}

type checkoutResponse struct {
	OrderID     int     `json:"orderId"`
	FinalAmount float64 `json:"finalAmount"`
	Status      string  `json:"status"`
}

// Submit places the order. Each submission carries a fresh idempotency key so
// the backend can deduplicate an accidental resubmit of the same form. On
// success it broadcasts a cart notification: the backend has emptied the cart
// and the badge must catch up.
//
// @Summary      Place the order
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body      checkoutRequest  true  "Payment method and notes"
// @Success      201   {object}  checkoutResponse
// @Failure      400   {object}  map[string]string
// @Router       /checkout [post]
func (h *CheckoutHandler) Submit(c echo.Context) error {
	user := h.session.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}

	var req checkoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.Create(c.Request().Context(), domain.CreateOrder{
		UserID:         user.ID,
		PaymentMethod:  req.PaymentMethod,
		Notes:          req.Notes,
		IdempotencyKey: uuid.NewString(),
	})
	if err != nil {
		return err
	}

	h.badge.NotifyCartChanged()
	return c.JSON(http.StatusCreated, checkoutResponse{
		OrderID:     order.ID,
		FinalAmount: order.FinalAmount,
		Status:      order.Status,
	})
}
