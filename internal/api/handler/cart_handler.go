package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
	"github.com/byway/web-gateway/internal/core/service"
)

// CartHandler serves the cart screen. Every successful mutation broadcasts
// the cart-changed notification after its own request has resolved, so the
// header badge re-fetches the authoritative count.
type CartHandler struct {
	cart    ports.CartAPI
	session *service.SessionService
	badge   *service.CartBadgeService
}

func NewCartHandler(cart ports.CartAPI, session *service.SessionService, badge *service.CartBadgeService) *CartHandler {
	return &CartHandler{cart: cart, session: session, badge: badge}
}

func (h *CartHandler) userID() (int, error) {
	user := h.session.User()
	if user == nil {
		return 0, domain.ErrNotAuthenticated
	}
	return user.ID, nil
}

// Get serves the cart view with the server's authoritative totals.
//
// @Summary      View the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  domain.Cart
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	userID, err := h.userID()
	if err != nil {
		return err
	}
	cart, err := h.cart.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cart)
}

type addToCartRequest struct {
	CourseID int `json:"courseId" validate:"required,gt=0"`
}

// AddItem puts a course in the cart.
//
// @Summary      Add a course to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        body  body      addToCartRequest  true  "Course to add"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	userID, err := h.userID()
	if err != nil {
		return err
	}

	var req addToCartRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.cart.AddItem(c.Request().Context(), userID, req.CourseID); err != nil {
		return err
	}
	h.badge.NotifyCartChanged()
	return c.JSON(http.StatusOK, map[string]string{"message": "course added to cart"})
}

// RemoveItem takes a course out of the cart.
//
// @Summary      Remove a course from the cart
// @Tags         cart
// @Produce      json
// @Param        courseId  path      int  true  "Course id"
// @Success      200       {object}  map[string]string
// @Router       /cart/items/{courseId} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	userID, err := h.userID()
	if err != nil {
		return err
	}
	courseID, err := strconv.Atoi(c.Param("courseId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid course id")
	}

	if err := h.cart.RemoveItem(c.Request().Context(), userID, courseID); err != nil {
		return err
	}
	h.badge.NotifyCartChanged()
	return c.JSON(http.StatusOK, map[string]string{"message": "course removed from cart"})
}

// Clear empties the cart. Clearing an already-empty cart succeeds.
//
// @Summary      Clear the cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	userID, err := h.userID()
	if err != nil {
		return err
	}

	if err := h.cart.Clear(c.Request().Context(), userID); err != nil {
		return err
	}
	h.badge.NotifyCartChanged()
	return c.JSON(http.StatusOK, map[string]string{"message": "cart cleared"})
}
