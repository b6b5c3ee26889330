package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/ports"
	"github.com/byway/web-gateway/internal/core/service"
)

// OrderHandler serves order history and the my-courses screen.
type OrderHandler struct {
	orders  ports.OrderAPI
	session *service.SessionService
}

func NewOrderHandler(orders ports.OrderAPI, session *service.SessionService) *OrderHandler {
	return &OrderHandler{orders: orders, session: session}
}

// List serves the current user's order history.
//
// @Summary      My orders
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.Order
// @Router       /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	user := h.session.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	orders, err := h.orders.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get serves one order's confirmation view.
//
// @Summary      Order detail
// @Tags         orders
// @Produce      json
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// MyCourses flattens the user's orders into the list of purchased courses.
//
// @Summary      My purchased courses
// @Tags         orders
// @Produce      json
// @Success      200  {array}  domain.OrderItem
// @Router       /my-courses [get]
func (h *OrderHandler) MyCourses(c echo.Context) error {
	user := h.session.User()
	if user == nil {
		return domain.ErrNotAuthenticated
	}
	orders, err := h.orders.ListForUser(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}

	seen := make(map[int]struct{})
	courses := make([]domain.OrderItem, 0)
	for _, order := range orders {
		for _, item := range order.Items {
			if _, dup := seen[item.CourseID]; dup {
				continue
			}
			seen[item.CourseID] = struct{}{}
			courses = append(courses, item)
		}
	}
	return c.JSON(http.StatusOK, courses)
}
