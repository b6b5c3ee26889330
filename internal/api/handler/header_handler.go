package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/core/service"
)

// HeaderHandler serves the navigation header's state in one read: the cart
// badge snapshot plus the current auth state. The badge is answered from the
// in-process snapshot, never from a backend round trip.
type HeaderHandler struct {
	session *service.SessionService
	badge   *service.CartBadgeService
}

func NewHeaderHandler(session *service.SessionService, badge *service.CartBadgeService) *HeaderHandler {
	return &HeaderHandler{session: session, badge: badge}
}

type headerResponse struct {
	Loading       bool             `json:"loading"`
	Authenticated bool             `json:"authenticated"`
	Admin         bool             `json:"admin"`
	User          *domain.User     `json:"user,omitempty"`
	Cart          domain.CartBadge `json:"cart"`
}

// State reports the header snapshot.
//
// @Summary      Header state
// @Tags         header
// @Produce      json
// @Success      200  {object}  headerResponse
// @Router       /header [get]
func (h *HeaderHandler) State(c echo.Context) error {
	resp := headerResponse{
		Loading: h.session.Loading(),
		Cart:    h.badge.Snapshot(),
	}
	if !resp.Loading && h.session.IsAuthenticated(c.Request().Context()) {
		resp.Authenticated = true
		resp.Admin = h.session.IsAdmin(c.Request().Context())
		resp.User = h.session.User()
	}
	return c.JSON(http.StatusOK, resp)
}
