package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/byway/web-gateway/internal/api/middleware"
	"github.com/byway/web-gateway/internal/core/domain"
	"github.com/byway/web-gateway/internal/infrastructure/backend"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Redirects browser page requests to the login screen when the session
//     is missing or was invalidated remotely; API requests get a 401 instead.
//   - Maps known domain errors to their appropriate HTTP status codes and
//     passes backend API errors through with their original status.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isAuthError(err) && wantsHTML(c) {
			_ = c.Redirect(http.StatusFound, middleware.LoginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrNotAuthenticated) || errors.Is(err, domain.ErrSessionExpired)
}

// wantsHTML distinguishes a browser navigation from a programmatic call so
// auth failures can redirect the former and 401 the latter.
func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return c.Request().Method == http.MethodGet && len(accept) >= 9 && accept[:9] == "text/html"
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, "session expired, please log in again"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"
	case errors.Is(err, domain.ErrCoursePurchased):
		return http.StatusConflict, "course has been purchased and cannot be modified"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return http.StatusBadGateway, "service temporarily unavailable"
	}

	// Backend refusals keep their original status and message.
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status, apiErr.Message
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
