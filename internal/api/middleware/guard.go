// Package middleware holds the route guards. Both are pure functions of the
// session state: they keep no state of their own and re-read the derived
// flags on every request.
package middleware

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

// LoginPath is the login entry point unauthenticated requests are sent to.
const LoginPath = "/login"

// SessionState is the slice of the session context the guards read.
type SessionState interface {
	Loading() bool
	IsAuthenticated(ctx context.Context) bool
	IsAdmin(ctx context.Context) bool
}

// RequireAuth gates protected views. While the session is still initializing
// it answers with a neutral placeholder; once resolved, unauthenticated
// requests are redirected to the login entry point carrying the originally
// requested location so the caller can return there after login.
func RequireAuth(session SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.Loading() {
				return loadingPlaceholder(c)
			}
			if !session.IsAuthenticated(c.Request().Context()) {
				return redirectToLogin(c)
			}
			return next(c)
		}
	}
}

// RequireAdmin gates the admin console. An authenticated non-admin is
// unauthorized here and is sent back to the home view, never to the admin
// content.
func RequireAdmin(session SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if session.Loading() {
				return loadingPlaceholder(c)
			}
			ctx := c.Request().Context()
			if !session.IsAuthenticated(ctx) {
				return redirectToLogin(c)
			}
			if !session.IsAdmin(ctx) {
				return c.Redirect(http.StatusFound, "/")
			}
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	target := LoginPath + "?redirect=" + url.QueryEscape(c.Request().RequestURI)
	return c.Redirect(http.StatusFound, target)
}

func loadingPlaceholder(c echo.Context) error {
	c.Response().Header().Set("Retry-After", "1")
	return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "initializing"})
}
