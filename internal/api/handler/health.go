package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/byway/web-gateway/internal/infrastructure/backend"
)

// HealthHandler exposes the liveness and readiness probes. Liveness only
// proves the process answers; readiness additionally checks the session
// store and the backend API.
type HealthHandler struct {
	redis  *redis.Client
	client *backend.Client
}

func NewHealthHandler(rdb *redis.Client, client *backend.Client) *HealthHandler {
	return &HealthHandler{redis: rdb, client: client}
}

// Live answers as long as the process is up.
//
// @Summary      Liveness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /healthz [get]
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// Ready answers ok only when both the session store and the backend are
// reachable; otherwise it reports which dependency is down with a 503.
//
// @Summary      Readiness probe
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /readyz [get]
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.redis.Ping(ctx).Err(); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unavailable",
			"redis":  err.Error(),
		})
	}
	if err := h.client.Health(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "unavailable",
			"backend": err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
