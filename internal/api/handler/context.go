package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/vwsr/fleet-api/internal/api/middleware"
)

// ctxAccountID extracts the account id injected by the Auth middleware. Its
// presence proves the middleware ran; a protected route reached without it is
// a wiring bug, answered with 401 rather than a panic.
func ctxAccountID(c echo.Context) (int64, error) {
	id, ok := c.Get(middleware.ContextAccountID).(int64)
	if !ok || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}
