package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ai-autopilot/gateway/internal/api/middleware"
)

// Identity is the authenticated principal resolved by the Auth middleware.
type Identity struct {
	UserID string
	Email  string
}

// ctxIdentity extracts the identity injected by the Auth middleware. An
// empty user id means the middleware did not run on this route, which is a
// wiring bug surfaced as 401 rather than an anonymous request.
func ctxIdentity(c echo.Context) (Identity, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	email, _ := c.Get(middleware.CtxEmail).(string)
	return Identity{UserID: userID, Email: email}, nil
}
