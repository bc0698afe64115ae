package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ai-autopilot/gateway/internal/api/metrics"
	"github.com/ai-autopilot/gateway/internal/auth"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// Auth is the bearer-token gate on every protected route. It verifies
// against the same TokenService (and therefore the same signing context)
// that issued the token. Expired and invalid tokens get the same external
// message; the distinction goes to the log and the failure counter only.
func Auth(tokens *auth.TokenService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailuresTotal.WithLabelValues("missing_credential").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				reason := "invalid"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired"
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				log.Debug().
					Str("reason", reason).
					Str("path", c.Path()).
					Msg("token rejected")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			c.Set(CtxUserID, claims.Subject)
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}
