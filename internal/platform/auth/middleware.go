package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicore/hms/internal/platform/rbac"
)

// ActorSource looks up the current account state for a user id. The lookup
// runs per request so that deactivation and permission overrides take effect
// without waiting for token expiry.
type ActorSource interface {
	ActorByID(ctx context.Context, id uuid.UUID) (*rbac.Actor, error)
}

// Middleware authenticates requests with a bearer token and stores the
// resolved actor in the request context. The role encoded in the token is
// authoritative for the session: if the stored role has changed since the
// token was issued, the request is rejected and the user must sign in again.
func Middleware(issuer *TokenIssuer, source ActorSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization format")
			}

			claims, err := issuer.Parse(parts[1])
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}

			userID, err := uuid.Parse(claims.Subject)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token subject")
			}

			actor, err := source.ActorByID(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unknown user")
			}
			if string(actor.Role) != claims.Role {
				return echo.NewHTTPError(http.StatusUnauthorized, "role changed, sign in again")
			}

			ctx := rbac.WithActor(c.Request().Context(), actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// DevMiddleware injects a synthetic admin actor on every request. Development
// only; never wire this in production.
func DevMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := &rbac.Actor{
				ID:       uuid.Nil,
				Username: "dev-admin",
				Role:     rbac.RoleAdmin,
				Active:   true,
			}
			ctx := rbac.WithActor(c.Request().Context(), actor)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}
