package rbac

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireModule returns middleware that rejects the request unless the
// authenticated actor may access the given module. Denials are plain 403s;
// the check itself never fails.
func RequireModule(module Capability) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFromContext(c.Request().Context())
			if !CanAccessModule(actor, module) {
				return echo.NewHTTPError(http.StatusForbidden,
					"access to "+string(module)+" denied")
			}
			return next(c)
		}
	}
}

// RequireRole returns middleware that checks if the actor holds at least one
// of the given roles. Deactivated accounts are always denied.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := ActorFromContext(c.Request().Context())
			if actor == nil || !actor.Active {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			if !HasAnyRole(actor, roles...) {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}
