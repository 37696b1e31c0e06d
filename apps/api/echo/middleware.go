package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/mundoacuatico/backend/core/staff"
)

// staffMiddleware reloads the staff user of the token on every request and rejects inactive accounts.
// It must run after the JWT middleware.
func (s *Server) staffMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return err
		}
		usr, err := s.loadClaimsUser(ctx, claims)
		if err != nil {
			return err
		}
		if !usr.IsActive() {
			return errAccountDeactivated
		}
		ctx.Set(contextUserKey, usr)
		return next(ctx)
	}
}

// optionalStaffMiddleware attaches the staff user when a valid token was sent.
// Requests without one (or from inactive accounts) go on as public requests.
func (s *Server) optionalStaffMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return next(ctx)
		}
		usr, err := s.loadClaimsUser(ctx, claims)
		if err != nil {
			if err == errSessionInvalid {
				return next(ctx)
			}
			return err
		}
		if usr.IsActive() {
			ctx.Set(contextUserKey, usr)
		}
		return next(ctx)
	}
}

// roleMiddleware lets through staff users for which allowed is true. It must run after staffMiddleware.
func roleMiddleware(allowed func(staff.User) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := getContextUser(ctx)
			if !ok {
				return errUnauthorized
			}
			if !allowed(usr) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}
