package middleware // middleware provides shared request processing for handlers

import (
	"github.com/labstack/echo/v4"

	"github.com/dkerr/reelcart/internal/repository"
	"github.com/dkerr/reelcart/internal/session"
)

// Context keys set by the session middleware. Handlers read the
// authenticated identity through these, never from a global.
const (
	CtxUserID = "user_id"       // uint64 id of the authenticated user
	CtxRole   = "role"          // "admin" or "customer"
	CtxToken  = "session_token" // raw opaque token from the cookie
)

// ResolveSession returns middleware that resolves the session cookie into
// an authenticated identity. Resolution is best-effort: most endpoints of
// this API are public, so a missing or stale cookie never aborts the
// request. Handlers that require a login check the context themselves and
// answer 401 (check_session) or the generic error (cart listing) per the
// endpoint contract.
func ResolveSession(store session.Store, users *repository.UserRepo, cookieName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}
			uid, err := store.Resolve(c.Request().Context(), cookie.Value)
			if err != nil {
				// expired or forged token: proceed unauthenticated
				return next(c)
			}
			u, err := users.GetByID(c.Request().Context(), uid)
			if err != nil {
				// the bound user was deleted since login
				return next(c)
			}
			c.Set(CtxUserID, u.ID)
			c.Set(CtxRole, u.Type)
			c.Set(CtxToken, cookie.Value)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id from context. The second
// return value is false for anonymous requests.
func UserID(c echo.Context) (uint64, bool) {
	v, ok := c.Get(CtxUserID).(uint64)
	return v, ok
}

// Role extracts the authenticated user's role, empty for anonymous
// requests.
func Role(c echo.Context) string {
	if v, ok := c.Get(CtxRole).(string); ok {
		return v
	}
	return ""
}
