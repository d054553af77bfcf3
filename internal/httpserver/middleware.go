package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/service"
)

const (
	// SessionCookie carries the session token between requests.
	SessionCookie = "session_token"

	sessionContextKey = "session"
)

type SessionMiddleware struct {
	Auth *service.AuthService
}

// RequireSession rejects requests without a live session before any data
// access, matching the original storefront's auth gate.
func (m *SessionMiddleware) RequireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			return unauthenticated(c)
		}

		session, err := m.Auth.CheckSession(c.Request().Context(), cookie.Value)
		if err != nil {
			return unauthenticated(c)
		}

		c.Set(sessionContextKey, session)
		return next(c)
	}
}

func unauthenticated(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Not authenticated. Please login again.",
	})
}

func sessionFrom(c echo.Context) (*models.Session, bool) {
	session, ok := c.Get(sessionContextKey).(*models.Session)
	return session, ok
}
