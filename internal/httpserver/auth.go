package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/villagecraft/storefront/internal/logging"
	"github.com/villagecraft/storefront/internal/models"
	"github.com/villagecraft/storefront/internal/service"
)

type AuthHTTP struct {
	Svc *service.AuthService
}

func createCookie(name, value, path string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func deleteCookie(name, path string) *http.Cookie {
	return createCookie(name, "", path, time.Now().Add(-time.Hour))
}

func userPayload(u models.SessionUser) echo.Map {
	return echo.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("register_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, token, err := h.Svc.Register(ctx, service.RegisterRequest{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		// Validation and duplicate-email failures respond 200 with a
		// message, the contract the original frontend expects.
		if errors.Is(err, service.ErrValidation) || errors.Is(err, service.ErrUserExists) {
			l.Warn("register_rejected", "error", err)
			return c.JSON(http.StatusOK, echo.Map{
				"success": false,
				"message": rejectionMessage(err),
			})
		}
		l.Error("register_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Server error during registration",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Registration successful",
		"token":   token,
		"user": userPayload(models.SessionUser{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Role:  user.Role,
		}),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		l.Warn("login_error", "status", 400, "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	session, token, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrValidation) {
			l.Warn("login_rejected")
			return c.JSON(http.StatusOK, echo.Map{
				"success": false,
				"message": "Invalid email or password",
			})
		}
		l.Error("login_error", "status", 500, "error", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"success": false,
			"message": "Server error during login",
		})
	}

	c.SetCookie(createCookie(SessionCookie, session.Token, "/", session.ExpiresAt))
	l.Info("login_successful", "user_id", session.User.ID)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    userPayload(session.User),
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.logout")

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			l.Error("logout_error", "status", 500, "error", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"success": false,
				"message": "Logout failed",
			})
		}
	}

	c.SetCookie(deleteCookie(SessionCookie, "/"))
	l.Info("logout_successful")
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Logout successful",
	})
}

// AutoLogout destroys the session when the client reports the browser
// closed; failures are not surfaced, mirroring the original endpoint.
func (h *AuthHTTP) AutoLogout(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.Svc.Logout(ctx, cookie.Value); err != nil {
			logging.FromContext(ctx).Warn("auto_logout_error", "error", err)
		}
	}

	c.SetCookie(deleteCookie(SessionCookie, "/"))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Auto-logged out due to browser closure",
	})
}

func (h *AuthHTTP) CheckSession(c echo.Context) error {
	ctx := c.Request().Context()

	cookie, err := c.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "No active session",
		})
	}

	session, err := h.Svc.CheckSession(ctx, cookie.Value)
	if err != nil {
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"message": "No active session",
		})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"user":    userPayload(session.User),
	})
}

func rejectionMessage(err error) string {
	if errors.Is(err, service.ErrUserExists) {
		return "User already exists with this email"
	}
	// validation errors read "reason: validation"; the client only
	// needs the reason
	msg := err.Error()
	if cut, ok := strings.CutSuffix(msg, ": "+service.ErrValidation.Error()); ok {
		msg = cut
	}
	return msg
}
