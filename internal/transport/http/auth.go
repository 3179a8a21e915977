package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/usecase"
	"go.uber.org/zap"
)

const sessionContextKey = "session"

type loginRequestBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// Login checks credentials and sets the session cookie.
// POST /api/auth/login
func (h *Handler) Login(c echo.Context) error {
	var body loginRequestBody
	if err := c.Bind(&body); err != nil {
		h.Logger.Error("login request could not be decoded", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	session, err := h.Auth.Login(c.Request().Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			return errorJSON(c, http.StatusUnauthorized, "Invalid username or password")
		}
		h.Logger.Error("login failed", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "Internal server error")
	}

	c.SetCookie(h.sessionCookie(session.Token.String(), int(time.Until(session.ExpiresAt).Seconds())))
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    userResponse{Username: session.Username, Name: session.Name},
	})
}

// Logout ends the session and clears the cookie.
// POST /api/auth/logout
func (h *Handler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.authCfg.CookieName); err == nil {
		if token, err := uuid.Parse(cookie.Value); err == nil {
			if err = h.Auth.Logout(c.Request().Context(), token); err != nil {
				h.Logger.Warn("failed to end session", zap.Error(err))
			}
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

// CurrentSession returns the logged in user.
// GET /api/auth/session
func (h *Handler) CurrentSession(c echo.Context) error {
	session := c.Get(sessionContextKey).(model.Session)
	return c.JSON(http.StatusOK, map[string]any{
		"loggedIn":  true,
		"user":      userResponse{Username: session.Username, Name: session.Name},
		"expiresAt": session.ExpiresAt,
	})
}

func (h *Handler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     h.authCfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.httpCfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
