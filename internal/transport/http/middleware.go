package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/usecase"
	"go.uber.org/zap"
)

var errNoSession = errors.New("no session cookie")

func (h *Handler) sessionFromRequest(c echo.Context) (model.Session, error) {
	cookie, err := c.Cookie(h.authCfg.CookieName)
	if err != nil || cookie.Value == "" {
		return model.Session{}, errNoSession
	}
	token, err := uuid.Parse(cookie.Value)
	if err != nil {
		return model.Session{}, errNoSession
	}
	return h.Auth.Authenticate(c.Request().Context(), token)
}

func (h *Handler) logSessionError(err error) {
	if errors.Is(err, errNoSession) || errors.Is(err, model.ErrSessionDoesNotExist) ||
		errors.Is(err, usecase.ErrSessionExpired) {
		return
	}
	h.Logger.Error("failed to authenticate session", zap.Error(err))
}

// requireSession answers 401 for API routes without a valid session.
func (h *Handler) requireSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := h.sessionFromRequest(c)
		if err != nil {
			h.logSessionError(err)
			return errorJSON(c, http.StatusUnauthorized, "Unauthorized")
		}
		c.Set(sessionContextKey, session)
		return next(c)
	}
}

// requirePageSession redirects page requests without a valid session to /login.
func (h *Handler) requirePageSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		session, err := h.sessionFromRequest(c)
		if err != nil {
			h.logSessionError(err)
			return c.Redirect(http.StatusFound, "/login")
		}
		c.Set(sessionContextKey, session)
		return next(c)
	}
}

// requireRole must run after requireSession.
func (h *Handler) requireRole(role model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := c.Get(sessionContextKey).(model.Session)
			user, err := h.Auth.GetUser(c.Request().Context(), session.Username)
			if err != nil {
				if !errors.Is(err, model.ErrUserDoesNotExist) {
					h.Logger.Error("failed to load session user", zap.Error(err))
				}
				return errorJSON(c, http.StatusForbidden, "Forbidden")
			}
			if !user.HasRole(role) {
				return errorJSON(c, http.StatusForbidden, "Forbidden")
			}
			return next(c)
		}
	}
}
