// Package handler provides the site's HTTP API.
package handler

import (
	"context"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

const Version = "0.1.0"

type Dialogue interface {
	HandleTurn(ctx context.Context, req model.ChatRequest) model.ChatResponse
}

type Auth interface {
	Login(ctx context.Context, username, password string) (model.Session, error)
	Logout(ctx context.Context, token uuid.UUID) error
	Authenticate(ctx context.Context, token uuid.UUID) (model.Session, error)
	GetUser(ctx context.Context, username string) (model.User, error)
}

type Dashboard interface {
	Metrics(ctx context.Context) model.DashboardMetrics
}

type Images interface {
	GenerateURL(ctx context.Context, name model.ImageAssetName) (string, error)
	GenerateAndSave(ctx context.Context, name model.ImageAssetName) (string, error)
}

type Deps struct {
	Dialogue  Dialogue
	Auth      Auth
	Dashboard Dashboard
	Images    Images
	Logger    *zap.Logger
}

// Handler handles HTTP requests.
type Handler struct {
	Deps
	httpCfg config.HTTP
	authCfg config.Auth
}

func NewHandler(deps Deps, httpCfg config.HTTP, authCfg config.Auth) *Handler {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &Handler{
		Deps:    deps,
		httpCfg: httpCfg,
		authCfg: authCfg,
	}
}

// RegisterRoutes registers all routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)

	e.POST("/api/chat", h.Chat)

	e.POST("/api/auth/login", h.Login)
	e.POST("/api/auth/logout", h.Logout)
	e.GET("/api/auth/session", h.CurrentSession, h.requireSession)

	e.GET("/api/dashboard/metrics", h.DashboardMetrics, h.requireSession)

	admin := []echo.MiddlewareFunc{h.requireSession, h.requireRole(model.UserRoleAdmin)}
	e.POST("/api/generate-avatar", h.GenerateAvatar, admin...)
	e.POST("/api/create-cartoon-avatar", h.CreateCartoonAvatar, admin...)
	e.POST("/api/generate-hero", h.GenerateHero, admin...)
	e.POST("/api/generate-dashboard-bg", h.GenerateDashboardBG, admin...)

	if h.httpCfg.StaticDir != "" {
		dashboard := e.Group("/dashboard", h.requirePageSession)
		dashboard.GET("", h.DashboardPage)
		dashboard.Static("/", filepath.Join(h.httpCfg.StaticDir, "dashboard"))

		e.GET("/login", h.LoginPage)
		e.Static("/", h.httpCfg.StaticDir)
	}
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": Version,
	})
}

func (h *Handler) DashboardPage(c echo.Context) error {
	return c.File(filepath.Join(h.httpCfg.StaticDir, "dashboard", "index.html"))
}

func (h *Handler) LoginPage(c echo.Context) error {
	return c.File(filepath.Join(h.httpCfg.StaticDir, "login.html"))
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
