package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thefortaiagency/bendavis/internal/model"
	"github.com/thefortaiagency/bendavis/internal/usecase"
	"go.uber.org/zap"
)

// GenerateAvatar returns a freshly generated avatar URL, or the stock photo.
// POST /api/generate-avatar
func (h *Handler) GenerateAvatar(c echo.Context) error {
	imageURL, err := h.Images.GenerateURL(c.Request().Context(), model.ImageAssetAvatar)
	if err != nil {
		h.Logger.Warn("avatar generation failed", zap.Error(err))
		asset, _ := usecase.LookupImageAsset(model.ImageAssetAvatar)
		imageURL = asset.FallbackPath
	}
	return c.JSON(http.StatusOK, map[string]string{"imageUrl": imageURL})
}

// CreateCartoonAvatar generates and stores the cartoon avatar.
// POST /api/create-cartoon-avatar
func (h *Handler) CreateCartoonAvatar(c echo.Context) error {
	return h.generateStored(c, model.ImageAssetCartoonAvatar)
}

// GenerateHero generates and stores the home page hero image.
// POST /api/generate-hero
func (h *Handler) GenerateHero(c echo.Context) error {
	return h.generateStored(c, model.ImageAssetHero)
}

// GenerateDashboardBG generates and stores the dashboard background.
// POST /api/generate-dashboard-bg
func (h *Handler) GenerateDashboardBG(c echo.Context) error {
	path, err := h.Images.GenerateAndSave(c.Request().Context(), model.ImageAssetDashboardBG)
	if err != nil {
		h.Logger.Error("error generating dashboard background", zap.Error(err))
		return errorJSON(c, http.StatusInternalServerError, "Failed to generate dashboard background")
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Cars-style dashboard background created!",
		"path":    path,
	})
}

func (h *Handler) generateStored(c echo.Context, name model.ImageAssetName) error {
	path, err := h.Images.GenerateAndSave(c.Request().Context(), name)
	if err != nil {
		h.Logger.Warn("image generation failed", zap.String("asset", string(name)), zap.Error(err))
		message := "Generation failed"
		if errors.Is(err, usecase.ErrImageNotGenerated) {
			message = "Failed to generate image"
		}
		return c.JSON(http.StatusOK, map[string]any{"success": false, "error": message})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "imageUrl": path})
}
