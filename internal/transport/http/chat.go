package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

type chatRequestBody struct {
	Message string `json:"message"`
	Speaker string `json:"speaker"`
}

// Chat runs one dialogue turn.
// POST /api/chat
func (h *Handler) Chat(c echo.Context) error {
	var body chatRequestBody
	if err := c.Bind(&body); err != nil {
		h.Logger.Warn("chat request could not be decoded", zap.Error(err))
		ben, _ := model.LookupPersona(model.PersonaBen)
		return c.JSON(http.StatusOK, model.ChatResponse{Response: ben.Fallback})
	}

	resp := h.Dialogue.HandleTurn(
		c.Request().Context(), model.ChatRequest{
			Message: body.Message,
			Speaker: model.PersonaID(body.Speaker),
		},
	)
	return c.JSON(http.StatusOK, resp)
}
