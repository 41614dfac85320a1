package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/schemes"
)

type chatRequest struct {
	Message string           `json:"message"`
	History []ai.ChatMessage `json:"history"`
}

// Chat answers scheme questions. The assistant model answers first; when it
// is unreachable the built-in catalog takes over so the bot never goes dark.
// Upstream rate limits are passed through as 429 with Retry-After.
// @Summary Schemes chatbot
// @Tags chat
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 429 {object} map[string]any
// @Router /api/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "A message is required", nil)
		return
	}

	reply, err := h.Assistant.Ask(c.Request.Context(), req.Message, req.History)
	if err != nil {
		var rateErr ai.RateLimitError
		if errors.As(err, &rateErr) {
			if rateErr.RetryAfter > 0 {
				c.Header("Retry-After", rateErr.RetryAfter.String())
			}
			writeError(c, http.StatusTooManyRequests, "RATE_LIMITED", "The assistant is busy, please retry shortly", nil)
			return
		}
		h.Logger.Warn().Err(err).Msg("assistant unavailable, using scheme catalog")
		if scheme, ok := schemes.Lookup(req.Message); ok {
			c.JSON(http.StatusOK, gin.H{"reply": schemes.FormatReply(scheme), "source": "catalog"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": schemes.FallbackReply(), "source": "catalog"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
