package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/geocode"
	"github.com/jantavoice/backend/internal/models"
	"github.com/jantavoice/backend/internal/service"
)

type Handler struct {
	Store       *db.Store
	Transcriber ai.Transcriber
	Extractor   ai.FieldExtractor
	Assistant   ai.Assistant
	Geocoder    geocode.Geocoder
	Validator   *validator.Validate
	Logger      zerolog.Logger

	UploadDir         string
	AdminUsername     string
	AdminPasswordHash []byte
	SessionTTL        time.Duration
	CookieSecure      bool
}

func (h *Handler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		writeError(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "Database unavailable", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func writeError(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// insertComplaintWithRetry regenerates the id/token pair on the rare
// collision of the human-shareable six-digit id.
func (h *Handler) insertComplaintWithRetry(ctx context.Context, c models.Complaint) (models.Complaint, error) {
	for attempt := 0; ; attempt++ {
		err := h.Store.InsertComplaint(ctx, c)
		if err == nil {
			return c, nil
		}
		if err != db.ErrDuplicateID || attempt >= 5 {
			return models.Complaint{}, err
		}
		c.ID = service.NewComplaintID()
		c.Token = service.NewToken(12)
	}
}

func (h *Handler) insertPickupWithRetry(ctx context.Context, p models.PickupRequest) (models.PickupRequest, error) {
	for attempt := 0; ; attempt++ {
		err := h.Store.InsertPickup(ctx, p)
		if err == nil {
			return p, nil
		}
		if err != db.ErrDuplicateID || attempt >= 5 {
			return models.PickupRequest{}, err
		}
		p.ID = service.NewPickupID()
	}
}
