package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/geocode"
)

// Geocode resolves a free-text location to coordinates so the complaint form
// can pin the map before submitting.
// @Summary Forward-geocode a location
// @Tags geocode
// @Produce json
// @Param q query string true "Location text"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/geocode [get]
func (h *Handler) Geocode(c *gin.Context) {
	query := geocode.BuildQuery(c.Query("q"), c.Query("city"), c.Query("state"))
	if strings.TrimSpace(query) == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "A location query is required", nil)
		return
	}

	result, err := h.Geocoder.Geocode(c.Request.Context(), query)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "No match for that location", gin.H{"query": query})
			return
		}
		h.Logger.Warn().Err(err).Str("query", query).Msg("geocode failed")
		writeError(c, http.StatusBadGateway, "GEOCODE_FAILED", "Geocoding service unavailable", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "result": result})
}
