package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/models"
	"github.com/jantavoice/backend/internal/service"
)

// CreatePickup schedules a recyclable-material collection.
// @Summary Schedule a pickup
// @Tags pickups
// @Accept json
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/pickup [post]
func (h *Handler) CreatePickup(c *gin.Context) {
	var in service.PickupInput
	if err := c.ShouldBindJSON(&in); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
		return
	}
	errs := service.ValidatePickup(in)
	if in.Email != "" {
		if err := h.Validator.Var(in.Email, "email"); err != nil {
			if errs == nil {
				errs = map[string]string{}
			}
			errs["email"] = "email must be a valid address"
		}
	}
	if errs != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing or invalid fields", errs)
		return
	}

	now := time.Now().UTC()
	pickup := models.PickupRequest{
		ID:                  service.NewPickupID(),
		Name:                in.Name,
		Phone:               in.Phone,
		Email:               in.Email,
		Address:             in.Address,
		Latitude:            in.Latitude,
		Longitude:           in.Longitude,
		Materials:           in.Materials,
		Quantity:            service.NormalizeQuantity(in.Quantity),
		PreferredDate:       in.PreferredDate,
		PreferredTime:       in.PreferredTime,
		SpecialInstructions: in.SpecialInstructions,
		Status:              models.PickupPending,
		Notes:               []models.PickupNote{},
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	saved, err := h.insertPickupWithRetry(c.Request.Context(), pickup)
	if err != nil {
		h.Logger.Error().Err(err).Msg("pickup insert failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Scheduling failed, please try again", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"pickupId": saved.ID,
		"data":     saved,
	})
}

// ListPickups is the admin queue view with status/date filters and
// page-based pagination.
// @Summary List pickup requests
// @Tags pickups
// @Produce json
// @Param status query string false "Status filter, or All"
// @Param dateFilter query string false "Today or This Week"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} map[string]any
// @Router /api/admin/pickups [get]
func (h *Handler) ListPickups(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	filter := db.PickupFilter{
		Status:     strings.TrimSpace(c.Query("status")),
		DateFilter: strings.TrimSpace(c.Query("dateFilter")),
		Page:       page,
		Limit:      limit,
	}
	if filter.Status != "" && filter.Status != "All" {
		parsed, ok := models.ParsePickupStatus(filter.Status)
		if !ok {
			writeError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status filter", gin.H{"status": filter.Status})
			return
		}
		filter.Status = string(parsed)
	}

	items, total, err := h.Store.ListPickups(c.Request.Context(), filter)
	if err != nil {
		h.Logger.Error().Err(err).Msg("pickup list failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch pickups", nil)
		return
	}
	if items == nil {
		items = []models.PickupRequest{}
	}

	pages := 0
	if filter.Limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(filter.Limit)))
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    items,
		"pagination": gin.H{
			"page":  filter.Page,
			"limit": filter.Limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetPickup returns one request with its full note history.
// @Summary Get a pickup request
// @Tags pickups
// @Produce json
// @Param id path string true "Pickup ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/pickups/{id} [get]
func (h *Handler) GetPickup(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	pickup, err := h.Store.GetPickup(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Pickup request not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch pickup request", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pickup})
}

type pickupStatusRequest struct {
	Status         string  `json:"status" binding:"required"`
	Notes          string  `json:"notes"`
	AssignedDriver *string `json:"assignedDriver"`
	PickupDate     *string `json:"pickupDate"`
	PickupTime     *string `json:"pickupTime"`
}

// UpdatePickupStatus moves a request through the pickup workflow. Driver and
// schedule fields are written only on the Confirmed transition; any note is
// appended to the history with the new status.
// @Summary Update pickup status
// @Tags pickups
// @Accept json
// @Produce json
// @Param id path string true "Pickup ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/pickups/{id}/status [put]
func (h *Handler) UpdatePickupStatus(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	var req pickupStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Status is required", nil)
		return
	}

	status, ok := models.ParsePickupStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status", gin.H{"status": req.Status})
		return
	}

	update := db.PickupStatusUpdate{
		Status:         status,
		Note:           strings.TrimSpace(req.Notes),
		AssignedDriver: req.AssignedDriver,
		PickupDate:     req.PickupDate,
		PickupTime:     req.PickupTime,
	}
	found, err := h.Store.UpdatePickupStatus(c.Request.Context(), id, update)
	if err != nil {
		h.Logger.Error().Err(err).Msg("pickup status update failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update pickup", nil)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Pickup request not found", nil)
		return
	}

	pickup, err := h.Store.GetPickup(c.Request.Context(), id)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch pickup request", nil)
		return
	}

	closed := models.TerminalPickup(pickup.Status)
	if closed {
		h.Logger.Info().
			Str("pickup_id", id).
			Str("status", string(pickup.Status)).
			Msg("pickup request closed")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": pickup, "closed": closed})
}

// PickupStats serves the dashboard aggregates, recomputed per request.
// @Summary Pickup statistics
// @Tags pickups
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/pickups/stats [get]
func (h *Handler) PickupStats(c *gin.Context) {
	stats, err := h.Store.PickupStatistics(c.Request.Context())
	if err != nil {
		h.Logger.Error().Err(err).Msg("pickup stats failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to compute statistics", nil)
		return
	}
	if stats.MaterialDistribution == nil {
		stats.MaterialDistribution = []models.MaterialCount{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}

// SearchPickups matches a term against name, phone, address and id.
// @Summary Search pickup requests
// @Tags pickups
// @Produce json
// @Param q query string true "Search term"
// @Success 200 {object} map[string]any
// @Router /api/admin/pickups/search [get]
func (h *Handler) SearchPickups(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Search term is required", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	items, err := h.Store.SearchPickups(c.Request.Context(), term, limit)
	if err != nil {
		h.Logger.Error().Err(err).Msg("pickup search failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Search failed", nil)
		return
	}
	if items == nil {
		items = []models.PickupRequest{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}

// PickupOptions exposes the fixed catalogs the scheduling form renders.
// @Summary Pickup form options
// @Tags pickups
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/pickup/options [get]
func (h *Handler) PickupOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"materials":  service.MaterialCatalog,
		"timeSlots":  service.TimeSlots,
		"quantities": service.Quantities,
	})
}
