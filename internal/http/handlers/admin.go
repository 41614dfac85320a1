package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jantavoice/backend/internal/http/middleware"
	"github.com/jantavoice/backend/internal/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and issues a session cookie. Wrong username and
// wrong password answer identically so the endpoint does not leak which
// accounts exist.
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 401 {object} map[string]any
// @Router /api/admin/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Username and password are required", nil)
		return
	}

	if req.Username != h.AdminUsername ||
		bcrypt.CompareHashAndPassword(h.AdminPasswordHash, []byte(req.Password)) != nil {
		writeError(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
		return
	}

	now := time.Now().UTC()
	sess := models.Session{
		ID:        uuid.NewString(),
		Username:  req.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(h.SessionTTL),
	}
	if err := h.Store.CreateSession(c.Request.Context(), sess); err != nil {
		h.Logger.Error().Err(err).Msg("session create failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Login failed, please try again", nil)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, sess.ID, int(h.SessionTTL.Seconds()), "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "username": sess.Username})
}

// Logout deletes the session server-side and clears the cookie. Safe to call
// without a live session.
// @Summary Admin logout
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/admin/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil && cookie != "" {
		if err := h.Store.DeleteSession(c.Request.Context(), cookie); err != nil {
			h.Logger.Warn().Err(err).Msg("session delete failed")
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.CookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListComplaints returns the admin dashboard listing, newest first, with
// optional status/department filters.
// @Summary List complaints
// @Tags admin
// @Produce json
// @Param status query string false "Filter by status"
// @Param department query string false "Filter by department"
// @Success 200 {object} map[string]any
// @Router /api/admin/complaints [get]
func (h *Handler) ListComplaints(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	status := strings.TrimSpace(c.Query("status"))
	department := strings.TrimSpace(c.Query("department"))
	if status != "" {
		parsed, ok := models.ParseComplaintStatus(status)
		if !ok {
			writeError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status filter", gin.H{"status": status})
			return
		}
		status = string(parsed)
	}

	complaints, err := h.Store.ListComplaints(c.Request.Context(), status, department, limit, offset)
	if err != nil {
		h.Logger.Error().Err(err).Msg("complaint list failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch complaints", nil)
		return
	}

	views := make([]gin.H, 0, len(complaints))
	for _, m := range complaints {
		v := complaintView(m)
		if m.Phone != nil {
			v["phone"] = m.Phone
		}
		views = append(views, v)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaints": views})
}

type statusUpdateRequest struct {
	ID     string `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// UpdateComplaintStatus sets a complaint's status. Setting the current status
// again succeeds without changing anything; concurrent updates resolve
// last-write-wins.
// @Summary Update complaint status
// @Tags admin
// @Accept json
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/admin/update-status [post]
func (h *Handler) UpdateComplaintStatus(c *gin.Context) {
	var req statusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Complaint id and status are required", nil)
		return
	}

	status, ok := models.ParseComplaintStatus(req.Status)
	if !ok {
		writeError(c, http.StatusBadRequest, "INVALID_STATUS", "Unknown status", gin.H{"status": req.Status})
		return
	}

	found, err := h.Store.UpdateComplaintStatus(c.Request.Context(), req.ID, status)
	if err != nil {
		h.Logger.Error().Err(err).Msg("status update failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to update status", nil)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "NOT_FOUND", "Complaint not found", nil)
		return
	}

	h.Logger.Info().
		Str("complaint_id", req.ID).
		Str("status", string(status)).
		Str("admin", c.GetString(middleware.ContextUsername)).
		Msg("complaint status updated")
	c.JSON(http.StatusOK, gin.H{"success": true, "id": req.ID, "status": status})
}
