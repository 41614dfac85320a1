package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/db"
	"github.com/jantavoice/backend/internal/geocode"
	"github.com/jantavoice/backend/internal/models"
	"github.com/jantavoice/backend/internal/service"
)

type complaintRequest struct {
	Name        string   `json:"name"`
	Location    string   `json:"location"`
	Department  string   `json:"department"`
	Urgency     string   `json:"urgency"`
	Description string   `json:"description"`
	Phone       *string  `json:"phone"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

// CreateComplaint accepts either a JSON body or multipart form-data with an
// optional photo. The server assigns id, token, status and timestamp.
// @Summary Submit a complaint
// @Tags complaints
// @Accept json,multipart/form-data
// @Produce json
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/complaint [post]
func (h *Handler) CreateComplaint(c *gin.Context) {
	h.createComplaint(c, false)
}

// WomenChildComplaint is the dedicated intake with fixed department/category
// defaults and anonymous-friendly validation.
// @Summary Submit a women & child complaint
// @Tags complaints
// @Produce json
// @Success 201 {object} map[string]any
// @Router /api/complaint/women-child [post]
func (h *Handler) WomenChildComplaint(c *gin.Context) {
	h.createComplaint(c, true)
}

func (h *Handler) createComplaint(c *gin.Context, womenChild bool) {
	var in service.ComplaintInput
	var photoFile bool

	if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		in = service.ComplaintInput{
			Name:        c.PostForm("name"),
			Location:    c.PostForm("location"),
			Department:  c.PostForm("department"),
			Urgency:     c.PostForm("urgency"),
			Description: c.PostForm("description"),
			Latitude:    parseFloatPtr(c.PostForm("latitude")),
			Longitude:   parseFloatPtr(c.PostForm("longitude")),
		}
		if in.Description == "" {
			// The emergency form sends the free text as "text".
			in.Description = c.PostForm("text")
		}
		if phone := strings.TrimSpace(c.PostForm("phone")); phone != "" {
			in.Phone = &phone
		}
		if _, err := c.FormFile("photo"); err == nil {
			photoFile = true
		}
	} else {
		var req complaintRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid payload", err.Error())
			return
		}
		in = service.ComplaintInput{
			Name:        req.Name,
			Location:    req.Location,
			Department:  req.Department,
			Urgency:     req.Urgency,
			Description: req.Description,
			Phone:       req.Phone,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
		}
	}

	if womenChild {
		in = service.ApplyWomenChildDefaults(in)
	}
	if errs := service.ValidateComplaint(in); errs != nil {
		writeError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Missing one or more required fields", errs)
		return
	}

	now := time.Now().UTC()
	complaint := models.Complaint{
		ID:          service.NewComplaintID(),
		Token:       service.NewToken(12),
		Type:        "text",
		Name:        in.Name,
		Phone:       in.Phone,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Department:  in.Department,
		Urgency:     models.ParseUrgency(in.Urgency),
		Description: in.Description,
		Status:      models.StatusPending,
		Timestamp:   now,
		UpdatedAt:   now,
	}
	if womenChild {
		complaint.Category = string(models.DepartmentWomenChild)
	}

	if photoFile {
		file, err := c.FormFile("photo")
		if err == nil {
			name := complaint.ID + "_" + filepath.Base(file.Filename)
			if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
				writeError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store photo", nil)
				return
			}
			url := "/uploads/" + name
			complaint.PhotoURL = &url
		}
	}

	possibleDuplicate := h.duplicateHint(c, complaint)

	saved, err := h.insertComplaintWithRetry(c.Request.Context(), complaint)
	if err != nil {
		h.Logger.Error().Err(err).Msg("complaint insert failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Submission failed, please try again", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":           true,
		"complaintId":       saved.ID,
		"token":             saved.Token,
		"possibleDuplicate": possibleDuplicate,
	})
}

func (h *Handler) duplicateHint(c *gin.Context, complaint models.Complaint) bool {
	if complaint.Latitude == nil || complaint.Longitude == nil {
		return false
	}
	since := time.Now().UTC().Add(-24 * time.Hour)
	candidates, err := h.Store.ListOpenComplaintsNear(c.Request.Context(), since)
	if err != nil {
		h.Logger.Warn().Err(err).Msg("duplicate hint lookup failed")
		return false
	}
	return service.PossibleDuplicate(candidates, complaint.Department, complaint.Latitude, complaint.Longitude)
}

// GetComplaint serves the public tracking page. A miss answers 404 so the UI
// can say "check your ID" instead of "try again later".
// @Summary Track a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]any
// @Router /api/complaint/{id} [get]
func (h *Handler) GetComplaint(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	complaint, err := h.Store.GetComplaint(c.Request.Context(), id)
	if err != nil {
		if db.IsNotFound(err) {
			writeError(c, http.StatusNotFound, "NOT_FOUND", "Complaint not found", nil)
			return
		}
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Failed to fetch complaint", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"complaint": complaintView(complaint),
	})
}

// complaintView is the read-side projection: the internal token is never
// exposed and coordinates pass through the swapped-pair check.
func complaintView(m models.Complaint) gin.H {
	coords := geocode.Normalize(m.Latitude, m.Longitude)
	view := gin.H{
		"complaintId": m.ID,
		"type":        m.Type,
		"name":        m.Name,
		"location":    m.Location,
		"latitude":    coords.Latitude,
		"longitude":   coords.Longitude,
		"department":  m.Department,
		"urgency":     m.Urgency,
		"description": m.Description,
		"status":      m.Status,
		"photoUrl":    m.PhotoURL,
		"voice_path":  m.VoicePath,
		"timestamp":   m.Timestamp,
		"updatedAt":   m.UpdatedAt,
	}
	if m.Category != "" {
		view["category"] = m.Category
	}
	if coords.Swapped {
		view["coordinatesSwapped"] = true
	}
	return view
}

func parseFloatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "null") {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
