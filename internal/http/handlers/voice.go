package handlers

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/models"
	"github.com/jantavoice/backend/internal/service"
)

var audioExtensions = map[string]bool{
	".wav":  true,
	".mp3":  true,
	".webm": true,
	".ogg":  true,
	".m4a":  true,
	".flac": true,
}

// VoiceComplaint files a complaint from an audio recording: transcribe, then
// distill the structured fields from the transcript. When the extraction model
// is down the keyword fallback keeps intake working; a transcription failure
// is fatal because there is nothing to file without text.
// @Summary Submit a voice complaint
// @Tags voice
// @Accept multipart/form-data
// @Produce json
// @Param audio formData file true "Audio recording"
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]any
// @Router /api/complaint/voice [post]
func (h *Handler) VoiceComplaint(c *gin.Context) {
	file, err := c.FormFile("audio")
	if err != nil {
		writeError(c, http.StatusBadRequest, "MISSING_AUDIO", "An audio file is required", nil)
		return
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !audioExtensions[ext] {
		writeError(c, http.StatusBadRequest, "UNSUPPORTED_FORMAT", "Unsupported audio format", gin.H{"extension": ext})
		return
	}

	stored := uuid.NewString() + ext
	storedPath := filepath.Join(h.UploadDir, "audios", stored)
	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		h.Logger.Error().Err(err).Msg("audio save failed")
		writeError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to store audio", nil)
		return
	}

	src, err := file.Open()
	if err != nil {
		writeError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to read audio", nil)
		return
	}
	defer src.Close()

	language := c.DefaultPostForm("language", "hi")
	transcript, err := h.Transcriber.Transcribe(c.Request.Context(), src, file.Filename, language)
	if err != nil {
		h.Logger.Error().Err(err).Msg("transcription failed")
		writeError(c, http.StatusBadGateway, "TRANSCRIPTION_FAILED", "Could not transcribe the recording", nil)
		return
	}
	if strings.TrimSpace(transcript) == "" {
		writeError(c, http.StatusUnprocessableEntity, "EMPTY_TRANSCRIPT", "The recording contained no recognizable speech", nil)
		return
	}

	fields, err := h.Extractor.Extract(c.Request.Context(), transcript)
	if err != nil {
		h.Logger.Warn().Err(err).Msg("field extraction failed, using keyword fallback")
		fields = ai.KeywordExtract(transcript)
	}

	// Explicit form fields beat model guesses.
	if name := strings.TrimSpace(c.PostForm("name")); name != "" {
		fields.Name = name
	}
	if phone := strings.TrimSpace(c.PostForm("phone")); phone != "" {
		fields.Phone = &phone
	}
	if fields.Name == "" {
		fields.Name = "Unknown"
	}
	if fields.Location == "" {
		fields.Location = "Unknown"
	}
	if fields.Department == "" {
		fields.Department = "General Administration"
	}
	if fields.Description == "" {
		fields.Description = transcript
	}

	now := time.Now().UTC()
	voiceURL := "/audios/" + stored
	complaint := models.Complaint{
		ID:          service.NewComplaintID(),
		Token:       service.NewToken(12),
		Type:        "voice",
		Name:        fields.Name,
		Phone:       fields.Phone,
		Location:    fields.Location,
		Department:  fields.Department,
		Urgency:     models.ParseUrgency(fields.Urgency),
		Description: fields.Description,
		Status:      models.StatusPending,
		VoicePath:   &voiceURL,
		Transcript:  &transcript,
		Timestamp:   now,
		UpdatedAt:   now,
	}

	saved, err := h.insertComplaintWithRetry(c.Request.Context(), complaint)
	if err != nil {
		h.Logger.Error().Err(err).Msg("voice complaint insert failed")
		writeError(c, http.StatusInternalServerError, "DB_ERROR", "Submission failed, please try again", nil)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":          true,
		"complaintId":      saved.ID,
		"token":            saved.Token,
		"transcript":       transcript,
		"extracted_fields": fields,
	})
}

// VoiceStatus reports whether the transcription pipeline is configured, so
// the recorder UI can fall back to the text form up front.
// @Summary Voice pipeline status
// @Tags voice
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api/voice-status [get]
func (h *Handler) VoiceStatus(c *gin.Context) {
	_, mock := h.Transcriber.(ai.MockTranscriber)
	c.JSON(http.StatusOK, gin.H{
		"available": h.Transcriber != nil,
		"mock":      mock,
	})
}
