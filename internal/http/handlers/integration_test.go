package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/db"
)

func newIntegrationHandler(t *testing.T) *Handler {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	store, err := db.New(context.Background(), url)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}
	t.Cleanup(store.Close)

	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	h := newTestHandler(t)
	h.Store = store
	return h
}

func TestHealthzIntegration(t *testing.T) {
	h := newIntegrationHandler(t)

	r := gin.New()
	r.GET("/healthz", h.Healthz)

	w := doJSON(r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestComplaintLifecycleIntegration(t *testing.T) {
	h := newIntegrationHandler(t)

	r := gin.New()
	r.POST("/api/complaint", h.CreateComplaint)
	r.GET("/api/complaint/:id", h.GetComplaint)
	r.POST("/api/admin/update-status", h.UpdateComplaintStatus)

	created := doJSON(r, http.MethodPost, "/api/complaint", map[string]any{
		"name":        "Asha",
		"location":    "Shivaji Nagar, Pune",
		"department":  "Sanitation",
		"urgency":     "High",
		"description": "Garbage pile uncollected for a week",
		"latitude":    18.5204,
		"longitude":   73.8567,
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", created.Code, created.Body.String())
	}
	var createResp struct {
		ComplaintID string `json:"complaintId"`
		Token       string `json:"token"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("decode create: %v", err)
	}
	if createResp.ComplaintID == "" || createResp.Token == "" {
		t.Fatalf("missing id or token in %s", created.Body.String())
	}

	got := doJSON(r, http.MethodGet, "/api/complaint/"+createResp.ComplaintID, nil)
	if got.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", got.Code)
	}
	var getResp struct {
		Complaint map[string]any `json:"complaint"`
	}
	if err := json.Unmarshal(got.Body.Bytes(), &getResp); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if getResp.Complaint["status"] != "Pending" {
		t.Fatalf("expected Pending, got %v", getResp.Complaint["status"])
	}
	if _, leaked := getResp.Complaint["token"]; leaked {
		t.Fatalf("tracking response must not expose the token")
	}

	// Same status twice: both calls succeed.
	for i := 0; i < 2; i++ {
		upd := doJSON(r, http.MethodPost, "/api/admin/update-status", map[string]string{
			"id":     createResp.ComplaintID,
			"status": "Processing",
		})
		if upd.Code != http.StatusOK {
			t.Fatalf("update %d: expected 200, got %d: %s", i, upd.Code, upd.Body.String())
		}
	}

	missing := doJSON(r, http.MethodPost, "/api/admin/update-status", map[string]string{
		"id":     "JV-000000",
		"status": "Resolved",
	})
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", missing.Code)
	}
}

func TestPickupLifecycleIntegration(t *testing.T) {
	h := newIntegrationHandler(t)

	r := gin.New()
	r.POST("/api/pickup", h.CreatePickup)
	r.GET("/api/admin/pickups/:id", h.GetPickup)
	r.PUT("/api/admin/pickups/:id/status", h.UpdatePickupStatus)
	r.GET("/api/admin/pickups/stats", h.PickupStats)

	created := doJSON(r, http.MethodPost, "/api/pickup", map[string]any{
		"name":          "Ravi",
		"phone":         "9876543210",
		"address":       "12 MG Road, Pune",
		"materials":     []string{"Paper", "Plastic"},
		"quantity":      "Small",
		"preferredDate": "2026-09-01",
		"preferredTime": "9:00 AM - 12:00 PM",
	})
	if created.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", created.Code, created.Body.String())
	}
	var createResp struct {
		PickupID string `json:"pickupId"`
	}
	if err := json.Unmarshal(created.Body.Bytes(), &createResp); err != nil {
		t.Fatalf("decode create: %v", err)
	}

	driver := "Suresh"
	date := "2026-09-01"
	slot := "9:00 AM - 12:00 PM"
	upd := doJSON(r, http.MethodPut, "/api/admin/pickups/"+createResp.PickupID+"/status", map[string]any{
		"status":         "Confirmed",
		"notes":          "Driver assigned",
		"assignedDriver": driver,
		"pickupDate":     date,
		"pickupTime":     slot,
	})
	if upd.Code != http.StatusOK {
		t.Fatalf("confirm: expected 200, got %d: %s", upd.Code, upd.Body.String())
	}
	var updResp struct {
		Closed bool `json:"closed"`
	}
	if err := json.Unmarshal(upd.Body.Bytes(), &updResp); err != nil {
		t.Fatalf("decode confirm: %v", err)
	}
	if updResp.Closed {
		t.Fatalf("Confirmed must not close the request")
	}

	got := doJSON(r, http.MethodGet, "/api/admin/pickups/"+createResp.PickupID, nil)
	if got.Code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d", got.Code)
	}
	var getResp struct {
		Data struct {
			Status         string  `json:"status"`
			AssignedDriver *string `json:"assignedDriver"`
			Notes          []struct {
				Text   string `json:"text"`
				Status string `json:"status"`
			} `json:"notes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(got.Body.Bytes(), &getResp); err != nil {
		t.Fatalf("decode get: %v", err)
	}
	if getResp.Data.Status != "Confirmed" {
		t.Fatalf("expected Confirmed, got %s", getResp.Data.Status)
	}
	if getResp.Data.AssignedDriver == nil || *getResp.Data.AssignedDriver != driver {
		t.Fatalf("expected driver %q, got %v", driver, getResp.Data.AssignedDriver)
	}
	if len(getResp.Data.Notes) == 0 || getResp.Data.Notes[len(getResp.Data.Notes)-1].Text != "Driver assigned" {
		t.Fatalf("expected note history, got %+v", getResp.Data.Notes)
	}

	done := doJSON(r, http.MethodPut, "/api/admin/pickups/"+createResp.PickupID+"/status", map[string]any{
		"status": "Completed",
		"notes":  "Collected on schedule",
	})
	if done.Code != http.StatusOK {
		t.Fatalf("complete: expected 200, got %d: %s", done.Code, done.Body.String())
	}
	var doneResp struct {
		Closed bool `json:"closed"`
	}
	if err := json.Unmarshal(done.Body.Bytes(), &doneResp); err != nil {
		t.Fatalf("decode complete: %v", err)
	}
	if !doneResp.Closed {
		t.Fatalf("Completed must report the request as closed")
	}

	stats := doJSON(r, http.MethodGet, "/api/admin/pickups/stats", nil)
	if stats.Code != http.StatusOK {
		t.Fatalf("stats: expected 200, got %d", stats.Code)
	}
	var statsResp struct {
		Data struct {
			TotalRequests int `json:"totalRequests"`
			StatusCounts  struct {
				Completed int `json:"completed"`
			} `json:"statusCounts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(stats.Body.Bytes(), &statsResp); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if statsResp.Data.TotalRequests < 1 || statsResp.Data.StatusCounts.Completed < 1 {
		t.Fatalf("stats did not reflect the completed pickup: %s", stats.Body.String())
	}
}
