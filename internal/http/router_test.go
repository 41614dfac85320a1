package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jantavoice/backend/internal/ai"
	"github.com/jantavoice/backend/internal/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Config{
		CORSAllowed:     "*",
		MaxUploadSizeMB: 8,
		UploadDir:       t.TempDir(),
		AdminUsername:   "admin",
		AdminPassword:   "secret123",
		AIRateRPM:       60,
	}
	return Router(cfg, nil, ai.MockTranscriber{}, ai.MockExtractor{}, ai.MockAssistant{}, nil, zerolog.Nop())
}

// The dashboard and pickup form address these paths directly; each must be
// registered and answer with an application response, never a bare 404.
func TestDashboardPathsRegistered(t *testing.T) {
	r := newTestRouter(t)

	// Unauthenticated management calls hit the session guard, proving the
	// route exists and is protected.
	guarded := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/pickup/requests"},
		{http.MethodGet, "/api/pickup/request/PICKUP123456"},
		{http.MethodPut, "/api/pickup/request/PICKUP123456/status"},
		{http.MethodGet, "/api/pickup/stats"},
		{http.MethodGet, "/api/pickup/search"},
		{http.MethodPost, "/api/admin/update_status"},
		{http.MethodPost, "/api/admin/update-status"},
		{http.MethodGet, "/api/admin/complaints"},
	}
	for _, tc := range guarded {
		req, _ := http.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 from session guard, got %d: %s", tc.method, tc.path, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "UNAUTHORIZED") {
			t.Fatalf("%s %s: expected error envelope, got %s", tc.method, tc.path, w.Body.String())
		}
	}
}

func TestPickupRequestAliasRegistered(t *testing.T) {
	r := newTestRouter(t)

	// An empty body reaches validation, not the router's 404 handler.
	for _, path := range []string{"/api/pickup", "/api/pickup/request"} {
		req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("POST %s: expected 400, got %d: %s", path, w.Code, w.Body.String())
		}
		if !strings.Contains(w.Body.String(), "VALIDATION_ERROR") {
			t.Fatalf("POST %s: expected VALIDATION_ERROR, got %s", path, w.Body.String())
		}
	}
}
