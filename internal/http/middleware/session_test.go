package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jantavoice/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeSessions map[string]models.Session

func (f fakeSessions) GetSession(ctx context.Context, id string) (models.Session, error) {
	sess, ok := f[id]
	if !ok {
		return models.Session{}, errors.New("no rows")
	}
	return sess, nil
}

func guardedRouter(f SessionFetcher) *gin.Engine {
	r := gin.New()
	r.GET("/admin/ping", AdminSession(f), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": c.GetString(ContextUsername)})
	})
	return r
}

func TestAdminSessionNoCookie(t *testing.T) {
	r := guardedRouter(fakeSessions{})
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAdminSessionExpired(t *testing.T) {
	sessions := fakeSessions{
		"old": {ID: "old", Username: "admin", ExpiresAt: time.Now().Add(-time.Minute)},
	}
	r := guardedRouter(sessions)
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "old"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired session, got %d", w.Code)
	}
}

func TestAdminSessionValid(t *testing.T) {
	sessions := fakeSessions{
		"live": {ID: "live", Username: "admin", ExpiresAt: time.Now().Add(time.Hour)},
	}
	r := guardedRouter(sessions)
	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "live"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Body.String() != `{"user":"admin"}` {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}
