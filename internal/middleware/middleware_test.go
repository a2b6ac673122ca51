package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"autogallery/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDMiddleware(t *testing.T) {
	router := gin.New()
	router.Use(RequestIDMiddleware())
	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(RequestIDHeader)
	if len(generated) != 36 || rec.Body.String() != generated {
		t.Fatalf("expected a generated uuid, got %q / %q", generated, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Header().Get(RequestIDHeader) != "abc-123" {
		t.Fatalf("expected incoming request id to be kept")
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 200))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if len(rec.Header().Get(RequestIDHeader)) != 36 {
		t.Fatalf("expected oversized request id to be replaced")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := &config.Config{RateLimitRequests: 2, RateLimitWindow: 60}
	cfg.Gallery.BaseURL = "/images/music"

	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	router := gin.New()
	router.Use(RateLimitMiddleware(cfg, manager))
	router.GET("/*path", func(c *gin.Context) { c.Status(http.StatusOK) })

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/bands/the-beatles", nil))
		statuses = append(statuses, rec.Code)
	}
	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK || statuses[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected statuses: %v", statuses)
	}

	for _, path := range []string{"/images/music/T/The-Beatles/a.jpg", "/healthz"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %s to bypass limiting, got %d", path, rec.Code)
		}
	}
}

func TestRateLimitManagerCleanup(t *testing.T) {
	manager := NewRateLimitManager(context.Background())
	defer manager.Shutdown()

	if manager.GetVisitor("1.2.3.4", 0, 60, 0) != nil {
		t.Fatalf("expected limiting to be disabled for zero requests")
	}

	first := manager.GetVisitor("1.2.3.4", 10, 60, 0)
	if again := manager.GetVisitor("1.2.3.4", 10, 60, 0); again != first {
		t.Fatalf("expected the same limiter for a known visitor")
	}

	manager.cleanup(time.Now().Add(visitorIdleTimeout + time.Second))
	if fresh := manager.GetVisitor("1.2.3.4", 10, 60, 0); fresh == first {
		t.Fatalf("expected idle visitor to be forgotten")
	}
}
