package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"autogallery/internal/config"
)

// RateLimitMiddleware limits page requests per client IP. Image files under the
// gallery base URL and the health and metrics endpoints are never limited.
func RateLimitMiddleware(cfg *config.Config, manager *RateLimitManager) gin.HandlerFunc {
	bypass := []string{"/healthz", "/metrics"}
	if prefix := strings.TrimRight(cfg.Gallery.BaseURL, "/"); prefix != "" {
		bypass = append(bypass, prefix+"/")
	}

	return func(c *gin.Context) {
		if manager == nil || shouldBypassRateLimit(c.Request, bypass) {
			c.Next()
			return
		}

		limiter := manager.GetVisitor(
			c.ClientIP(),
			cfg.RateLimitRequests,
			cfg.RateLimitWindow,
			cfg.RateLimitBurst,
		)
		if limiter == nil {
			c.Next()
			return
		}

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many requests, please try again later",
			})
			return
		}
		c.Next()
	}
}

func shouldBypassRateLimit(r *http.Request, prefixes []string) bool {
	if r == nil || r.URL == nil {
		return false
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		return false
	}

	path := r.URL.Path
	for _, prefix := range prefixes {
		if path == prefix || (strings.HasSuffix(prefix, "/") && strings.HasPrefix(path, prefix)) {
			return true
		}
	}
	return path == "/favicon.ico"
}
