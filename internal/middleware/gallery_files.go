package middleware

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// GalleryFileFilter lets through only requests for files a gallery could list:
// an allowed extension and no hidden path segment. Everything else is a 404.
func GalleryFileFilter(extensions []string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
		if ext != "" {
			allowed[ext] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		if !servableGalleryFile(c.Request.URL.Path, allowed) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.Next()
	}
}

func servableGalleryFile(requestPath string, allowed map[string]struct{}) bool {
	for _, segment := range strings.Split(requestPath, "/") {
		if strings.HasPrefix(segment, ".") {
			return false
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(requestPath), "."))
	if ext == "" {
		return false
	}
	_, ok := allowed[ext]
	return ok
}
