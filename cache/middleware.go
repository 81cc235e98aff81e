package cache

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// ShowPageMiddleware caches rendered campground show pages for anonymous
// traffic. Requests carrying the session cookie are never cached: their
// responses may bake in flash messages or user-specific controls.
func ShowPageMiddleware(sessionCookie string, maxAge time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		if _, err := c.Cookie(sessionCookie); err == nil {
			c.Next()
			return
		}

		id := c.Param("id")
		if id == "" {
			c.Next()
			return
		}

		if cached, found := ReadPage(id, maxAge); found {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(cached))
			c.Abort()
			return
		}

		c.Header("X-Cache", "MISS")

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = writer

		c.Next()

		if c.Writer.Status() == http.StatusOK &&
			c.Writer.Header().Get("Content-Type") == "text/html; charset=utf-8" {
			WritePage(id, writer.body.String())
		}
	}
}
