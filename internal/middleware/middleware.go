// Package middleware carries the request-id plumbing shared by the graph
// query and explorer surfaces.
package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestID tags every request with a stable id: an incoming X-Request-Id is
// kept, otherwise one is generated. The id lands in the gin context under
// "request_id" and is echoed in the response header, so a banner seen in the
// explorer can be matched to the query that produced it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(requestIDKey, rid)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf("[info] request_id=%s operation=http_request method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
