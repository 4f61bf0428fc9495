package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
)

// Logging emits a structured log per request and records request metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveRequest(c.Request.Method, route, status, latency)

		userID, _ := c.Get(userIDKey)
		isGuest, _ := c.Get(isGuestKey)
		resumeID, _ := c.Get("resumeId")
		documentID, _ := c.Get("documentId")

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"resume_id":   resumeID,
			"document_id": documentID,
			"is_guest":    isGuest,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
