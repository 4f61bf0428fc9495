package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Auth("dev"), Logging())
	router.GET("/test", func(c *gin.Context) {
		c.Set("resumeId", int64(7))
		c.Set("documentId", "doc-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	req.Header.Set("X-Request-Id", "req-123")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("decode log: %v", err)
	}

	if entry["msg"] != "request.complete" {
		t.Fatalf("unexpected msg %v", entry["msg"])
	}
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request id, got %v", entry["request_id"])
	}
	if entry["user_id"] != "guest:guest1" {
		t.Fatalf("expected guest user id, got %v", entry["user_id"])
	}
	if entry["resume_id"] != float64(7) {
		t.Fatalf("expected resume id 7, got %v", entry["resume_id"])
	}
	if entry["document_id"] != "doc-1" {
		t.Fatalf("expected document id, got %v", entry["document_id"])
	}
	if entry["route"] != "/test" {
		t.Fatalf("expected route /test, got %v", entry["route"])
	}
	if resp.Header().Get("X-Request-Id") != "req-123" {
		t.Fatalf("expected request id header to be echoed")
	}
}
