package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	rg.POST("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
}

type downDB struct{}

func (downDB) PingContext(ctx context.Context) error { return errors.New("down") }

func serve(r http.Handler, method, path string, guest bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if guest {
		req.Header.Set("X-Guest-Id", "router-test")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouterPublicRoutes(t *testing.T) {
	r := NewRouter(RouterDeps{Config: config.Config{Env: "dev"}})

	rec := serve(r, http.MethodGet, "/api/v1/health", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"database":"memory"`) {
		t.Fatalf("health = %d %s", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodGet, "/metrics", false)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "http_requests_total") {
		t.Fatalf("metrics = %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouterHealthReportsDatabaseDown(t *testing.T) {
	r := NewRouter(RouterDeps{Health: health.NewService(downDB{}, "memory")})
	rec := serve(r, http.MethodGet, "/api/v1/health", false)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestRouterRequiresIdentity(t *testing.T) {
	r := NewRouter(RouterDeps{Handlers: []RouteRegistrar{pingHandler{}}})

	if rec := serve(r, http.MethodGet, "/api/v1/ping", false); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/api/v1/ping", true); rec.Code != http.StatusOK {
		t.Fatalf("guest status = %d, want 200", rec.Code)
	}

	rec := serve(r, http.MethodGet, "/api/v1/me", true)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"guest":true`) {
		t.Fatalf("me = %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouterRateLimitsWrites(t *testing.T) {
	// 4 rpm leaves a write burst of 2.
	r := NewRouter(RouterDeps{
		Config:   config.Config{RateLimitRPM: 4},
		Handlers: []RouteRegistrar{pingHandler{}},
	})

	for i := 0; i < 2; i++ {
		if rec := serve(r, http.MethodPost, "/api/v1/ping", true); rec.Code != http.StatusOK {
			t.Fatalf("request %d status = %d", i, rec.Code)
		}
	}
	rec := serve(r, http.MethodPost, "/api/v1/ping", true)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("missing Retry-After")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
