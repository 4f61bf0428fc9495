package resumes_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/resume/client"
	"resume-builder/resume/document"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &resumes.Service{Repo: resumes.NewMemoryRepo(), IDs: document.NewCounterGenerator("item")}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Auth("dev"))
	resumes.NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func guestHeader(id string) http.Header {
	h := http.Header{}
	h.Set("X-Guest-Id", id)
	return h
}

func TestClientSessionRoundTripsThroughServer(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	store := document.NewStore(document.Default(), document.NewCounterGenerator("item"))
	if err := store.SetField("personal.full_name", "Jane Doe"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	session := client.NewSession(store, client.Options{BaseURL: srv.URL, Header: guestHeader("g1")})
	session.SetTitle("Backend CV")

	res, err := session.Save(ctx)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	if !res.Success || res.ResumeID == nil {
		t.Fatalf("expected success with id, got %+v", res)
	}
	firstID := *res.ResumeID

	if err := store.SetField("summary", "Second draft"); err != nil {
		t.Fatalf("SetField: %v", err)
	}
	if _, err := session.Save(ctx); err != nil {
		t.Fatalf("second save: %v", err)
	}
	if got := session.ResumeID(); got == nil || *got != firstID {
		t.Fatalf("expected id %d to be kept, got %v", firstID, got)
	}

	reopened := client.NewSession(document.NewStore(document.Default(), nil), client.Options{BaseURL: srv.URL, Header: guestHeader("g1")})
	if err := reopened.Open(ctx, firstID); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if reopened.Location() != client.EditLocation(firstID) {
		t.Fatalf("unexpected location %q", reopened.Location())
	}
}

func TestSaveFailuresUseSaveContract(t *testing.T) {
	srv := newServer(t)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{name: "malformed", body: `{`, status: http.StatusBadRequest},
		{name: "missing content", body: `{"title":"x"}`, status: http.StatusBadRequest},
		{name: "schema violation", body: `{"title":"x","content":"{\"experiences\":5}"}`, status: http.StatusUnprocessableEntity},
		{name: "unknown id", body: `{"title":"x","content":"{}","resume_id":999}`, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/resumes/save", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("X-Guest-Id", "g1")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.StatusCode)
			}
			var out client.SaveResponse
			if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if out.Success || out.Error == "" {
				t.Fatalf("expected failure payload, got %+v", out)
			}
		})
	}
}

func TestResumeRoutesAreScopedToOwner(t *testing.T) {
	srv := newServer(t)
	ctx := context.Background()

	session := client.NewSession(document.NewStore(document.Default(), nil), client.Options{BaseURL: srv.URL, Header: guestHeader("owner")})
	res, err := session.Save(ctx)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	id := *res.ResumeID

	get := func(guest, path string) int {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		req.Header.Set("X-Guest-Id", guest)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	path := "/api/v1/resumes/" + jsonNumber(id)
	if code := get("owner", path); code != http.StatusOK {
		t.Fatalf("owner expected 200, got %d", code)
	}
	if code := get("intruder", path); code != http.StatusNotFound {
		t.Fatalf("intruder expected 404, got %d", code)
	}
	if code := get("owner", path+"/preview"); code != http.StatusOK {
		t.Fatalf("preview expected 200, got %d", code)
	}
	if code := get("owner", "/api/v1/resumes/abc"); code != http.StatusBadRequest {
		t.Fatalf("bad id expected 400, got %d", code)
	}
}

func TestArchiveRoute(t *testing.T) {
	srv := newServer(t)
	session := client.NewSession(document.NewStore(document.Default(), nil), client.Options{BaseURL: srv.URL, Header: guestHeader("g1")})
	res, err := session.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/api/v1/resumes/"+jsonNumber(*res.ResumeID)+"/archive", nil)
	req.Header.Set("X-Guest-Id", "g1")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	defer resp.Body.Close()
	var summary resumes.ResumeSummary
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !summary.IsArchived {
		t.Fatalf("expected archived summary")
	}

	listReq, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/resumes", nil)
	listReq.Header.Set("X-Guest-Id", "g1")
	listResp, err := http.DefaultClient.Do(listReq)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	defer listResp.Body.Close()
	var list []resumes.ResumeSummary
	_ = json.NewDecoder(listResp.Body).Decode(&list)
	if len(list) != 0 {
		t.Fatalf("expected archived resume to be hidden, got %d", len(list))
	}
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
