package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/documents"
	"resume-builder/internal/shared/server/middleware"
	localstore "resume-builder/internal/shared/storage/object/local"
	"resume-builder/resume/document"
	"resume-builder/resume/export"
)

const sampleText = `Jane Doe
jane@example.com | 555-123-4567

Summary
Backend engineer building APIs.

Skills
Python, SQL, Leadership
`

func newRouter(t *testing.T, maxUpload int64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := &documents.Service{
		Store: localstore.New(t.TempDir()),
		Repo:  documents.NewMemoryRepo(),
		IDs:   document.NewCounterGenerator("item"),
	}
	r := gin.New()
	r.Use(middleware.Auth("dev"))
	documents.NewHandler(svc, maxUpload).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartBody(t *testing.T, name string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("file", name)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write(data); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func upload(t *testing.T, r *gin.Engine, name string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, ct := multipartBody(t, name, data)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", body)
	req.Header.Set("Content-Type", ct)
	req.Header.Set("X-Guest-Id", "test-guest")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestUploadThenImport(t *testing.T) {
	router := newRouter(t, 0)

	resp := upload(t, router, "cv.txt", []byte(sampleText))
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var created documents.DocumentResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.DocumentID == "" || created.MimeType != "text/plain" {
		t.Fatalf("unexpected response %+v", created)
	}

	payload, _ := json.Marshal(map[string]string{"document_id": created.DocumentID})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/import", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "test-guest")
	importResp := httptest.NewRecorder()
	router.ServeHTTP(importResp, req)

	if importResp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", importResp.Code, importResp.Body.String())
	}
	var doc document.Resume
	if err := json.NewDecoder(importResp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode resume: %v", err)
	}
	if doc.Personal.FullName != "Jane Doe" || doc.Personal.Email != "jane@example.com" {
		t.Fatalf("unexpected personal info %+v", doc.Personal)
	}
	if len(doc.Skills.Technical) == 0 {
		t.Fatalf("expected skills to be imported")
	}
}

func TestUploadDocxIsExtracted(t *testing.T) {
	router := newRouter(t, 0)
	src := document.Default()
	src.Personal.FullName = "Jane Doe"
	data, err := export.DOCX{}.Export(context.Background(), src)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	resp := upload(t, router, "cv.docx", data)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	if !strings.Contains(resp.Body.String(), "wordprocessingml") {
		t.Fatalf("expected docx mime type, got %s", resp.Body.String())
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	router := newRouter(t, 0)
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	resp := upload(t, router, "photo.png", png)
	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", resp.Code)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	router := newRouter(t, 1024)
	resp := upload(t, router, "cv.txt", bytes.Repeat([]byte("a"), 4096))
	if resp.Code != http.StatusRequestEntityTooLarge && resp.Code != http.StatusBadRequest {
		t.Fatalf("expected upload to be rejected, got %d", resp.Code)
	}
}

func TestImportInlineTextAndValidation(t *testing.T) {
	router := newRouter(t, 0)

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/import", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "test-guest")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	if resp := send(`{}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty body, got %d", resp.Code)
	}
	if resp := send(`{"document_id":"not-a-uuid"}`); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad id, got %d", resp.Code)
	}
	resp := send(`{"text":"Jane Doe\nSkills\nGo"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestGetOtherUsersDocumentIsNotFound(t *testing.T) {
	router := newRouter(t, 0)
	resp := upload(t, router, "cv.txt", []byte(sampleText))
	var created documents.DocumentResponse
	_ = json.NewDecoder(resp.Body).Decode(&created)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/documents/"+created.DocumentID, nil)
	req.Header.Set("X-Guest-Id", "someone-else")
	getResp := httptest.NewRecorder()
	router.ServeHTTP(getResp, req)
	if getResp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", getResp.Code)
	}
}
