// Package client is the editor side of resume persistence: it serializes the
// session document and talks to the save endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/document"
)

const (
	// DefaultSavePath is the save endpoint relative to the server base URL.
	DefaultSavePath = "/api/v1/resumes/save"
	// DefaultLoadPath is the resume lookup endpoint; the id is appended.
	DefaultLoadPath = "/api/v1/resumes/"
	// EditLocationFormat is the navigable location of a stored resume.
	EditLocationFormat = "/resume_builder/formatter/edit/%d"
)

// EditLocation returns the edit location of a stored resume.
func EditLocation(id int64) string {
	return fmt.Sprintf(EditLocationFormat, id)
}

// ErrSaveRejected is returned when the server answers success=false.
var ErrSaveRejected = errors.New("save rejected by server")

// SaveRequest is the body of a save call.
type SaveRequest struct {
	Title    string `json:"title" validate:"required,max=255"`
	Content  string `json:"content" validate:"required"`
	ResumeID *int64 `json:"resume_id"`
}

// SaveResponse is the body returned by the save endpoint.
type SaveResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	ResumeID *int64 `json:"resume_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Level classifies a notice.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

// Notice is a transient, dismissible message for the user.
type Notice struct {
	Level   Level
	Message string
}

// Notifier shows notices without blocking the caller.
type Notifier interface {
	Notify(Notice)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notice)

// Notify implements Notifier.
func (f NotifierFunc) Notify(n Notice) { f(n) }

// Options configures a Session.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Header     http.Header
	Notifier   Notifier
	// DebugView returns the current content of the raw JSON view, if any.
	DebugView func() string
}

// Session binds one editor document to its stored record. Saves are
// serialized: a Save issued while another is in flight waits for it, so an id
// assigned by the first response is sent by the second.
type Session struct {
	store    *document.Store
	baseURL  string
	http     *http.Client
	header   http.Header
	notifier Notifier
	debug    func() string
	validate *validator.Validate

	saveMu   sync.Mutex
	mu       sync.Mutex
	resumeID *int64
	title    string
	location string
	savedAt  time.Time
}

// NewSession creates a session for store.
func NewSession(store *document.Store, opts Options) *Session {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = NotifierFunc(func(Notice) {})
	}
	return &Session{
		store:    store,
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     httpClient,
		header:   opts.Header.Clone(),
		notifier: notifier,
		debug:    opts.DebugView,
		validate: validator.New(),
	}
}

// SetTitle sets the title sent with the next save.
func (s *Session) SetTitle(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.title = title
}

// ResumeID returns the stored id, or nil when the resume was never saved.
func (s *Session) ResumeID() *int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resumeID == nil {
		return nil
	}
	id := *s.resumeID
	return &id
}

// SetResumeID binds the session to an existing record.
func (s *Session) SetResumeID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumeID = &id
	s.location = EditLocation(id)
}

// Location returns the edit location of the stored resume, or "" before the first save.
func (s *Session) Location() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.location
}

// LastSaved returns the time of the last successful save.
func (s *Session) LastSaved() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedAt
}

// Save sends the whole document to the server. Any failure leaves the
// document untouched and is reported through the notifier.
func (s *Session) Save(ctx context.Context) (SaveResponse, error) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	if s.debug != nil {
		if err := s.store.ReconcileJSON(s.debug()); err != nil {
			telemetry.Warn("client.debug_json_ignored", map[string]any{"err": err.Error()})
		}
	}

	doc := s.store.Snapshot()
	doc.PrepareForSave()
	content, err := document.Serialize(doc)
	if err != nil {
		s.fail("Failed to save resume: "+err.Error(), err)
		return SaveResponse{}, err
	}

	s.mu.Lock()
	title := strings.TrimSpace(s.title)
	if title == "" {
		title = document.DefaultTitle
	}
	req := SaveRequest{Title: title, Content: content, ResumeID: s.resumeID}
	s.mu.Unlock()

	if err := s.validate.Struct(req); err != nil {
		s.fail("Cannot save resume: "+err.Error(), err)
		return SaveResponse{}, err
	}

	resp, err := s.post(ctx, req)
	if err != nil {
		s.fail("Failed to save resume. Please try again.", err)
		return SaveResponse{}, err
	}
	if !resp.Success {
		msg := resp.Error
		if msg == "" {
			msg = "Unknown error"
		}
		err := fmt.Errorf("%w: %s", ErrSaveRejected, msg)
		s.fail("Error saving resume: "+msg, err)
		return resp, err
	}

	_ = s.store.Update(func(cur *document.Resume) error {
		cur.PrepareForSave()
		return nil
	})

	s.mu.Lock()
	if resp.ResumeID != nil && s.resumeID == nil {
		id := *resp.ResumeID
		s.resumeID = &id
		s.location = EditLocation(id)
	}
	s.savedAt = time.Now()
	s.mu.Unlock()

	msg := resp.Message
	if msg == "" {
		msg = "Resume saved successfully!"
	}
	s.notifier.Notify(Notice{Level: LevelSuccess, Message: msg})
	return resp, nil
}

// Open loads a stored resume into the session.
func (s *Session) Open(ctx context.Context, id int64) error {
	url := s.baseURL + DefaultLoadPath + strconv.FormatInt(id, 10)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	s.applyHeaders(httpReq)

	res, err := s.http.Do(httpReq)
	if err != nil {
		s.fail("Failed to load resume.", err)
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		err := fmt.Errorf("load resume: http status %d", res.StatusCode)
		s.fail("Failed to load resume.", err)
		return err
	}

	var body struct {
		ID      int64  `json:"id"`
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		s.fail("Failed to load resume.", err)
		return fmt.Errorf("decode resume: %w", err)
	}

	s.store.Replace(document.Load(body.Content, nil))
	s.SetResumeID(body.ID)
	s.SetTitle(body.Title)
	return nil
}

func (s *Session) post(ctx context.Context, req SaveRequest) (SaveResponse, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return SaveResponse{}, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+DefaultSavePath, bytes.NewReader(payload))
	if err != nil {
		return SaveResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	s.applyHeaders(httpReq)

	res, err := s.http.Do(httpReq)
	if err != nil {
		return SaveResponse{}, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return SaveResponse{}, err
	}
	var out SaveResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return SaveResponse{}, fmt.Errorf("save response http %d: %w", res.StatusCode, err)
	}
	return out, nil
}

func (s *Session) applyHeaders(req *http.Request) {
	for key, values := range s.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
}

func (s *Session) fail(message string, err error) {
	telemetry.Error("client.save_failed", map[string]any{"err": err.Error()})
	s.notifier.Notify(Notice{Level: LevelError, Message: message})
}
