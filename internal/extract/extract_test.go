package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"resume-builder/resume/document"
	"resume-builder/resume/export"
)

func sampleDocx(t *testing.T) []byte {
	t.Helper()
	doc := document.Default()
	doc.Personal.FullName = "Jane Doe"
	doc.Summary = "Backend engineer"
	data, err := export.DOCX{}.Export(context.Background(), doc)
	if err != nil {
		t.Fatalf("export docx: %v", err)
	}
	return data
}

func TestFromBytesDocxViaZipMime(t *testing.T) {
	text, err := FromBytes(context.Background(), sampleDocx(t), "application/zip", "cv.docx")
	if err != nil {
		t.Fatalf("expected docx to extract from zip mime, got error: %v", err)
	}
	if !strings.Contains(text, "Jane Doe") || !strings.Contains(text, "Backend engineer") {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestFromBytesPlainText(t *testing.T) {
	text, err := FromBytes(context.Background(), []byte("  Jane Doe\nSkills\n"), "text/plain; charset=utf-8", "cv.txt")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "Jane Doe\nSkills" {
		t.Fatalf("unexpected text %q", text)
	}
}

func TestFromBytesRealZipRejected(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("notes.txt")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	_, err = FromBytes(context.Background(), buf.Bytes(), "application/zip", "notes.zip")
	if !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		mime, name, want string
	}{
		{"application/pdf", "a.pdf", MimePDF},
		{"application/octet-stream", "a.pdf", MimePDF},
		{"application/octet-stream", "a.txt", MimeText},
		{"image/png", "a.png", "image/png"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.mime, tt.name, []byte("x")); got != tt.want {
			t.Fatalf("Normalize(%q, %q) = %q, want %q", tt.mime, tt.name, got, tt.want)
		}
	}
	if !Supported(MimeDOCX) || Supported("image/png") {
		t.Fatalf("unexpected Supported result")
	}
}
