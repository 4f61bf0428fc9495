package object

import (
	"io"
	"strings"
	"testing"
)

func TestExportKeyIsDeterministic(t *testing.T) {
	a := ExportKey("guest:1", 12, "abc", "pdf")
	b := ExportKey("guest:1", 12, "abc", "pdf")
	if a != b {
		t.Fatalf("expected stable key, got %q and %q", a, b)
	}
	if !strings.HasPrefix(a, "exports/") || !strings.HasSuffix(a, "/12/abc.pdf") {
		t.Fatalf("unexpected key %q", a)
	}
}

func TestUploadKeyIsUnique(t *testing.T) {
	a, err := UploadKey("guest:1", "cv.pdf")
	if err != nil {
		t.Fatalf("UploadKey: %v", err)
	}
	b, _ := UploadKey("guest:1", "cv.pdf")
	if a == b {
		t.Fatalf("expected random prefix to differ")
	}
	if _, err := UploadKey("guest:1", "../x"); err == nil {
		t.Fatalf("expected invalid name error")
	}
}

func TestSniffReplaysBytes(t *testing.T) {
	ct, r, err := Sniff(strings.NewReader("%PDF-1.4 body"))
	if err != nil {
		t.Fatalf("Sniff: %v", err)
	}
	if ct != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", ct)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "%PDF-1.4 body" {
		t.Fatalf("expected full body, got %q", data)
	}
}
