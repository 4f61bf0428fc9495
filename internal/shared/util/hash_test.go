package util

import (
	"strings"
	"testing"
)

func TestHashUserKey(t *testing.T) {
	id := "guest:12345"
	got := HashUserKey(id)
	if got != HashUserKey(id) {
		t.Fatalf("expected stable hash, got %s", got)
	}
	for _, ch := range got {
		if !((ch >= 'a' && ch <= 'f') || (ch >= '0' && ch <= '9')) {
			t.Fatalf("hash contains non-hex character: %c", ch)
		}
	}
	if len(got) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(got))
	}
}

func TestContentHashChangesWithInput(t *testing.T) {
	a := ContentHash([]byte(`{"summary":"a"}`))
	b := ContentHash([]byte(`{"summary":"b"}`))
	if a == b {
		t.Fatalf("expected distinct hashes")
	}
	if a != ContentHash([]byte(`{"summary":"a"}`)) {
		t.Fatalf("expected stable hash")
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: " dir/cv.docx ", want: "cv.docx"},
		{in: `C:\Users\jane\My CV.txt`, want: "My_CV.txt"},
		{in: "tab\tname\x00.pdf", want: "tab_name.pdf"},
		{in: strings.Repeat("a", 200) + ".pdf", want: strings.Repeat("a", 116) + ".pdf"},
		{in: "dir/", wantErr: true},
		{in: "../etc/passwd", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeFileName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("SanitizeFileName(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeFileName(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
