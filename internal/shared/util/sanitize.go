package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

const maxFileNameRunes = 120

// ErrInvalidFileName is returned for empty names and traversal patterns.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName reduces an uploaded name to a safe base name. Directory
// components are dropped, whitespace becomes "_" and long names are cut to
// 120 runes with the extension kept.
func SanitizeFileName(name string) (string, error) {
	s := strings.TrimSpace(name)
	if strings.Contains(s, "..") {
		return "", ErrInvalidFileName
	}
	s = strings.ReplaceAll(s, "\\", "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.Map(func(r rune) rune {
		switch {
		case unicode.IsSpace(r):
			return '_'
		case unicode.IsControl(r), r == '"':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", ErrInvalidFileName
	}

	if runes := []rune(s); len(runes) > maxFileNameRunes {
		ext := []rune(path.Ext(s))
		if len(ext) >= maxFileNameRunes {
			ext = nil
		}
		s = string(runes[:maxFileNameRunes-len(ext)]) + string(ext)
	}
	return s, nil
}
