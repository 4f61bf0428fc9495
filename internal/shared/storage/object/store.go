package object

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"time"

	"resume-builder/internal/shared/util"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("object not found")

// ObjectStore persists uploaded documents and rendered exports.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, r io.Reader) (int64, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
}

// UploadKey builds a storage key for a user upload under the hashed user namespace.
func UploadKey(userID, fileName string) (string, error) {
	name, err := util.SanitizeFileName(fileName)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}
	return path.Join("uploads", util.HashUserKey(userID), randomID()+"_"+name), nil
}

// ExportKey builds the deterministic key of a rendered export.
func ExportKey(userID string, resumeID int64, contentHash, ext string) string {
	return path.Join("exports", util.HashUserKey(userID), strconv.FormatInt(resumeID, 10), contentHash+"."+ext)
}

// Sniff detects the content type of r and returns a reader replaying the sniffed bytes.
func Sniff(r io.Reader) (string, io.Reader, error) {
	var buf [512]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", nil, fmt.Errorf("read sniff: %w", err)
	}
	head := append([]byte(nil), buf[:n]...)
	return http.DetectContentType(head), io.MultiReader(bytes.NewReader(head), r), nil
}

// ReadAll opens key and reads it fully.
func ReadAll(ctx context.Context, store ObjectStore, key string) ([]byte, error) {
	rc, err := store.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func randomID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(b[:])
}
