// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

// ErrUnsupported is returned for file types that cannot be imported.
var ErrUnsupported = errors.New("unsupported file type")

// Normalize resolves the effective mime type from the sniffed type, the file
// name and, for zip containers, the package contents.
func Normalize(mimeType, fileName string, data []byte) string {
	clean := strings.ToLower(strings.TrimSpace(strings.Split(mimeType, ";")[0]))
	ext := strings.ToLower(filepath.Ext(fileName))

	switch clean {
	case MimePDF, MimeDOCX, MimeText:
		return clean
	case "application/zip":
		if mapOOXMLFromZip(data) == MimeDOCX || ext == ".docx" {
			return MimeDOCX
		}
		return clean
	case "", "application/octet-stream":
		switch ext {
		case ".pdf":
			return MimePDF
		case ".docx":
			return MimeDOCX
		case ".txt", ".md":
			if utf8.Valid(data) {
				return MimeText
			}
		}
	}
	return clean
}

// Supported reports whether mime is an importable type.
func Supported(mime string) bool {
	switch mime {
	case MimePDF, MimeDOCX, MimeText:
		return true
	}
	return false
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, mimeType, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	normalized := Normalize(mimeType, fileName, data)
	switch normalized {
	case MimePDF:
		return extractPDF(data)
	case MimeDOCX:
		return extractDOCX(data)
	case MimeText:
		return strings.TrimSpace(string(data)), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, normalized)
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			return "", fmt.Errorf("read pdf page %d: %w", i, err)
		}
		for _, row := range rows {
			var line strings.Builder
			for _, word := range row.Content {
				line.WriteString(word.S)
			}
			if text := strings.TrimSpace(line.String()); text != "" {
				b.WriteString(text)
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(b.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.Write(t)
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteByte('\t')
			}
		case xml.EndElement:
			if (t.Name.Local == "p" || t.Name.Local == "br") && buf.Len() > 0 {
				buf.WriteByte('\n')
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") == "word/document.xml" {
			return MimeDOCX
		}
	}
	return ""
}
