// Package importer converts unstructured resume text into a document.Resume.
package importer

import (
	"context"
	"encoding/json"
	"strings"

	"resume-builder/resume/document"
)

// TextImporter turns free text into a structured resume.
type TextImporter interface {
	Import(ctx context.Context, text string) (document.Resume, error)
}

// Import treats content as serialized JSON when it parses as an object and
// falls back to the text importer otherwise. An importer error degrades to a
// default document carrying the original text.
func Import(ctx context.Context, content string, ti TextImporter, ids document.IDGenerator) document.Resume {
	if looksLikeJSONObject(content) {
		return document.Load(content, ids)
	}
	if ti == nil {
		ti = NewHeuristic(ids)
	}
	doc, err := ti.Import(ctx, content)
	if err != nil {
		doc = document.Default()
		doc.RawText = content
	}
	document.AssignIDs(&doc, ids)
	return doc
}

func looksLikeJSONObject(content string) bool {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "{") {
		return false
	}
	var probe map[string]any
	return json.Unmarshal([]byte(trimmed), &probe) == nil
}
