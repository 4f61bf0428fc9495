package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/resume/document"
)

// LLMImporter asks a language model for the structured form and falls back to
// another importer when the model is unavailable or replies with invalid JSON.
type LLMImporter struct {
	LLM      llm.Completer
	Fallback TextImporter
	IDs      document.IDGenerator
}

// Import implements TextImporter.
func (l *LLMImporter) Import(ctx context.Context, text string) (document.Resume, error) {
	doc, err := l.complete(ctx, text)
	if err == nil {
		return doc, nil
	}
	telemetry.Warn("import.llm_fallback", map[string]any{"err": err.Error()})
	if l.Fallback == nil {
		return document.Resume{}, err
	}
	return l.Fallback.Import(ctx, text)
}

func (l *LLMImporter) complete(ctx context.Context, text string) (document.Resume, error) {
	if !llm.IsConfigured(l.LLM) {
		return document.Resume{}, llm.ErrNotImplemented
	}
	raw, err := l.LLM.Complete(ctx, llm.ImportPrompt(text))
	if err != nil {
		return document.Resume{}, fmt.Errorf("llm import: %w", err)
	}
	raw = strings.TrimSpace(raw)
	var probe map[string]any
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return document.Resume{}, fmt.Errorf("llm import: invalid json: %w", err)
	}
	if err := document.ValidateContent(raw); err != nil {
		return document.Resume{}, fmt.Errorf("llm import: %w", err)
	}
	doc := document.Load(raw, l.IDs)
	doc.RawText = text
	return doc, nil
}
