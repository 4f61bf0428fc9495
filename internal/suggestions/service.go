package suggestions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"resume-builder/internal/llm"
	"resume-builder/internal/shared/cache"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/telemetry"
	"resume-builder/internal/shared/util"
)

// ErrInvalidInput is returned when the resume or job description is empty.
var ErrInvalidInput = errors.New("invalid input")

const (
	SourceLLM   = "llm"
	SourceRules = "rules"
)

// Result is the analysis returned to clients.
type Result struct {
	Keywords     []Keyword `json:"keywords"`
	Entities     []Entity  `json:"entities"`
	Suggestions  []string  `json:"suggestions"`
	InsightsText string    `json:"insights_text"`
	Source       string    `json:"source"`
}

// Service compares a resume against a job description and applies rewrites
// to stored resumes.
type Service struct {
	LLM     llm.Completer
	Cache   cache.Cache
	Resumes ResumeEditor
}

type llmReply struct {
	Suggestions  []string `json:"suggestions"`
	InsightsText string   `json:"insights_text"`
}

// Analyze extracts keywords and entities locally and asks the model for
// suggestions when one is configured. Model failures fall back to rules.
func (s *Service) Analyze(ctx context.Context, resumeText, jobDescription string) (Result, error) {
	resumeText = strings.TrimSpace(resumeText)
	jobDescription = strings.TrimSpace(jobDescription)
	if resumeText == "" || jobDescription == "" {
		return Result{}, ErrInvalidInput
	}

	key := "suggestions:" + util.ContentHash([]byte(resumeText+"\x00"+jobDescription))
	if s.Cache != nil {
		var cached Result
		if ok, err := s.Cache.GetJSON(ctx, key, &cached); err == nil && ok {
			metrics.IncSuggestions()
			return cached, nil
		}
	}

	var (
		res   Result
		reply *llmReply
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res.Keywords = ExtractKeywords(resumeText, jobDescription)
		return nil
	})
	g.Go(func() error {
		res.Entities = ExtractEntities(resumeText)
		return nil
	})
	if llm.IsConfigured(s.LLM) {
		g.Go(func() error {
			r, err := s.complete(gctx, resumeText, jobDescription)
			if err != nil {
				telemetry.Warn("suggestions.llm_fallback", map[string]any{"error": err})
				return nil
			}
			reply = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if reply != nil {
		res.Suggestions = reply.Suggestions
		res.InsightsText = reply.InsightsText
		res.Source = SourceLLM
	} else {
		res.Suggestions = ruleSuggestions(resumeText, res.Keywords, res.Entities)
		res.InsightsText = ruleInsights(res.Keywords)
		res.Source = SourceRules
	}
	if res.Suggestions == nil {
		res.Suggestions = []string{}
	}
	if res.Entities == nil {
		res.Entities = []Entity{}
	}

	if s.Cache != nil {
		if err := s.Cache.SetJSON(ctx, key, res, cache.DefaultTTL); err != nil {
			telemetry.Warn("suggestions.cache_set_failed", map[string]any{"error": err})
		}
	}
	metrics.IncSuggestions()
	return res, nil
}

func (s *Service) complete(ctx context.Context, resumeText, jobDescription string) (*llmReply, error) {
	raw, err := s.LLM.Complete(ctx, llm.SuggestPrompt(resumeText, jobDescription))
	if err != nil {
		return nil, err
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	var reply llmReply
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &reply); err != nil {
		return nil, fmt.Errorf("llm suggestions: invalid json: %w", err)
	}
	if len(reply.Suggestions) == 0 {
		return nil, errors.New("llm suggestions: empty reply")
	}
	if len(reply.Suggestions) > maxSuggestions {
		reply.Suggestions = reply.Suggestions[:maxSuggestions]
	}
	return &reply, nil
}
