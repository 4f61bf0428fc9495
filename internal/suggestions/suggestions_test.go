package suggestions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/llm"
	"resume-builder/internal/resumes"
	"resume-builder/internal/shared/cache"
	"resume-builder/resume/document"
)

type fakeLLM struct {
	reply string
	err   error
	calls atomic.Int32
}

func (f *fakeLLM) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls.Add(1)
	return f.reply, f.err
}

const (
	resumeText = "Managed a team of backend engineers. Helped with Kubernetes rollout."
	jobText    = "Go Go Kubernetes Terraform Terraform Terraform AWS"
)

func TestExtractKeywordsRanksAndMarksPresence(t *testing.T) {
	got := ExtractKeywords("Go developer with Kubernetes", jobText)
	require.Len(t, got, 4)
	assert.Equal(t, Keyword{Term: "terraform", Count: 3, InResume: false}, got[0])
	assert.Equal(t, Keyword{Term: "go", Count: 2, InResume: true}, got[1])
	assert.Equal(t, Keyword{Term: "aws", Count: 1, InResume: false}, got[2])
	assert.Equal(t, Keyword{Term: "kubernetes", Count: 1, InResume: true}, got[3])
	assert.Equal(t, []string{"terraform", "aws"}, MissingKeywords(got))
}

func TestExtractKeywordsSkipsStopwordsAndNumbers(t *testing.T) {
	got := ExtractKeywords("", "We are looking for the best C++ and C# engineers with 5 years")
	terms := make([]string, 0, len(got))
	for _, k := range got {
		terms = append(terms, k.Term)
	}
	assert.ElementsMatch(t, []string{"best", "c++", "c#", "engineers"}, terms)
}

func TestExtractEntities(t *testing.T) {
	text := "Jane Doe\njane@example.com | +1 555 123 4567\nhttps://github.com/jane\n5+ years at Acme Corp, 2019-2021"
	got := ExtractEntities(text)

	assert.Contains(t, got, Entity{Text: "jane@example.com", Type: EntityEmail})
	assert.Contains(t, got, Entity{Text: "https://github.com/jane", Type: EntityURL})
	assert.Contains(t, got, Entity{Text: "+1 555 123 4567", Type: EntityPhone})
	assert.Contains(t, got, Entity{Text: "5+ years", Type: EntityDuration})
	assert.Contains(t, got, Entity{Text: "Acme Corp", Type: EntityProperNoun})
	assert.Contains(t, got, Entity{Text: "Jane Doe", Type: EntityProperNoun})
	for _, e := range got {
		assert.NotEqual(t, "2019-2021", e.Text)
	}
}

func TestRewriteActionVerbs(t *testing.T) {
	got := RewriteActionVerbs("Managed a team and helped with hiring. Responsible for budget.")
	assert.Equal(t, "Spearheaded a team and Facilitated hiring. Pioneered budget.", got)
}

func TestAnalyzeUsesRulesWithoutModel(t *testing.T) {
	svc := &Service{LLM: llm.PlaceholderClient{}}
	res, err := svc.Analyze(context.Background(), resumeText, jobText)
	require.NoError(t, err)

	assert.Equal(t, SourceRules, res.Source)
	assert.NotEmpty(t, res.Keywords)
	assert.Contains(t, res.Suggestions, "Add evidence for these job keywords: terraform, go, aws.")
	assert.Contains(t, res.Suggestions, `Replace "Managed" with a stronger verb such as "Spearheaded".`)
	assert.Contains(t, res.Suggestions, `Replace "Helped with" with a stronger verb such as "Facilitated".`)
	assert.Contains(t, res.Suggestions, "Quantify achievements with numbers, percentages or amounts.")
	assert.Equal(t, "Your resume covers 1 of the top 4 job keywords (25%).", res.InsightsText)
}

func TestAnalyzeUsesModelReply(t *testing.T) {
	model := &fakeLLM{reply: "```json\n{\"suggestions\":[\"Mention Terraform\"],\"insights_text\":\"Close match\"}\n```"}
	svc := &Service{LLM: model}

	res, err := svc.Analyze(context.Background(), resumeText, jobText)
	require.NoError(t, err)
	assert.Equal(t, SourceLLM, res.Source)
	assert.Equal(t, []string{"Mention Terraform"}, res.Suggestions)
	assert.Equal(t, "Close match", res.InsightsText)
	assert.NotEmpty(t, res.Keywords)
	assert.EqualValues(t, 1, model.calls.Load())
}

func TestAnalyzeFallsBackOnModelFailure(t *testing.T) {
	for name, model := range map[string]*fakeLLM{
		"error":      {err: errors.New("timeout")},
		"not json":   {reply: "Here are my thoughts"},
		"no entries": {reply: `{"suggestions":[]}`},
	} {
		t.Run(name, func(t *testing.T) {
			svc := &Service{LLM: model}
			res, err := svc.Analyze(context.Background(), resumeText, jobText)
			require.NoError(t, err)
			assert.Equal(t, SourceRules, res.Source)
			assert.NotEmpty(t, res.Suggestions)
		})
	}
}

func TestAnalyzeCachesResults(t *testing.T) {
	model := &fakeLLM{reply: `{"suggestions":["one"],"insights_text":"ok"}`}
	svc := &Service{LLM: model, Cache: cache.NewMemory()}

	first, err := svc.Analyze(context.Background(), resumeText, jobText)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), "  "+resumeText+"\n", jobText)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.EqualValues(t, 1, model.calls.Load())
}

func TestAnalyzeRejectsEmptyInput(t *testing.T) {
	svc := &Service{}
	_, err := svc.Analyze(context.Background(), "  ", jobText)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(&Service{}).RegisterRoutes(r.Group("/api/v1"))

	cases := []struct {
		name   string
		body   string
		status int
		want   string
	}{
		{"ok", `{"resume_text":"Go developer","job_description":"Go Terraform"}`, http.StatusOK, `"source":"rules"`},
		{"missing job", `{"resume_text":"Go developer"}`, http.StatusBadRequest, `"validation_error"`},
		{"bad json", `{`, http.StatusBadRequest, `"validation_error"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/suggestions", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tc.want)
		})
	}
}

func TestApplyActionVerbsRewritesSummary(t *testing.T) {
	doc := document.Default()
	doc.Summary = "Managed a platform team."
	doc.Experiences = []document.Experience{{ID: "e1", Achievements: []string{"Helped with hiring"}}}
	store := document.NewStore(doc, nil)

	applied, err := ApplyActionVerbs(store)
	require.NoError(t, err)
	assert.Equal(t, Applied{Path: "summary", Value: "Spearheaded a platform team."}, applied)

	got := store.Snapshot()
	assert.Equal(t, "Spearheaded a platform team.", got.Summary)
	assert.Equal(t, "Helped with hiring", got.Experiences[0].Achievements[0], "achievements are untouched when a summary exists")
}

func TestApplyActionVerbsFallsBackToFirstAchievement(t *testing.T) {
	doc := document.Default()
	doc.Experiences = []document.Experience{{ID: "e1", Achievements: []string{"Responsible for billing", "Managed on-call"}}}
	store := document.NewStore(doc, nil)

	applied, err := ApplyActionVerbs(store)
	require.NoError(t, err)
	assert.Equal(t, "experiences[0].achievements[0]", applied.Path)
	assert.Equal(t, []string{"Pioneered billing", "Managed on-call"}, store.Snapshot().Experiences[0].Achievements)
}

func TestApplyActionVerbsLeavesDocumentWhenNothingMatches(t *testing.T) {
	for name, doc := range map[string]document.Resume{
		"strong summary": func() document.Resume {
			d := document.Default()
			d.Summary = "Led a platform team."
			return d
		}(),
		"empty resume": document.Default(),
	} {
		t.Run(name, func(t *testing.T) {
			store := document.NewStore(doc, nil)
			var notified int
			store.Subscribe(func(document.Resume) { notified++ })

			_, err := ApplyActionVerbs(store)
			assert.ErrorIs(t, err, ErrNothingToApply)
			assert.Equal(t, doc, store.Snapshot())
			assert.Zero(t, notified)
		})
	}
}

func TestApplyToResumeSavesRewrite(t *testing.T) {
	ctx := context.Background()
	resumeSvc := &resumes.Service{Repo: resumes.NewMemoryRepo()}
	doc := document.Default()
	doc.Summary = "Managed backend services."
	content, err := document.Serialize(doc)
	require.NoError(t, err)
	saved, err := resumeSvc.Save(ctx, "guest:a", resumes.SaveInput{Title: "CV", Content: content})
	require.NoError(t, err)

	svc := &Service{Resumes: resumeSvc}
	applied, err := svc.ApplyToResume(ctx, "guest:a", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "summary", applied.Path)

	stored, reloaded, err := resumeSvc.Document(ctx, "guest:a", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "CV", stored.Title)
	assert.Equal(t, "Spearheaded backend services.", reloaded.Summary)

	_, err = svc.ApplyToResume(ctx, "guest:a", saved.ID)
	assert.ErrorIs(t, err, ErrNothingToApply)

	_, err = svc.ApplyToResume(ctx, "guest:b", saved.ID)
	assert.ErrorIs(t, err, resumes.ErrNotFound)
}
