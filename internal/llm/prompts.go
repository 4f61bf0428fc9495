package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/import.txt
	importPrompt string
	//go:embed prompts/suggest.txt
	suggestPrompt string
)

// ImportPrompt asks the model to convert resume text into the editor's JSON shape.
func ImportPrompt(resumeText string) string {
	return strings.Replace(importPrompt, "{{RESUME_TEXT}}", resumeText, 1)
}

// SuggestPrompt asks the model for improvement suggestions against a job description.
func SuggestPrompt(resumeText, jobDescription string) string {
	out := strings.Replace(suggestPrompt, "{{RESUME_TEXT}}", resumeText, 1)
	return strings.Replace(out, "{{JOB_DESCRIPTION}}", jobDescription, 1)
}
