package suggestions

import (
	"fmt"
	"regexp"
	"strings"
)

const maxSuggestions = 8

type verbRewrite struct {
	pattern *regexp.Regexp
	weak    string
	strong  string
}

var verbRewrites = []verbRewrite{
	{regexp.MustCompile(`(?i)\bhelped with\b`), "Helped with", "Facilitated"},
	{regexp.MustCompile(`(?i)\bmanaged\b`), "Managed", "Spearheaded"},
	{regexp.MustCompile(`(?i)\bresponsible for\b`), "Responsible for", "Pioneered"},
}

// RewriteActionVerbs replaces weak openers with stronger action verbs.
func RewriteActionVerbs(text string) string {
	for _, rw := range verbRewrites {
		text = rw.pattern.ReplaceAllString(text, rw.strong)
	}
	return text
}

// ruleSuggestions builds suggestions without a model.
func ruleSuggestions(resumeText string, keywords []Keyword, entities []Entity) []string {
	var out []string

	if missing := MissingKeywords(keywords); len(missing) > 0 {
		if len(missing) > 6 {
			missing = missing[:6]
		}
		out = append(out, fmt.Sprintf("Add evidence for these job keywords: %s.", strings.Join(missing, ", ")))
	}

	for _, rw := range verbRewrites {
		if rw.pattern.MatchString(resumeText) {
			out = append(out, fmt.Sprintf("Replace %q with a stronger verb such as %q.", rw.weak, rw.strong))
		}
	}

	if !digitRe.MatchString(resumeText) {
		out = append(out, "Quantify achievements with numbers, percentages or amounts.")
	}

	if !hasEntity(entities, EntityEmail) {
		out = append(out, "Include a professional email address in your contact details.")
	}

	if words := len(strings.Fields(resumeText)); words < 150 {
		out = append(out, "Expand your experience bullets; the resume is short for most applicant tracking systems.")
	} else if words > 900 {
		out = append(out, "Trim older or less relevant roles so the resume stays within two pages.")
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func ruleInsights(keywords []Keyword) string {
	if len(keywords) == 0 {
		return "The job description has no distinctive keywords to compare against."
	}
	matched := 0
	for _, k := range keywords {
		if k.InResume {
			matched++
		}
	}
	pct := matched * 100 / len(keywords)
	return fmt.Sprintf("Your resume covers %d of the top %d job keywords (%d%%).", matched, len(keywords), pct)
}

func hasEntity(entities []Entity, typ string) bool {
	for _, e := range entities {
		if e.Type == typ {
			return true
		}
	}
	return false
}
