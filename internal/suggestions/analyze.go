package suggestions

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Keyword is a job-description term ranked by frequency.
type Keyword struct {
	Term     string `json:"term"`
	Count    int    `json:"count"`
	InResume bool   `json:"in_resume"`
}

// Entity is a span recognised in the resume text.
type Entity struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

const (
	EntityEmail      = "EMAIL"
	EntityPhone      = "PHONE"
	EntityURL        = "URL"
	EntityDuration   = "DURATION"
	EntityProperNoun = "PROPER_NOUN"
)

const maxKeywords = 25

var (
	emailRe    = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	phoneRe    = regexp.MustCompile(`\+?\d[\d\s().\-]{7,}\d`)
	urlRe      = regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s,;]+`)
	durationRe = regexp.MustCompile(`(?i)\b\d+\+?\s*(?:years?|yrs?|months?)\b`)
	properRe   = regexp.MustCompile(`\b[A-Z][a-zA-Z0-9&]+(?:\s+[A-Z][a-zA-Z0-9&]+)+\b`)
	digitRe    = regexp.MustCompile(`\d`)
)

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a about above after again against all also am an and any are as at be
		because been before being below between both but by can could did do does doing down during each
		etc few for from further had has have having he her here hers him his how i if in into is it its
		itself just me more most must my no nor not of off on once only or other our ours out over own
		per plus same she should so some such than that the their theirs them then there these they this
		those through to too under until up very via was we were what when where which while who whom why
		will with within without would you your yours
		ability able strong excellent good great new work working team teams role candidate candidates
		experience experienced looking join including include includes required requirements preferred
		responsibilities skills skill knowledge years year plus well etc using use used across help`) {
		stopwords[w] = struct{}{}
	}
}

// tokenize lowercases text and splits it into terms, keeping characters that
// commonly appear inside technology names such as c++, c# and node.js.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '#' || r == '.' || r == '-')
	})
	out := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".-")
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		if digitRe.MatchString(f) && strings.Trim(f, "0123456789") == "" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// ExtractKeywords ranks job-description terms and marks which already appear
// in the resume. Ties are broken alphabetically.
func ExtractKeywords(resumeText, jobDescription string) []Keyword {
	counts := make(map[string]int)
	for _, tok := range tokenize(jobDescription) {
		counts[tok]++
	}
	present := make(map[string]struct{})
	for _, tok := range tokenize(resumeText) {
		present[tok] = struct{}{}
	}

	keywords := make([]Keyword, 0, len(counts))
	for term, n := range counts {
		_, ok := present[term]
		keywords = append(keywords, Keyword{Term: term, Count: n, InResume: ok})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Term < keywords[j].Term
	})
	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

// MissingKeywords returns the terms not found in the resume, in rank order.
func MissingKeywords(keywords []Keyword) []string {
	var out []string
	for _, k := range keywords {
		if !k.InResume {
			out = append(out, k.Term)
		}
	}
	return out
}

// ExtractEntities finds contact details, durations and capitalised phrases.
func ExtractEntities(text string) []Entity {
	var out []Entity
	seen := make(map[string]struct{})
	add := func(typ string, matches []string) {
		for _, m := range matches {
			m = strings.TrimSpace(m)
			key := typ + "\x00" + strings.ToLower(m)
			if _, dup := seen[key]; dup || m == "" {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, Entity{Text: m, Type: typ})
		}
	}

	add(EntityEmail, emailRe.FindAllString(text, -1))
	add(EntityURL, urlRe.FindAllString(text, -1))

	// Phone patterns also match date ranges like 2019-2021, so require enough digits.
	var phones []string
	for _, m := range phoneRe.FindAllString(text, -1) {
		if len(digitRe.FindAllString(m, -1)) >= 10 {
			phones = append(phones, m)
		}
	}
	add(EntityPhone, phones)
	add(EntityDuration, durationRe.FindAllString(text, -1))
	add(EntityProperNoun, properRe.FindAllString(text, -1))
	return out
}
