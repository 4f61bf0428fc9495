package importer

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"resume-builder/resume/document"
)

const (
	maxNameLength  = 50
	contactWindow  = 5
	sectionSummary = "summary"
	sectionExp     = "experience"
	sectionEdu     = "education"
	sectionSkills  = "skills"
	sectionProj    = "projects"
)

var (
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phoneRegex = regexp.MustCompile(`(\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})`)
	nameRegex  = regexp.MustCompile(`^[A-Z][a-zA-Z'.-]*(\s+[A-Z][a-zA-Z'.-]*)+$`)
	skillSplit = regexp.MustCompile(`[\n,;•·▪●◦\x{2022}]+`)
	bulletTrim = "-*•·▪●◦ \t"
)

var sectionHeaders = map[string][]string{
	sectionSummary: {"summary", "objective", "profile", "professional summary", "career summary", "career objective", "about me"},
	sectionExp:     {"experience", "work experience", "work history", "professional experience", "employment history", "employment"},
	sectionEdu:     {"education", "academic background", "education and training"},
	sectionSkills:  {"skills", "technical skills", "core competencies", "key skills"},
	sectionProj:    {"projects", "personal projects", "key projects"},
}

// Heuristic is a regex and header based importer. It never fails; text it
// cannot place stays available in RawText.
type Heuristic struct {
	IDs document.IDGenerator
}

// NewHeuristic returns a heuristic importer using ids for new list items.
func NewHeuristic(ids document.IDGenerator) *Heuristic {
	if ids == nil {
		ids = document.UUIDGenerator{}
	}
	return &Heuristic{IDs: ids}
}

// Import parses text line by line.
func (h *Heuristic) Import(_ context.Context, text string) (document.Resume, error) {
	doc := document.Default()
	doc.RawText = text

	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return doc, nil
	}

	doc.Personal.FullName = nameCandidate(lines[0])
	for i := 0; i < len(lines) && i < contactWindow; i++ {
		if doc.Personal.Email == "" {
			doc.Personal.Email = emailRegex.FindString(lines[i])
		}
		if doc.Personal.Phone == "" {
			doc.Personal.Phone = phoneRegex.FindString(lines[i])
		}
	}

	var (
		current string
		buffer  []string
	)
	flush := func() {
		if current != "" {
			h.applySection(&doc, current, buffer)
		}
		buffer = nil
	}
	for _, line := range lines[1:] {
		if section, ok := matchHeader(line); ok {
			flush()
			current = section
			continue
		}
		if current != "" {
			buffer = append(buffer, line)
		}
	}
	flush()

	return doc, nil
}

func (h *Heuristic) applySection(doc *document.Resume, section string, lines []string) {
	if len(lines) == 0 {
		return
	}
	switch section {
	case sectionSummary:
		paragraph := strings.Join(lines, " ")
		if doc.Summary != "" {
			doc.Summary += "\n\n" + paragraph
		} else {
			doc.Summary = paragraph
		}
	case sectionSkills:
		technical, soft := bisect(splitSkills(strings.Join(lines, "\n")))
		for _, s := range technical {
			doc.AddSkill(document.SkillTechnical, s)
		}
		for _, s := range soft {
			doc.AddSkill(document.SkillSoft, s)
		}
	case sectionExp:
		exp := document.Experience{
			ID:           h.IDs.NewID(),
			JobTitle:     stripBullet(lines[0]),
			Achievements: []string{},
		}
		for _, line := range lines[1:] {
			if item := stripBullet(line); item != "" {
				exp.Achievements = append(exp.Achievements, item)
			}
		}
		doc.Experiences = append(doc.Experiences, exp)
	case sectionEdu:
		edu := document.Education{ID: h.IDs.NewID(), Degree: stripBullet(lines[0])}
		if len(lines) > 1 {
			rest := make([]string, 0, len(lines)-1)
			for _, line := range lines[1:] {
				rest = append(rest, stripBullet(line))
			}
			edu.Institution = strings.Join(rest, ", ")
		}
		doc.Education = append(doc.Education, edu)
	case sectionProj:
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			items = append(items, stripBullet(line))
		}
		if doc.Additional.Projects != "" {
			doc.Additional.Projects += "\n"
		}
		doc.Additional.Projects += strings.Join(items, "\n")
	}
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func nameCandidate(line string) string {
	if nameRegex.MatchString(line) {
		return line
	}
	runes := []rune(line)
	if len(runes) > maxNameLength {
		return string(runes[:maxNameLength])
	}
	return line
}

func matchHeader(line string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(strings.TrimRight(line, ": ")))
	normalized = strings.Join(strings.FieldsFunc(normalized, func(r rune) bool {
		return !unicode.IsLetter(r)
	}), " ")
	if normalized == "" {
		return "", false
	}
	for section, synonyms := range sectionHeaders {
		for _, synonym := range synonyms {
			if normalized == synonym {
				return section, true
			}
		}
	}
	return "", false
}

func splitSkills(raw string) []string {
	seen := map[string]bool{}
	var out []string
	for _, part := range skillSplit.Split(raw, -1) {
		skill := strings.TrimSpace(strings.Trim(part, bulletTrim))
		if skill == "" || seen[strings.ToLower(skill)] {
			continue
		}
		seen[strings.ToLower(skill)] = true
		out = append(out, skill)
	}
	return out
}

// bisect puts the first half (rounded up) into technical and the rest into soft.
func bisect(skills []string) ([]string, []string) {
	mid := (len(skills) + 1) / 2
	return skills[:mid], skills[mid:]
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, bulletTrim))
}
