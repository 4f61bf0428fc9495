// Package export turns a resume into downloadable files using the same section
// order and visibility rules as the live preview.
package export

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

// Format identifies an export file type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// Exporter renders a resume into a file.
type Exporter interface {
	Export(ctx context.Context, doc document.Resume) ([]byte, error)
	ContentType() string
	Extension() string
}

// ParseFormat normalizes a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "pdf":
		return FormatPDF, nil
	case "docx", "word":
		return FormatDOCX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", raw)
	}
}

// Registry maps each format to its exporter. With chrome set, PDF exports are
// printed from the HTML preview instead of laid out directly.
func Registry(chrome bool) map[Format]Exporter {
	reg := map[Format]Exporter{
		FormatPDF:  PDF{},
		FormatDOCX: DOCX{},
	}
	if chrome {
		reg[FormatPDF] = ChromePDF{}
	}
	return reg
}

var unsafeFileChars = regexp.MustCompile(`(?i)[^a-z0-9]`)

// Filename derives a filesystem safe name from the resume title.
func Filename(title, ext string) string {
	base := title
	if strings.TrimSpace(base) == "" {
		base = "resume"
	}
	base = strings.ToLower(unsafeFileChars.ReplaceAllString(base, "_"))
	return base + "." + strings.TrimPrefix(ext, ".")
}

// Line is one styled line of exported text.
type Line struct {
	Text  string
	Style string
}

// Block is a run of lines kept together on one page when it fits.
type Block struct {
	Lines []Line
}

// Layout lists the blocks of the document in export order: header, Summary,
// Experience, Education, Skills. Sections the preview hides are omitted.
func Layout(doc document.Resume) []Block {
	vm := preview.Project(doc)
	var blocks []Block

	header := Block{Lines: []Line{
		{Text: vm.Name, Style: StyleName},
		{Text: vm.JobTitle, Style: StyleJobTitle},
	}}
	if contact := contactLine(vm); contact != "" {
		header.Lines = append(header.Lines, Line{Text: contact, Style: StyleContact})
	}
	blocks = append(blocks, header)

	if vm.ShowSummary {
		blocks = append(blocks, Block{Lines: []Line{
			{Text: "Summary", Style: StyleSectionHeading},
			{Text: vm.Summary, Style: StyleBody},
		}})
	}

	if vm.ShowExperience {
		for i, exp := range vm.Experiences {
			var b Block
			if i == 0 {
				b.Lines = append(b.Lines, Line{Text: "Experience", Style: StyleSectionHeading})
			}
			b.Lines = append(b.Lines,
				Line{Text: exp.Title + " | " + exp.CompanyLine + " | " + exp.DateRange, Style: StyleRoleLine},
			)
			for _, a := range exp.Achievements {
				b.Lines = append(b.Lines, Line{Text: a, Style: StyleBullet})
			}
			blocks = append(blocks, b)
		}
	}

	if vm.ShowEducation {
		for i, edu := range vm.Education {
			var b Block
			if i == 0 {
				b.Lines = append(b.Lines, Line{Text: "Education", Style: StyleSectionHeading})
			}
			b.Lines = append(b.Lines, Line{Text: edu.Degree + " | " + edu.Institution + " | " + edu.Year, Style: StyleRoleLine})
			if edu.FieldOfStudy != "" {
				b.Lines = append(b.Lines, Line{Text: edu.FieldOfStudy, Style: StyleMeta})
			}
			if edu.GPA != "" {
				b.Lines = append(b.Lines, Line{Text: edu.GPA, Style: StyleMeta})
			}
			blocks = append(blocks, b)
		}
	}

	if vm.ShowSkills {
		b := Block{Lines: []Line{{Text: "Skills", Style: StyleSectionHeading}}}
		for _, g := range vm.SkillGroups {
			b.Lines = append(b.Lines, Line{Text: g.Line(), Style: StyleBody})
		}
		blocks = append(blocks, b)
	}

	return blocks
}

func contactLine(vm preview.ViewModel) string {
	parts := make([]string, 0, len(vm.Contacts))
	for _, c := range vm.Contacts {
		if c.Href != "" {
			parts = append(parts, c.Href)
			continue
		}
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, " | ")
}
