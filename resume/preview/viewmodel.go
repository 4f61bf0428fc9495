// Package preview projects a resume into a display model and applies it to
// an HTML preview page.
package preview

import (
	"fmt"
	"strings"

	"resume-builder/resume/document"
)

// DefaultAccent is used for unknown or missing color schemes.
const DefaultAccent = "#2563EB"

var colorMap = map[string]string{
	"blue":   "#2563EB",
	"purple": "#7C3AED",
	"green":  "#10B981",
	"red":    "#EF4444",
	"yellow": "#F59E0B",
	"gray":   "#4B5563",
}

// AccentColor maps a named color scheme to its hex accent.
func AccentColor(scheme string) string {
	if hex, ok := colorMap[strings.ToLower(strings.TrimSpace(scheme))]; ok {
		return hex
	}
	return DefaultAccent
}

// ViewModel is everything the preview shows. It depends only on the resume
// and its template settings.
type ViewModel struct {
	TemplateClass string
	TwoColumn     bool
	Accent        string
	FontFamily    string
	ContactIcons  bool

	Name     string
	JobTitle string
	Contacts []Contact

	ShowSummary bool
	Summary     string

	ShowExperience bool
	Experiences    []ExperienceView

	ShowEducation bool
	Education     []EducationView

	ShowSkills  bool
	SkillGroups []SkillGroup
}

// Contact is one entry of the contact line.
type Contact struct {
	Kind string
	Text string
	Href string
	Icon string
}

// ExperienceView is one rendered experience entry.
type ExperienceView struct {
	ID           string
	Title        string
	CompanyLine  string
	DateRange    string
	Achievements []string
}

// EducationView is one rendered education entry.
type EducationView struct {
	ID           string
	Degree       string
	Institution  string
	FieldOfStudy string
	Year         string
	GPA          string
}

// SkillGroup is a non-empty skill category.
type SkillGroup struct {
	Label  string
	Skills []string
}

// Line renders the group as "Label: a, b".
func (g SkillGroup) Line() string {
	return fmt.Sprintf("%s: %s", g.Label, strings.Join(g.Skills, ", "))
}

var skillLabels = map[document.SkillCategory]string{
	document.SkillTechnical:      "Technical",
	document.SkillSoft:           "Soft",
	document.SkillCertifications: "Certifications",
}

// Project builds the view model for doc.
func Project(doc document.Resume) ViewModel {
	settings := doc.TemplateSettings
	templateName := strings.TrimSpace(settings.Name)
	if templateName == "" {
		templateName = "professional"
	}
	font := strings.TrimSpace(settings.FontFamily)
	if font == "" {
		font = "Inter"
	}

	vm := ViewModel{
		TemplateClass: "template-" + templateName,
		TwoColumn:     settings.TwoColumn,
		Accent:        AccentColor(settings.ColorScheme),
		FontFamily:    fmt.Sprintf("'%s', sans-serif", font),
		ContactIcons:  settings.ContactIcons,
		Name:          orDefault(doc.Personal.FullName, "Your Name"),
		JobTitle:      orDefault(doc.Personal.JobTitle, "Your Job Title"),
		Contacts:      contacts(doc.Personal),
		Summary:       doc.Summary,
		ShowSummary:   doc.Summary != "",
	}

	for _, exp := range doc.Experiences {
		companyLine := orDefault(exp.Company, "Company")
		if exp.Location != "" {
			companyLine += ", " + exp.Location
		}
		vm.Experiences = append(vm.Experiences, ExperienceView{
			ID:           exp.ID,
			Title:        orDefault(exp.JobTitle, "Job Title"),
			CompanyLine:  companyLine,
			DateRange:    orDefault(exp.StartDate, "StartDate") + " - " + orDefault(exp.EndDate, "EndDate"),
			Achievements: append([]string{}, exp.Achievements...),
		})
	}
	vm.ShowExperience = len(vm.Experiences) > 0

	for _, edu := range doc.Education {
		view := EducationView{
			ID:           edu.ID,
			Degree:       orDefault(edu.Degree, "Degree"),
			Institution:  orDefault(edu.Institution, "Institution"),
			FieldOfStudy: edu.FieldOfStudy,
			Year:         orDefault(edu.GraduationYear, "Year"),
		}
		if edu.GPA != "" {
			view.GPA = "GPA: " + edu.GPA
		}
		vm.Education = append(vm.Education, view)
	}
	vm.ShowEducation = len(vm.Education) > 0

	for _, category := range document.SkillCategories {
		list := doc.SkillList(category)
		if list == nil || len(*list) == 0 {
			continue
		}
		vm.SkillGroups = append(vm.SkillGroups, SkillGroup{
			Label:  skillLabels[category],
			Skills: append([]string{}, (*list)...),
		})
	}
	vm.ShowSkills = len(vm.SkillGroups) > 0

	return vm
}

func contacts(p document.Personal) []Contact {
	var out []Contact
	if p.Email != "" {
		out = append(out, Contact{Kind: "email", Text: p.Email, Icon: "fas fa-envelope"})
	}
	if p.Phone != "" {
		out = append(out, Contact{Kind: "phone", Text: p.Phone, Icon: "fas fa-phone"})
	}
	if p.Location != "" {
		out = append(out, Contact{Kind: "location", Text: p.Location, Icon: "fas fa-map-marker-alt"})
	}
	if p.LinkedIn != "" {
		out = append(out, Contact{Kind: "linkedin", Text: "LinkedIn", Href: p.LinkedIn, Icon: "fab fa-linkedin"})
	}
	if p.Portfolio != "" {
		out = append(out, Contact{Kind: "portfolio", Text: "Portfolio", Href: p.Portfolio, Icon: "fas fa-globe"})
	}
	return out
}

func orDefault(val, def string) string {
	if val == "" {
		return def
	}
	return val
}
