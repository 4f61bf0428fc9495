// Package document defines the editable resume structure and the operations
// that keep it consistent while it is mutated: merge, binding, list sections.
package document

// DefaultTitle is used when a resume is saved without a title.
const DefaultTitle = "Untitled Resume"

// Resume is the full structured representation of one resume being edited.
type Resume struct {
	Personal         Personal         `json:"personal"`
	Summary          string           `json:"summary"`
	Experiences      []Experience     `json:"experiences"`
	Education        []Education      `json:"education"`
	Skills           Skills           `json:"skills"`
	Additional       Additional       `json:"additional"`
	TemplateSettings TemplateSettings `json:"template_settings"`
	// RawText holds content that could not be parsed into the structure.
	RawText string `json:"raw_text,omitempty"`
}

// Personal captures identity and contact details.
type Personal struct {
	FullName  string `json:"full_name"`
	JobTitle  string `json:"job_title"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Location  string `json:"location"`
	LinkedIn  string `json:"linkedin"`
	Portfolio string `json:"portfolio"`
}

// Experience is one position held.
type Experience struct {
	ID           string   `json:"id"`
	JobTitle     string   `json:"job_title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Achievements []string `json:"achievements"`
}

// Education is one degree or program.
type Education struct {
	ID             string `json:"id"`
	Degree         string `json:"degree"`
	Institution    string `json:"institution"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationYear string `json:"graduation_year"`
	GPA            string `json:"gpa"`
}

// Skills groups tag lists by category.
type Skills struct {
	Technical      []string `json:"technical_skills"`
	Soft           []string `json:"soft_skills"`
	Certifications []string `json:"certifications"`
}

// Additional holds free-text sections.
type Additional struct {
	Projects  string `json:"projects"`
	Languages string `json:"languages"`
	Volunteer string `json:"volunteer"`
}

// TemplateSettings are visual parameters applied only at render and export time.
type TemplateSettings struct {
	Name         string `json:"name"`
	ColorScheme  string `json:"color_scheme"`
	FontFamily   string `json:"font_family"`
	ContactIcons bool   `json:"contact_icons"`
	TwoColumn    bool   `json:"two_column"`
}

// SkillCategory names one of the three skill tag lists.
type SkillCategory string

const (
	SkillTechnical      SkillCategory = "technical_skills"
	SkillSoft           SkillCategory = "soft_skills"
	SkillCertifications SkillCategory = "certifications"
)

// SkillCategories lists categories in display order.
var SkillCategories = []SkillCategory{SkillTechnical, SkillSoft, SkillCertifications}

// Default returns an empty resume with default template settings.
func Default() Resume {
	return Resume{
		Experiences: []Experience{},
		Education:   []Education{},
		Skills: Skills{
			Technical:      []string{},
			Soft:           []string{},
			Certifications: []string{},
		},
		TemplateSettings: TemplateSettings{
			Name:         "professional",
			ColorScheme:  "blue",
			FontFamily:   "Inter",
			ContactIcons: true,
			TwoColumn:    false,
		},
	}
}

// Clone returns a deep copy so callers can mutate without aliasing slices.
func (r Resume) Clone() Resume {
	out := r
	out.Experiences = make([]Experience, len(r.Experiences))
	for i, exp := range r.Experiences {
		exp.Achievements = append([]string{}, exp.Achievements...)
		out.Experiences[i] = exp
	}
	out.Education = append([]Education{}, r.Education...)
	out.Skills = Skills{
		Technical:      append([]string{}, r.Skills.Technical...),
		Soft:           append([]string{}, r.Skills.Soft...),
		Certifications: append([]string{}, r.Skills.Certifications...),
	}
	return out
}

// SkillList returns a pointer to the tag list for the category, or nil when unknown.
func (r *Resume) SkillList(category SkillCategory) *[]string {
	switch category {
	case SkillTechnical:
		return &r.Skills.Technical
	case SkillSoft:
		return &r.Skills.Soft
	case SkillCertifications:
		return &r.Skills.Certifications
	default:
		return nil
	}
}

// HasSkills reports whether any category holds at least one skill.
func (r Resume) HasSkills() bool {
	return len(r.Skills.Technical) > 0 || len(r.Skills.Soft) > 0 || len(r.Skills.Certifications) > 0
}
