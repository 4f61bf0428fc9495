package preview

import (
	"resume-builder/resume/document"
)

// ExperienceEditor renders the editable experience cards. Inputs are named
// experiences[i].field and delete controls carry the item id.
func ExperienceEditor(doc document.Resume) (string, error) {
	return executeFragment("experience-editor", doc.Experiences)
}

// EducationEditor renders the editable education cards.
func EducationEditor(doc document.Resume) (string, error) {
	return executeFragment("education-editor", doc.Education)
}

// SkillsEditor renders the tag list of one skill category.
func SkillsEditor(doc document.Resume, category document.SkillCategory) (string, error) {
	list := doc.SkillList(category)
	if list == nil {
		return "", nil
	}
	return executeFragment("skills-editor", struct {
		Category document.SkillCategory
		Skills   []string
	}{category, *list})
}
