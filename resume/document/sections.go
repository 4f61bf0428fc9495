package document

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var itemFieldPattern = regexp.MustCompile(`^(\w+)\[(\d+)\]\.(\w+)$`)

// AddExperience appends an empty experience and returns its id.
func (r *Resume) AddExperience(ids IDGenerator) string {
	id := ids.NewID()
	r.Experiences = append(r.Experiences, Experience{ID: id, Achievements: []string{}})
	return id
}

// AddEducation appends an empty education entry and returns its id.
func (r *Resume) AddEducation(ids IDGenerator) string {
	id := ids.NewID()
	r.Education = append(r.Education, Education{ID: id})
	return id
}

// DeleteExperience removes the experience with the given id.
func (r *Resume) DeleteExperience(id string) bool {
	kept := make([]Experience, 0, len(r.Experiences))
	for _, exp := range r.Experiences {
		if exp.ID != id {
			kept = append(kept, exp)
		}
	}
	removed := len(kept) != len(r.Experiences)
	r.Experiences = kept
	return removed
}

// DeleteEducation removes the education entry with the given id.
func (r *Resume) DeleteEducation(id string) bool {
	kept := make([]Education, 0, len(r.Education))
	for _, edu := range r.Education {
		if edu.ID != id {
			kept = append(kept, edu)
		}
	}
	removed := len(kept) != len(r.Education)
	r.Education = kept
	return removed
}

// EditItem updates one field of a list item addressed as list[index].field.
// The achievements field takes newline separated text.
func (r *Resume) EditItem(path, value string) error {
	m := itemFieldPattern.FindStringSubmatch(strings.TrimSpace(path))
	if m == nil {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	list, field := m[1], m[3]
	idx, err := strconv.Atoi(m[2])
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}

	switch list {
	case "experiences":
		if idx >= len(r.Experiences) {
			return fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
		}
		return setExperienceField(&r.Experiences[idx], field, value)
	case "education":
		if idx >= len(r.Education) {
			return fmt.Errorf("%w: %s", ErrIndexOutOfRange, path)
		}
		return setEducationField(&r.Education[idx], field, value)
	default:
		return fmt.Errorf("%w: unknown list %q", ErrInvalidPath, list)
	}
}

func setExperienceField(exp *Experience, field, value string) error {
	switch field {
	case "job_title":
		exp.JobTitle = value
	case "company":
		exp.Company = value
	case "location":
		exp.Location = value
	case "start_date":
		exp.StartDate = value
	case "end_date":
		exp.EndDate = value
	case "achievements":
		exp.Achievements = SplitAchievements(value)
	default:
		return fmt.Errorf("%w: unknown experience field %q", ErrInvalidPath, field)
	}
	return nil
}

func setEducationField(edu *Education, field, value string) error {
	switch field {
	case "degree":
		edu.Degree = value
	case "institution":
		edu.Institution = value
	case "field_of_study":
		edu.FieldOfStudy = value
	case "graduation_year":
		edu.GraduationYear = value
	case "gpa":
		edu.GPA = value
	default:
		return fmt.Errorf("%w: unknown education field %q", ErrInvalidPath, field)
	}
	return nil
}

// SplitAchievements turns textarea content into one achievement per non-empty line.
func SplitAchievements(raw string) []string {
	out := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// AddSkill appends a trimmed skill to a category. Empty values and values the
// category already holds are ignored.
func (r *Resume) AddSkill(category SkillCategory, value string) bool {
	list := r.SkillList(category)
	value = strings.TrimSpace(value)
	if list == nil || value == "" {
		return false
	}
	for _, existing := range *list {
		if existing == value {
			return false
		}
	}
	*list = append(*list, value)
	return true
}

// RemoveSkill deletes every exact match of value from a category.
func (r *Resume) RemoveSkill(category SkillCategory, value string) bool {
	list := r.SkillList(category)
	if list == nil {
		return false
	}
	kept := make([]string, 0, len(*list))
	for _, existing := range *list {
		if existing != value {
			kept = append(kept, existing)
		}
	}
	removed := len(kept) != len(*list)
	*list = kept
	return removed
}
