package preview

import (
	"fmt"
	"html/template"
	"strings"
)

var fragments = template.Must(template.New("fragments").Funcs(template.FuncMap{
	"join":   strings.Join,
	"iconOf": iconOf,
	"field":  field,
}).Parse(`
{{define "contacts"}}{{range .Contacts}}<span class="contact-{{.Kind}}">
{{- if .Href}}<a href="{{.Href}}" target="_blank">{{template "icon" (iconOf $.ContactIcons .)}}{{.Text}}</a>
{{- else}}{{template "icon" (iconOf $.ContactIcons .)}}{{.Text}}{{end}}</span>{{end}}{{end}}

{{define "icon"}}{{if .}}<i class="{{.}}"></i> {{end}}{{end}}

{{define "experience"}}<h2 class="preview-section-title">EXPERIENCE</h2>
{{- range .Experiences}}<div class="preview-item" data-id="{{.ID}}"><h3>{{.Title}}</h3><p class="company">{{.CompanyLine}}</p><span class="dates">{{.DateRange}}</span>
{{- with .Achievements}}<ul>{{range .}}<li>{{.}}</li>{{end}}</ul>{{end}}</div>{{end}}{{end}}

{{define "education"}}<h2 class="preview-section-title">EDUCATION</h2>
{{- range .Education}}<div class="preview-item" data-id="{{.ID}}"><h3>{{.Degree}}</h3><p class="institution">{{.Institution}}</p>
{{- with .FieldOfStudy}}<p class="field">{{.}}</p>{{end}}<span class="year">{{.Year}}</span>
{{- with .GPA}}<p class="gpa">{{.}}</p>{{end}}</div>{{end}}{{end}}

{{define "skills"}}<h2 class="preview-section-title">SKILLS</h2>
{{- if .TwoColumn}}<div class="skills-lines">{{range .SkillGroups}}<div><strong>{{.Label}}:</strong> {{join .Skills ", "}}</div>{{end}}</div>
{{- else}}<div class="skills-tags">{{range .SkillGroups}}{{range .Skills}}<span class="skill-tag">{{.}}</span>{{end}}{{end}}</div>{{end}}{{end}}

{{define "experience-editor"}}{{range $i, $e := .}}<div class="editor-item" id="experience-{{$e.ID}}">
{{- template "input" (field "experiences" $i "job_title" $e.JobTitle)}}
{{- template "input" (field "experiences" $i "company" $e.Company)}}
{{- template "input" (field "experiences" $i "location" $e.Location)}}
{{- template "input" (field "experiences" $i "start_date" $e.StartDate)}}
{{- template "input" (field "experiences" $i "end_date" $e.EndDate)}}<textarea name="experiences[{{$i}}].achievements">{{join $e.Achievements "\n"}}</textarea><button class="delete-experience" data-id="{{$e.ID}}">Delete</button></div>{{end}}{{end}}

{{define "education-editor"}}{{range $i, $e := .}}<div class="editor-item" id="education-{{$e.ID}}">
{{- template "input" (field "education" $i "degree" $e.Degree)}}
{{- template "input" (field "education" $i "institution" $e.Institution)}}
{{- template "input" (field "education" $i "field_of_study" $e.FieldOfStudy)}}
{{- template "input" (field "education" $i "graduation_year" $e.GraduationYear)}}
{{- template "input" (field "education" $i "gpa" $e.GPA)}}<button class="delete-education" data-id="{{$e.ID}}">Delete</button></div>{{end}}{{end}}

{{define "input"}}<input name="{{.Name}}" value="{{.Value}}"/>{{end}}

{{define "skills-editor"}}{{$cat := .Category}}{{range .Skills}}<span class="skill-tag">{{.}}<button class="delete-skill" data-category="{{$cat}}" data-skill="{{.}}">&times;</button></span>{{end}}{{end}}
`))

func iconOf(show bool, c Contact) string {
	if !show {
		return ""
	}
	return c.Icon
}

func field(list string, i int, name, value string) inputField {
	return inputField{Name: fmt.Sprintf("%s[%d].%s", list, i, name), Value: value}
}

type inputField struct {
	Name  string
	Value string
}

func executeFragment(name string, data any) (string, error) {
	var b strings.Builder
	if err := fragments.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}
