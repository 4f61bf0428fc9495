package preview

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"resume-builder/resume/document"
)

//go:embed skeleton.html
var skeletonHTML string

const (
	rootSelector       = "#resumePreviewContent"
	nameSelector       = "#previewFullName"
	jobTitleSelector   = "#previewJobTitle"
	contactSelector    = "#previewContactInfo"
	summarySection     = "#previewSummarySection"
	summaryText        = "#previewSummaryText"
	experienceSection  = "#previewExperienceSection"
	educationSection   = "#previewEducationSection"
	skillsSection      = "#previewSkillsSection"
	twoColumnClass     = "layout-two-column"
	hiddenStyle        = "display:none"
	visibleStyle       = "display:block"
	baseRootClass      = "resume-preview"
)

// Page is a parsed preview page that view models are applied to.
type Page struct {
	doc *goquery.Document
}

// NewPage parses the built-in preview skeleton.
func NewPage() (*Page, error) {
	return ParsePage(skeletonHTML)
}

// ParsePage parses a custom skeleton. It must contain the preview element ids.
func ParsePage(markup string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse preview skeleton: %w", err)
	}
	if doc.Find(rootSelector).Length() == 0 {
		return nil, fmt.Errorf("preview skeleton missing %s", rootSelector)
	}
	return &Page{doc: doc}, nil
}

// Apply writes vm into the page. Every section subtree is replaced in full so
// applying the same model twice yields the same markup.
func (p *Page) Apply(vm ViewModel) error {
	sections := []struct {
		selector string
		fragment string
	}{
		{contactSelector, "contacts"},
		{experienceSection, "experience"},
		{educationSection, "education"},
		{skillsSection, "skills"},
	}
	markup := make(map[string]string, len(sections))
	for _, sec := range sections {
		out, err := executeFragment(sec.fragment, vm)
		if err != nil {
			return err
		}
		markup[sec.selector] = out
	}

	root := p.doc.Find(rootSelector)
	classes := baseRootClass + " " + vm.TemplateClass
	if vm.TwoColumn {
		classes += " " + twoColumnClass
	}
	root.SetAttr("class", classes)
	root.SetAttr("style", fmt.Sprintf("--preview-accent-color: %s; font-family: %s", vm.Accent, vm.FontFamily))

	p.doc.Find(nameSelector).SetText(vm.Name)
	p.doc.Find(jobTitleSelector).SetText(vm.JobTitle)
	p.doc.Find(contactSelector).SetHtml(markup[contactSelector])

	p.doc.Find(summaryText).SetText(vm.Summary)
	setVisible(p.doc.Find(summarySection), vm.ShowSummary)

	p.doc.Find(experienceSection).SetHtml(markup[experienceSection])
	setVisible(p.doc.Find(experienceSection), vm.ShowExperience)

	p.doc.Find(educationSection).SetHtml(markup[educationSection])
	setVisible(p.doc.Find(educationSection), vm.ShowEducation)

	p.doc.Find(skillsSection).SetHtml(markup[skillsSection])
	setVisible(p.doc.Find(skillsSection), vm.ShowSkills)
	return nil
}

// HTML returns the full page markup.
func (p *Page) HTML() (string, error) {
	out, err := p.doc.Html()
	if err != nil {
		return "", fmt.Errorf("render preview: %w", err)
	}
	return out, nil
}

// Text returns the visible text of the preview, skipping hidden sections.
func (p *Page) Text() string {
	root := p.doc.Find(rootSelector).Clone()
	root.Find(`[style="` + hiddenStyle + `"]`).Remove()
	return strings.Join(strings.Fields(root.Text()), " ")
}

// Render projects doc and returns the full preview page.
func Render(doc document.Resume) (string, error) {
	page, err := NewPage()
	if err != nil {
		return "", err
	}
	if err := page.Apply(Project(doc)); err != nil {
		return "", err
	}
	return page.HTML()
}

func setVisible(sel *goquery.Selection, visible bool) {
	if visible {
		sel.SetAttr("style", visibleStyle)
		return
	}
	sel.SetAttr("style", hiddenStyle)
}
