package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <doc.json>",
	Short: "Render the HTML preview of an editor document",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var (
	previewOutputFile string
	previewEditor     bool
)

func init() {
	previewCmd.Flags().StringVarP(&previewOutputFile, "out", "o", "", "Path to output HTML file (default stdout)")
	previewCmd.Flags().BoolVar(&previewEditor, "editor", false, "Render the editor form sections instead of the preview page")

	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	defer func() { previewEditor = false }()

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	var markup string
	if previewEditor {
		markup, err = editorMarkup(doc)
	} else {
		markup, err = preview.Render(doc)
	}
	if err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return writeOutput(cmd, previewOutputFile, []byte(markup))
}

// editorMarkup renders the editable list sections, one <section> per list.
func editorMarkup(doc document.Resume) (string, error) {
	var b strings.Builder
	write := func(id, markup string) {
		fmt.Fprintf(&b, "<section id=%q>%s</section>\n", id, markup)
	}

	exp, err := preview.ExperienceEditor(doc)
	if err != nil {
		return "", err
	}
	write("experienceEditor", exp)

	edu, err := preview.EducationEditor(doc)
	if err != nil {
		return "", err
	}
	write("educationEditor", edu)

	for _, category := range document.SkillCategories {
		tags, err := preview.SkillsEditor(doc, category)
		if err != nil {
			return "", err
		}
		write(string(category)+"Editor", tags)
	}
	return b.String(), nil
}
