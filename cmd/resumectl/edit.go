package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"resume-builder/internal/suggestions"
	"resume-builder/resume/document"
	"resume-builder/resume/preview"
)

var editCmd = &cobra.Command{
	Use:   "edit <doc.json>",
	Short: "Apply field edits to an editor document",
	Long: `edit applies changes to an editor document in the order they are given.

--set accepts an editor input name (fullName, colorScheme, ...), a dotted
document path (template_settings.two_column) or a list item field
(experiences[0].company).`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editSets        []string
	editAddSkills   []string
	editDelSkills   []string
	editDelExp      []string
	editDelEdu      []string
	editApplyVerbs  bool
	editInPlace     bool
	editOutputFile  string
	editPreviewFile string
)

func init() {
	editCmd.Flags().StringArrayVar(&editSets, "set", nil, "Set a field as name=value (repeatable)")
	editCmd.Flags().StringArrayVar(&editAddSkills, "add-skill", nil, "Add a skill as category=value (repeatable)")
	editCmd.Flags().StringArrayVar(&editDelSkills, "remove-skill", nil, "Remove a skill as category=value (repeatable)")
	editCmd.Flags().StringArrayVar(&editDelExp, "delete-experience", nil, "Delete the experience with this id (repeatable)")
	editCmd.Flags().StringArrayVar(&editDelEdu, "delete-education", nil, "Delete the education entry with this id (repeatable)")
	editCmd.Flags().BoolVar(&editApplyVerbs, "apply-verbs", false, "Rewrite weak action verbs in the summary or first achievement")
	editCmd.Flags().BoolVarP(&editInPlace, "in-place", "i", false, "Overwrite the input document")
	editCmd.Flags().StringVarP(&editOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	editCmd.Flags().StringVar(&editPreviewFile, "preview", "", "Also write the HTML preview of the result")

	rootCmd.AddCommand(editCmd)
}

func resetEditFlags() {
	editSets, editAddSkills, editDelSkills, editDelExp, editDelEdu = nil, nil, nil, nil, nil
	editApplyVerbs, editInPlace = false, false
	editOutputFile, editPreviewFile = "", ""
}

func runEdit(cmd *cobra.Command, args []string) error {
	defer resetEditFlags()

	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}
	store := document.NewStore(doc, document.UUIDGenerator{})
	changes := 0
	store.Subscribe(func(document.Resume) { changes++ })

	binder := document.NewBinder(document.DefaultBindings())
	for _, kv := range editSets {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected name=value", kv)
		}
		if err := setField(store, binder, name, value); err != nil {
			return fmt.Errorf("--set %s: %w", name, err)
		}
	}
	for _, kv := range editAddSkills {
		category, value, err := skillArg(kv)
		if err != nil {
			return err
		}
		store.AddSkill(category, value)
	}
	for _, kv := range editDelSkills {
		category, value, err := skillArg(kv)
		if err != nil {
			return err
		}
		if !store.RemoveSkill(category, value) {
			return fmt.Errorf("--remove-skill: %q not found in %s", value, category)
		}
	}
	for _, id := range editDelExp {
		if !store.DeleteExperience(id) {
			return fmt.Errorf("--delete-experience: no experience with id %q", id)
		}
	}
	for _, id := range editDelEdu {
		if !store.DeleteEducation(id) {
			return fmt.Errorf("--delete-education: no education entry with id %q", id)
		}
	}
	if editApplyVerbs {
		applied, err := suggestions.ApplyActionVerbs(store)
		if err != nil {
			return fmt.Errorf("--apply-verbs: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "rewrote %s\n", applied.Path)
	}

	result := store.Snapshot()
	result.PrepareForSave()
	content, err := document.Serialize(result)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "applied %d edits\n", changes)

	if editPreviewFile != "" {
		markup, err := preview.Render(result)
		if err != nil {
			return fmt.Errorf("failed to render preview: %w", err)
		}
		if err := writeOutput(cmd, editPreviewFile, []byte(markup)); err != nil {
			return err
		}
	}

	out := editOutputFile
	if editInPlace {
		out = args[0]
	}
	return writeOutput(cmd, out, []byte(content+"\n"))
}

// setField routes a --set name to the matching store operation.
func setField(store *document.Store, binder *document.Binder, name, value string) error {
	if _, ok := binder.Path(name); ok {
		return store.Update(func(doc *document.Resume) error {
			return binder.OnChange(doc, name, value)
		})
	}
	if strings.Contains(name, "[") {
		return store.EditItem(name, value)
	}
	current, ok := store.Snapshot().GetField(name)
	if _, isBool := current.(bool); ok && isBool {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("expected true or false: %w", err)
		}
		return store.SetField(name, b)
	}
	return store.SetField(name, value)
}

func skillArg(kv string) (document.SkillCategory, string, error) {
	name, value, ok := strings.Cut(kv, "=")
	if !ok {
		return "", "", fmt.Errorf("skill %q: expected category=value", kv)
	}
	category := document.SkillCategory(name)
	switch name {
	case "technical":
		category = document.SkillTechnical
	case "soft":
		category = document.SkillSoft
	}
	for _, known := range document.SkillCategories {
		if category == known {
			return category, value, nil
		}
	}
	return "", "", fmt.Errorf("unknown skill category %q", name)
}
