package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"resume-builder/internal/suggestions"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <resume.txt>",
	Short: "Compare resume text against a job description",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

var (
	suggestJobFile string
	suggestUseLLM  bool
)

func init() {
	suggestCmd.Flags().StringVarP(&suggestJobFile, "job", "j", "", "Path to job description text file")
	suggestCmd.Flags().BoolVar(&suggestUseLLM, "llm", false, "Ask the configured LLM provider for suggestions")
	_ = suggestCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	resumeText, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}
	jobText, err := os.ReadFile(suggestJobFile)
	if err != nil {
		return fmt.Errorf("failed to read job description: %w", err)
	}

	svc := &suggestions.Service{}
	if suggestUseLLM {
		completer, err := cliCompleter()
		if err != nil {
			return err
		}
		svc.LLM = completer
	}

	res, err := svc.Analyze(cmd.Context(), string(resumeText), string(jobText))
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return writeOutput(cmd, "", append(out, '\n'))
}
