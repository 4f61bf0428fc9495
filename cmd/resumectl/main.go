// Command resumectl imports, previews, edits, exports and saves resume documents from the shell.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"resume-builder/resume/document"
)

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Work with resume builder documents",
	Long:          "resumectl converts resume files into editor documents, renders previews and exports, and saves documents to a resume builder server.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// readDocument loads a serialized editor document from path.
func readDocument(path string) (document.Resume, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return document.Resume{}, fmt.Errorf("failed to read document: %w", err)
	}
	if err := document.ValidateContent(string(raw)); err != nil {
		return document.Resume{}, err
	}
	return document.Load(string(raw), document.UUIDGenerator{}), nil
}

// writeOutput writes data to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	return nil
}
