package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	openai "resume-builder/internal/llm/openai"
	"resume-builder/internal/shared/config"
	"resume-builder/resume/document"
	"resume-builder/resume/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Convert a PDF, DOCX, text or JSON file into an editor document",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	importOutputFile string
	importUseLLM     bool
)

func init() {
	importCmd.Flags().StringVarP(&importOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	importCmd.Flags().BoolVar(&importUseLLM, "llm", false, "Use the configured LLM provider before the heuristic importer")

	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	var content string
	if filepath.Ext(path) == ".json" {
		content = string(data)
	} else {
		mimeType := extract.Normalize(http.DetectContentType(data), filepath.Base(path), data)
		if !extract.Supported(mimeType) {
			return fmt.Errorf("unsupported file type %s", mimeType)
		}
		content, err = extract.FromBytes(cmd.Context(), data, mimeType, filepath.Base(path))
		if err != nil {
			return fmt.Errorf("failed to extract text: %w", err)
		}
	}

	ids := document.UUIDGenerator{}
	var ti importer.TextImporter = importer.NewHeuristic(ids)
	if importUseLLM {
		completer, err := cliCompleter()
		if err != nil {
			return err
		}
		ti = &importer.LLMImporter{LLM: completer, Fallback: ti, IDs: ids}
	}

	doc := importer.Import(cmd.Context(), content, ti, ids)
	out, err := document.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize document: %w", err)
	}
	return writeOutput(cmd, importOutputFile, []byte(out+"\n"))
}

func cliCompleter() (llm.Completer, error) {
	cfg := config.Load()
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		return nil, err
	}
	return client, nil
}
