package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"resume-builder/resume/document"
	"resume-builder/resume/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <doc.json>",
	Short: "Export an editor document to PDF and/or DOCX",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

var (
	exportFormats []string
	exportOutDir  string
	exportTitle   string
	exportChrome  bool
)

func init() {
	exportCmd.Flags().StringSliceVarP(&exportFormats, "format", "f", []string{"pdf"}, "Output formats (pdf, docx)")
	exportCmd.Flags().StringVarP(&exportOutDir, "out-dir", "d", ".", "Directory for exported files")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "Title used for file names (default: the resume owner's name)")
	exportCmd.Flags().BoolVar(&exportChrome, "chrome", false, "Print PDFs with headless Chrome")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	doc, err := readDocument(args[0])
	if err != nil {
		return err
	}

	formats := make([]export.Format, 0, len(exportFormats))
	for _, raw := range exportFormats {
		f, err := export.ParseFormat(raw)
		if err != nil {
			return err
		}
		formats = append(formats, f)
	}
	if err := os.MkdirAll(exportOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	title := strings.TrimSpace(exportTitle)
	if title == "" {
		title = strings.TrimSpace(doc.Personal.FullName)
	}
	if title == "" {
		title = document.DefaultTitle
	}

	registry := export.Registry(exportChrome)
	paths := make([]string, len(formats))
	g, ctx := errgroup.WithContext(cmd.Context())
	for i, f := range formats {
		exporter := registry[f]
		g.Go(func() error {
			data, err := exporter.Export(ctx, doc)
			if err != nil {
				return fmt.Errorf("export %s: %w", f, err)
			}
			path := filepath.Join(exportOutDir, export.Filename(title, exporter.Extension()))
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return nil
}
