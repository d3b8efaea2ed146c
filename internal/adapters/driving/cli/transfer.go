package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/logger"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CV as JSON or PDF",
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export a JSON snapshot",
	Long: `Write a JSON snapshot that 'cvboard import' can read back.

The default file name is cv-backup-YYYY-MM-DD.json. Use -o - to write to
standard output.`,
	Args: cobra.NoArgs,
	RunE: runExportJSON,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Render the CV to an A4 PDF",
	Long: `Render the CV to a PDF on A4 pages. Embedded images are fetched
first; images that cannot be loaded are drawn as placeholders.

The default file name is derived from the CV title.`,
	Args: cobra.NoArgs,
	RunE: runExportPDF,
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the CV with an exported snapshot",
	Long: `Replace the CV with a snapshot written by 'cvboard export json'.

Files without a title or a sections list are rejected and the current CV
is left unchanged.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var exportOutput string

func init() {
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "", "Output file (- for stdout)")
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

func runExportJSON(cmd *cobra.Command, _ []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	if services.Persistence == nil {
		return errors.New("persistence service not configured")
	}

	var buf bytes.Buffer
	if err := services.Persistence.Export(commandContext(cmd), &buf, ed.Document()); err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = services.Persistence.ExportFilename()
	}
	return writeOutput(cmd, path, buf.Bytes())
}

func runExportPDF(cmd *cobra.Command, _ []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	if services.Export == nil {
		return domain.ErrExportUnavailable
	}
	doc := ed.Document()

	logger.Info("rendering %d sections", len(doc.Sections))
	var buf bytes.Buffer
	if err := services.Export.ExportPDF(commandContext(cmd), &buf, doc); err != nil {
		return fmt.Errorf("failed to export pdf: %w", err)
	}

	path := exportOutput
	if path == "" {
		path = domain.PDFFilename(doc.Title)
	}
	return writeOutput(cmd, path, buf.Bytes())
}

func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	cmd.Printf("Wrote %s (%d bytes)\n", path, len(data))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	ed, err := requireEditMode(ctx)
	if err != nil {
		return err
	}
	if services.Persistence == nil {
		return errors.New("persistence service not configured")
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	doc, err := services.Persistence.Import(ctx, f)
	if err != nil {
		return err
	}
	ed.Replace(doc)
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Imported %q with %d sections\n", doc.Title, len(doc.Sections))
	return nil
}
