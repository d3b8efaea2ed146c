package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the CV",
	Long:  `Print the CV header and every section in display order.`,
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

var showJSON bool

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the document as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	doc := ed.Document()

	if showJSON {
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding document: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Println(doc.Title)
	if doc.Subtitle != "" {
		cmd.Println(doc.Subtitle)
	}
	cmd.Printf("Theme: %s\n", displayTheme(doc.Theme))

	for _, s := range doc.Ordered() {
		cmd.Println()
		printSection(cmd, s)
	}
	return nil
}

func printSection(cmd *cobra.Command, s domain.Section) {
	header := fmt.Sprintf("[%d] %s (%s)", s.Order, s.Title, s.Type)
	if s.HasSize() {
		header += fmt.Sprintf(" %gx%g", s.Width, s.Height)
	}
	cmd.Println(header)
	cmd.Printf("    id: %s\n", s.ID)
	for _, line := range domain.SummaryLines(s.Content) {
		cmd.Printf("    %s\n", line)
	}
}

func displayTheme(t domain.Theme) string {
	if t == "" {
		return string(domain.ThemeLight)
	}
	return string(t)
}

// findSection resolves a section by full ID or unique ID prefix.
func findSection(doc domain.Document, ref string) (domain.Section, error) {
	if s, ok := doc.Section(ref); ok {
		return s, nil
	}
	var matches []domain.Section
	for _, s := range doc.Sections {
		if ref != "" && strings.HasPrefix(s.ID, ref) {
			matches = append(matches, s)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return domain.Section{}, fmt.Errorf("%w: section %q", domain.ErrNotFound, ref)
	default:
		return domain.Section{}, fmt.Errorf("%w: section prefix %q is ambiguous", domain.ErrInvalidInput, ref)
	}
}
