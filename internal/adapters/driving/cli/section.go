package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

var sectionCmd = &cobra.Command{
	Use:     "section",
	Aliases: []string{"sections"},
	Short:   "Manage CV sections",
	Long: `Add, remove, reorder, resize and edit the sections of the CV.

Sections can be referenced by full id or by a unique id prefix.`,
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sections in display order",
	Args:  cobra.NoArgs,
	RunE:  runSectionList,
}

var sectionTypesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the section types that can be added",
	Args:  cobra.NoArgs,
	Annotations: map[string]string{
		annotationNoStore: "",
	},
	Run: runSectionTypes,
}

var sectionGetCmd = &cobra.Command{
	Use:   "get [section-id]",
	Short: "Print a section's content as editable JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSectionGet,
}

var sectionAddCmd = &cobra.Command{
	Use:   "add [type]",
	Short: "Add a section with example content",
	Long: `Add a section of the given type at the end of the CV.

Types: profile, experience, skills, education, interests, apps, custom.`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionAdd,
}

var sectionDeleteCmd = &cobra.Command{
	Use:     "delete [section-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a section",
	Args:    cobra.ExactArgs(1),
	RunE:    runSectionDelete,
}

var sectionMoveCmd = &cobra.Command{
	Use:   "move [section-id] [before-section-id]",
	Short: "Move a section in front of another one",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionMove,
}

var sectionResizeCmd = &cobra.Command{
	Use:   "resize [section-id] [width] [height]",
	Short: "Set a section's size in pixels",
	Long: fmt.Sprintf(`Set a section's explicit size in pixels.

Sizes below %dx%d are raised to that minimum.`, domain.MinSectionWidth, domain.MinSectionHeight),
	Args: cobra.ExactArgs(3),
	RunE: runSectionResize,
}

var sectionRenameCmd = &cobra.Command{
	Use:   "rename [section-id] [title]",
	Short: "Change a section's title",
	Args:  cobra.ExactArgs(2),
	RunE:  runSectionRename,
}

var sectionEditCmd = &cobra.Command{
	Use:   "edit [section-id]",
	Short: "Replace a section's content",
	Long: `Replace a section's content with JSON read from --file, or from
standard input when --file is "-" or omitted.

Use 'cvboard section get' to print the current content as a starting point.
Malformed content is rejected and the section keeps its previous content.`,
	Args: cobra.ExactArgs(1),
	RunE: runSectionEdit,
}

var (
	sectionAddTitle string
	sectionEditFile string
)

func init() {
	sectionAddCmd.Flags().StringVarP(&sectionAddTitle, "title", "t", "", "Section title (defaults to the type name)")
	sectionEditCmd.Flags().StringVarP(&sectionEditFile, "file", "f", "-", "File with the new content, - for stdin")

	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionTypesCmd)
	sectionCmd.AddCommand(sectionGetCmd)
	sectionCmd.AddCommand(sectionAddCmd)
	sectionCmd.AddCommand(sectionDeleteCmd)
	sectionCmd.AddCommand(sectionMoveCmd)
	sectionCmd.AddCommand(sectionResizeCmd)
	sectionCmd.AddCommand(sectionRenameCmd)
	sectionCmd.AddCommand(sectionEditCmd)
	rootCmd.AddCommand(sectionCmd)
}

func runSectionList(cmd *cobra.Command, _ []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	sections := ed.Document().Ordered()
	if len(sections) == 0 {
		cmd.Println("No sections.")
		return nil
	}
	for _, s := range sections {
		cmd.Printf("%-36s  %-10s  %d  %s\n", s.ID, s.Type, s.Order, s.Title)
	}
	return nil
}

func runSectionTypes(cmd *cobra.Command, _ []string) {
	for _, t := range domain.SectionTypes() {
		cmd.Printf("  %-12s %s\n", t, t.Description())
	}
}

func runSectionGet(cmd *cobra.Command, args []string) error {
	ed, err := editor()
	if err != nil {
		return err
	}
	s, err := findSection(ed.Document(), args[0])
	if err != nil {
		return err
	}
	cmd.Println(domain.FormatContent(s.Content))
	return nil
}

func runSectionAdd(cmd *cobra.Command, args []string) error {
	st, err := domain.ParseSectionType(args[0])
	if err != nil {
		return err
	}
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}

	s, err := ed.AddSection(st, sectionAddTitle)
	if err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Added %s section %q (%s)\n", s.Type, s.Title, s.ID)
	return nil
}

func runSectionDelete(cmd *cobra.Command, args []string) error {
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	s, err := findSection(ed.Document(), args[0])
	if err != nil {
		return err
	}

	ed.DeleteSection(s.ID)
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Deleted section %q\n", s.Title)
	return nil
}

func runSectionMove(cmd *cobra.Command, args []string) error {
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	doc := ed.Document()
	source, err := findSection(doc, args[0])
	if err != nil {
		return err
	}
	target, err := findSection(doc, args[1])
	if err != nil {
		return err
	}

	if !ed.MoveSection(source.ID, target.ID) {
		cmd.Println("Nothing to move.")
		return nil
	}
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Moved %q before %q\n", source.Title, target.Title)
	return nil
}

func runSectionResize(cmd *cobra.Command, args []string) error {
	width, err := strconv.ParseFloat(args[1], 64)
	if err != nil || width <= 0 {
		return fmt.Errorf("%w: width %q", domain.ErrInvalidInput, args[1])
	}
	height, err := strconv.ParseFloat(args[2], 64)
	if err != nil || height <= 0 {
		return fmt.Errorf("%w: height %q", domain.ErrInvalidInput, args[2])
	}

	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	s, err := findSection(ed.Document(), args[0])
	if err != nil {
		return err
	}

	ed.ResizeSection(s.ID, width, height)
	if err := commit(cmd, ed); err != nil {
		return err
	}
	resized, _ := ed.Document().Section(s.ID)
	cmd.Printf("Resized %q to %gx%g\n", s.Title, resized.Width, resized.Height)
	return nil
}

func runSectionRename(cmd *cobra.Command, args []string) error {
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	s, err := findSection(ed.Document(), args[0])
	if err != nil {
		return err
	}

	ed.RenameSection(s.ID, args[1])
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Renamed %q to %q\n", s.Title, args[1])
	return nil
}

func runSectionEdit(cmd *cobra.Command, args []string) error {
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	s, err := findSection(ed.Document(), args[0])
	if err != nil {
		return err
	}

	text, err := readInput(cmd, sectionEditFile)
	if err != nil {
		return err
	}
	if err := ed.EditSectionText(s.ID, text); err != nil {
		if errors.Is(err, domain.ErrInvalidContent) {
			return fmt.Errorf("content rejected, section unchanged: %w", err)
		}
		return err
	}
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Updated section %q\n", s.Title)
	return nil
}

// readInput reads path, or the command's stdin for "-".
func readInput(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}
