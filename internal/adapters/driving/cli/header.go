package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

var headerCmd = &cobra.Command{
	Use:   "header [title|subtitle] [value]",
	Short: "Set the CV title or subtitle",
	Args:  cobra.ExactArgs(2),
	RunE:  runHeader,
}

var themeCmd = &cobra.Command{
	Use:   "theme [name]",
	Short: "Show or set the colour theme",
	Long: `Without an argument, list the themes and mark the current one.
With an argument, switch to that theme.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTheme,
}

func init() {
	rootCmd.AddCommand(headerCmd)
	rootCmd.AddCommand(themeCmd)
}

func runHeader(cmd *cobra.Command, args []string) error {
	field := domain.HeaderField(args[0])
	if !field.IsValid() {
		return fmt.Errorf("%w: header field %q (want title or subtitle)", domain.ErrInvalidInput, args[0])
	}
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := ed.SetHeader(field, args[1]); err != nil {
		return err
	}
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Set %s to %q\n", field, args[1])
	return nil
}

func runTheme(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		ed, err := editor()
		if err != nil {
			return err
		}
		current := ed.Document().Theme
		for _, t := range domain.Themes() {
			marker := " "
			if t == current || (current == "" && t == domain.ThemeLight) {
				marker = "*"
			}
			p := t.Palette()
			cmd.Printf("%s %-7s background %s  content %s\n", marker, t, p.Background, p.Content)
		}
		return nil
	}

	theme, err := domain.ParseTheme(args[0])
	if err != nil {
		return err
	}
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	if err := ed.SetTheme(theme); err != nil {
		return err
	}
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Printf("Theme set to %s\n", theme)
	return nil
}
