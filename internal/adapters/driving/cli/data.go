package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the CV with the built-in example",
	Args:  cobra.NoArgs,
	RunE:  runReset,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the stored CV and its backup",
	Long: `Delete the stored CV and its backup. The next start shows the
built-in example CV.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

var (
	resetYes bool
	clearYes bool
)

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Do not ask for confirmation")
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(clearCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	ed, err := requireEditMode(commandContext(cmd))
	if err != nil {
		return err
	}
	if !resetYes && !confirm(cmd, "Replace the current CV with the example?") {
		cmd.Println("Cancelled.")
		return nil
	}

	ed.Reset()
	if err := commit(cmd, ed); err != nil {
		return err
	}
	cmd.Println("CV reset to the built-in example.")
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	ctx := commandContext(cmd)
	if _, err := requireEditMode(ctx); err != nil {
		return err
	}
	if services.Persistence == nil {
		return errors.New("persistence service not configured")
	}
	if !clearYes && !confirm(cmd, "Delete the stored CV and its backup?") {
		cmd.Println("Cancelled.")
		return nil
	}

	if !services.Persistence.Clear(ctx) {
		return fmt.Errorf("%w: could not delete stored CV", domain.ErrStoreUnavailable)
	}
	cmd.Println("Stored CV deleted.")
	return nil
}

func confirm(cmd *cobra.Command, question string) bool {
	cmd.Printf("%s [y/N] ", question)
	answer := strings.ToLower(strings.TrimSpace(readLine(cmd)))
	return answer == "y" || answer == "yes"
}
