package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/adapters/driving/tui"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive board for the CV.

Sections are drawn as boxes in page order. Editing requires an edit
session: press L to log in, or run 'cvboard login' beforehand.

Controls:
  ↑/k, ↓/j  Select section
  e, Enter  Edit section
  a         Add section
  m         Move section (or drag with the mouse)
  r         Resize section (or drag a border with the mouse)
  t         Cycle theme
  p         Export PDF
  ?         Toggle help
  q         Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

var exportDir string

func init() {
	tuiCmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for exported PDFs (default: current directory)")
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the command services.
func tuiPorts() (*tui.Ports, error) {
	if services == nil {
		return nil, errors.New("services not configured")
	}
	ports := tui.NewPorts(services.Editor, services.Session)
	ports.Persistence = services.Persistence
	ports.Watcher = services.Watcher
	ports.SaveEvents = services.SaveEvents
	ports.Export = services.Export
	ports.ExportDir = exportDir
	return ports, nil
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	ports, err := tuiPorts()
	if err != nil {
		return err
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(commandContext(cmd))

	// Log lines would tear the alternate screen.
	logOut, closeLog := tuiLogOutput()
	logger.SetOutput(logOut)
	defer func() {
		logger.SetOutput(os.Stderr)
		closeLog()
	}()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// tuiLogOutput sends verbose logs to a file while the TUI owns the terminal.
func tuiLogOutput() (io.Writer, func()) {
	if !logger.IsVerbose() {
		return io.Discard, func() {}
	}
	path := filepath.Join(os.TempDir(), "cvboard-tui.log")
	f, err := tea.LogToFile(path, "cvboard")
	if err != nil {
		return io.Discard, func() {}
	}
	return f, func() { _ = f.Close() }
}
