// Package cli implements the cvboard command line with cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// annotationNoStore marks commands that must not open the CV store.
const annotationNoStore = "cvboard/no-store"

// Services holds everything a command may need.
type Services struct {
	Editor      driving.EditorService
	Persistence driving.PersistenceService
	Session     driving.SessionService
	Export      driving.ExportService
	Settings    driving.SettingsService

	// Config is the raw configuration store behind Settings.
	Config driven.ConfigStore

	// Watcher reports external store changes. Nil when the backend
	// cannot notice them.
	Watcher driven.ChangeWatcher

	// SaveEvents receives the outcome of every editor save. Optional.
	SaveEvents <-chan bool

	// StorePath describes where the CV is stored.
	StorePath string

	// Close releases stores and flushes the editor.
	Close func(ctx context.Context) error
}

// Options are the global flags handed to a Builder.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// Ephemeral keeps the CV in memory for this run only.
	Ephemeral bool

	// SettingsOnly skips opening the CV store.
	SettingsOnly bool
}

// Builder assembles Services for one command run.
type Builder func(ctx context.Context, opts Options) (*Services, error)

var (
	services     *Services
	ownsServices bool
	builder      Builder

	verbose   bool
	configDir string
	ephemeral bool
)

var rootCmd = &cobra.Command{
	Use:   "cvboard",
	Short: "Edit and export a CV from the terminal",
	Long: `cvboard keeps a CV made of sections (profile, experience, skills,
education, interests, apps, free text) and lets you reorder, resize, theme,
import, export and print it to PDF.

Editing requires an edit session: run 'cvboard login' first. Sessions
expire after two hours.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Configuration directory (default ~/.cvboard)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep the CV in memory for this run only")
}

// SetServices injects ready-made services. Commands use them instead of
// calling the Builder, and they are not closed after each command.
func SetServices(s *Services) {
	services = s
	ownsServices = false
}

// SetBuilder sets the function that assembles services on demand.
func SetBuilder(b Builder) {
	builder = b
}

// SetVersion sets the version reported by 'cvboard version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if services != nil || builder == nil {
		return nil
	}
	_, settingsOnly := cmd.Annotations[annotationNoStore]
	if cmd.Name() == "help" || cmd.Name() == "version" {
		return nil
	}

	s, err := builder(commandContext(cmd), Options{
		ConfigDir:    configDir,
		Ephemeral:    ephemeral,
		SettingsOnly: settingsOnly,
	})
	if err != nil {
		return err
	}
	services = s
	ownsServices = true
	return nil
}

func teardown(cmd *cobra.Command, _ []string) error {
	if !ownsServices || services == nil {
		return nil
	}
	s := services
	services = nil
	ownsServices = false
	if s.Close == nil {
		return nil
	}
	return s.Close(commandContext(cmd))
}

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// editor returns the editor service or a configuration error.
func editor() (driving.EditorService, error) {
	if services == nil || services.Editor == nil {
		return nil, errors.New("editor not configured")
	}
	return services.Editor, nil
}

// requireEditMode checks the edit session and refreshes it on success.
func requireEditMode(ctx context.Context) (driving.EditorService, error) {
	ed, err := editor()
	if err != nil {
		return nil, err
	}
	if services.Session == nil {
		return nil, errors.New("session service not configured")
	}
	if !services.Session.CheckAuthentication(ctx) {
		return nil, fmt.Errorf("%w: run 'cvboard login' first", domain.ErrAuthRequired)
	}
	if err := services.Session.ExtendSession(ctx); err != nil {
		logger.Warn("extending session: %v", err)
	}
	return ed, nil
}

// commit saves the editor's document now so one-shot commands never exit
// with a pending save.
func commit(cmd *cobra.Command, ed driving.EditorService) error {
	if !ed.Flush(commandContext(cmd)) {
		return fmt.Errorf("%w: changes were not saved", domain.ErrStoreUnavailable)
	}
	return nil
}
