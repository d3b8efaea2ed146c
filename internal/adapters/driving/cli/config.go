package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	coresvc "github.com/custodia-labs/cvboard/internal/core/services"
)

var noStore = map[string]string{annotationNoStore: ""}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Manage application settings",
	Long:        `View and change settings stored in ~/.cvboard/config.toml.`,
	Annotations: noStore,
	RunE:        runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show effective settings",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:         "get [key]",
	Short:       "Print a stored setting",
	Args:        cobra.ExactArgs(1),
	Annotations: noStore,
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a setting. Recognised keys:

  storage.backend          sqlite, file, memory or redis
  storage.dir              data directory for sqlite and file
  storage.redis_addr       host:port
  storage.redis_db         database number
  autosave.delay_ms        quiet time before an edit is saved
  session.window_minutes   edit session length
  session.poll_seconds     how often the TUI checks for expiry
  auth.username            edit-mode user name
  images.timeout_seconds   per-image fetch timeout during PDF export
  images.rate_per_second   remote image fetch rate
  export.scale             PDF raster resolution multiplier

Use 'cvboard config password' to change the edit-mode password.`,
	Args:        cobra.ExactArgs(2),
	Annotations: noStore,
	RunE:        runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file path",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runConfigPath,
}

var configPasswordCmd = &cobra.Command{
	Use:         "password",
	Short:       "Change the edit-mode password",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE:        runConfigPassword,
}

// intKeys and floatKeys are parsed before storing; everything else is a
// string.
var (
	intKeys = map[string]bool{
		coresvc.KeyStorageRedisDB: true,
		coresvc.KeyAutosaveDelay:  true,
		coresvc.KeySessionWindow:  true,
		coresvc.KeySessionPoll:    true,
		coresvc.KeyImagesTimeout:  true,
		coresvc.KeyExportScale:    true,
	}
	floatKeys = map[string]bool{
		coresvc.KeyImagesRate: true,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configPasswordCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}
	settings, err := services.Settings.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Printf("  Directory: %s\n", orDefault(settings.Storage.Dir, "(default)"))
	if settings.Storage.Backend == domain.StorageRedis {
		cmd.Printf("  Redis: %s db %d\n", settings.Storage.RedisAddr, settings.Storage.RedisDB)
	}
	cmd.Println()

	cmd.Println("[Autosave]")
	cmd.Printf("  Delay: %s\n", settings.Autosave.Delay)
	cmd.Println()

	cmd.Println("[Session]")
	cmd.Printf("  Window: %s\n", settings.Session.Window)
	cmd.Printf("  Poll: %s\n", settings.Session.PollInterval)
	cmd.Printf("  Username: %s\n", settings.Session.Username)
	if settings.Session.PasswordHash != "" {
		cmd.Println("  Password: (custom)")
	} else {
		cmd.Println("  Password: (built-in)")
	}
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Image timeout: %s\n", settings.Images.Timeout)
	cmd.Printf("  Image rate: %g/s\n", settings.Images.RatePerSecond)
	cmd.Printf("  Scale: %d\n", settings.Export.Scale)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Config == nil {
		return errors.New("config store not configured")
	}
	if !isSettingsKey(args[0]) {
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, args[0])
	}
	v, ok := services.Config.Get(args[0])
	if !ok {
		cmd.Println("(not set)")
		return nil
	}
	if args[0] == coresvc.KeyAuthPasswordHash {
		cmd.Println("(set)")
		return nil
	}
	cmd.Println(v)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if services == nil || services.Config == nil || services.Settings == nil {
		return errors.New("config store not configured")
	}
	key, raw := args[0], args[1]

	switch {
	case key == coresvc.KeyAuthPasswordHash:
		return fmt.Errorf("%w: use 'cvboard config password'", domain.ErrInvalidInput)
	case key == coresvc.KeyStorageBackend:
		if err := services.Settings.SetStorageBackend(domain.StorageBackend(raw)); err != nil {
			return err
		}
	case !isSettingsKey(key):
		return fmt.Errorf("%w: unknown key %q", domain.ErrInvalidInput, key)
	default:
		value, err := parseSettingValue(key, raw)
		if err != nil {
			return err
		}
		if err := services.Config.Set(key, value); err != nil {
			return fmt.Errorf("failed to save %s: %w", key, err)
		}
	}

	cmd.Printf("%s = %s\n", key, raw)
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Config == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(services.Config.Path())
	return nil
}

func runConfigPassword(cmd *cobra.Command, _ []string) error {
	if services == nil || services.Settings == nil {
		return errors.New("settings service not configured")
	}

	cmd.Print("New password: ")
	first := readSecret(cmd)
	cmd.Println()
	cmd.Print("Repeat password: ")
	second := readSecret(cmd)
	cmd.Println()

	if first != second {
		return errors.New("passwords do not match")
	}
	if err := services.Settings.SetPassword(first); err != nil {
		return err
	}
	cmd.Println("Password updated.")
	return nil
}

func parseSettingValue(key, raw string) (any, error) {
	switch {
	case intKeys[key]:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidInput, key)
		}
		return n, nil
	case floatKeys[key]:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || f < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative number", domain.ErrInvalidInput, key)
		}
		return f, nil
	default:
		return raw, nil
	}
}

func isSettingsKey(key string) bool {
	for _, k := range coresvc.SettingsKeys() {
		if k == key {
			return true
		}
	}
	return false
}
