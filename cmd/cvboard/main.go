// Command cvboard edits, stores and prints a CV from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/cvboard/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/images"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/render"
	filestore "github.com/custodia-labs/cvboard/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/cvboard/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cvboard/internal/adapters/driving/cli"
	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/services"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// redisPasswordEnv holds the Redis password; it is never written to config.
const redisPasswordEnv = "CVBOARD_REDIS_PASSWORD"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBuilder(build)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// build assembles the services for one command run.
func build(ctx context.Context, opts cli.Options) (*cli.Services, error) {
	configDir, err := resolveConfigDir(opts.ConfigDir)
	if err != nil {
		return nil, err
	}
	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	s := &cli.Services{
		Settings: settingsService,
		Config:   configStore,
	}
	if opts.SettingsOnly {
		return s, nil
	}

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	backend := settings.Storage.Backend
	if opts.Ephemeral {
		backend = domain.StorageMemory
	}
	store, location, err := openStore(ctx, backend, settings.Storage, configDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	logger.Debug("using %s store at %s", backend, location)

	persistence := services.NewPersistenceService(store)
	session := services.NewSessionService(store, settings.Session)

	saves := make(chan bool, 16)
	editor := services.OpenEditor(ctx, persistence, settings.Autosave.Delay,
		services.WithSaveHook(func(ok bool) {
			select {
			case saves <- ok:
			default:
			}
		}),
	)

	cwd, _ := os.Getwd() //nolint:errcheck // relative image paths fall back to the process directory
	export := services.NewExportService(
		images.NewLoader(settings.Images, images.WithBaseDir(cwd)),
		render.NewRasterizer(settings.Export),
		render.NewPDFWriter(),
		domain.A4,
	)

	s.Editor = editor
	s.Persistence = persistence
	s.Session = session
	s.Export = export
	s.SaveEvents = saves
	s.StorePath = location
	if w, ok := store.(driven.ChangeWatcher); ok {
		s.Watcher = w
	}
	s.Close = func(ctx context.Context) error {
		return errors.Join(editor.Close(ctx), store.Close())
	}
	return s, nil
}

// openStore opens the key-value store for backend and describes where it
// lives.
func openStore(
	ctx context.Context,
	backend domain.StorageBackend,
	cfg domain.StorageSettings,
	configDir string,
) (driven.KeyValueStore, string, error) {
	dataDir := cfg.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}

	switch backend {
	case domain.StorageMemory:
		return memory.NewKVStore(), "(memory)", nil
	case domain.StorageFile:
		store, err := filestore.NewStore(dataDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Path(), nil
	case domain.StorageRedis:
		store, err := redis.NewStore(ctx, redis.Conf{
			Addr:     cfg.RedisAddr,
			Password: os.Getenv(redisPasswordEnv),
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, "", err
		}
		return store, store.Path(), nil
	case domain.StorageSQLite, "":
		store, err := sqlite.NewStore(dataDir)
		if err != nil {
			return nil, "", err
		}
		return store, store.Path(), nil
	default:
		return nil, "", fmt.Errorf("unknown storage backend %q", backend)
	}
}

// resolveConfigDir returns dir, or ~/.cvboard when dir is empty.
func resolveConfigDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".cvboard"), nil
}
