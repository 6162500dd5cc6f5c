package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/NiltersBot_Go/internal/catalog"
	"github.com/osse101/NiltersBot_Go/internal/config"
	"github.com/osse101/NiltersBot_Go/internal/database"
	"github.com/osse101/NiltersBot_Go/internal/database/memory"
	"github.com/osse101/NiltersBot_Go/internal/database/postgres"
	"github.com/osse101/NiltersBot_Go/internal/database/redis"
	"github.com/osse101/NiltersBot_Go/internal/database/sqlite"
	"github.com/osse101/NiltersBot_Go/internal/repository"
)

// OpenStore connects the configured backend. SQL backends are migrated before
// the store is returned.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Player, error) {
	var (
		store repository.Player
		err   error
	)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		store, err = openPostgres(ctx, cfg)
	case config.DriverSQLite:
		store, err = sqlite.Open(ctx, cfg.SQLitePath)
	case config.DriverRedis:
		store, err = redis.New(ctx, redis.Config{
			URL:     cfg.RedisURL,
			Prefix:  cfg.RedisPrefix,
			LockTTL: cfg.RedisLockTTL,
		})
	case config.DriverMemory:
		store = memory.New()
	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.StoreDriver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s (%s): %w", ErrMsgFailedOpenStore, cfg.StoreDriver, err)
	}

	slog.Info(LogMsgStoreOpened, "driver", cfg.StoreDriver)
	return store, nil
}

func openPostgres(ctx context.Context, cfg *config.Config) (repository.Player, error) {
	pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return nil, err
	}
	if _, err := database.MigratePool(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return postgres.NewPlayerRepository(pool), nil
}

// LoadCatalog reads cfg.CatalogPath, or returns the embedded catalog when unset.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		cat := catalog.Default()
		slog.Info(LogMsgCatalogLoaded, "source", "embedded", "bosses", len(cat.Bosses()), "items", len(cat.Items()))
		return cat, nil
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded, "source", cfg.CatalogPath, "bosses", len(cat.Bosses()), "items", len(cat.Items()))
	return cat, nil
}
