package cmd

import (
	"context"
	"fmt"

	"bibcleaner/core/config"
	"bibcleaner/core/database"
	"bibcleaner/core/dblp"
	"bibcleaner/core/logger"
	"bibcleaner/core/lookupcache"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime bundles what every command needs: configuration, logger and the index client.
type runtime struct {
	cfg    *config.Config
	log    *zap.Logger
	client *dblp.Client
	cache  *lookupcache.Store
	db     *gorm.DB
}

func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	rt := &runtime{cfg: cfg, log: logg}

	// Lookup cache (Optional)
	var opts []dblp.Option
	if cfg.Database.Enabled {
		if db, store := openCache(ctx, cfg.Database, logg); store != nil {
			rt.db = db
			rt.cache = store
			opts = append(opts, dblp.WithCache(store))
		}
	}

	rt.client = dblp.NewClient(cfg.DBLP, logg, opts...)
	return rt, nil
}

// Close releases the cache connection and flushes the logger.
func (rt *runtime) Close() {
	closeDB(rt.db)
	_ = rt.log.Sync()
}

// connectCache is replaced in tests.
var connectCache = database.Connect

// openCache connects and migrates the lookup cache. Any failure is logged and
// yields no cache; a connection opened before the failure is closed again.
func openCache(ctx context.Context, cfg database.Config, logg *zap.Logger) (*gorm.DB, *lookupcache.Store) {
	db, err := connectCache(cfg)
	if err != nil {
		logg.Warn("Lookup cache unavailable, continuing without it", zap.Error(err))
		return nil, nil
	}
	store := lookupcache.New(db, cfg.TTL(), logg)
	if err := store.Migrate(ctx); err != nil {
		logg.Warn("Lookup cache migration failed, continuing without it", zap.Error(err))
		closeDB(db)
		return nil, nil
	}
	logg.Info("Lookup cache enabled", zap.String("driver", cfg.Driver), zap.Duration("ttl", cfg.TTL()))
	return db, store
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
