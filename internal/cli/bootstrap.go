package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/pkg/adapters/file"
	"github.com/aretw0/wayfinder/pkg/adapters/memory"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/lang"
	"github.com/aretw0/wayfinder/pkg/ports"
)

// Persistence bundles the progress store, the session locker and their cleanup.
type Persistence struct {
	Store  ports.ProgressStore
	Locker ports.DistributedLocker
	Close  func() error
}

// OpenPersistence builds the store selected by s.Store.Kind.
func OpenPersistence(ctx context.Context, s config.Settings, logger *slog.Logger) (*Persistence, error) {
	switch s.Store.Kind {
	case "redis":
		store := redis.New(s.Store.RedisAddr, "", 0,
			redis.WithPrefix(s.Store.Prefix),
			redis.WithTTL(s.Store.TTL),
		)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("connect to redis at %s: %w", s.Store.RedisAddr, err)
		}
		logger.Info("using redis progress store", "addr", s.Store.RedisAddr, "prefix", store.Prefix())
		return &Persistence{
			Store:  store,
			Locker: redis.NewLocker(store.Client(), store.Prefix()),
			Close:  store.Close,
		}, nil

	case "file":
		logger.Info("using file progress store", "dir", s.Store.Dir)
		return &Persistence{
			Store:  file.NewStore(s.Store.Dir),
			Locker: memory.NewLocker(),
			Close:  func() error { return nil },
		}, nil

	case "", "memory":
		return &Persistence{
			Store:  memory.NewStore(),
			Locker: memory.NewLocker(),
			Close:  func() error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store kind %q", s.Store.Kind)
}

// LoadSite reads the site file named by the settings.
func LoadSite(ctx context.Context, s config.Settings) (*ports.Site, error) {
	site, err := file.NewSiteLoader(s.Site).LoadSite(ctx)
	if err != nil {
		return nil, fmt.Errorf("load site %s: %w", s.Site, err)
	}
	return site, nil
}

// LoadLanguage reads the language table named by the settings.
func LoadLanguage(ctx context.Context, s config.Settings, logger *slog.Logger) (*lang.Table, error) {
	return file.NewLanguageLoader(s.LanguagesDir, file.WithLogger(logger)).LoadLanguage(ctx, s.Lang)
}
