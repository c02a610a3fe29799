package cmd

import (
	"context"
	"fmt"

	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/log"
	"github.com/rubiojr/hookvault/pkg/storage"
	"github.com/urfave/cli/v3"
)

var logger = log.ForService("cmd")

// loadConfig loads the configuration file named by the global --config flag.
func loadConfig(c *cli.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openStore opens the configured document store. Callers must close it.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s store: %w", cfg.Store.Driver, err)
	}
	logger.Debugf("opened %s store, collection %q", cfg.Store.Driver, store.Collection())
	return store, nil
}

// closeStore closes store, logging failures instead of returning them.
func closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		logger.Warnf("failed to close store: %v", err)
	}
}
