package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/storage"
	"github.com/urfave/cli/v3"
)

// StatsCommand creates the stats command
func StatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show collection statistics",
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			stats, err := storage.CollectionStats(ctx, store)
			if err != nil {
				if errors.Is(err, core.ErrDataUnavailable) {
					renderUnavailable(os.Stderr)
				}
				return err
			}

			renderStats(os.Stdout, cfg.Store.Driver, stats)
			return nil
		},
	}
}
