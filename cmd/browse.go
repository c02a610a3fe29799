package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rubiojr/hookvault/cmd/tui"
	"github.com/rubiojr/hookvault/pkg/client"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/format"
	"github.com/rubiojr/hookvault/pkg/log"
	"github.com/urfave/cli/v3"
)

// BrowseCommand creates the terminal browser command
func BrowseCommand() *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "Browse hooks in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Base URL of a running hookvault web server (defaults to browse.api_url)",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Read the configured document store directly instead of the web API",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the browser owns the terminal (defaults to <storage_dir>/browse.log)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			logPath := c.String("log-file")
			if logPath == "" {
				logPath = filepath.Join(cfg.StorageDir, "browse.log")
			}
			restore, err := redirectLogs(logPath)
			if err != nil {
				return err
			}
			defer restore()

			var gateway core.Gateway
			if c.Bool("local") {
				store, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer closeStore(store)
				gateway = store
			} else {
				apiURL := cfg.Browse.APIURL
				if u := c.String("api-url"); u != "" {
					apiURL = u
				}
				logger.Debugf("browsing hooks from %s", apiURL)
				gateway = client.New(apiURL)
			}

			return tui.Run(ctx, tui.Config{
				Gateway:      gateway,
				CopyFeedback: cfg.Browse.CopyFeedback.Duration,
				Language:     format.EnvLanguage(),
			})
		},
	}
}

// redirectLogs sends log output to path so it never draws over the UI.
func redirectLogs(path string) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		f.Close()
	}, nil
}
