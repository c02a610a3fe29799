package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/hookvault/cmd"
	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/log"
	"github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "hookvault",
		Usage: "Browse a curated collection of social media hooks",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
				Value: false,
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
				Value: getDefaultConfigPathOrExit(),
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			log.SetGlobalDebug(c.Bool("debug"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmd.InitCommand(),
			cmd.WebCommand(),
			cmd.BrowseCommand(),
			cmd.ListCommand(),
			cmd.ImportCommand(),
			cmd.StatsCommand(),
			cmd.MigrateCommand(),
			cmd.VersionCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func getDefaultConfigPathOrExit() string {
	path, err := config.GetDefaultConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get default config path: %v\n", err)
		os.Exit(1)
	}
	return path
}
