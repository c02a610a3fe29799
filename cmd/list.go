package cmd

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/rubiojr/hookvault/pkg/client"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/format"
	"github.com/rubiojr/hookvault/pkg/pipeline"
	"github.com/urfave/cli/v3"
)

// ListCommand creates the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "Print one page of hooks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "category",
				Usage: "Only show hooks in this category",
			},
			&cli.StringFlag{
				Name:  "subcategory",
				Usage: "Only show hooks in this subcategory (requires --category)",
			},
			&cli.IntFlag{
				Name:  "page",
				Usage: "Page to show",
				Value: 1,
			},
			&cli.StringFlag{
				Name:  "api-url",
				Usage: "Read hooks from a running hookvault web server instead of the local store",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			var gateway core.Gateway
			if u := c.String("api-url"); u != "" {
				gateway = client.New(u)
			} else {
				store, err := openStore(ctx, cfg)
				if err != nil {
					return err
				}
				defer closeStore(store)
				gateway = store
			}

			state := pipeline.State{Page: 1}
			if category := c.String("category"); category != "" {
				state = state.SelectCategory(category)
				if sub := c.String("subcategory"); sub != "" {
					state = state.SelectSubcategory(sub)
				}
			}
			return listHooks(ctx, os.Stdout, gateway, state, int(c.Int("page")))
		},
	}
}

// listHooks fetches the collection and prints the requested page.
func listHooks(ctx context.Context, w io.Writer, gateway core.Gateway, state pipeline.State, page int) error {
	hooks, err := gateway.FetchAllHooks(ctx)
	if err != nil {
		if errors.Is(err, core.ErrDataUnavailable) {
			renderUnavailable(w)
		}
		return err
	}

	session := pipeline.NewSession(hooks)
	total := pipeline.TotalPages(len(session.Filtered(state)), pipeline.PageSize)
	state = state.GoTo(page, total)

	renderView(w, session.View(state, format.EnvLanguage()))
	return nil
}
