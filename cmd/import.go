package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rubiojr/hookvault/pkg/seed"
	"github.com/rubiojr/hookvault/pkg/storage"
	"github.com/urfave/cli/v3"
)

// ImportCommand creates the import command
func ImportCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Load hooks from JSON or YAML seed files into the document store",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "watch",
				Usage: "Keep running and re-import files when they change",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("at least one seed file is required")
			}

			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			store, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			writer, ok := store.(storage.Writer)
			if !ok {
				return fmt.Errorf("%s store does not accept imports", cfg.Store.Driver)
			}

			for _, file := range files {
				if err := importFile(ctx, os.Stdout, writer, file); err != nil {
					return err
				}
			}

			if !c.Bool("watch") {
				return nil
			}
			return watchSeedFiles(ctx, os.Stdout, writer, files)
		},
	}
}

// importFile parses path and writes its accepted documents.
func importFile(ctx context.Context, w io.Writer, writer storage.Writer, path string) error {
	docs, res, err := seed.ParseFile(path)
	if err != nil {
		return err
	}
	for _, msg := range res.Errors {
		fmt.Fprintf(w, "  ⚠ %s: %s\n", filepath.Base(path), msg)
	}

	written, err := writer.InsertDocuments(ctx, docs)
	if err != nil {
		return fmt.Errorf("importing %s: %w", path, err)
	}
	fmt.Fprintf(w, "Imported %s: %d accepted, %d rejected, %d written\n", path, res.Accepted, res.Rejected, written)
	return nil
}

// watchSeedFiles re-imports files whenever they are written, until
// interrupted. Directories are watched rather than files so editors that
// replace files atomically keep triggering events.
func watchSeedFiles(ctx context.Context, w io.Writer, writer storage.Writer, files []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", f, err)
		}
		watched[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		dirs[dir] = true
	}
	logger.Infof("watching %d seed file(s) for changes", len(watched))

	// Editors often emit several events per save.
	const debounce = 200 * time.Millisecond
	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] || !seed.Supported(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending[event.Name] = true
				timer.Reset(debounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("watcher error: %v", err)
		case <-timer.C:
			for path := range pending {
				if err := importFile(ctx, w, writer, path); err != nil {
					if errors.Is(err, os.ErrNotExist) {
						continue
					}
					logger.Errorf("re-import failed: %v", err)
				}
			}
			clear(pending)
		}
	}
}
