package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/db"
	"github.com/rubiojr/hookvault/pkg/storage"
	"github.com/urfave/cli/v3"
)

// MigrateCommand creates the migrate command
func MigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Run database migrations on the sqlite document store",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "status",
				Usage: "Show migration status without applying migrations",
				Value: false,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			return RunMigrations(os.Stdout, cfg, c.Bool("status"))
		},
	}
}

// RunMigrations handles the migration process (exported for testing)
func RunMigrations(w io.Writer, cfg *config.Config, statusOnly bool) error {
	if cfg.Store.Driver != config.DriverSQLite {
		return fmt.Errorf("migrations only apply to the %q driver, configured driver is %q", config.DriverSQLite, cfg.Store.Driver)
	}

	dbPath := cfg.DBPath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Fprintf(w, "Database does not exist, will be created on first use: %s\n", dbPath)
		return nil
	}

	conn, err := storage.OpenSQLite(dbPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	manager := db.NewMigrationManager(conn)

	if statusOnly {
		if err := showMigrationStatus(w, manager); err != nil {
			return fmt.Errorf("showing migration status: %w", err)
		}
		fmt.Fprintln(w, "\nMigration status check completed")
		return nil
	}

	applied, err := manager.ApplyPendingMigrations()
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}
	fmt.Fprintf(w, "Applied %d migration(s), database is up to date\n", applied)
	return nil
}

// showMigrationStatus displays the current migration status
func showMigrationStatus(w io.Writer, manager *db.MigrationManager) error {
	status, err := manager.GetMigrationStatus()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Applied migrations: %d\n", len(status.Applied))
	for _, migration := range status.Applied {
		appliedTime := "unknown"
		if migration.AppliedAt != nil {
			appliedTime = migration.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "  ✓ %03d: %s (applied: %s)\n", migration.Version, migration.Name, appliedTime)
	}

	fmt.Fprintf(w, "Pending migrations: %d\n", len(status.Pending))
	for _, migration := range status.Pending {
		fmt.Fprintf(w, "  • %03d: %s\n", migration.Version, migration.Name)
	}

	if len(status.Pending) == 0 {
		fmt.Fprintln(w, "  (none - database is up to date)")
	}

	return nil
}
