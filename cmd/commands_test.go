package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/pipeline"
	"github.com/rubiojr/hookvault/pkg/storage"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		StorageDir: t.TempDir(),
		Store:      config.StoreConfig{Driver: config.DriverSQLite, Collection: "hookvault"},
	}
}

func writeSeed(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportThenList(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer store.Close()

	path := writeSeed(t, "hooks.yaml", `
- category: personal_info
  subcategory: family
  hook: My family never believed in me
  generated_at: "2024-03-05T10:00:00Z"
- category: fitness
  subcategory: running
  hook: I ran every day for a year
- category: fitness
  hook: no subcategory
`)

	var out bytes.Buffer
	if err := importFile(ctx, &out, store.(storage.Writer), path); err != nil {
		t.Fatalf("importFile failed: %v", err)
	}
	if !strings.Contains(out.String(), "2 accepted, 1 rejected") {
		t.Errorf("unexpected import output:\n%s", out.String())
	}

	// Importing again replaces rather than duplicates.
	if err := importFile(ctx, &out, store.(storage.Writer), path); err != nil {
		t.Fatal(err)
	}
	hooks, err := store.FetchAllHooks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(hooks) != 2 {
		t.Fatalf("expected 2 hooks after re-import, got %d", len(hooks))
	}

	out.Reset()
	if err := listHooks(ctx, &out, store, pipeline.State{Category: "fitness", Page: 1}, 1); err != nil {
		t.Fatalf("listHooks failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{`Hooks for "Fitness"`, "I ran every day for a year", "Running", "Unknown"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected list output to contain %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "My family never believed in me") {
		t.Error("list output must be filtered by category")
	}
}

func TestListUnavailable(t *testing.T) {
	gateway := core.GatewayFunc(func(context.Context) ([]core.Hook, error) {
		return nil, core.DataUnavailable(errors.New("boom"))
	})

	var out bytes.Buffer
	err := listHooks(context.Background(), &out, gateway, pipeline.State{Page: 1}, 1)
	if !errors.Is(err, core.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if !strings.Contains(out.String(), "Hooks are unavailable") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestListClampsPage(t *testing.T) {
	var out bytes.Buffer
	if err := listHooks(context.Background(), &out, staticGateway(sampleHooks()), pipeline.State{Page: 1}, 42); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Page 3 of 3 (45 hooks)") {
		t.Errorf("expected clamped last page:\n%s", out.String())
	}
	if !strings.Contains(out.String(), " 41. ") {
		t.Error("expected numbering to continue across pages")
	}
}

func TestRunMigrations(t *testing.T) {
	cfg := testConfig(t)

	var out bytes.Buffer
	if err := RunMigrations(&out, cfg, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Database does not exist") {
		t.Errorf("unexpected output %q", out.String())
	}

	store, err := storage.Open(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	out.Reset()
	if err := RunMigrations(&out, cfg, true); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Pending migrations: 0") {
		t.Errorf("expected a fully migrated database:\n%s", out.String())
	}

	out.Reset()
	if err := RunMigrations(&out, cfg, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Applied 0 migration(s)") {
		t.Errorf("unexpected output %q", out.String())
	}
}

func TestRunMigrationsRequiresSQLite(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = config.DriverMongo
	if err := RunMigrations(&bytes.Buffer{}, cfg, true); err == nil {
		t.Error("expected an error for the mongo driver")
	}
}

func TestRenderStats(t *testing.T) {
	newest := time.Now().Add(-2 * time.Hour)
	oldest := newest.Add(-72 * time.Hour)
	stats := &storage.Stats{
		Collection: "hookvault",
		Documents:  1234,
		Categories: []storage.CategoryCount{
			{Category: "personal_info", Subcategories: 2, Hooks: 1000},
			{Category: "fitness", Subcategories: 1, Hooks: 234},
		},
		Newest: &newest,
		Oldest: &oldest,
	}

	var out bytes.Buffer
	renderStats(&out, "sqlite", stats)
	got := out.String()
	for _, want := range []string{"1,234", "Personal Info", "(81.0%)", "2 hours ago", "3 days"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected stats output to contain %q:\n%s", want, got)
		}
	}
}

func TestRenderStatsEmpty(t *testing.T) {
	var out bytes.Buffer
	renderStats(&out, "sqlite", storage.ComputeStats("hookvault", nil))
	if !strings.Contains(out.String(), "No hooks imported yet.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := initConfig(path); err != nil {
		t.Fatalf("initConfig failed: %v", err)
	}
	if _, err := config.LoadConfig(path); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
	if err := initConfig(path); err == nil {
		t.Error("expected an error when the config already exists")
	}
}
