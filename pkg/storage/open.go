package storage

import (
	"context"
	"fmt"
	"os"

	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/core"
)

// Store is a gateway backed by a closable document store.
type Store interface {
	core.Gateway
	Collection() string
	Close() error
}

// Writer stores raw documents. It is used by import tooling only; the
// browsing path never writes.
type Writer interface {
	InsertDocuments(ctx context.Context, docs []Document) (int, error)
}

var (
	_ Store  = (*DocumentStore)(nil)
	_ Store  = (*MongoStore)(nil)
	_ Writer = (*DocumentStore)(nil)
	_ Writer = (*MongoStore)(nil)
)

// Open returns the document store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		return OpenMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase, cfg.Store.Collection)
	case config.DriverSQLite, "":
		if err := os.MkdirAll(cfg.StorageDir, 0755); err != nil {
			return nil, fmt.Errorf("creating storage directory: %w", err)
		}
		return OpenDocumentStore(cfg.DBPath(), cfg.Store.Collection)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// CollectionStats fetches every hook from store and summarizes them.
func CollectionStats(ctx context.Context, store Store) (*Stats, error) {
	hooks, err := store.FetchAllHooks(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(store.Collection(), hooks), nil
}
