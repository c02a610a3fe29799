package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/db"
	"github.com/rubiojr/hookvault/pkg/log"
)

var logger = log.ForService("storage")

// DocumentStore keeps JSON documents in a sqlite database, grouped by
// collection. Documents are schemaless; hooks are projected out of them with
// json_extract at read time.
type DocumentStore struct {
	db         *sql.DB
	collection string
}

// Document is a raw document to insert. An empty ID gets a random UUID.
type Document struct {
	ID   string
	Body map[string]any
}

// OpenSQLite opens the sqlite database at dbPath with the pragmas used by
// every store handle. It does not migrate.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 30000",
		"PRAGMA temp_store = memory",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %q: %w", pragma, err)
		}
	}
	return conn, nil
}

// OpenDocumentStore opens (creating if needed) the sqlite database at dbPath
// and migrates it to the current schema.
func OpenDocumentStore(dbPath, collection string) (*DocumentStore, error) {
	conn, err := OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.InitializeDatabase(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrating %s: %w", dbPath, err)
	}

	return &DocumentStore{db: conn, collection: collection}, nil
}

func (s *DocumentStore) Close() error {
	return s.db.Close()
}

// Collection returns the collection this store reads from.
func (s *DocumentStore) Collection() string {
	return s.collection
}

// FetchAllHooks scans the whole collection in insertion order.
func (s *DocumentStore) FetchAllHooks(ctx context.Context) ([]core.Hook, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT
			json_extract(body, '$.category'),
			json_extract(body, '$.subcategory'),
			json_extract(body, '$.hook'),
			json_extract(body, '$.generated_at')
		FROM documents
		WHERE collection = ?
		ORDER BY rowid`, s.collection)
	if err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("querying documents: %w", err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warnf("failed to close rows: %v", err)
		}
	}()

	hooks := []core.Hook{}
	for rows.Next() {
		var category, subcategory, text, generatedAt sql.NullString
		if err := rows.Scan(&category, &subcategory, &text, &generatedAt); err != nil {
			return nil, core.DataUnavailable(fmt.Errorf("scanning document: %w", err))
		}
		hooks = append(hooks, core.Hook{
			Category:    category.String,
			Subcategory: subcategory.String,
			Hook:        text.String,
			GeneratedAt: nullablePtr(generatedAt),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, core.DataUnavailable(fmt.Errorf("reading documents: %w", err))
	}

	logger.Debugf("fetched %d hooks from %s", len(hooks), s.collection)
	return hooks, nil
}

// InsertDocuments stores docs in one transaction. Documents with an existing
// ID are replaced in place. It returns the number of documents written.
func (s *DocumentStore) InsertDocuments(ctx context.Context, docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if err := tx.Rollback(); err != nil {
				logger.Warnf("failed to rollback transaction: %v", err)
			}
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO documents (id, collection, body) VALUES (?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET collection = excluded.collection, body = excluded.body`)
	if err != nil {
		return 0, fmt.Errorf("preparing statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			logger.Warnf("failed to close statement: %v", err)
		}
	}()

	for _, doc := range docs {
		id := doc.ID
		if id == "" {
			id = uuid.New().String()
		}
		body, err := json.Marshal(doc.Body)
		if err != nil {
			return 0, fmt.Errorf("marshaling document %s: %w", id, err)
		}
		if _, err := stmt.ExecContext(ctx, id, s.collection, string(body)); err != nil {
			return 0, fmt.Errorf("inserting document %s: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing documents: %w", err)
	}
	committed = true

	return len(docs), nil
}

// CategoryCount is the number of hooks in one category.
type CategoryCount struct {
	Category      string
	Subcategories int
	Hooks         int
}

// Stats summarizes the collection.
type Stats struct {
	Collection string
	Documents  int
	Categories []CategoryCount
	Newest     *time.Time
	Oldest     *time.Time
}

// ComputeStats summarizes hooks. It works for any gateway's output.
func ComputeStats(collection string, hooks []core.Hook) *Stats {
	stats := &Stats{Collection: collection, Documents: len(hooks)}

	index := map[string]int{}
	subs := map[string]map[string]struct{}{}
	for _, h := range hooks {
		i, ok := index[h.Category]
		if !ok {
			i = len(stats.Categories)
			index[h.Category] = i
			stats.Categories = append(stats.Categories, CategoryCount{Category: h.Category})
			subs[h.Category] = map[string]struct{}{}
		}
		stats.Categories[i].Hooks++
		subs[h.Category][h.Subcategory] = struct{}{}

		if t, ok := h.GeneratedTime(); ok {
			if stats.Newest == nil || t.After(*stats.Newest) {
				stats.Newest = &t
			}
			if stats.Oldest == nil || t.Before(*stats.Oldest) {
				stats.Oldest = &t
			}
		}
	}
	for i := range stats.Categories {
		stats.Categories[i].Subcategories = len(subs[stats.Categories[i].Category])
	}
	return stats
}

// nullablePtr maps SQL NULL and empty strings to an absent value.
func nullablePtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return core.StringPtr(s.String)
}
