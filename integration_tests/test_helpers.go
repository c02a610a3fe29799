package integration_tests

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/rubiojr/hookvault/pkg/api"
	"github.com/rubiojr/hookvault/pkg/config"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/storage"
)

// CreateTestConfig creates a sqlite-backed test configuration
func CreateTestConfig(tempDir string) *config.Config {
	return &config.Config{
		StorageDir: tempDir,
		Store: config.StoreConfig{
			Driver:     config.DriverSQLite,
			Collection: "hookvault",
		},
	}
}

// SeedSpec describes how many hooks to generate for one category/subcategory
type SeedSpec struct {
	Category    string
	Subcategory string
	Count       int
}

// DefaultSeed is the 45 hook layout used across the integration tests:
// 25 personal_info hooks split over two subcategories and 20 fitness hooks.
var DefaultSeed = []SeedSpec{
	{Category: "personal_info", Subcategory: "family", Count: 15},
	{Category: "personal_info", Subcategory: "career", Count: 10},
	{Category: "fitness", Subcategory: "running", Count: 20},
}

// SeedDocuments builds documents following specs, in order
func SeedDocuments(specs []SeedSpec) []storage.Document {
	var docs []storage.Document
	for _, spec := range specs {
		for i := 0; i < spec.Count; i++ {
			docs = append(docs, storage.Document{Body: map[string]any{
				"category":     spec.Category,
				"subcategory":  spec.Subcategory,
				"hook":         fmt.Sprintf("%s/%s hook %02d", spec.Category, spec.Subcategory, i),
				"generated_at": fmt.Sprintf("2024-01-%02dT12:00:00Z", i+1),
			}})
		}
	}
	return docs
}

// OpenSeededStore opens the store configured by cfg and inserts docs
func OpenSeededStore(ctx context.Context, cfg *config.Config, docs []storage.Document) (storage.Store, error) {
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	writer, ok := store.(storage.Writer)
	if !ok {
		store.Close()
		return nil, fmt.Errorf("store %T does not accept documents", store)
	}
	if _, err := writer.InsertDocuments(ctx, docs); err != nil {
		store.Close()
		return nil, err
	}
	return store, nil
}

// NewAPIServer serves the hooks API for gateway the way `hookvault web` does
func NewAPIServer(gateway core.Gateway) *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(gateway).RegisterRoutes(mux)
	return httptest.NewServer(api.CorsMiddleware(api.CompressMiddleware(mux)))
}
