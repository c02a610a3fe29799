// Package seed loads hook documents from JSON or YAML files so they can be
// written to a document store.
//
// A seed file holds either a list of hook objects or an object with a
// "hooks" list. Every object needs non-empty category, subcategory and hook
// strings; generated_at is optional and any other fields are kept as-is.
// Hook text is never rewritten. Category keys holding markup are rejected.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/storage"
	"gopkg.in/yaml.v3"
)

// hookNamespace derives stable document IDs so re-importing a file
// replaces documents instead of duplicating them.
var hookNamespace = uuid.MustParse("6f1f7c59-2d1a-4c38-9a5e-0d6c9f3b8e41")

// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported seed file format")

// Result reports how many entries of a file were accepted.
type Result struct {
	Accepted int
	Rejected int
	Errors   []string
}

type wrapper struct {
	Hooks []map[string]any `json:"hooks" yaml:"hooks"`
}

// Parse decodes data according to the extension of name and returns the
// documents to store. Invalid entries are skipped and reported in Result.
func Parse(name string, data []byte) ([]storage.Document, Result, error) {
	entries, err := decode(name, data)
	if err != nil {
		return nil, Result{}, err
	}

	policy := bluemonday.StrictPolicy()
	var res Result
	docs := make([]storage.Document, 0, len(entries))
	for i, entry := range entries {
		doc, err := normalize(policy, entry)
		if err != nil {
			res.Rejected++
			res.Errors = append(res.Errors, fmt.Sprintf("entry %d: %v", i+1, err))
			continue
		}
		docs = append(docs, doc)
		res.Accepted++
	}
	return docs, res, nil
}

// ParseFile reads and parses path.
func ParseFile(path string) ([]storage.Document, Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, Result{}, fmt.Errorf("reading %s: %w", path, err)
	}
	docs, res, err := Parse(path, data)
	if err != nil {
		return nil, Result{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return docs, res, nil
}

// Supported reports whether path has a seed file extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

func decode(name string, data []byte) ([]map[string]any, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		trimmed := bytes.TrimSpace(data)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			var w wrapper
			if err := json.Unmarshal(trimmed, &w); err != nil {
				return nil, err
			}
			return w.Hooks, nil
		}
		var entries []map[string]any
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, err
		}
		return entries, nil
	case ".yaml", ".yml":
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if len(node.Content) == 0 {
			return nil, nil
		}
		root := node.Content[0]
		if root.Kind == yaml.MappingNode {
			var w wrapper
			if err := root.Decode(&w); err != nil {
				return nil, err
			}
			return w.Hooks, nil
		}
		var entries []map[string]any
		if err := root.Decode(&entries); err != nil {
			return nil, err
		}
		return entries, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(name))
	}
}

func normalize(policy *bluemonday.Policy, entry map[string]any) (storage.Document, error) {
	body := make(map[string]any, len(entry))
	for k, v := range entry {
		body[k] = v
	}

	for _, field := range []string{"category", "subcategory"} {
		s, ok := body[field].(string)
		if !ok {
			return storage.Document{}, fmt.Errorf("missing %s", field)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return storage.Document{}, fmt.Errorf("empty %s", field)
		}
		// Keys end up in URLs and option lists, so markup is refused
		// rather than stripped.
		if html.UnescapeString(policy.Sanitize(s)) != s {
			return storage.Document{}, fmt.Errorf("%s %q contains markup", field, s)
		}
		body[field] = s
	}

	// Hook text is stored verbatim since it is what users copy.
	text, ok := body["hook"].(string)
	if !ok {
		return storage.Document{}, errors.New("missing hook")
	}
	if strings.TrimSpace(text) == "" {
		return storage.Document{}, errors.New("empty hook")
	}

	switch v := body["generated_at"].(type) {
	case nil:
		delete(body, "generated_at")
	case time.Time:
		body["generated_at"] = v.UTC().Format(time.RFC3339Nano)
	case string:
		if _, ok := core.ParseTimestamp(v); !ok {
			return storage.Document{}, fmt.Errorf("invalid generated_at %q", v)
		}
	default:
		return storage.Document{}, fmt.Errorf("invalid generated_at %v", v)
	}

	id, _ := body["id"].(string)
	delete(body, "id")
	if id == "" {
		key := body["category"].(string) + "\x00" + body["subcategory"].(string) + "\x00" + body["hook"].(string)
		id = uuid.NewSHA1(hookNamespace, []byte(key)).String()
	}

	return storage.Document{ID: id, Body: body}, nil
}
