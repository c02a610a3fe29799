package pipeline

import "github.com/rubiojr/hookvault/pkg/core"

// Key extracts a grouping key from a hook.
type Key func(core.Hook) string

var (
	ByCategory    Key = func(h core.Hook) string { return h.Category }
	BySubcategory Key = func(h core.Hook) string { return h.Subcategory }
)

// DistinctValues returns the distinct key values of records in first
// occurrence order. Equality is exact string equality.
func DistinctValues(records []core.Hook, key Key) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, r := range records {
		v := key(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}
