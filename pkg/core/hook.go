package core

import (
	"context"
	"strings"
	"time"
)

// Hook is a single marketing hook as projected from the document store.
//
// Only these four fields ever leave the store. Extra document fields are
// dropped by the gateway projection.
type Hook struct {
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Hook        string  `json:"hook"`
	GeneratedAt *string `json:"generated_at"`
}

// Gateway is the read-only boundary to the hook collection.
//
// FetchAllHooks returns every record in store-native order. An empty
// collection yields an empty, non-nil slice and a nil error. Failures wrap
// ErrDataUnavailable.
type Gateway interface {
	FetchAllHooks(ctx context.Context) ([]Hook, error)
}

// GatewayFunc adapts a plain function to the Gateway interface.
type GatewayFunc func(ctx context.Context) ([]Hook, error)

func (f GatewayFunc) FetchAllHooks(ctx context.Context) ([]Hook, error) {
	return f(ctx)
}

// timeLayouts lists the timestamp shapes accepted for generated_at.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999-0700",
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// GeneratedTime parses GeneratedAt. The second return value is false when the
// field is absent or not a recognizable ISO timestamp.
func (h Hook) GeneratedTime() (time.Time, bool) {
	if h.GeneratedAt == nil {
		return time.Time{}, false
	}
	return ParseTimestamp(*h.GeneratedAt)
}

// ParseTimestamp parses an ISO-8601 style timestamp.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// StringPtr returns a pointer to s, or nil when s is empty.
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
