package types

import "github.com/rubiojr/hookvault/pkg/pipeline"

// PageData represents data passed to templates
type PageData struct {
	Title string
	View  pipeline.View
	// Error is set when the hook collection could not be loaded. It is
	// shown instead of the empty-state text.
	Error          string
	CopyFeedbackMS int64
	Version        string // Application version (for footer display)
}
