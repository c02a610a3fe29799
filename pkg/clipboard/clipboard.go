// Package clipboard copies hook text to the system clipboard and tracks the
// short-lived "copied" indicator of each card.
package clipboard

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/rubiojr/hookvault/pkg/core"
	"github.com/rubiojr/hookvault/pkg/log"
)

// FeedbackWindow is how long a card shows as copied.
const FeedbackWindow = 1500 * time.Millisecond

// writeAll is a package-level variable to allow mocking in tests.
var writeAll = clipboard.WriteAll

var logger = log.ForService("clipboard")

// Copy writes text to the system clipboard. Failures are logged and returned
// wrapped in core.ErrClipboardWriteFailed.
func Copy(text string) error {
	if err := writeAll(text); err != nil {
		logger.Errorf("failed to copy: %v", err)
		return fmt.Errorf("%w: %w", core.ErrClipboardWriteFailed, err)
	}
	logger.Debugf("copied %d bytes", len(text))
	return nil
}

// Unsupported reports whether the platform has no clipboard utility.
func Unsupported() bool {
	return clipboard.Unsupported
}
