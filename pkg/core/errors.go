package core

import (
	"errors"
	"fmt"
)

var (
	// ErrDataUnavailable reports that the hook collection could not be read.
	// It is distinct from an empty collection.
	ErrDataUnavailable = errors.New("hook data unavailable")

	// ErrClipboardWriteFailed reports a failed copy action. It is logged only.
	ErrClipboardWriteFailed = errors.New("clipboard write failed")
)

// DataUnavailable wraps cause so that errors.Is(err, ErrDataUnavailable)
// holds while the original message stays readable.
func DataUnavailable(cause error) error {
	if cause == nil {
		return ErrDataUnavailable
	}
	return fmt.Errorf("%w: %w", ErrDataUnavailable, cause)
}
