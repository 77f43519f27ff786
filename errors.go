package chatmsg

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrResourceNotFound is returned when a language file can be found
	// neither on disk nor among the bundled resources.
	ErrResourceNotFound = errors.New("language resource not found")

	// ErrUnknownLanguage is returned when an allow-list is configured and
	// the requested language is not in it.
	ErrUnknownLanguage = errors.New("unknown language")

	// ErrNoActiveLanguage is returned by Reload before anything was loaded.
	ErrNoActiveLanguage = errors.New("no language loaded")

	// ErrNotReloadable is returned by Reload and Watch when the active
	// language was loaded from a stream instead of a file.
	ErrNotReloadable = errors.New("language has no reloadable source")
)

// FormatError reports a pattern that cannot be formatted.
type FormatError struct {
	Pattern string
	Pos     int // rune offset, -1 when unknown
	Reason  string
}

func (e *FormatError) Error() string {
	if e.Pos >= 0 {
		return fmt.Sprintf("format %q at %d: %s", e.Pattern, e.Pos, e.Reason)
	}
	return fmt.Sprintf("format %q: %s", e.Pattern, e.Reason)
}
