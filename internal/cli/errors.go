package cli

import (
	"errors"

	"github.com/mrlokans/kobo-notes/internal/kobo"
	"github.com/mrlokans/kobo-notes/internal/output"
)

// Exit codes, one per error kind.
const (
	ExitOK                = 0
	ExitConfiguration     = 1 // bad flags, missing path, conflicting filters, invalid book id
	ExitSourceUnavailable = 2
	ExitQueryFailed       = 4
	ExitOutputWriteFailed = 8
)

// ExitCode maps an error returned by the export command to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, kobo.ErrSourceUnavailable):
		return ExitSourceUnavailable
	case errors.Is(err, kobo.ErrQueryFailed):
		return ExitQueryFailed
	case errors.Is(err, output.ErrOutputWriteFailed):
		return ExitOutputWriteFailed
	default:
		return ExitConfiguration
	}
}
