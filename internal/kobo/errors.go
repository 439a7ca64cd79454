package kobo

import (
	"errors"
	"fmt"
)

// ErrSourceUnavailable indicates the store path is missing or cannot be opened
var ErrSourceUnavailable = errors.New("unable to read the KoboReader.sqlite file, check that the path is correct and that you have read permission on it")

// ErrQueryFailed indicates the store was opened but reading from it failed
var ErrQueryFailed = errors.New("unexpected error reading your KoboReader.sqlite file")

// QueryError wraps the driver error raised while running one of the store queries.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", ErrQueryFailed, e.Err)
}

func (e *QueryError) Unwrap() []error {
	return []error{ErrQueryFailed, e.Err}
}
