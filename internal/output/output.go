// Package output writes rendered exports to a file or the terminal.
package output

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrOutputWriteFailed indicates the destination file could not be written
var ErrOutputWriteFailed = errors.New("unable to write output file, check that the path is correct and that you have write permission on it")

// WriteError carries the destination path of a failed write.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s (%s): %v", ErrOutputWriteFailed, e.Path, e.Err)
}

func (e *WriteError) Unwrap() []error {
	return []error{ErrOutputWriteFailed, e.Err}
}

// Sanitizer replaces characters the terminal charset cannot show.
type Sanitizer interface {
	Sanitize(s string) string
}

// Sink is where the rendered export ends up.
type Sink struct {
	Path      string // empty means Stdout
	Stdout    io.Writer
	Sanitizer Sanitizer
}

func NewSink(path string, stdout io.Writer, sanitizer Sanitizer) *Sink {
	if stdout == nil {
		stdout = os.Stdout
	}
	return &Sink{Path: path, Stdout: stdout, Sanitizer: sanitizer}
}

// ToFile reports whether the sink writes to a named file.
func (s *Sink) ToFile() bool {
	return s.Path != ""
}

// Write stores content in the file, overwriting it, or prints it followed by a newline.
func (s *Sink) Write(content string) error {
	if s.ToFile() {
		if err := os.WriteFile(s.Path, []byte(content), 0644); err != nil {
			return &WriteError{Path: s.Path, Err: err}
		}
		return nil
	}

	if s.Sanitizer != nil {
		content = s.Sanitizer.Sanitize(content)
	}
	_, err := fmt.Fprintln(s.Stdout, content)
	return err
}

// Summary is the optional trailer with book and note counts.
type Summary struct {
	Books    int
	Notes    int
	ListOnly bool
}

// WriteSummary prints the counts after the main output. Notes are omitted when listing books.
func (s *Sink) WriteSummary(summary Summary) error {
	if _, err := fmt.Fprintf(s.Stdout, "\nBooks with annotations or highlights: %d\n", summary.Books); err != nil {
		return err
	}
	if !summary.ListOnly {
		if _, err := fmt.Fprintf(s.Stdout, "Annotations and/or highlights: %d\n", summary.Notes); err != nil {
			return err
		}
	}
	return nil
}
