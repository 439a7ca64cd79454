// Package kindle writes notes in the layout of the Kindle "My Clippings.txt" file.
package kindle

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// EntryType is the kind of entry written on the metadata line.
type EntryType string

const (
	EntryTypeHighlight EntryType = "highlight"
	EntryTypeNote      EntryType = "note"
	EntryTypeBookmark  EntryType = "bookmark"
)

// EntrySeparator terminates every entry in My Clippings.txt
const EntrySeparator = "=========="

// FallbackAddedOn is used whenever a timestamp cannot be parsed.
const FallbackAddedOn = "Thursday, 1 January 1970 00:00:00"

const addedOnLayout = "Monday, 2 January 2006 15:04:05"

// Source timestamps look like 2016-03-26T15:46:21.000, some firmware adds a trailing Z.
// Fractional seconds are accepted by time.Parse without appearing in the layout.
var sourceLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// FormatAddedOn converts a Kobo timestamp into the date used on the metadata line,
// e.g. "Saturday, 26 March 2016 15:46:21".
func FormatAddedOn(timestamp string) string {
	for _, layout := range sourceLayouts {
		t, err := time.Parse(layout, timestamp)
		if err == nil {
			return t.Format(addedOnLayout)
		}
	}
	return FallbackAddedOn
}

// marker is the word used on the metadata line for each entry type.
func (t EntryType) marker() string {
	switch t {
	case EntryTypeNote:
		return "Note"
	case EntryTypeBookmark:
		return "Bookmark"
	default:
		return "Highlight"
	}
}

// Writer emits entries in My Clippings.txt layout.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write emits one entry. Page and location are always written as 1 since the
// source has no equivalent; addedOn must already be formatted.
func (cw *Writer) Write(title, author string, entryType EntryType, addedOn, text string) error {
	var b strings.Builder

	b.WriteString(title)
	if author != "" {
		fmt.Fprintf(&b, " (%s)", author)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- Your %s on page 1 | Location 1 | Added on %s\n", entryType.marker(), addedOn)
	b.WriteString("\n")
	if text != "" {
		b.WriteString(text)
		b.WriteString("\n")
	}
	b.WriteString(EntrySeparator)
	b.WriteString("\n")

	_, err := io.WriteString(cw.w, b.String())
	return err
}
