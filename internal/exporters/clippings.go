package exporters

import (
	"fmt"
	"strings"

	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/kindle"
)

// renderNotesClippings writes notes in the Kindle My Clippings.txt layout.
func renderNotesClippings(notes []entities.Note, enc *Encoder) (string, error) {
	var b strings.Builder
	w := kindle.NewWriter(&b)

	for _, note := range notes {
		entryType, text := clippingContent(note)
		err := w.Write(
			enc.Sanitize(note.Title),
			enc.Sanitize(note.Author),
			entryType,
			kindle.FormatAddedOn(note.DateCreated),
			enc.Sanitize(text),
		)
		if err != nil {
			return "", fmt.Errorf("failed to write clipping: %w", err)
		}
	}

	return b.String(), nil
}

// clippingContent maps a note kind to its clipping type and the text it carries.
func clippingContent(note entities.Note) (kindle.EntryType, string) {
	switch note.Kind {
	case entities.NoteKindAnnotation:
		return kindle.EntryTypeNote, note.Annotation
	case entities.NoteKindHighlight:
		return kindle.EntryTypeHighlight, note.Text
	default:
		return kindle.EntryTypeBookmark, ""
	}
}
