package exporters

import (
	"fmt"
	"strings"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

// textDelimiter wraps multi-line fields in the human-readable output.
const textDelimiter = "\n=== === ===\n"

func renderBooksText(books []entities.Book, enc *Encoder) string {
	lines := make([]string, 0, len(books))
	for i, book := range books {
		lines = append(lines, fmt.Sprintf("%d\t%s\t%s", i+1, enc.Sanitize(book.Title), enc.Sanitize(book.Author)))
	}
	return strings.Join(lines, "\n")
}

func renderNotesText(notes []entities.Note, enc *Encoder) string {
	blocks := make([]string, 0, len(notes))
	for _, note := range notes {
		block, ok := noteBlock(note, enc)
		if !ok {
			continue
		}
		blocks = append(blocks, block+"\n")
	}
	return strings.Join(blocks, "\n")
}

// noteBlock formats one note. Bookmarks have nothing to show and yield no block.
func noteBlock(note entities.Note, enc *Encoder) (string, bool) {
	if note.Kind != entities.NoteKindAnnotation && note.Kind != entities.NoteKindHighlight {
		return "", false
	}

	lines := []string{
		fmt.Sprintf("Type:           %s", note.Kind),
		fmt.Sprintf("Title:          %s", enc.Sanitize(note.Title)),
		fmt.Sprintf("Author:         %s", enc.Sanitize(note.Author)),
		fmt.Sprintf("Date created:   %s", enc.Sanitize(note.DateCreated)),
	}
	if note.Kind == entities.NoteKindAnnotation {
		lines = append(lines, "Annotation:"+textDelimiter+enc.Sanitize(note.Annotation)+textDelimiter)
	}
	lines = append(lines, "Reference text:"+textDelimiter+enc.Sanitize(note.Text)+textDelimiter)

	return strings.Join(lines, "\n"), true
}
