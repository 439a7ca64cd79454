package exporters

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

var booksCSVHeader = []string{"ID", "TITLE", "AUTHOR"}

func renderBooksCSV(books []entities.Book, enc *Encoder) (string, error) {
	records := make([][]string, 0, len(books)+1)
	records = append(records, booksCSVHeader)
	for i, book := range books {
		records = append(records, []string{
			strconv.Itoa(i + 1),
			book.Title,
			book.Author,
		})
	}
	return writeCSV(records, enc)
}

// renderNotesCSV writes one header-less row per note:
// kind, title, author, date created, date modified, annotation, reference text.
func renderNotesCSV(notes []entities.Note, enc *Encoder) (string, error) {
	records := make([][]string, 0, len(notes))
	for _, note := range notes {
		records = append(records, []string{
			string(note.Kind),
			note.Title,
			note.Author,
			note.DateCreated,
			note.DateModified,
			note.Annotation,
			note.Text,
		})
	}
	return writeCSV(records, enc)
}

func writeCSV(records [][]string, enc *Encoder) (string, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	for _, record := range records {
		row := make([]string, len(record))
		for i, field := range record {
			row[i] = enc.Sanitize(field)
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write CSV: %w", err)
	}

	return b.String(), nil
}
