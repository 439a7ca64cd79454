package entities

// NoteKind is the classification of a note, printed as-is by every output format.
type NoteKind string

const (
	NoteKindBookmark   NoteKind = "bookmark"
	NoteKindHighlight  NoteKind = "highlight"
	NoteKindAnnotation NoteKind = "annotation"
)

// DefaultTimestamp replaces missing creation/modification dates.
const DefaultTimestamp = "1970-01-01T00:00:00.000"

// Book is a single book that has at least one note on the device.
type Book struct {
	ID       string // content.ContentID
	Title    string
	Author   string // empty on schemas without content.Attribution
	VolumeID string // join key for notes
}

// Note is a bookmark, highlight or annotation attached to a book.
type Note struct {
	VolumeID     string
	Text         string // highlighted passage
	Annotation   string // user's own note
	DateCreated  string
	DateModified string
	Title        string
	Author       string
	Kind         NoteKind
}

// Classify infers the kind of note from which text fields are populated.
// Reference text is what matters: without it the entry is always a bookmark.
func Classify(text, annotation string) NoteKind {
	switch {
	case text != "" && annotation != "":
		return NoteKindAnnotation
	case text != "":
		return NoteKindHighlight
	default:
		return NoteKindBookmark
	}
}

// NewNote builds a Note, deriving its kind and defaulting empty dates.
func NewNote(volumeID, text, annotation, dateCreated, dateModified, title, author string) Note {
	if dateCreated == "" {
		dateCreated = DefaultTimestamp
	}
	if dateModified == "" {
		dateModified = DefaultTimestamp
	}

	return Note{
		VolumeID:     volumeID,
		Text:         text,
		Annotation:   annotation,
		DateCreated:  dateCreated,
		DateModified: dateModified,
		Title:        title,
		Author:       author,
		Kind:         Classify(text, annotation),
	}
}

// CountByKind tallies notes per kind.
func CountByKind(notes []Note) map[NoteKind]int {
	counts := make(map[NoteKind]int, 3)
	for _, n := range notes {
		counts[n.Kind]++
	}
	return counts
}
