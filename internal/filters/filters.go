// Package filters narrows the classified note list down to what the user asked for.
//
// All predicates are pure and combine with logical AND, so their order does not
// change the result. The book ordinal used by --bookid is only meaningful for a
// single run: it indexes the book list freshly read from the store.
package filters

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

// ErrConflictingFilters is returned when both a title and an ordinal book filter are given.
var ErrConflictingFilters = errors.New("you cannot specify both --book and --bookid")

// ErrInvalidBookID indicates an ordinal outside the enumerated book list.
var ErrInvalidBookID = errors.New("invalid book id")

// InvalidBookIDError carries the rejected ordinal and the valid upper bound.
type InvalidBookIDError struct {
	Value string
	Max   int
}

func (e *InvalidBookIDError) Error() string {
	return fmt.Sprintf("the bookid value must be an integer between 1 and %d, got %q", e.Max, e.Value)
}

func (e *InvalidBookIDError) Unwrap() error {
	return ErrInvalidBookID
}

// Predicate reports whether a note should be kept.
type Predicate func(entities.Note) bool

// Options selects the notes to keep. A book filter is active when its value is
// non-empty or when it was given explicitly, so an empty --book still filters.
type Options struct {
	Title           string
	TitleGiven      bool
	BookID          string
	BookIDGiven     bool
	HighlightsOnly  bool
	AnnotationsOnly bool
}

func (o Options) hasTitle() bool {
	return o.TitleGiven || o.Title != ""
}

func (o Options) hasBookID() bool {
	return o.BookIDGiven || o.BookID != ""
}

// Validate checks for mutually exclusive filters without touching any data.
func (o Options) Validate() error {
	if o.hasTitle() && o.hasBookID() {
		return ErrConflictingFilters
	}
	return nil
}

// Enabled reports whether any filter is active.
func (o Options) Enabled() bool {
	return o.hasTitle() || o.hasBookID() || o.HighlightsOnly || o.AnnotationsOnly
}

// Predicates resolves the options into the list of predicates to apply,
// in the order: book ordinal, book title, highlights only, annotations only.
func (o Options) Predicates(books []entities.Book) ([]Predicate, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}

	var predicates []Predicate

	if o.hasBookID() {
		volumeID, err := ResolveBookID(books, o.BookID)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, ByVolumeID(volumeID))
	}
	if o.hasTitle() {
		predicates = append(predicates, ByBookTitle(o.Title))
	}
	// Both kind flags together intersect two disjoint sets and always yield nothing.
	if o.HighlightsOnly {
		predicates = append(predicates, ByKind(entities.NoteKindHighlight))
	}
	if o.AnnotationsOnly {
		predicates = append(predicates, ByKind(entities.NoteKindAnnotation))
	}

	return predicates, nil
}

// Apply returns the notes matching every enabled filter.
func Apply(notes []entities.Note, books []entities.Book, opts Options) ([]entities.Note, error) {
	predicates, err := opts.Predicates(books)
	if err != nil {
		return nil, err
	}

	result := notes
	for _, p := range predicates {
		result = Filter(result, p)
	}
	return result, nil
}

// Filter keeps the notes for which keep returns true. The input is not modified.
func Filter(notes []entities.Note, keep Predicate) []entities.Note {
	result := make([]entities.Note, 0, len(notes))
	for _, n := range notes {
		if keep(n) {
			result = append(result, n)
		}
	}
	return result
}

func ByBookTitle(title string) Predicate {
	return func(n entities.Note) bool {
		return n.Title == title
	}
}

func ByVolumeID(volumeID string) Predicate {
	return func(n entities.Note) bool {
		return n.VolumeID == volumeID
	}
}

func ByKind(kind entities.NoteKind) Predicate {
	return func(n entities.Note) bool {
		return n.Kind == kind
	}
}

// ResolveBookID maps a 1-based ordinal into the book list to that book's volume reference.
func ResolveBookID(books []entities.Book, id string) (string, error) {
	ordinal, err := strconv.Atoi(id)
	if err != nil || ordinal < 1 || ordinal > len(books) {
		return "", &InvalidBookIDError{Value: id, Max: len(books)}
	}
	return books[ordinal-1].VolumeID, nil
}
