package exporters

import (
	"fmt"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

// Format selects one of the output encodings.
type Format int

const (
	FormatText Format = iota
	FormatCSV
	FormatClippings
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatCSV:
		return "csv"
	case FormatClippings:
		return "clippings"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// Renderer serializes books or notes into the configured format.
type Renderer struct {
	format  Format
	encoder *Encoder
}

// NewRenderer creates a renderer. A nil encoder disables character substitution.
func NewRenderer(format Format, encoder *Encoder) (*Renderer, error) {
	switch format {
	case FormatText, FormatCSV, FormatClippings:
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Renderer{format: format, encoder: encoder}, nil
}

func (r *Renderer) Format() Format {
	return r.format
}

// RenderBooks renders the enumerated book list. The clippings format has no
// book list representation and falls back to text.
func (r *Renderer) RenderBooks(books []entities.Book) (string, error) {
	if r.format == FormatCSV {
		return renderBooksCSV(books, r.encoder)
	}
	return renderBooksText(books, r.encoder), nil
}

func (r *Renderer) RenderNotes(notes []entities.Note) (string, error) {
	switch r.format {
	case FormatCSV:
		return renderNotesCSV(notes, r.encoder)
	case FormatClippings:
		return renderNotesClippings(notes, r.encoder)
	default:
		return renderNotesText(notes, r.encoder), nil
	}
}
