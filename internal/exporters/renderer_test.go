package exporters

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/kindle"
)

func newTestRenderer(t *testing.T, format Format, charset string) *Renderer {
	t.Helper()

	enc, err := NewEncoder(charset)
	require.NoError(t, err)

	r, err := NewRenderer(format, enc)
	require.NoError(t, err)
	return r
}

func sampleBooks() []entities.Book {
	return []entities.Book{
		{ID: "anathem", Title: "Anathem", Author: "Neal Stephenson", VolumeID: "anathem"},
		{ID: "dune", Title: "Dune", Author: "Frank Herbert", VolumeID: "dune"},
	}
}

func sampleNotes() []entities.Note {
	return []entities.Note{
		entities.NewNote("dune", "The spice must flow", "Iconic", "2016-03-27T09:00:00.000", "2016-03-28T10:00:00.000", "Dune", "Frank Herbert"),
		entities.NewNote("dune", "Fear is the mind-killer", "", "2016-03-26T15:46:21.000", "", "Dune", "Frank Herbert"),
		entities.NewNote("anathem", "", "", "", "", "Anathem", ""),
	}
}

func TestNewRenderer_UnsupportedFormat(t *testing.T) {
	_, err := NewRenderer(Format(42), nil)
	assert.Error(t, err)
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "csv", FormatCSV.String())
	assert.Equal(t, "clippings", FormatClippings.String())
}

func TestRenderBooks_Text(t *testing.T) {
	r := newTestRenderer(t, FormatText, "")

	out, err := r.RenderBooks(sampleBooks())

	require.NoError(t, err)
	assert.Equal(t, "1\tAnathem\tNeal Stephenson\n2\tDune\tFrank Herbert", out)
}

func TestRenderBooks_ClippingsFallsBackToText(t *testing.T) {
	r := newTestRenderer(t, FormatClippings, "")

	out, err := r.RenderBooks(sampleBooks())

	require.NoError(t, err)
	assert.Equal(t, "1\tAnathem\tNeal Stephenson\n2\tDune\tFrank Herbert", out)
}

func TestRenderBooks_CSV(t *testing.T) {
	r := newTestRenderer(t, FormatCSV, "")

	out, err := r.RenderBooks(sampleBooks())

	require.NoError(t, err)
	assert.Equal(t, "ID,TITLE,AUTHOR\n1,Anathem,Neal Stephenson\n2,Dune,Frank Herbert\n", out)
}

func TestRenderNotes_Text(t *testing.T) {
	r := newTestRenderer(t, FormatText, "")

	t.Run("annotation block has both sections", func(t *testing.T) {
		out, err := r.RenderNotes(sampleNotes()[:1])
		require.NoError(t, err)

		expected := "Type:           annotation\n" +
			"Title:          Dune\n" +
			"Author:         Frank Herbert\n" +
			"Date created:   2016-03-27T09:00:00.000\n" +
			"Annotation:\n=== === ===\nIconic\n=== === ===\n" +
			"\n" +
			"Reference text:\n=== === ===\nThe spice must flow\n=== === ===\n" +
			"\n"
		assert.Equal(t, expected, out)
	})

	t.Run("highlight block has only reference text", func(t *testing.T) {
		notes := []entities.Note{
			entities.NewNote("dune", "Fear is the mind-killer", "", "2016-03-26T15:46:21.000", "", "Dune", "Frank Herbert"),
		}

		out, err := r.RenderNotes(notes)
		require.NoError(t, err)

		assert.Contains(t, out, "Type:           highlight")
		assert.Contains(t, out, "Title:          Dune")
		assert.Contains(t, out, "Reference text:\n=== === ===\nFear is the mind-killer\n=== === ===\n")
		assert.NotContains(t, out, "Annotation:")
	})

	t.Run("bookmarks produce no block", func(t *testing.T) {
		out, err := r.RenderNotes(sampleNotes()[2:])
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("blocks are separated by a blank line", func(t *testing.T) {
		out, err := r.RenderNotes(sampleNotes())
		require.NoError(t, err)

		assert.Equal(t, 2, strings.Count(out, "Type:"))
		assert.Contains(t, out, "=== === ===\n\n\nType:           highlight")
	})
}

func TestRenderNotes_CSV(t *testing.T) {
	r := newTestRenderer(t, FormatCSV, "")

	out, err := r.RenderNotes(sampleNotes())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	for i, note := range sampleNotes() {
		assert.Equal(t, []string{
			string(note.Kind), note.Title, note.Author,
			note.DateCreated, note.DateModified,
			note.Annotation, note.Text,
		}, records[i])
	}
	assert.Equal(t, entities.DefaultTimestamp, records[1][4])
}

func TestRenderNotes_CSVRoundTripWithSpecialCharacters(t *testing.T) {
	r := newTestRenderer(t, FormatCSV, "")
	notes := []entities.Note{
		entities.NewNote("v", "He said, \"hello\"\nand left", "a, b; c", "2020-01-01T00:00:00", "", "Title, with comma", "Ünïcødé Author"),
	}

	out, err := r.RenderNotes(notes)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "He said, \"hello\"\nand left", records[0][6])
	assert.Equal(t, "a, b; c", records[0][5])
	assert.Equal(t, "Title, with comma", records[0][1])
	assert.Equal(t, "Ünïcødé Author", records[0][2])
}

func TestRenderNotes_Clippings(t *testing.T) {
	r := newTestRenderer(t, FormatClippings, "")

	out, err := r.RenderNotes(sampleNotes())
	require.NoError(t, err)

	expected := "Dune (Frank Herbert)\n" +
		"- Your Note on page 1 | Location 1 | Added on Sunday, 27 March 2016 09:00:00\n" +
		"\n" +
		"Iconic\n" +
		"==========\n" +
		"Dune (Frank Herbert)\n" +
		"- Your Highlight on page 1 | Location 1 | Added on Saturday, 26 March 2016 15:46:21\n" +
		"\n" +
		"Fear is the mind-killer\n" +
		"==========\n" +
		"Anathem\n" +
		"- Your Bookmark on page 1 | Location 1 | Added on Thursday, 1 January 1970 00:00:00\n" +
		"\n" +
		"==========\n"
	assert.Equal(t, expected, out)
	assert.Equal(t, 3, strings.Count(out, kindle.EntrySeparator+"\n"))
}

func TestRenderNotes_ClippingsUnparseableDate(t *testing.T) {
	r := newTestRenderer(t, FormatClippings, "")
	notes := []entities.Note{
		entities.NewNote("dune", "Fear is the mind-killer", "", "not a date", "", "Dune", "Frank Herbert"),
	}

	out, err := r.RenderNotes(notes)

	require.NoError(t, err)
	assert.Contains(t, out, "Added on Thursday, 1 January 1970 00:00:00")
}

func TestRender_EmptyInput(t *testing.T) {
	tests := []struct {
		format    Format
		wantBooks string
		wantNotes string
	}{
		{FormatText, "", ""},
		{FormatCSV, "ID,TITLE,AUTHOR\n", ""},
		{FormatClippings, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			r := newTestRenderer(t, tt.format, "")

			books, err := r.RenderBooks(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBooks, books)

			notes, err := r.RenderNotes(nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNotes, notes)
		})
	}
}

func TestRender_PlaceholderSubstitution(t *testing.T) {
	notes := []entities.Note{
		entities.NewNote("v", "Ça ira — déjà vu", "naïve", "2020-01-01T00:00:00", "", "Les Misérables", "Victor Hugo"),
	}

	for _, format := range []Format{FormatText, FormatCSV, FormatClippings} {
		t.Run(format.String(), func(t *testing.T) {
			r := newTestRenderer(t, format, "us-ascii")

			out, err := r.RenderNotes(notes)
			require.NoError(t, err)

			assert.Contains(t, out, "Les Mis?rables")
			assert.Contains(t, out, "na?ve")
			for _, ch := range out {
				assert.Less(t, ch, rune(0x80))
			}
		})
	}
}
