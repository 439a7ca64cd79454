package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/kobo-notes/internal/config"
	"github.com/mrlokans/kobo-notes/internal/entities"
	"github.com/mrlokans/kobo-notes/internal/exporters"
	"github.com/mrlokans/kobo-notes/internal/filters"
	"github.com/mrlokans/kobo-notes/internal/kobo"
	"github.com/mrlokans/kobo-notes/internal/logging"
	"github.com/mrlokans/kobo-notes/internal/output"
)

// ExportCommand reads notes from a KoboReader.sqlite file and writes them out.
type ExportCommand struct {
	Config *config.Config
	Logger *zap.Logger
	Stdout io.Writer
}

// NewRootCommand builds the kobo-notes command line.
func NewRootCommand(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kobo-notes <KoboReader.sqlite>",
		Short: "Export annotations and highlights from a Kobo SQLite file",
		Long: `Export annotations, highlights and bookmarks from the KoboReader.sqlite file
found under .kobo/ on a Kobo e-reader.

Notes are printed in a human-readable form by default. Use --csv for CSV or
--kindle for the Kindle "My Clippings.txt" format. Every flag can also be set
through a KOBO_NOTES_<FLAG> environment variable, e.g. KOBO_NOTES_CHARSET.`,
		Example: `  kobo-notes KoboReader.sqlite
  kobo-notes KoboReader.sqlite --list
  kobo-notes KoboReader.sqlite --bookid 2 --csv --output dune.csv
  kobo-notes KoboReader.sqlite --book "Dune" --kindle --output "My Clippings.txt"`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.NewConfig(c.Flags(), args)
			if err != nil {
				return err
			}

			logger := logging.New(cfg.Global.Verbose)
			defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

			export := &ExportCommand{
				Config: cfg,
				Logger: logger,
				Stdout: c.OutOrStdout(),
			}
			return export.Run()
		},
	}

	flags := cmd.Flags()
	flags.String("output", "", "Output to file instead of using the standard output")
	flags.Bool("csv", false, "Output in CSV format instead of human-readable format")
	flags.Bool("kindle", false, "Output in Kindle 'My Clippings.txt' format")
	flags.Bool("list", false, "List the titles of books with annotations or highlights")
	flags.String("book", "", "Output annotations and highlights only from the book with the given title")
	flags.String("bookid", "", "Output annotations and highlights only from the book with the given ID (see --list)")
	flags.Bool("annotations-only", false, "Output annotations only, excluding highlights")
	flags.Bool("highlights-only", false, "Output highlights only, excluding annotations")
	flags.Bool("info", false, "Print information about the number of annotations and highlights")
	flags.String("charset", config.DefaultCharset, "Output charset, characters it cannot encode are replaced with '?'")
	flags.Bool("verbose", false, "Enable verbose logging to stderr")

	return cmd
}

// Run executes the pipeline: read the store, filter, render, write.
func (cmd *ExportCommand) Run() error {
	cfg := cmd.Config
	log := cmd.Logger
	if log == nil {
		log = zap.NewNop()
	}
	stdout := cmd.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	opts := filters.Options{
		Title:           cfg.Filters.Book,
		TitleGiven:      cfg.Filters.BookGiven,
		BookID:          cfg.Filters.BookID,
		BookIDGiven:     cfg.Filters.BookIDGiven,
		HighlightsOnly:  cfg.Filters.HighlightsOnly,
		AnnotationsOnly: cfg.Filters.AnnotationsOnly,
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	if opts.HighlightsOnly && opts.AnnotationsOnly {
		log.Warn("both --highlights-only and --annotations-only given, no note can match both")
	}

	encoder, err := exporters.NewEncoder(cfg.Output.Charset)
	if err != nil {
		return err
	}

	renderer, err := exporters.NewRenderer(formatFor(cfg), encoder)
	if err != nil {
		return err
	}

	books, notes, err := readStore(cfg.Store.Path, !cfg.Output.List, log)
	if err != nil {
		return err
	}

	var content string
	if cfg.Output.List {
		content, err = renderer.RenderBooks(books)
	} else {
		notes, err = filters.Apply(notes, books, opts)
		if err != nil {
			return err
		}
		log.Debug("filtered notes",
			zap.Bool("filters_enabled", opts.Enabled()),
			zap.Int("count", len(notes)),
			zap.Any("by_kind", entities.CountByKind(notes)))
		content, err = renderer.RenderNotes(notes)
	}
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	sink := output.NewSink(cfg.Output.Path, stdout, encoder)
	if err := sink.Write(content); err != nil {
		return err
	}
	if sink.ToFile() {
		log.Debug("wrote output file",
			zap.String("path", cfg.Output.Path),
			zap.String("format", renderer.Format().String()),
			zap.String("charset", encoder.Name()))
	}

	if cfg.Output.Info {
		return sink.WriteSummary(output.Summary{
			Books:    len(books),
			Notes:    len(notes),
			ListOnly: cfg.Output.List,
		})
	}
	return nil
}

// readStore runs the book query and, when withNotes is set, the note query.
// The connection is closed before returning so nothing stays open while rendering.
func readStore(path string, withNotes bool, log *zap.Logger) ([]entities.Book, []entities.Note, error) {
	reader, err := kobo.Open(path, log)
	if err != nil {
		return nil, nil, err
	}
	defer reader.Close()

	books, err := reader.Books()
	if err != nil {
		return nil, nil, err
	}

	if !withNotes {
		return books, nil, nil
	}

	notes, err := reader.Notes()
	if err != nil {
		return nil, nil, err
	}
	return books, notes, nil
}

func formatFor(cfg *config.Config) exporters.Format {
	switch {
	case cfg.Output.CSV:
		return exporters.FormatCSV
	case cfg.Output.Kindle:
		return exporters.FormatClippings
	default:
		return exporters.FormatText
	}
}
