package kobo

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/kobo-notes/internal/entities"
)

// DefaultStoreName is the database file Kobo devices keep under .kobo/
const DefaultStoreName = "KoboReader.sqlite"

// The %s verb in both queries is the author expression: content.Attribution,
// or NULL for firmware versions that predate that column.
const (
	queryBooks = `
		SELECT DISTINCT
			content.ContentID AS content_id,
			Bookmark.VolumeID AS volume_id,
			content.Title AS title,
			%s AS author
		FROM Bookmark INNER JOIN content
			ON Bookmark.VolumeID = content.ContentID
		ORDER BY content.Title
	`

	queryNotes = `
		SELECT
			Bookmark.VolumeID AS volume_id,
			Bookmark.Text AS text,
			Bookmark.Annotation AS annotation,
			Bookmark.ExtraAnnotationData AS extra_annotation_data,
			Bookmark.DateCreated AS date_created,
			Bookmark.DateModified AS date_modified,
			content.BookTitle AS book_title,
			content.Title AS title,
			%s AS author
		FROM Bookmark INNER JOIN content
			ON Bookmark.VolumeID = content.ContentID
	`

	authorColumn = "Attribution"
)

// BookRow is one raw row of the book enumeration query.
type BookRow struct {
	ContentID sql.NullString
	VolumeID  sql.NullString
	Title     sql.NullString
	Author    sql.NullString
}

// Book converts the raw row into a Book record.
func (r BookRow) Book() entities.Book {
	return entities.Book{
		ID:       r.ContentID.String,
		Title:    r.Title.String,
		Author:   r.Author.String,
		VolumeID: r.VolumeID.String,
	}
}

// NoteRow is one raw row of the note enumeration query.
type NoteRow struct {
	VolumeID            sql.NullString
	Text                sql.NullString
	Annotation          sql.NullString
	ExtraAnnotationData sql.NullString
	DateCreated         sql.NullString
	DateModified        sql.NullString
	BookTitle           sql.NullString
	Title               sql.NullString
	Author              sql.NullString
}

// Note converts the raw row into a classified Note record.
func (r NoteRow) Note() entities.Note {
	return entities.NewNote(
		r.VolumeID.String,
		r.Text.String,
		r.Annotation.String,
		r.DateCreated.String,
		r.DateModified.String,
		r.Title.String,
		r.Author.String,
	)
}

// Reader runs the fixed read-only queries against a KoboReader.sqlite file.
type Reader struct {
	path   string
	db     *gorm.DB
	logger *zap.Logger

	author string // resolved author expression, empty until first query
}

// Open verifies the store exists and opens a read-only connection to it.
func Open(path string, log *zap.Logger) (*Reader, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w (%s)", ErrSourceUnavailable, path)
	}

	dsn, err := readOnlyDSN(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		if isNotADatabase(err) {
			return nil, &QueryError{Err: err}
		}
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	log.Debug("opened store", zap.String("path", path))

	return &Reader{path: path, db: db, logger: log}, nil
}

// readOnlyDSN builds a file: URI for path. The path is made absolute and
// percent-escaped so '#', '?' and '%' in directory names reach SQLite intact.
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	u := url.URL{
		Scheme:   "file",
		Path:     filepath.ToSlash(abs),
		RawQuery: "mode=ro",
	}
	return u.String(), nil
}

func (r *Reader) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Books returns the distinct books that have at least one note, ordered by title.
func (r *Reader) Books() ([]entities.Book, error) {
	query, err := r.query(queryBooks)
	if err != nil {
		return nil, err
	}

	var rows []BookRow
	if err := r.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, r.queryError(query, err)
	}

	books := make([]entities.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, row.Book())
	}

	r.logger.Debug("enumerated books", zap.Int("count", len(books)))
	return books, nil
}

// Notes returns every bookmark row joined with its book metadata.
func (r *Reader) Notes() ([]entities.Note, error) {
	query, err := r.query(queryNotes)
	if err != nil {
		return nil, err
	}

	var rows []NoteRow
	if err := r.db.Raw(query).Scan(&rows).Error; err != nil {
		return nil, r.queryError(query, err)
	}

	notes := make([]entities.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.Note())
	}

	r.logger.Debug("enumerated notes", zap.Int("count", len(notes)))
	return notes, nil
}

func (r *Reader) query(template string) (string, error) {
	if r.author == "" {
		ok, err := r.hasColumn("content", authorColumn)
		if err != nil {
			return "", err
		}
		r.author = "NULL"
		if ok {
			r.author = "content." + authorColumn
		} else {
			r.logger.Debug("content table has no author column, authors will be empty")
		}
	}
	return fmt.Sprintf(template, r.author), nil
}

func (r *Reader) hasColumn(table, column string) (bool, error) {
	query := fmt.Sprintf("SELECT name FROM pragma_table_info('%s')", table)

	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return false, r.queryError(query, err)
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, r.queryError(query, err)
		}
		if strings.EqualFold(name, column) {
			found = true
		}
	}

	if err := rows.Err(); err != nil {
		return false, r.queryError(query, err)
	}

	return found, nil
}

func (r *Reader) queryError(query string, err error) error {
	var sqlErr sqlite3.Error
	if errors.As(err, &sqlErr) {
		r.logger.Debug("sqlite query failed",
			zap.String("path", r.path),
			zap.Int("code", int(sqlErr.Code)),
			zap.Int("extended_code", int(sqlErr.ExtendedCode)),
			zap.Error(err))
	}
	return &QueryError{Query: strings.TrimSpace(query), Err: err}
}

func isNotADatabase(err error) bool {
	var sqlErr sqlite3.Error
	return errors.As(err, &sqlErr) && sqlErr.Code == sqlite3.ErrNotADB
}
