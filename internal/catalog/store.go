package catalog

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Movie mirrors one movies table row.
type Movie struct {
	ID          int64
	Title       string
	URL         string
	FileID      string
	FileSize    int64
	Description string
}

// MovieFile mirrors one movie_files table row: a per-quality variant of
// its parent movie.
type MovieFile struct {
	ID       int64
	MovieID  int64
	Quality  string
	URL      string
	FileID   string
	FileSize int64
}

// Store is the sqlite-backed Catalog implementation.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the sqlite database at path and
// applies the schema.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// sqlite allows a single writer; one pooled connection also keeps
	// :memory: databases coherent across queries.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open database. The caller owns migration.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// mapSQLiteError converts sqlite errors to the package sentinels.
// modernc.org/sqlite wraps errors, so constraint violations are detected
// by message.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

// artifact picks the deliverable reference of a row: a stored file handle
// when present, else whatever URL the row carries.
func artifact(fileID, url string) string {
	if strings.TrimSpace(fileID) != "" {
		return strings.TrimSpace(fileID)
	}
	return strings.TrimSpace(url)
}

// AllRows returns every movies row plus every movie_files row projected
// as a child Row with a synthesized "<parent title> <quality>" title.
func (s *Store) AllRows(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, file_id, file_size, description
		FROM movies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.URL, &m.FileID, &m.FileSize, &m.Description); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, movieRow(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movies: %w", err)
	}

	frows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.quality, f.url, f.file_id, f.file_size, m.title
		FROM movie_files f JOIN movies m ON m.id = f.movie_id
		ORDER BY f.id`)
	if err != nil {
		return nil, fmt.Errorf("list movie files: %w", err)
	}
	defer func() { _ = frows.Close() }()

	for frows.Next() {
		var f MovieFile
		var parentTitle string
		if err := frows.Scan(&f.ID, &f.Quality, &f.URL, &f.FileID, &f.FileSize, &parentTitle); err != nil {
			return nil, fmt.Errorf("scan movie file: %w", err)
		}
		out = append(out, fileRow(f, parentTitle))
	}
	if err := frows.Err(); err != nil {
		return nil, fmt.Errorf("iterate movie files: %w", err)
	}
	return out, nil
}

// Row resolves a row id from either key space.
func (s *Store) Row(ctx context.Context, id int64) (*Row, error) {
	if id >= FileRowOffset {
		var f MovieFile
		var parentTitle string
		err := s.db.QueryRowContext(ctx, `
			SELECT f.id, f.quality, f.url, f.file_id, f.file_size, m.title
			FROM movie_files f JOIN movies m ON m.id = f.movie_id
			WHERE f.id = ?`, id-FileRowOffset,
		).Scan(&f.ID, &f.Quality, &f.URL, &f.FileID, &f.FileSize, &parentTitle)
		if err != nil {
			return nil, fmt.Errorf("get movie file %d: %w", id-FileRowOffset, mapSQLiteError(err))
		}
		r := fileRow(f, parentTitle)
		return &r, nil
	}

	var m Movie
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, url, file_id, file_size, description
		FROM movies WHERE id = ?`, id,
	).Scan(&m.ID, &m.Title, &m.URL, &m.FileID, &m.FileSize, &m.Description)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, mapSQLiteError(err))
	}
	r := movieRow(m)
	return &r, nil
}

// FuzzyMatch scans every row in process. The catalog is small enough
// that a full scan with token-sort scoring beats maintaining a
// database-side similarity index.
func (s *Store) FuzzyMatch(ctx context.Context, queryNorm string) (*Row, int, error) {
	all, err := s.AllRows(ctx)
	if err != nil {
		return nil, 0, err
	}
	best, score := BestMatch(queryNorm, all)
	if best == nil {
		return nil, 0, ErrNotFound
	}
	return best, score, nil
}

func movieRow(m Movie) Row {
	return Row{
		ID:          m.ID,
		Title:       m.Title,
		Artifact:    artifact(m.FileID, m.URL),
		Size:        m.FileSize,
		Description: m.Description,
	}
}

func fileRow(f MovieFile, parentTitle string) Row {
	return Row{
		ID:       f.ID + FileRowOffset,
		Title:    parentTitle + " " + f.Quality,
		Artifact: artifact(f.FileID, f.URL),
		Size:     f.FileSize,
	}
}

// AddMovie inserts a movies row and sets ID on the struct.
func (s *Store) AddMovie(ctx context.Context, m *Movie) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (title, url, file_id, file_size, description)
		VALUES (?, ?, ?, ?, ?)`,
		m.Title, m.URL, m.FileID, m.FileSize, m.Description,
	)
	if err != nil {
		return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	m.ID = id
	return nil
}

// AddMovieFile inserts a per-quality variant, replacing any previous row
// for the same (movie_id, quality).
func (s *Store) AddMovieFile(ctx context.Context, f *MovieFile) error {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO movie_files (movie_id, quality, url, file_id, file_size)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (movie_id, quality) DO UPDATE
		SET url = excluded.url, file_id = excluded.file_id, file_size = excluded.file_size`,
		f.MovieID, f.Quality, f.URL, f.FileID, f.FileSize,
	)
	if err != nil {
		return fmt.Errorf("insert movie file: %w", mapSQLiteError(err))
	}
	if id, err := result.LastInsertId(); err == nil {
		f.ID = id
	}
	return nil
}

// AddAlias records an alternative lookup name for a movie.
func (s *Store) AddAlias(ctx context.Context, movieID int64, alias string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO movie_aliases (movie_id, alias) VALUES (?, ?)`, movieID, alias)
	if err != nil {
		return fmt.Errorf("insert alias: %w", mapSQLiteError(err))
	}
	return nil
}

// DeleteMovie removes a movies row; files and aliases cascade.
func (s *Store) DeleteMovie(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, mapSQLiteError(err))
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRecent returns the most recently added movies, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Movie, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, url, file_id, file_size, description
		FROM movies ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]Movie, 0, limit)
	for rows.Next() {
		var m Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.URL, &m.FileID, &m.FileSize, &m.Description); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
