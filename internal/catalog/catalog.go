// Package catalog provides read access to the movie catalog: row lookup,
// full scans for family grouping, and fuzzy title matching.
package catalog

import (
	"context"
	"errors"
)

// FileRowOffset separates movie_files ids from movies ids in the single
// row-id space exposed to callback tokens. File rows keep stable ids
// across restarts because the offset is a constant.
const FileRowOffset int64 = 1_000_000_000

var (
	// ErrNotFound indicates the requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates a unique constraint violation.
	ErrDuplicate = errors.New("duplicate entry")

	// ErrConstraint indicates a foreign key or check constraint violation.
	ErrConstraint = errors.New("constraint violation")
)

// Row is a snapshot of one catalog entry. Per-quality child rows from
// movie_files appear as ordinary Rows with a synthesized title of
// "<parent title> <quality>" and an id above FileRowOffset.
type Row struct {
	ID          int64
	Title       string
	Artifact    string
	Size        int64
	Description string
}

// Catalog is the read surface the bot consumes. Implementations must be
// safe for concurrent use.
type Catalog interface {
	// AllRows returns every catalog row, movie_files children included.
	AllRows(ctx context.Context) ([]Row, error)

	// Row returns the row with the given id, or ErrNotFound.
	Row(ctx context.Context, id int64) (*Row, error)

	// FuzzyMatch returns the row whose title best matches the normalized
	// query, with a score in [0,100]. Returns ErrNotFound when the
	// catalog is empty. Ties resolve to the lowest row id.
	FuzzyMatch(ctx context.Context, queryNorm string) (*Row, int, error)
}
