package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestAddMovieAndRow(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := &Movie{Title: "Matrix 1080p Hindi", FileID: "BQACmatrix", FileSize: 1 << 30}
	require.NoError(t, s.AddMovie(ctx, m))
	require.NotZero(t, m.ID)

	row, err := s.Row(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "Matrix 1080p Hindi", row.Title)
	require.Equal(t, "BQACmatrix", row.Artifact)
}

func TestAddMovieDuplicateTitle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddMovie(ctx, &Movie{Title: "Dune 2160p"}))
	err := s.AddMovie(ctx, &Movie{Title: "Dune 2160p"})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestRowNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Row(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestArtifactPrefersFileID(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := &Movie{Title: "Tenet 720p", URL: "https://example.com/tenet.mkv", FileID: "BAACtenet"}
	require.NoError(t, s.AddMovie(ctx, m))

	row, err := s.Row(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "BAACtenet", row.Artifact)
}

func TestFileRowsProjectedIntoAllRows(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := &Movie{Title: "Interstellar"}
	require.NoError(t, s.AddMovie(ctx, m))
	f := &MovieFile{MovieID: m.ID, Quality: "720p", FileID: "CAACinter720"}
	require.NoError(t, s.AddMovieFile(ctx, f))

	all, err := s.AllRows(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	child := all[1]
	require.Equal(t, "Interstellar 720p", child.Title)
	require.Equal(t, "CAACinter720", child.Artifact)
	require.GreaterOrEqual(t, child.ID, FileRowOffset)

	// The projected id resolves back to the same row.
	got, err := s.Row(ctx, child.ID)
	require.NoError(t, err)
	require.Equal(t, child, *got)
}

func TestAddMovieFileReplacesSameQuality(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := &Movie{Title: "Arrival"}
	require.NoError(t, s.AddMovie(ctx, m))
	require.NoError(t, s.AddMovieFile(ctx, &MovieFile{MovieID: m.ID, Quality: "1080p", FileID: "BQACold"}))
	require.NoError(t, s.AddMovieFile(ctx, &MovieFile{MovieID: m.ID, Quality: "1080p", FileID: "BQACnew"}))

	all, err := s.AllRows(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "BQACnew", all[1].Artifact)
}

func TestDeleteMovieCascadesFiles(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := &Movie{Title: "Alien"}
	require.NoError(t, s.AddMovie(ctx, m))
	require.NoError(t, s.AddMovieFile(ctx, &MovieFile{MovieID: m.ID, Quality: "480p", FileID: "AQACalien"}))
	require.NoError(t, s.AddAlias(ctx, m.ID, "alien 1979"))

	require.NoError(t, s.DeleteMovie(ctx, m.ID))

	all, err := s.AllRows(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	require.ErrorIs(t, s.DeleteMovie(ctx, m.ID), ErrNotFound)
}

func TestAddMovieFileRequiresParent(t *testing.T) {
	s := setupTestStore(t)

	err := s.AddMovieFile(context.Background(), &MovieFile{MovieID: 999, Quality: "720p"})
	require.ErrorIs(t, err, ErrConstraint)
}

func TestFuzzyMatchStore(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.AddMovie(ctx, &Movie{Title: "Matrix 1080p Hindi", FileID: "BQACm"}))
	require.NoError(t, s.AddMovie(ctx, &Movie{Title: "Inception 2010 720p", FileID: "BQACi"}))

	row, score, err := s.FuzzyMatch(ctx, "matrix")
	require.NoError(t, err)
	require.Equal(t, "Matrix 1080p Hindi", row.Title)
	require.GreaterOrEqual(t, score, 60)
}

func TestFuzzyMatchEmptyCatalog(t *testing.T) {
	s := setupTestStore(t)

	_, _, err := s.FuzzyMatch(context.Background(), "anything")
	require.True(t, errors.Is(err, ErrNotFound))
}

func TestListRecent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		require.NoError(t, s.AddMovie(ctx, &Movie{Title: title}))
	}

	movies, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	require.Equal(t, "Third", movies[0].Title)
	require.Equal(t, "Second", movies[1].Title)
}
