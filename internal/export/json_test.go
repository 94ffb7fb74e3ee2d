package export

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uwuok/movie-management-system/internal/importer"
	"github.com/uwuok/movie-management-system/internal/movie"
	"github.com/uwuok/movie-management-system/internal/storage"
)

func openStore(t *testing.T) *storage.DB {
	t.Helper()
	db, err := storage.OpenDB(filepath.Join(t.TempDir(), "movies.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seed(t *testing.T, db *storage.DB) []movie.Movie {
	t.Helper()
	movies := []movie.Movie{
		{Title: "Inception", Director: "Christopher Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8},
		{Title: "臥虎藏龍", Director: "李安", Genre: "武俠", Year: 2000, Rating: 7.9},
		{Title: "Tom & Jerry", Director: "Tim Story", Genre: "Comedy", Year: 2021, Rating: 5.2},
	}
	_, err := db.CreateBatch(movies)
	require.NoError(t, err)
	return movies
}

type brokenFinder struct{ err error }

func (b brokenFinder) FindAll() ([]movie.Movie, error) { return nil, b.err }
func (b brokenFinder) FindByTitleContains(string) ([]movie.Movie, error) {
	return nil, b.err
}

func TestExportTo_All(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	path := filepath.Join(t.TempDir(), "exported.json")

	result, err := New(db).ExportTo(path, "")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Count)
	assert.False(t, result.Empty())
	assert.Equal(t, path, result.Path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), result.Bytes)

	var records []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 3)
	assert.NotContains(t, records[0], "id")
	assert.Equal(t, "Inception", records[0]["title"])
	assert.Len(t, records[0], 5)
}

func TestExportTo_UnescapedText(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	path := filepath.Join(t.TempDir(), "exported.json")

	_, err := New(db).ExportTo(path, "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "臥虎藏龍")
	assert.Contains(t, text, "Tom & Jerry")
	assert.NotContains(t, text, `\u`)
	assert.True(t, strings.HasPrefix(text, "[\n    {"), "want 4-space indent, got %q", text[:10])
}

func TestExportTo_Filter(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	path := filepath.Join(t.TempDir(), "exported.json")

	result, err := New(db).ExportTo(path, "incep")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []Record
	require.NoError(t, json.Unmarshal(data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, Record{Title: "Inception", Director: "Christopher Nolan", Genre: "Sci-Fi", Year: 2010, Rating: 8.8}, records[0])
}

func TestExportTo_NothingToExport(t *testing.T) {
	db := openStore(t)
	path := filepath.Join(t.TempDir(), "exported.json")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0644))

	result, err := New(db).ExportTo(path, "")
	require.NoError(t, err)
	assert.True(t, result.Empty())
	assert.Zero(t, result.Count)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data), "file must be left untouched")
}

func TestExportTo_Overwrites(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	path := filepath.Join(t.TempDir(), "exported.json")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", 10000)), 0644))

	_, err := New(db).ExportTo(path, "Tom")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "xxx")

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestExportTo_QueryError(t *testing.T) {
	cause := errors.New("database is locked")
	path := filepath.Join(t.TempDir(), "exported.json")

	_, err := New(brokenFinder{err: cause}).ExportTo(path, "x")
	require.ErrorIs(t, err, cause)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportTo_WriteError(t *testing.T) {
	db := openStore(t)
	seed(t, db)
	path := filepath.Join(t.TempDir(), "missing-dir", "exported.json")

	_, err := New(db).ExportTo(path, "")
	assert.Error(t, err)
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := openStore(t)
	original := seed(t, src)
	path := filepath.Join(t.TempDir(), "exported.json")

	_, err := New(src).ExportTo(path, "")
	require.NoError(t, err)

	dst := openStore(t)
	report, err := importer.New(dst).ImportFrom(path)
	require.NoError(t, err)
	assert.Equal(t, len(original), report.Inserted)

	restored, err := dst.FindAll()
	require.NoError(t, err)
	require.Len(t, restored, len(original))
	for i := range original {
		got := restored[i]
		got.ID = 0
		assert.Equal(t, original[i], got)
	}
}
