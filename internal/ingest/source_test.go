package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadSourceXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"id", "primaryTitle", "genres"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"tt1", "A Movie", "['Comedy']"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"tt2", "Short Row"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "tt1", rows[0]["id"])
	assert.Equal(t, "['Comedy']", rows[0]["genres"])
	_, hasGenres := rows[1]["genres"]
	assert.False(t, hasGenres, "trailing empty cells stay absent")
}

func TestReadSourceCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	data := "id,primaryTitle,genres\ntt1,A Movie,\"['Comedy', 'Drama']\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "A Movie", rows[0]["primaryTitle"])
	assert.Equal(t, "['Comedy', 'Drama']", rows[0]["genres"])
}

func TestReadSourceJSONNativeLists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	data := `[{"id": "tt1", "primaryTitle": "A Movie", "genres": ["Comedy", "Drama"]}]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	rows, err := ReadSource(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rec, _, ok := Normalize(rows[0])
	require.True(t, ok)
	assert.Equal(t, []string{"Comedy", "Drama"}, rec.Labels.Genres)
}

func TestReadSourceUnsupportedFormat(t *testing.T) {
	_, err := ReadSource("movies.parquet")
	assert.Error(t, err)
}
