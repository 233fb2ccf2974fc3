package dataset

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readAll(t *testing.T, s *Source) []Row {
	t.Helper()
	var rows []Row
	for {
		row, err := s.Next()
		if err == io.EOF {
			return rows
		}
		require.NoError(t, err)
		rows = append(rows, row)
	}
}

func TestOpen_ReadsRowsInOrder(t *testing.T) {
	path := writeCSV(t, "artist,song,text\nABBA,Waterloo,\"my my, at waterloo\"\nAdele,Hello,\"hello, it's me\"\n")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rows := readAll(t, s)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Artist: "ABBA", Song: "Waterloo", Text: "my my, at waterloo"}, rows[0])
	assert.Equal(t, Row{Artist: "Adele", Song: "Hello", Text: "hello, it's me"}, rows[1])
}

func TestOpen_AcceptsAlternateColumnNames(t *testing.T) {
	path := writeCSV(t, "Artist,Title,Lyrics\nx,y,z\n")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rows := readAll(t, s)
	require.Len(t, rows, 1)
	assert.Equal(t, Row{Artist: "x", Song: "y", Text: "z"}, rows[0])
}

func TestOpen_MissingFileIsFatal(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestOpen_MissingTextColumnIsFatal(t *testing.T) {
	path := writeCSV(t, "artist,song\nx,y\n")
	_, err := Open(path)
	assert.Error(t, err)
}

func TestNext_MissingFieldsYieldEmptyStrings(t *testing.T) {
	// no artist column at all, and a short row
	path := writeCSV(t, "song,text\nonly a song\nA song,some words\n")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rows := readAll(t, s)
	require.Len(t, rows, 2)
	assert.Equal(t, Row{Song: "only a song"}, rows[0])
	assert.Equal(t, Row{Artist: "", Song: "A song", Text: "some words"}, rows[1])
}

func TestNext_MultilineLyrics(t *testing.T) {
	path := writeCSV(t, "artist,song,text\na,s,\"line one\nline two\"\n")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	rows := readAll(t, s)
	require.Len(t, rows, 1)
	assert.Equal(t, "line one\nline two", rows[0].Text)
}

func TestNext_EmptyDataset(t *testing.T) {
	path := writeCSV(t, "artist,song,text\n")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	assert.Empty(t, readAll(t, s))
}
