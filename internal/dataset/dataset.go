// Package dataset reads the lyric CSV row source. It is a thin collaborator:
// an ordered sequence of records with artist, song, and text fields, where a
// missing field yields an empty string rather than a failure.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row is one record from the source, immutable once read.
type Row struct {
	Artist string
	Song   string
	Text   string
}

// Source streams rows from a CSV file with a header line. Column resolution
// is by name: artist, song (or title), text (or lyrics).
type Source struct {
	f *os.File
	r *csv.Reader

	artistIdx int
	songIdx   int
	textIdx   int
}

// Open opens the dataset and resolves the header. A missing file or a header
// without a text column is an input error, reported before any processing.
func Open(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read dataset header: %w", err)
	}

	s := &Source{f: f, r: r, artistIdx: -1, songIdx: -1, textIdx: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "artist":
			s.artistIdx = i
		case "song", "title":
			if s.songIdx == -1 {
				s.songIdx = i
			}
		case "text", "lyrics":
			if s.textIdx == -1 {
				s.textIdx = i
			}
		}
	}
	if s.textIdx == -1 {
		f.Close()
		return nil, fmt.Errorf("dataset %s has no text column (want text or lyrics)", path)
	}
	return s, nil
}

// Next returns the next row, or io.EOF when the source is exhausted.
func (s *Source) Next() (Row, error) {
	record, err := s.r.Read()
	if err != nil {
		if err == io.EOF {
			return Row{}, io.EOF
		}
		return Row{}, fmt.Errorf("read dataset row: %w", err)
	}
	return Row{
		Artist: field(record, s.artistIdx),
		Song:   field(record, s.songIdx),
		Text:   field(record, s.textIdx),
	}, nil
}

// Close releases the underlying file.
func (s *Source) Close() error {
	return s.f.Close()
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
