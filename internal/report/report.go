// Package report accumulates per-item classification results into label
// counts and writes the run's output artifacts.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"lyricsent/internal/classify"
	"lyricsent/internal/label"
)

// Artifact file names inside the output directory.
const (
	SummaryFile = "sentiment_totals.json"
	CountsFile  = "classification_counts.csv"
	DetailsFile = "sentiment_details.csv"
)

// Detail is one audit row: item metadata plus the result.
type Detail struct {
	Artist  string
	Song    string
	Label   label.Label
	Latency time.Duration
}

// Aggregator owns the counts for one run. Record is called once per
// processed item in arrival order; it is not safe for concurrent use, so the
// caller serializes (the run loop records on the collector side of the
// worker pool).
type Aggregator struct {
	labels    *label.Set
	model     string
	runID     string
	counts    map[label.Label]int
	details   []Detail
	processed int
}

// NewAggregator creates an aggregator for the active label set. Counts cover
// exactly the set's members, initialized to zero.
func NewAggregator(set *label.Set, model string) *Aggregator {
	counts := make(map[label.Label]int, 3)
	for _, l := range set.Labels() {
		counts[l] = 0
	}
	return &Aggregator{
		labels: set,
		model:  model,
		runID:  uuid.New().String(),
		counts: counts,
	}
}

// Record accumulates one result. Labels outside the active set never reach
// the aggregator (the pipeline coerces them), but a foreign value is still
// counted as the default rather than inventing a new bucket.
func (a *Aggregator) Record(artist, song string, res classify.Result) {
	l := res.Label
	if _, ok := a.counts[l]; !ok {
		l = a.labels.Neutral()
	}
	a.counts[l]++
	a.processed++
	a.details = append(a.details, Detail{Artist: artist, Song: song, Label: l, Latency: res.Latency})
}

// Processed returns how many items were recorded.
func (a *Aggregator) Processed() int { return a.processed }

// Counts returns a copy of the per-label tallies.
func (a *Aggregator) Counts() map[label.Label]int {
	out := make(map[label.Label]int, len(a.counts))
	for l, n := range a.counts {
		out[l] = n
	}
	return out
}

// Details returns the audit rows in arrival order.
func (a *Aggregator) Details() []Detail { return a.details }

type summary struct {
	RunID       string         `json:"run_id"`
	Model       string         `json:"model"`
	Labels      string         `json:"labels"`
	Processed   int            `json:"processed"`
	Counts      map[string]int `json:"counts"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// WriteSummaryJSON writes the aggregated counts artifact.
func (a *Aggregator) WriteSummaryJSON(path string) error {
	s := summary{
		RunID:       a.runID,
		Model:       a.model,
		Labels:      a.labels.Name(),
		Processed:   a.processed,
		Counts:      make(map[string]int, len(a.counts)),
		GeneratedAt: time.Now().UTC(),
	}
	for l, n := range a.counts {
		s.Counts[string(l)] = n
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}

// WriteCountsCSV writes label,count rows in canonical label order.
func (a *Aggregator) WriteCountsCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create counts file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"label", "count"}); err != nil {
		return fmt.Errorf("write counts header: %w", err)
	}
	for _, l := range a.labels.Labels() {
		if err := w.Write([]string{string(l), fmt.Sprintf("%d", a.counts[l])}); err != nil {
			return fmt.Errorf("write counts row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush counts file: %w", err)
	}
	return nil
}

// WriteDetailsCSV writes one audit row per processed item, input order.
func (a *Aggregator) WriteDetailsCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create details file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"artist", "song", "label", "latency_seconds"}); err != nil {
		return fmt.Errorf("write details header: %w", err)
	}
	for _, d := range a.details {
		row := []string{d.Artist, d.Song, string(d.Label), fmt.Sprintf("%.4f", d.Latency.Seconds())}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write details row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush details file: %w", err)
	}
	return nil
}

// WriteAll writes the three artifacts into dir, creating it if needed.
func (a *Aggregator) WriteAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := a.WriteSummaryJSON(filepath.Join(dir, SummaryFile)); err != nil {
		return err
	}
	if err := a.WriteCountsCSV(filepath.Join(dir, CountsFile)); err != nil {
		return err
	}
	return a.WriteDetailsCSV(filepath.Join(dir, DetailsFile))
}
