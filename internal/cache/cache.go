// Package cache is the content-addressed result store: a digest of the
// normalized lyric text maps to the label computed for it. The store is
// loaded eagerly at startup and flushed atomically, so repeated runs over the
// same dataset cost no further model calls.
package cache

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"lyricsent/internal/label"
)

// Key returns the cache key for lyric text: the SHA-1 hex digest of the
// trimmed text. Identical normalized text yields an identical key across
// runs and processes; artist and title never participate.
func Key(text string) string {
	sum := sha1.Sum([]byte(strings.TrimSpace(text)))
	return hex.EncodeToString(sum[:])
}

// Store is a durable key→label map guarded by a mutex, safe for concurrent
// use by the worker pool. Entries never expire: lyric text is immutable and
// its sentiment is a static property of the text.
type Store struct {
	mu      sync.RWMutex
	path    string
	labels  *label.Set
	entries map[string]string
	dirty   bool
}

// Open loads the store from path. A missing or malformed file yields an
// empty store; the returned error is advisory (worth a warning, never fatal)
// and the store is always usable. An empty path gives an in-memory store
// whose Flush is a no-op.
func Open(path string, set *label.Set) (*Store, error) {
	s := &Store{
		path:    path,
		labels:  set,
		entries: make(map[string]string),
	}
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("read cache %s, starting empty: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		s.entries = make(map[string]string)
		return s, fmt.Errorf("malformed cache %s, starting empty: %w", path, err)
	}
	return s, nil
}

// Get returns the cached label for key. Unknown keys miss; so do values that
// are not members of the active label set, which covers stale entries
// written under a different localization.
func (s *Store) Get(key string) (label.Label, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.entries[key]
	if !ok || !s.labels.Contains(v) {
		return "", false
	}
	return label.Label(v), true
}

// Put records the label for key. Concurrent writers computing the same
// uncached key write equal values, so last-write-wins is benign.
func (s *Store) Put(key string, l label.Label) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entries[key] == string(l) {
		return
	}
	s.entries[key] = string(l)
	s.dirty = true
}

// Len returns the number of entries currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Flush persists the store with write-then-rename so an interrupted run never
// corrupts previously persisted entries. Flushing an unchanged or in-memory
// store is a no-op. Safe to call repeatedly.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" || !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".cache-*.json")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp cache file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace cache file: %w", err)
	}

	s.dirty = false
	return nil
}
