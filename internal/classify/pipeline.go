// Package classify orchestrates the hybrid classification pipeline:
// cache lookup, model attempt, lexicon fallback, cache write.
package classify

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"lyricsent/internal/backend"
	"lyricsent/internal/cache"
	"lyricsent/internal/label"
	"lyricsent/internal/lexicon"
)

// Item is one lyric to classify. Artist and Song are metadata only; they
// never influence the cache key or the fallback score.
type Item struct {
	Artist string
	Song   string
	Text   string
}

// Source records which stage of the pipeline produced the label.
type Source string

const (
	// SourceEmpty means the text was empty and short-circuited to Neutral.
	SourceEmpty Source = "empty"
	// SourceCache means the label came from the content-addressed cache.
	SourceCache Source = "cache"
	// SourceModel means the model backend answered and was normalized.
	SourceModel Source = "model"
	// SourceLexicon means the word-list fallback produced the label.
	SourceLexicon Source = "lexicon"
)

// Result is the outcome for one item. Latency is the wall-clock duration of
// the backend attempt, zero when no external call was made. Never mutated
// after creation.
type Result struct {
	Label    label.Label
	Latency  time.Duration
	CacheHit bool
	Source   Source
}

// Metrics counts pipeline outcomes for one run.
type Metrics struct {
	Items         int
	CacheHits     int
	ModelLabels   int
	LexiconLabels int
	EmptyItems    int
}

// Config wires the pipeline's collaborators. All process-wide defaults are
// resolved once here and threaded through explicitly; the classification
// logic performs no ambient lookups.
type Config struct {
	// Backend proposes labels from free text. Nil means fallback-only: the
	// lexicon classifies everything and no external call is ever attempted.
	Backend backend.Backend

	// Lexicon is the deterministic fallback. Nil uses the built-in word lists.
	Lexicon *lexicon.Classifier

	// Cache is the content-addressed result store. Nil uses an in-memory one.
	Cache *cache.Store

	// Labels is the active label set. Nil uses the English set.
	Labels *label.Set

	// Logger records backend degradation. Nil uses a no-op logger.
	Logger *zap.Logger
}

func (c *Config) applyDefaults() {
	if c.Labels == nil {
		c.Labels = label.English()
	}
	if c.Lexicon == nil {
		c.Lexicon = lexicon.Default(c.Labels)
	}
	if c.Cache == nil {
		c.Cache, _ = cache.Open("", c.Labels)
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Pipeline classifies lyric items. Safe for concurrent use: the cache is
// internally guarded and the lexicon is stateless.
type Pipeline struct {
	backend backend.Backend
	lexicon *lexicon.Classifier
	cache   *cache.Store
	labels  *label.Set
	logger  *zap.Logger

	mu    sync.Mutex
	stats Metrics

	closeOnce sync.Once
}

// New creates a pipeline from cfg.
func New(cfg Config) *Pipeline {
	cfg.applyDefaults()
	return &Pipeline{
		backend: cfg.Backend,
		lexicon: cfg.Lexicon,
		cache:   cfg.Cache,
		labels:  cfg.Labels,
		logger:  cfg.Logger,
	}
}

// Classify runs the per-item state machine. It returns an error only when
// ctx is already cancelled; every other condition, including a failed model
// call, degrades to a valid Result.
func (p *Pipeline) Classify(ctx context.Context, item Item) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	text := strings.TrimSpace(item.Text)
	if text == "" {
		p.record(func(m *Metrics) { m.EmptyItems++ })
		return Result{Label: p.labels.Neutral(), Source: SourceEmpty}, nil
	}

	key := cache.Key(text)
	if cached, ok := p.cache.Get(key); ok {
		p.record(func(m *Metrics) { m.CacheHits++ })
		return Result{Label: cached, CacheHit: true, Source: SourceCache}, nil
	}

	var (
		result  label.Label
		latency time.Duration
		source  = SourceLexicon
	)

	if p.backend != nil {
		prompt := buildPrompt(p.labels, item.Artist, item.Song, text)
		start := time.Now()
		raw, err := p.backend.Invoke(ctx, prompt)
		latency = time.Since(start)
		if err != nil {
			// Single attempt only: an immediate fallback bounds worst-case
			// per-item latency to one backend timeout.
			p.logger.Warn("model backend failed, using lexicon fallback",
				zap.String("artist", item.Artist),
				zap.String("song", item.Song),
				zap.Error(err))
		} else {
			result = p.labels.Normalize(raw)
			source = SourceModel
		}
	}

	if source != SourceModel {
		result = p.lexicon.Classify(text)
	}

	p.cache.Put(key, result)
	p.record(func(m *Metrics) {
		if source == SourceModel {
			m.ModelLabels++
		} else {
			m.LexiconLabels++
		}
	})

	return Result{Label: result, Latency: latency, Source: source}, nil
}

// Metrics returns a snapshot of the run counters.
func (p *Pipeline) Metrics() Metrics {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Close flushes the cache. Safe to call multiple times; partial results
// accumulated before an interruption are persisted, not discarded.
func (p *Pipeline) Close() error {
	var err error
	p.closeOnce.Do(func() {
		err = p.cache.Flush()
	})
	return err
}

func (p *Pipeline) record(update func(*Metrics)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stats.Items++
	update(&p.stats)
}
