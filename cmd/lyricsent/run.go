package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"lyricsent/internal/backend"
	"lyricsent/internal/cache"
	"lyricsent/internal/classify"
	"lyricsent/internal/config"
	"lyricsent/internal/dataset"
	"lyricsent/internal/label"
	"lyricsent/internal/lexicon"
	"lyricsent/internal/report"
)

const progressEvery = 10

// run executes one classification batch end to end. Interruption (SIGINT,
// SIGTERM) finalizes instead of aborting: the cache and whatever results
// were computed so far are persisted as a valid partial run.
func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	set, err := label.ForName(cfg.Labels)
	if err != nil {
		return err
	}

	words, err := lexicon.LoadWords(cfg.LexiconPath)
	if err != nil {
		return err
	}

	store, err := cache.Open(cfg.CachePath, set)
	if err != nil {
		logger.Warn("result cache unreadable, starting empty", zap.Error(err))
	}
	logger.Info("result cache loaded",
		zap.String("path", cfg.CachePath),
		zap.Int("entries", store.Len()))

	be := buildBackend(cfg)
	pipe := classify.New(classify.Config{
		Backend: be,
		Lexicon: lexicon.New(set, words),
		Cache:   store,
		Labels:  set,
		Logger:  logger,
	})

	src, err := dataset.Open(cfg.Input)
	if err != nil {
		return err
	}
	defer src.Close()

	agg := report.NewAggregator(set, cfg.Model)
	start := time.Now()
	interrupted, err := classifyAll(ctx, cfg, pipe, src, agg)
	if err != nil {
		return err
	}

	if flushErr := pipe.Close(); flushErr != nil {
		logger.Error("failed to persist result cache", zap.Error(flushErr))
	}
	if writeErr := agg.WriteAll(cfg.OutputDir); writeErr != nil {
		return writeErr
	}

	m := pipe.Metrics()
	fields := []zap.Field{
		zap.Int("processed", agg.Processed()),
		zap.Int("cache_hits", m.CacheHits),
		zap.Int("model_labels", m.ModelLabels),
		zap.Int("lexicon_labels", m.LexiconLabels),
		zap.Duration("elapsed", time.Since(start)),
		zap.String("output_dir", cfg.OutputDir),
	}
	for l, n := range agg.Counts() {
		fields = append(fields, zap.Int(string(l), n))
	}
	if interrupted {
		logger.Warn("run interrupted, partial results written", fields...)
	} else {
		logger.Info("run complete", fields...)
	}
	return nil
}

// classifyAll streams rows through a bounded worker pool. Detail rows keep
// input order; items not finished at cancellation are absent from the
// partial report. Returns whether the run was interrupted.
func classifyAll(ctx context.Context, cfg config.Config, pipe *classify.Pipeline, src *dataset.Source, agg *report.Aggregator) (bool, error) {
	type outcome struct {
		row dataset.Row
		res classify.Result
	}

	var (
		mu       sync.Mutex
		done     = make(map[int]outcome)
		progress atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)

	count := 0
	var readErr error
	for gctx.Err() == nil {
		if cfg.Limit > 0 && count >= cfg.Limit {
			break
		}
		row, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			readErr = err
			break
		}

		idx := count
		count++
		g.Go(func() error {
			res, err := pipe.Classify(gctx, classify.Item{Artist: row.Artist, Song: row.Song, Text: row.Text})
			if err != nil {
				return err
			}
			mu.Lock()
			done[idx] = outcome{row: row, res: res}
			mu.Unlock()
			if n := progress.Add(1); n%progressEvery == 0 {
				logger.Info("progress", zap.Int64("songs", n))
			}
			return nil
		})
	}

	err := g.Wait()
	interrupted := errors.Is(err, context.Canceled) || gctx.Err() != nil
	if err != nil && !interrupted {
		return false, err
	}
	if readErr != nil {
		return interrupted, readErr
	}

	indices := make([]int, 0, len(done))
	for i := range done {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	for _, i := range indices {
		o := done[i]
		agg.Record(o.row.Artist, o.row.Song, o.res)
	}
	return interrupted, nil
}

// buildBackend maps the configured backend kind to a concrete variant.
// Disabled runs get no backend at all, so the pipeline never attempts an
// external call.
func buildBackend(cfg config.Config) backend.Backend {
	opts := backend.Options{Temperature: cfg.Temperature, TopP: cfg.TopP}
	switch cfg.Backend {
	case config.BackendProcess:
		p := backend.NewProcess("", cfg.Model, opts, cfg.Timeout)
		if !p.Available() {
			logger.Warn("ollama executable not found on PATH, every item will use the lexicon fallback")
		}
		return p
	case config.BackendChat:
		return backend.NewChat(cfg.Endpoint, cfg.Model, opts, cfg.Timeout)
	case config.BackendDisabled:
		return nil
	default:
		return backend.NewHTTP(cfg.Endpoint, cfg.Model, opts, cfg.Timeout)
	}
}
