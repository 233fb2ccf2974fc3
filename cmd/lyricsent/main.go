// Command lyricsent classifies the sentiment of song lyrics from a CSV
// dataset using a locally hosted language model, with a deterministic
// lexicon fallback when the model is unavailable.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"lyricsent/internal/config"
)

var (
	cfgFile     string
	verbose     bool
	temperature float64
	topP        float64

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lyricsent",
	Short: "Sentiment classification for song lyrics via a local LLM",
	Long: `lyricsent reads a lyric CSV dataset, classifies each song's sentiment
with a locally hosted language model (Ollama), and aggregates the results
into summary and per-song artifacts.

When the model is unreachable the run degrades to a deterministic word-list
fallback instead of aborting, and results are cached by lyric content so
repeated runs over the same dataset cost no further model calls.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		return run(resolved)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "optional YAML config file")
	flags.StringVar(&cfg.Input, "input", "", "path to the lyric CSV dataset")
	flags.StringVar(&cfg.Model, "model", "", "model name (default llama3)")
	flags.StringVar(&cfg.Backend, "backend", "", "backend kind: http, process, chat, or disabled")
	flags.StringVar(&cfg.Endpoint, "endpoint", "", "inference server address (default $OLLAMA_ENDPOINT or http://localhost:11434)")
	flags.StringVar(&cfg.Labels, "labels", "", "label localization: en or pt (default en)")
	flags.IntVar(&cfg.Workers, "workers", 0, "concurrent model invocations (default 1)")
	flags.DurationVar(&cfg.Timeout, "timeout", 0, "per-invocation timeout (default 2m)")
	flags.Float64Var(&temperature, "temperature", 0, "decoding temperature")
	flags.Float64Var(&topP, "top-p", 0, "decoding top-p")
	flags.IntVar(&cfg.Limit, "limit", 0, "limit the number of songs processed (0 = all)")
	flags.StringVar(&cfg.CachePath, "cache", "", "result cache file (default <output-dir>/classification_cache.json)")
	flags.StringVar(&cfg.OutputDir, "output-dir", "", "directory for output artifacts (default output)")
	flags.StringVar(&cfg.LexiconPath, "lexicon", "", "YAML file overriding the fallback word lists")
	flags.BoolVar(&cfg.Mock, "mock", false, "fallback-only run: never invoke the model")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// resolveConfig merges the optional config file with command-line flags
// (flags win) and resolves defaults once.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	resolved, err := config.Load(cfgFile)
	if err != nil {
		return resolved, err
	}

	if cfg.Input != "" {
		resolved.Input = cfg.Input
	}
	if cfg.Model != "" {
		resolved.Model = cfg.Model
	}
	if cfg.Backend != "" {
		resolved.Backend = cfg.Backend
	}
	if cfg.Endpoint != "" {
		resolved.Endpoint = cfg.Endpoint
	}
	if cfg.Labels != "" {
		resolved.Labels = cfg.Labels
	}
	if cfg.Workers > 0 {
		resolved.Workers = cfg.Workers
	}
	if cfg.Timeout > 0 {
		resolved.Timeout = cfg.Timeout
	}
	if cfg.Limit > 0 {
		resolved.Limit = cfg.Limit
	}
	if cfg.CachePath != "" {
		resolved.CachePath = cfg.CachePath
	}
	if cfg.OutputDir != "" {
		resolved.OutputDir = cfg.OutputDir
	}
	if cfg.LexiconPath != "" {
		resolved.LexiconPath = cfg.LexiconPath
	}
	if cfg.Mock {
		resolved.Mock = true
	}
	if cmd.Flags().Changed("temperature") {
		resolved.Temperature = &temperature
	}
	if cmd.Flags().Changed("top-p") {
		resolved.TopP = &topP
	}

	resolved.ApplyDefaults()
	if err := resolved.Validate(); err != nil {
		return resolved, err
	}
	return resolved, nil
}

func main() {
	// A .env file is optional; missing is the normal case.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
