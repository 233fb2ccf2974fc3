// Package config holds the run configuration. Defaults and environment
// lookups are resolved once here at startup and the resulting struct is
// threaded through explicitly; no component reads the environment later.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Backend kinds accepted by the CLI.
const (
	BackendHTTP     = "http"
	BackendProcess  = "process"
	BackendChat     = "chat"
	BackendDisabled = "disabled"
)

// Config is the full configuration surface of a run.
type Config struct {
	// Input is the path to the lyric CSV dataset. Required.
	Input string `yaml:"input"`

	// Model is the local model name submitted to the backend.
	Model string `yaml:"model"`

	// Backend selects the invocation mechanism: http, process, chat, or
	// disabled.
	Backend string `yaml:"backend"`

	// Endpoint is the local inference server address for the http and chat
	// backends. Resolved from OLLAMA_ENDPOINT when empty.
	Endpoint string `yaml:"endpoint"`

	// Labels selects the active label localization: en or pt.
	Labels string `yaml:"labels"`

	// Workers bounds concurrent model invocations.
	Workers int `yaml:"workers"`

	// Timeout bounds a single backend invocation.
	Timeout time.Duration `yaml:"timeout"`

	// Temperature and TopP are optional decoding parameters; nil keeps the
	// model default.
	Temperature *float64 `yaml:"temperature"`
	TopP        *float64 `yaml:"top_p"`

	// Limit caps the number of rows processed; 0 means all.
	Limit int `yaml:"limit"`

	// CachePath is the persisted result cache. Empty derives a path under
	// OutputDir.
	CachePath string `yaml:"cache"`

	// OutputDir receives the summary and detail artifacts.
	OutputDir string `yaml:"output_dir"`

	// LexiconPath optionally overrides the built-in fallback word lists.
	LexiconPath string `yaml:"lexicon"`

	// Mock forces a fallback-only run: no backend is ever invoked.
	Mock bool `yaml:"mock"`
}

// Load reads a YAML config file. An empty path returns a zero Config so the
// caller's flags and defaults take over.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyDefaults fills unset fields with process-wide defaults, consulting
// the environment exactly once.
func (c *Config) ApplyDefaults() {
	if c.Model == "" {
		c.Model = "llama3"
	}
	if c.Backend == "" {
		c.Backend = BackendHTTP
	}
	if c.Endpoint == "" {
		c.Endpoint = os.Getenv("OLLAMA_ENDPOINT")
	}
	if c.Labels == "" {
		c.Labels = "en"
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	if c.Timeout <= 0 {
		c.Timeout = 120 * time.Second
	}
	if c.OutputDir == "" {
		c.OutputDir = "output"
	}
	if c.CachePath == "" {
		c.CachePath = filepath.Join(c.OutputDir, "classification_cache.json")
	}
	if c.Mock {
		c.Backend = BackendDisabled
	}
}

// Validate rejects configurations the run cannot start with.
func (c *Config) Validate() error {
	if c.Input == "" {
		return fmt.Errorf("input dataset path is required")
	}
	switch c.Backend {
	case BackendHTTP, BackendProcess, BackendChat, BackendDisabled:
	default:
		return fmt.Errorf("unknown backend %q (want http, process, chat, or disabled)", c.Backend)
	}
	switch c.Labels {
	case "en", "pt":
	default:
		return fmt.Errorf("unknown label set %q (want en or pt)", c.Labels)
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	return nil
}
