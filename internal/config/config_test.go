package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	var c Config
	c.ApplyDefaults()

	assert.Equal(t, "llama3", c.Model)
	assert.Equal(t, BackendHTTP, c.Backend)
	assert.Equal(t, "en", c.Labels)
	assert.Equal(t, 1, c.Workers)
	assert.Equal(t, 120*time.Second, c.Timeout)
	assert.Equal(t, "output", c.OutputDir)
	assert.Equal(t, filepath.Join("output", "classification_cache.json"), c.CachePath)
}

func TestApplyDefaults_EndpointFromEnvironment(t *testing.T) {
	t.Setenv("OLLAMA_ENDPOINT", "http://inference:11434")

	var c Config
	c.ApplyDefaults()
	assert.Equal(t, "http://inference:11434", c.Endpoint)

	c = Config{Endpoint: "http://explicit:1234"}
	c.ApplyDefaults()
	assert.Equal(t, "http://explicit:1234", c.Endpoint)
}

func TestApplyDefaults_MockForcesDisabledBackend(t *testing.T) {
	c := Config{Mock: true, Backend: BackendHTTP}
	c.ApplyDefaults()
	assert.Equal(t, BackendDisabled, c.Backend)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	c := Config{Model: "mistral", Workers: 4, OutputDir: "results", CachePath: "warm.json"}
	c.ApplyDefaults()

	assert.Equal(t, "mistral", c.Model)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, "warm.json", c.CachePath)
}

func TestValidate(t *testing.T) {
	c := Config{Input: "data.csv"}
	c.ApplyDefaults()
	assert.NoError(t, c.Validate())

	bad := c
	bad.Input = ""
	assert.Error(t, bad.Validate())

	bad = c
	bad.Backend = "grpc"
	assert.Error(t, bad.Validate())

	bad = c
	bad.Labels = "fr"
	assert.Error(t, bad.Validate())

	bad = c
	bad.Limit = -1
	assert.Error(t, bad.Validate())
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "input: songs.csv\nmodel: mistral\nbackend: process\nlabels: pt\nworkers: 3\ntemperature: 0.2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "songs.csv", c.Input)
	assert.Equal(t, "mistral", c.Model)
	assert.Equal(t, BackendProcess, c.Backend)
	assert.Equal(t, "pt", c.Labels)
	assert.Equal(t, 3, c.Workers)
	require.NotNil(t, c.Temperature)
	assert.Equal(t, 0.2, *c.Temperature)
	assert.Nil(t, c.TopP)
}

func TestLoad_EmptyPath(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, c)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\tnot yaml"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}
