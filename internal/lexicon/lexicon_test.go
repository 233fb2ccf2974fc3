package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lyricsent/internal/label"
)

func TestClassify_PositiveLyric(t *testing.T) {
	c := Default(label.English())

	got := c.Classify("I am so happy, full of love and joy")
	assert.Equal(t, label.Label("Positive"), got)
}

func TestClassify_NegativeLyric(t *testing.T) {
	c := Default(label.English())

	got := c.Classify("I cry every night, such pain and lonely tears")
	assert.Equal(t, label.Label("Negative"), got)
}

func TestClassify_NeutralOnTieAndEmpty(t *testing.T) {
	c := Default(label.English())

	assert.Equal(t, label.Label("Neutral"), c.Classify(""))
	assert.Equal(t, label.Label("Neutral"), c.Classify("the quick brown fox"))
	// one positive, one negative cancel out
	assert.Equal(t, label.Label("Neutral"), c.Classify("love and pain"))
}

func TestClassify_Deterministic(t *testing.T) {
	c := Default(label.English())
	text := "tears of joy and tears of pain, love wins"

	first := c.Classify(text)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, c.Classify(text))
	}
}

func TestClassify_PortugueseWordsAndLabels(t *testing.T) {
	c := Default(label.Portuguese())

	assert.Equal(t, label.Label("Positiva"), c.Classify("tanta paz, tanto amor e alegria"))
	assert.Equal(t, label.Label("Negativa"), c.Classify("a solidão e a morte no meu coração"))
}

func TestClassify_MatchesWholeTokensOnly(t *testing.T) {
	c := Default(label.English())

	// "lovely" and "sadness" are not "love" and "sad"
	assert.Equal(t, label.Label("Neutral"), c.Classify("lovely sadness"))
	// punctuation-only separators still split tokens
	assert.Equal(t, label.Label("Positive"), c.Classify("love,love,love!"))
}

func TestClassify_CaseFolded(t *testing.T) {
	c := Default(label.English())

	assert.Equal(t, label.Label("Positive"), c.Classify("LOVE! HAPPY! JOY!"))
}

func TestLoadWords_FromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("positive: [up]\nnegative: [down]\n"), 0o644))

	words, err := LoadWords(path)
	require.NoError(t, err)

	c := New(label.English(), words)
	assert.Equal(t, label.Label("Positive"), c.Classify("up up and away"))
	assert.Equal(t, label.Label("Negative"), c.Classify("down we go"))
	// the built-in lists must not leak through
	assert.Equal(t, label.Label("Neutral"), c.Classify("love and joy"))
}

func TestLoadWords_EmptyPathUsesDefaults(t *testing.T) {
	words, err := LoadWords("")
	require.NoError(t, err)
	assert.NotEmpty(t, words.Positive)
	assert.NotEmpty(t, words.Negative)
}

func TestLoadWords_Errors(t *testing.T) {
	_, err := LoadWords(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{}\n"), 0o644))
	_, err = LoadWords(path)
	assert.Error(t, err)
}
