// Package lexicon implements the deterministic word-list fallback classifier.
// It is the degraded mode of the pipeline: pure, stateless, and usable with
// zero network or process access.
package lexicon

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"lyricsent/internal/label"
)

// Words holds the positive and negative word lists. The lists are
// configuration, not logic: they may mix languages freely.
type Words struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// DefaultWords returns the built-in mixed English/Portuguese word lists.
func DefaultWords() Words {
	return Words{
		Positive: []string{
			"love", "happy", "smile", "joy", "sunshine",
			"bom", "feliz", "amor", "paz", "alegria",
		},
		Negative: []string{
			"sad", "cry", "pain", "bad", "lonely", "tears",
			"triste", "raiva", "solidão", "morte", "ódio",
		},
	}
}

// LoadWords reads word lists from a YAML file. An empty path returns the
// defaults. A missing or unreadable file is an error; the caller decides
// whether that is fatal.
func LoadWords(path string) (Words, error) {
	if path == "" {
		return DefaultWords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Words{}, fmt.Errorf("read lexicon file: %w", err)
	}
	var w Words
	if err := yaml.Unmarshal(data, &w); err != nil {
		return Words{}, fmt.Errorf("parse lexicon file %s: %w", path, err)
	}
	if len(w.Positive) == 0 && len(w.Negative) == 0 {
		return Words{}, fmt.Errorf("lexicon file %s has no words", path)
	}
	return w, nil
}

// Classifier scores text against fixed word lists. The zero value is not
// usable; construct with New.
type Classifier struct {
	labels   *label.Set
	positive map[string]struct{}
	negative map[string]struct{}
}

// New builds a classifier over the given word lists. Words are case-folded
// once at construction.
func New(set *label.Set, words Words) *Classifier {
	c := &Classifier{
		labels:   set,
		positive: make(map[string]struct{}, len(words.Positive)),
		negative: make(map[string]struct{}, len(words.Negative)),
	}
	for _, w := range words.Positive {
		c.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range words.Negative {
		c.negative[strings.ToLower(w)] = struct{}{}
	}
	return c
}

// Default builds a classifier with the built-in word lists.
func Default(set *label.Set) *Classifier {
	return New(set, DefaultWords())
}

// Classify tokenizes text into letter runs, case-folds, and scores
// positive-hits minus negative-hits over all token occurrences.
// score > 0 is Positive, score < 0 is Negative, 0 (including empty text)
// is Neutral. Deterministic and side-effect free.
func (c *Classifier) Classify(text string) label.Label {
	score := 0
	for _, token := range tokenize(text) {
		if _, ok := c.positive[token]; ok {
			score++
		}
		if _, ok := c.negative[token]; ok {
			score--
		}
	}
	switch {
	case score > 0:
		return c.labels.Positive()
	case score < 0:
		return c.labels.Negative()
	default:
		return c.labels.Neutral()
	}
}

// tokenize splits text into case-folded runs of letters. Unicode-aware so
// accented Portuguese words survive intact.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}
