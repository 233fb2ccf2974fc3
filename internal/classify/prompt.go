package classify

import (
	"fmt"
	"strings"

	"lyricsent/internal/label"
)

// maxPromptChars bounds the lyric text submitted to the backend, keeping
// prompt cost and latency predictable on very long lyrics.
const maxPromptChars = 4000

const englishPromptTemplate = `You are an expert music analyst. Classify the overall sentiment of the following song lyrics as one of the following labels: %s, %s, or %s. Respond using only the label name with no explanations.

Lyrics:
%s
`

const portuguesePromptTemplate = `Classifique a seguinte letra de música como %q, %q ou %q.
Responda apenas com uma dessas três palavras em português europeu.

Artista: %s
Música: %s
Letra:
%s`

// buildPrompt renders the fixed instructional prompt for the active label
// set. The Portuguese template includes artist and song, matching the wording
// the Portuguese-labelled deployment expects; the English one sends lyrics
// only.
func buildPrompt(set *label.Set, artist, song, text string) string {
	text = truncate(text, maxPromptChars)
	if set.Name() == "pt" {
		return fmt.Sprintf(portuguesePromptTemplate,
			set.Positive(), set.Neutral(), set.Negative(), artist, song, text)
	}
	return fmt.Sprintf(englishPromptTemplate,
		set.Positive(), set.Neutral(), set.Negative(), text)
}

// truncate cuts text to at most limit runes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return strings.TrimSpace(string(runes[:limit]))
}
