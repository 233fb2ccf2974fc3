// Package label defines the closed sentiment vocabulary and the rules for
// folding free-form model output into it.
package label

import (
	"fmt"
	"strings"
	"unicode"
)

// Label is one sentiment class from a fixed, closed enumeration.
type Label string

type polarity int

const (
	polarityNeutral polarity = iota
	polarityPositive
	polarityNegative
)

// aliases maps accepted spellings (case-folded) to a polarity. It covers the
// English labels and the Portuguese gender variants, so a cache or model
// answer written under either localization folds to the same class.
var aliases = map[string]polarity{
	"positive": polarityPositive,
	"positiva": polarityPositive,
	"positivo": polarityPositive,
	"neutral":  polarityNeutral,
	"neutra":   polarityNeutral,
	"neutro":   polarityNeutral,
	"negative": polarityNegative,
	"negativa": polarityNegative,
	"negativo": polarityNegative,
}

// Set is one active label localization. Exactly one Set is active per run;
// values outside the set are invalid and coerce to its Neutral label.
type Set struct {
	name     string
	positive Label
	neutral  Label
	negative Label
}

// English returns the English label set: Positive, Neutral, Negative.
func English() *Set {
	return &Set{name: "en", positive: "Positive", neutral: "Neutral", negative: "Negative"}
}

// Portuguese returns the Portuguese label set: Positiva, Neutra, Negativa.
func Portuguese() *Set {
	return &Set{name: "pt", positive: "Positiva", neutral: "Neutra", negative: "Negativa"}
}

// ForName resolves a localization code ("en" or "pt") to its label set.
func ForName(name string) (*Set, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "en":
		return English(), nil
	case "pt":
		return Portuguese(), nil
	default:
		return nil, fmt.Errorf("unknown label set %q (want en or pt)", name)
	}
}

// Name returns the localization code of the set.
func (s *Set) Name() string { return s.name }

// Positive returns the set's positive label.
func (s *Set) Positive() Label { return s.positive }

// Neutral returns the set's neutral label. It is also the default every
// unrecognized value coerces to.
func (s *Set) Neutral() Label { return s.neutral }

// Negative returns the set's negative label.
func (s *Set) Negative() Label { return s.negative }

// Labels returns the members of the set in canonical report order.
func (s *Set) Labels() []Label {
	return []Label{s.positive, s.neutral, s.negative}
}

// Contains reports whether v is a member of the set. Spelling variants from
// another localization are not members; the cache uses this to treat them as
// misses rather than trusting them blindly.
func (s *Set) Contains(v string) bool {
	l := Label(v)
	return l == s.positive || l == s.neutral || l == s.negative
}

// Normalize folds arbitrary model output into the set. It takes the first
// whitespace-delimited token, strips surrounding punctuation, case-folds, and
// maps it through the alias table. Unrecognized output degrades to Neutral.
// Normalize is total: it never fails, whatever the model said.
func (s *Set) Normalize(raw string) Label {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return s.neutral
	}
	token := strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	switch aliases[strings.ToLower(token)] {
	case polarityPositive:
		return s.positive
	case polarityNegative:
		return s.negative
	default:
		return s.neutral
	}
}
