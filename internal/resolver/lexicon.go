package resolver

import (
	"strings"

	"moodchat/internal/fuzzy"
	"moodchat/internal/models"
)

// Match is the best lexicon entry for an input and its fuzzy score.
type Match struct {
	Phrase string
	Label  string
	Score  int
}

// Lexicon maps lower-cased phrases to labels and finds the closest phrase
// for free text.
type Lexicon struct {
	phrases []string
	labels  map[string]string
	choices *fuzzy.Choices
}

// NewLexicon builds a lexicon from rows. Phrases are lower-cased; when a
// phrase repeats, the later row's label replaces the earlier one but the
// phrase keeps its first position. Phrases with nothing left to score after
// processing are skipped.
func NewLexicon(rows []models.LabeledPhrase) *Lexicon {
	l := &Lexicon{labels: make(map[string]string, len(rows))}
	for _, r := range rows {
		if fuzzy.Process(r.Input) == "" {
			continue
		}
		key := strings.ToLower(r.Input)
		if _, ok := l.labels[key]; !ok {
			l.phrases = append(l.phrases, key)
		}
		l.labels[key] = r.Label
	}
	l.choices = fuzzy.NewChoices(l.phrases)
	return l
}

// Len returns the number of distinct phrases.
func (l *Lexicon) Len() int {
	return len(l.phrases)
}

// Label returns the label stored for an exact phrase (case-insensitive).
func (l *Lexicon) Label(phrase string) (string, bool) {
	label, ok := l.labels[strings.ToLower(phrase)]
	return label, ok
}

// Match returns the highest-scoring phrase for text. An exact phrase always
// wins over other phrases that process to the same string. It reports false
// only when the lexicon is empty.
func (l *Lexicon) Match(text string) (Match, bool) {
	key := strings.ToLower(text)
	if label, ok := l.labels[key]; ok {
		return Match{Phrase: key, Label: label, Score: 100}, true
	}

	m, ok := l.choices.Best(key)
	if !ok {
		return Match{}, false
	}
	return Match{
		Phrase: m.Choice,
		Label:  l.labels[m.Choice],
		Score:  m.Score,
	}, true
}
