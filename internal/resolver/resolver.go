// Package resolver decides, per message, between a fuzzy lexicon match and a
// trained classifier's prediction.
package resolver

import "moodchat/internal/models"

// DefaultThreshold is the minimum fuzzy score for a lexicon match to win.
const DefaultThreshold = 70

// Predictor returns a label for any text.
type Predictor interface {
	Predict(text string) string
}

// Resolver combines a lexicon and a classifier for one category.
type Resolver struct {
	category  string
	lexicon   *Lexicon
	model     Predictor
	threshold int
}

// New creates a resolver. A nil lexicon behaves as an empty one.
func New(category string, lexicon *Lexicon, model Predictor, threshold int) *Resolver {
	if lexicon == nil {
		lexicon = NewLexicon(nil)
	}
	return &Resolver{
		category:  category,
		lexicon:   lexicon,
		model:     model,
		threshold: threshold,
	}
}

// Resolve returns the lexicon label when the best fuzzy score reaches the
// threshold (inclusive), otherwise the classifier's prediction. The
// classifier is only consulted on fallback.
func (r *Resolver) Resolve(text string) models.Resolution {
	best, ok := r.lexicon.Match(text)
	if ok && best.Score >= r.threshold {
		return models.Resolution{
			Label:  best.Label,
			Source: models.SourceLexicon,
			Phrase: best.Phrase,
			Score:  best.Score,
		}
	}

	score := -1
	if ok {
		score = best.Score
	}
	return models.Resolution{
		Label:  r.model.Predict(text),
		Source: models.SourceClassifier,
		Score:  score,
	}
}

// Category returns the name this resolver was built for.
func (r *Resolver) Category() string {
	return r.category
}

// Threshold returns the inclusive lexicon score cut-off.
func (r *Resolver) Threshold() int {
	return r.threshold
}

// Lexicon returns the phrase table.
func (r *Resolver) Lexicon() *Lexicon {
	return r.lexicon
}
