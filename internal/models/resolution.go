package models

// Resolution source constants
const (
	SourceLexicon    = "lexicon"
	SourceClassifier = "classifier"
)

// Resolution is the outcome of resolving one message within a category.
type Resolution struct {
	Label  string `json:"label"`
	Source string `json:"source"`           // lexicon or classifier
	Phrase string `json:"phrase,omitempty"` // matched lexicon phrase, if any
	Score  int    `json:"score"`            // best fuzzy score, -1 when the lexicon is empty
}

// FromLexicon returns true if the label came from a fuzzy lexicon match.
func (r Resolution) FromLexicon() bool {
	return r.Source == SourceLexicon
}
