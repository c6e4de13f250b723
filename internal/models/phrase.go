package models

// Dataset names
const (
	DatasetChat    = "chat"
	DatasetEmotion = "emotion"
)

// LabeledPhrase is one row of a training table: an input text and its label.
type LabeledPhrase struct {
	Input string `json:"input"`
	Label string `json:"label"`
}

// Dataset is a labeled table loaded at startup. Rows keep source order.
type Dataset struct {
	Name        string          `json:"name"`
	LabelColumn string          `json:"label_column"`
	Rows        []LabeledPhrase `json:"rows"`
}

// Labels returns the label column in row order.
func (d *Dataset) Labels() []string {
	out := make([]string, len(d.Rows))
	for i, r := range d.Rows {
		out[i] = r.Label
	}
	return out
}
