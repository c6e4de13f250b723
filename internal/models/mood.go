package models

// MoodStyle is the visual treatment for a detected emotion.
type MoodStyle struct {
	Label    string `json:"label" yaml:"label"`
	Color    string `json:"color" yaml:"color"`                             // background, #RRGGBB
	Emoji    string `json:"emoji,omitempty" yaml:"emoji,omitempty"`         // shown in the banner
	MusicURL string `json:"music_url,omitempty" yaml:"music_url,omitempty"` // optional embed link
}

// HasMusic returns true if the style carries a music link.
func (s MoodStyle) HasMusic() bool {
	return s.MusicURL != ""
}
