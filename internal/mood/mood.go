// Package mood maps emotion labels to their banner style.
package mood

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"moodchat/internal/models"
	"moodchat/internal/validation"
)

// DefaultColor is the banner color for labels without a style.
const DefaultColor = "#E2E3E5"

var ErrInvalidStyle = errors.New("invalid mood style")

// DefaultStyles returns the built-in emotion styles.
func DefaultStyles() []models.MoodStyle {
	return []models.MoodStyle{
		{Label: "happy", Color: "#D4EDDA", Emoji: "😄"},
		{Label: "sad", Color: "#F8D7DA", Emoji: "😭"},
		{Label: "stress", Color: "#FFF3CD", Emoji: "😤"},
		{Label: "emotional", Color: "#D1ECF1", Emoji: "🥺"},
	}
}

// DefaultFallback returns the built-in style for unknown labels.
func DefaultFallback() models.MoodStyle {
	return models.MoodStyle{Color: DefaultColor, Emoji: "🔔"}
}

// Registry is a validated, read-only label -> style table.
type Registry struct {
	styles   map[string]models.MoodStyle
	fallback models.MoodStyle
}

// NewRegistry validates styles and builds a registry. Labels are matched
// case-insensitively and must be unique.
func NewRegistry(styles []models.MoodStyle, fallback models.MoodStyle) (*Registry, error) {
	if err := validateStyle(fallback, true); err != nil {
		return nil, fmt.Errorf("default style: %w", err)
	}

	r := &Registry{
		styles:   make(map[string]models.MoodStyle, len(styles)),
		fallback: fallback,
	}
	for _, s := range styles {
		if err := validateStyle(s, false); err != nil {
			return nil, fmt.Errorf("style %q: %w", s.Label, err)
		}
		key := strings.ToLower(strings.TrimSpace(s.Label))
		if _, dup := r.styles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidStyle, s.Label)
		}
		s.Label = key
		r.styles[key] = s
	}
	return r, nil
}

// Default returns a registry built from DefaultStyles.
func Default() *Registry {
	r, err := NewRegistry(DefaultStyles(), DefaultFallback())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the style for label, or the fallback style carrying label
// when none is configured.
func (r *Registry) Lookup(label string) models.MoodStyle {
	if s, ok := r.styles[strings.ToLower(strings.TrimSpace(label))]; ok {
		return s
	}
	s := r.fallback
	s.Label = label
	return s
}

// Labels returns the styled labels in sorted order.
func (r *Registry) Labels() []string {
	out := make([]string, 0, len(r.styles))
	for l := range r.styles {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Unstyled returns the labels from the given list that will fall back to the
// default style, sorted and without duplicates.
func (r *Registry) Unstyled(labels []string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range labels {
		key := strings.ToLower(strings.TrimSpace(l))
		if _, ok := r.styles[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

func validateStyle(s models.MoodStyle, isDefault bool) error {
	if !isDefault && strings.TrimSpace(s.Label) == "" {
		return fmt.Errorf("%w: empty label", ErrInvalidStyle)
	}
	if !validation.ValidateColor(s.Color) {
		return fmt.Errorf("%w: color %q is not #RRGGBB", ErrInvalidStyle, s.Color)
	}
	if s.MusicURL != "" {
		if ok, msg := validation.ValidateEmbedURL(s.MusicURL); !ok {
			return fmt.Errorf("%w: music_url: %s", ErrInvalidStyle, msg)
		}
	}
	return nil
}
