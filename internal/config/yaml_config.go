package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"moodchat/internal/models"
)

// YAMLConfig represents the structure of the config.yaml file.
// The mood style table is easier to manage in YAML than env vars.
type YAMLConfig struct {
	Moods   []models.MoodStyle `yaml:"moods"`
	Default *models.MoodStyle  `yaml:"default,omitempty"` // style for unknown labels
}

// LoadYAMLConfig loads the YAML configuration file at path.
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// MoodStyles returns the configured styles, or nil when the file has none.
func (c *YAMLConfig) MoodStyles() []models.MoodStyle {
	if c == nil {
		return nil
	}
	return c.Moods
}

// DefaultMoodStyle returns the configured fallback style, if any.
func (c *YAMLConfig) DefaultMoodStyle() (models.MoodStyle, bool) {
	if c == nil || c.Default == nil {
		return models.MoodStyle{}, false
	}
	return *c.Default, true
}
