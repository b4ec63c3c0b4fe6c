// Package config loads and saves the defaults used by the stegmark command.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zedseven/stegmark"
)

// Config holds the command defaults. Flags given on the command line take precedence.
type Config struct {
	Marker            string `yaml:"marker"`             // Suffix that terminates the hidden message.
	Charset           string `yaml:"charset"`            // "latin1" or "ascii".
	Algorithm         string `yaml:"algorithm"`          // "sequential" or "pattern".
	PatternPath       string `yaml:"pattern_file"`       // Key file for the pattern algorithm.
	CorrectableErrors uint8  `yaml:"correctable_errors"` // Bit errors corrected per character, 0 for none.
	OutputLevel       string `yaml:"output_level"`       // "nothing", "steps", "info" or "debug".
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Marker:      stegmark.DefaultMarker,
		Charset:     stegmark.CharsetLatin1.String(),
		Algorithm:   stegmark.AlgoSequential.String(),
		OutputLevel: stegmark.OutputSteps.String(),
	}
}

/*
 * Functions for loading and saving configuration in YAML format.
 * Keys missing from the file keep their default values.
 */
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	conf := Default()
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}
	return conf, nil
}

func SaveConfig(filename string, c *Config) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0600)
}
