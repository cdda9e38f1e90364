// Package config reads optional defaults for the mdextract flags.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no file is given.
const DefaultFile = ".mdextract.yaml"

type Config struct {
	Lang       []string `yaml:"lang"`
	Untagged   bool     `yaml:"untagged"`
	Width      int      `yaml:"width"`
	CommonMark bool     `yaml:"commonmark"`
}

func Default() *Config {
	return &Config{
		Lang:     []string{"typescript", "tsx", "javascript", "jsx"},
		Untagged: true,
		Width:    100,
	}
}

// Load reads the configuration at path over the defaults. An empty path
// means DefaultFile. A missing file yields the defaults unless required is
// set. The returned string is the file actually read, empty if none.
func Load(path string, required bool) (*Config, string, error) {
	if len(path) == 0 {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), "", nil
		}

		return nil, "", fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.Width < 0 {
		return nil, "", fmt.Errorf("%s: %w", path, ErrNegativeWidth)
	}

	return cfg, path, nil
}

// ErrNegativeWidth is returned for a preview width below zero.
var ErrNegativeWidth = errors.New("preview width must not be negative")
