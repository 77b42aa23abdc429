package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/geange/fsa"
)

// Config holds the CLI settings.
type Config struct {
	Seed      uint64              `yaml:"seed"`
	LogLevel  string              `yaml:"log_level"`
	LogFormat string              `yaml:"log_format"`
	Generator fsa.GeneratorParams `yaml:"generator"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Seed:      1,
		LogLevel:  "info",
		LogFormat: "console",
		Generator: fsa.GeneratorParams{
			Size:             5,
			Alphabet:         []string{"0", "1"},
			IsDFA:            true,
			EdgeChance:       0.3,
			SelfLoopChance:   0.2,
			EpsilonChance:    0,
			MultiStartChance: 0,
		},
	}
}

// Load reads a YAML config file. Fields absent from the file keep their
// default values; a missing file yields Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}
