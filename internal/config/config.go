// Package config loads the YAML configuration used by the cmd tools.
package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Path          string `yaml:"path"`          // data directory for the badger store
	MinimumFreeGB int    `yaml:"minimumFreeGB"` // free-space floor before opening the store
	LogLevel      string `yaml:"logLevel"`
}

// Load reads the config file at path and fills in defaults for missing
// values. A missing file is not an error, it yields the defaults.
func Load(path string) (Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return withDefaults(config), nil
		}
		return Config{}, fmt.Errorf("error reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	return withDefaults(config), nil
}

func withDefaults(config Config) Config {
	if config.Path == "" {
		config.Path = "chainData"
	}

	if config.MinimumFreeGB == 0 {
		config.MinimumFreeGB = 1
	}

	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	return config
}

// NewLogger builds a logrus logger at the configured level, falling
// back to info for unknown level names.
func (c Config) NewLogger() *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, using info", c.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
