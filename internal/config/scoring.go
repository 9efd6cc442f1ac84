package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	log "github.com/sirupsen/logrus"

	"fluently/internal/fluency"
)

// LoadScoring returns the scoring configuration: the built-in defaults,
// overridden by the YAML file at path when one is configured. Fields absent
// from the file keep their defaults.
func LoadScoring(path string) (fluency.Config, error) {
	cfg := fluency.DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read scoring config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse scoring config %s: %w", path, err)
	}

	log.Infof("[Config] Loaded scoring overrides from %s", path)
	return cfg, nil
}
