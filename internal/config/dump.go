package config

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// effectiveConfig is what `podreader config` prints. Connection values are
// reported as set/unset so the output can be pasted into an issue safely.
type effectiveConfig struct {
	Version     string          `yaml:"version"`
	Config      *Config         `yaml:"config"`
	Environment map[string]bool `yaml:"environment"`
}

// Dump writes the effective configuration as YAML.
func Dump(w io.Writer, cfg *Config, env *Env) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(effectiveConfig{
		Version:     Version,
		Config:      cfg,
		Environment: env.Presence(),
	}); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
