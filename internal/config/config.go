// Package config provides configuration management for relkit using koanf.
// Configuration is loaded with priority: environment variables (RELKIT_*)
// > config file (relkit.yaml) > defaults. The loaded value is validated and
// the reserved commit-type rules are merged before any package processing
// starts.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigFile is the config path used when --config is not given.
const DefaultConfigFile = "relkit.yaml"

// Load reads the configuration file at path, applies environment overrides
// and defaults, validates the result and merges the reserved type rules.
func Load(path string) (*Configuration, error) {
	k := koanf.New(".")

	loadDefaults(k)

	if err := loadFileConfig(k, path); err != nil {
		return nil, err
	}

	if err := k.Load(env.Provider("RELKIT_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("loading environment config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	types, err := MergeTypeRules(cfg.Types)
	if err != nil {
		return nil, err
	}
	cfg.Types = types

	if err := ValidateBumpFiles(cfg.BumpFiles); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// loadDefaults applies default configuration values.
func loadDefaults(k *koanf.Koanf) {
	defaults := map[string]interface{}{
		"release_message": "chore(release): %s",
		"tag_prefix":      "v",
		"include_authors": true,
		"changelog_file":  "",
	}
	for key, value := range defaults {
		k.Set(key, value)
	}
}

// loadFileConfig loads the YAML config file. A missing file is an error:
// relkit refuses to release without an explicit configuration.
func loadFileConfig(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("config file %s not found (run 'relkit init' to create one)", path)
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return nil
}

// envTransform converts environment variable names to config keys.
// Example: RELKIT_TAG_PREFIX -> tag_prefix
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "RELKIT_"))
}
