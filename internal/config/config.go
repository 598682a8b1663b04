// Package config resolves where shellgate keeps its ruleset and audit log.
package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultConfigDir   = ".shellgate"
	DefaultRulesetFile = "ruleset.yaml"
	DefaultLogFile     = "audit.jsonl"
)

type Config struct {
	ConfigDir   string
	RulesetPath string
	LogPath     string
}

// Load resolves paths, creating the config directory if needed. Explicit
// paths win over the defaults under ~/.shellgate.
func Load(rulesetPath, logPath string) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{ConfigDir: configDir}

	if rulesetPath != "" {
		cfg.RulesetPath = rulesetPath
	} else {
		cfg.RulesetPath = filepath.Join(configDir, DefaultRulesetFile)
	}

	if logPath != "" {
		cfg.LogPath = logPath
	} else {
		cfg.LogPath = filepath.Join(configDir, DefaultLogFile)
	}

	return cfg, nil
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
