package risk

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadRuleset reads pattern tables from a YAML file. A missing file yields
// the built-in defaults; a present but partial file keeps the defaults for
// any table it leaves empty, so users can override just the safe list
// without re-stating the forbidden one.
func LoadRuleset(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultRuleset(), nil
		}
		return nil, err
	}

	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("parse ruleset %s: %w", path, err)
	}

	defaults := DefaultRuleset()
	if len(rs.Forbidden) == 0 {
		rs.Forbidden = defaults.Forbidden
	}
	if len(rs.Risky) == 0 {
		rs.Risky = defaults.Risky
	}
	if len(rs.Safe) == 0 {
		rs.Safe = defaults.Safe
	}
	return &rs, nil
}
