package risk

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRuleset_MissingFileUsesDefaults(t *testing.T) {
	rs, err := LoadRuleset(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(rs.Forbidden) == 0 || len(rs.Risky) == 0 || len(rs.Safe) == 0 {
		t.Error("defaults should populate all three tables")
	}
}

func TestLoadRuleset_PartialFileKeepsDefaultTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	content := `version: "2"
safe:
  - id: safe-custom-tool
    pattern: '^ourtool\s+(status|info)\b'
    reason: read-only internal tool
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rs, err := LoadRuleset(path)
	if err != nil {
		t.Fatalf("LoadRuleset failed: %v", err)
	}
	if len(rs.Safe) != 1 || rs.Safe[0].ID != "safe-custom-tool" {
		t.Errorf("safe table should be the override, got %+v", rs.Safe)
	}
	if len(rs.Forbidden) == 0 {
		t.Error("forbidden table should fall back to the defaults")
	}
	if len(rs.Risky) == 0 {
		t.Error("risky table should fall back to the defaults")
	}

	// The overridden table actually drives classification.
	c, err := New(rs)
	if err != nil {
		t.Fatalf("classifier rejected loaded rules: %v", err)
	}
	v := classify(t, c, "ourtool status")
	if v.Status != Green {
		t.Errorf("custom safe rule should apply, got %s (%v)", v.Status, v.Reasons)
	}
	v = classify(t, c, "rm -rf /")
	if v.Status != Red {
		t.Errorf("default forbidden rules should still apply, got %s", v.Status)
	}
}

func TestLoadRuleset_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ruleset.yaml")
	if err := os.WriteFile(path, []byte("forbidden: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRuleset(path); err == nil {
		t.Error("malformed YAML should error")
	}
}

func TestNew_BadPatternRejected(t *testing.T) {
	rs := &Ruleset{
		Forbidden: []PatternRule{{ID: "broken", Pattern: `rm (`}},
	}
	if _, err := New(rs); err == nil {
		t.Error("invalid regex should fail classifier construction")
	}
}
