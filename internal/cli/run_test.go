package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func withTempPaths(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	oldRules, oldLog := rulesetPath, logPath
	rulesetPath = filepath.Join(dir, "ruleset.yaml")
	logPath = filepath.Join(dir, "audit.jsonl")
	t.Cleanup(func() { rulesetPath, logPath = oldRules, oldLog })
	return logPath
}

func TestGatedRun_RefusesRed(t *testing.T) {
	auditPath := withTempPaths(t)

	code, err := gatedRun([]string{"rm", "-rf", "/"})
	if err != nil {
		t.Fatalf("gatedRun failed: %v", err)
	}
	if code != 1 {
		t.Errorf("refused command should exit 1, got %d", code)
	}

	// gatedRun has returned, so its deferred cleanup already closed the
	// audit logger; the refusal must be fully on disk.
	data, err := os.ReadFile(auditPath)
	if err != nil {
		t.Fatalf("audit log missing: %v", err)
	}
	if !strings.Contains(string(data), `"user_action":"refused"`) {
		t.Errorf("audit log should record the refusal, got %s", data)
	}
	if !strings.Contains(string(data), `"status":"RED"`) {
		t.Errorf("audit log should record the verdict, got %s", data)
	}
}

func TestGatedRun_AutoDeniesYellowWithoutTTY(t *testing.T) {
	auditPath := withTempPaths(t)

	// Test processes have no terminal on stdin, so the approval prompt
	// auto-denies and the command never executes.
	code, err := gatedRun([]string{"python", "x.py"})
	if err != nil {
		t.Fatalf("gatedRun failed: %v", err)
	}
	if code != 1 {
		t.Errorf("denied command should exit 1, got %d", code)
	}

	data, err := os.ReadFile(auditPath)
	if err != nil {
		t.Fatalf("audit log missing: %v", err)
	}
	if !strings.Contains(string(data), "auto_deny_non_interactive") {
		t.Errorf("audit log should record the auto-denial, got %s", data)
	}
}
