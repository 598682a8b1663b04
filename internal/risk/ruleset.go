package risk

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternRule is one entry in an ordered pattern table.
type PatternRule struct {
	ID      string `yaml:"id"`
	Pattern string `yaml:"pattern"`
	Reason  string `yaml:"reason"`

	re *regexp.Regexp
}

// Ruleset holds the three ordered pattern tables. The forbidden table is
// always checked in full before risky, and risky before safe; the first
// match within a table selects that table's outcome. Commands matching no
// table default to Yellow: absence of evidence of safety is not evidence
// of safety.
type Ruleset struct {
	Version   string        `yaml:"version,omitempty"`
	Forbidden []PatternRule `yaml:"forbidden"`
	Risky     []PatternRule `yaml:"risky"`
	Safe      []PatternRule `yaml:"safe"`
}

// Compile builds the regex matchers. All matching is case-insensitive.
func (rs *Ruleset) Compile() error {
	for _, table := range [][]PatternRule{rs.Forbidden, rs.Risky, rs.Safe} {
		for i := range table {
			pat := table[i].Pattern
			if !strings.HasPrefix(pat, "(?i)") {
				pat = "(?i)" + pat
			}
			re, err := regexp.Compile(pat)
			if err != nil {
				return fmt.Errorf("rule %s: %w", table[i].ID, err)
			}
			table[i].re = re
		}
	}
	return nil
}

// matchTable returns the first rule in the table matching text.
func matchTable(table []PatternRule, text string) (PatternRule, bool) {
	for _, rule := range table {
		if rule.re != nil && rule.re.MatchString(text) {
			return rule, true
		}
	}
	return PatternRule{}, false
}

// DefaultRuleset returns the built-in pattern tables. Callers may replace
// or extend them via LoadRuleset; the classifier treats the tables as
// immutable configuration.
func DefaultRuleset() *Ruleset {
	return &Ruleset{
		Version: "1",
		Forbidden: []PatternRule{
			{
				ID:      "forbid-rm-root",
				Pattern: `\brm\s+(-[a-z-]+\s+)*-[a-z]*[rf][a-z]*\s+(-[a-z-]+\s+)*(/|/\*|~|\$HOME|\$\{HOME\})\s*(;|&|$)`,
				Reason:  "recursive delete of the filesystem root or home directory",
			},
			{
				ID:      "forbid-rm-no-preserve-root",
				Pattern: `\brm\b.*--no-preserve-root`,
				Reason:  "rm explicitly disabling root protection",
			},
			{
				ID:      "forbid-sudo-rm",
				Pattern: `\bsudo\s+rm\s+(-[a-z-]+\s+)*-[a-z]*[rf]`,
				Reason:  "privilege-escalated recursive or forced delete",
			},
			{
				ID:      "forbid-fork-bomb",
				Pattern: `:\s*\(\s*\)\s*\{[^}]*:\s*\|\s*:`,
				Reason:  "fork bomb",
			},
			{
				ID:      "forbid-dd-block-device",
				Pattern: `\bdd\b.*\bof=/dev/(sd|hd|nvme|vd|xvd|md|dm-|loop)`,
				Reason:  "raw write to a block device",
			},
			{
				ID:      "forbid-mkfs",
				Pattern: `\bmkfs(\.[a-z0-9]+)?\s+.*/dev/`,
				Reason:  "filesystem format on a device",
			},
			{
				ID:      "forbid-redirect-to-device",
				Pattern: `>\s*/dev/(sd|hd|nvme|vd|xvd)`,
				Reason:  "output redirected onto a raw disk device",
			},
			{
				ID:      "forbid-overwrite-auth-files",
				Pattern: `>\s*/etc/(passwd|shadow|sudoers)`,
				Reason:  "overwrite of system authentication files",
			},
			{
				ID:      "forbid-kill-init",
				Pattern: `\bkill\s+(-[a-z0-9]+\s+)*1\s*(;|&|$)`,
				Reason:  "killing process 1 halts the system",
			},
			{
				ID:      "forbid-pipe-to-interpreter",
				Pattern: `\b(curl|wget|fetch|aria2c)\b[^|;&]*\|\s*(sudo\s+)?(ba|z|da|k)?sh\b`,
				Reason:  "remote script piped straight into a shell; download and inspect first",
			},
			{
				ID:      "forbid-chmod-root",
				Pattern: `\bchmod\s+(-[a-z]+\s+)*(000|777|a\+rwx)\s+/\s*(;|&|$)`,
				Reason:  "permission change on the filesystem root",
			},
		},
		Risky: []PatternRule{
			{
				ID:      "risk-recursive-delete",
				Pattern: `\brm\s+(-[a-z-]+\s+)*-[a-z]*[rf]`,
				Reason:  "recursive or forced delete",
			},
			{
				ID:      "risk-elevated-privileges",
				Pattern: `\b(sudo|doas)\b|\bsu\s+-`,
				Reason:  "elevated privileges",
			},
			{
				ID:      "risk-git-force",
				Pattern: `\bgit\s+(push\s+[^|;&]*(--force|--force-with-lease|-f)\b|reset\s+--hard|clean\s+-[a-z]*f|checkout\s+--\s)`,
				Reason:  "version-control operation that can discard history",
			},
			{
				ID:      "risk-package-install",
				Pattern: `\b(npm\s+(install|i)\s+(-g|--global)|npm\s+publish|pip3?\s+install|brew\s+install|apt(-get)?\s+install|cargo\s+(install|publish)|gem\s+install)\b`,
				Reason:  "package install or publish can alter the system or supply chain",
			},
			{
				ID:      "risk-output-redirection",
				Pattern: `>{1,2}\s*[^&\s>]`,
				Reason:  "output redirection writes to the filesystem",
			},
			{
				ID:      "risk-archive-extraction",
				Pattern: `\btar\s+(-?[a-z]*x[a-z]*)\b|\bunzip\b|\b7z\s+x\b`,
				Reason:  "archive extraction writes arbitrary paths",
			},
			{
				ID:      "risk-recursive-chmod-chown",
				Pattern: `\b(chmod|chown)\s+(-[a-z]*R|--recursive)`,
				Reason:  "recursive permission or ownership change",
			},
			{
				ID:      "risk-dd",
				Pattern: `\bdd\s+if=`,
				Reason:  "dd performs low-level copies",
			},
			{
				ID:      "risk-scheduler-or-services",
				Pattern: `\b(crontab\s|systemctl\s+(start|stop|restart|enable|disable)|service\s+\S+\s+(start|stop|restart))`,
				Reason:  "modifies scheduled jobs or system services",
			},
			{
				ID:      "risk-eval",
				Pattern: `\beval\s`,
				Reason:  "eval executes dynamically assembled text",
			},
		},
		Safe: []PatternRule{
			{
				ID:      "safe-readonly-inspection",
				Pattern: `^(ls|pwd|whoami|hostname|uname|date|uptime|id|env|printenv|echo|cat|head|tail|less|more|wc|du|df|stat|file|which|whereis|type|tree|ps)\b`,
				Reason:  "read-only inspection command",
			},
			{
				ID:      "safe-git-readonly",
				Pattern: `^git\s+(status|log|diff|branch|show|remote|describe|rev-parse|blame|shortlog|stash\s+list)\b`,
				Reason:  "read-only git query",
			},
			{
				ID:      "safe-search",
				Pattern: `^(grep|egrep|fgrep|rg|ag)\b`,
				Reason:  "read-only text search",
			},
			{
				ID:      "safe-version-check",
				Pattern: `^\S+\s+(--version|-version|version)\s*$`,
				Reason:  "version check",
			},
			{
				ID:      "safe-test-lint",
				Pattern: `^((npm|yarn|pnpm)\s+(test|run\s+(test|lint))|go\s+(test|vet|list|env|version)|cargo\s+(test|check|tree)|make\s+(test|lint|check)|pytest\b|jest\b|eslint\b|golangci-lint\s+run)`,
				Reason:  "test or lint invocation",
			},
			{
				ID:      "safe-help",
				Pattern: `^(man|help)\b|^\S+\s+--help\s*$`,
				Reason:  "documentation lookup",
			},
		},
	}
}
