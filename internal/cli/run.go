package cli

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/shellgate/shellgate/internal/approval"
	"github.com/shellgate/shellgate/internal/config"
	"github.com/shellgate/shellgate/internal/gate"
	"github.com/shellgate/shellgate/internal/logger"
	"github.com/shellgate/shellgate/internal/risk"
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- <command> [args...]",
	Short: "Classify a command, gate it, then run it",
	Long: `Run a command through shellgate. GREEN commands execute immediately,
YELLOW commands prompt for approval, RED commands are refused.

Example:
  shellgate run -- git status
  shellgate run --rules ./custom.yaml -- npm install lodash`,
	RunE: runCommand,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided. Usage: shellgate run -- <command> [args...]")
	}
	code, err := gatedRun(args)
	if err != nil {
		return err
	}
	if code != 0 {
		// Deferred cleanup (the audit logger above all) has already run by
		// the time the process exits.
		os.Exit(code)
	}
	return nil
}

func gatedRun(args []string) (int, error) {
	cfg, err := config.Load(rulesetPath, logPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load config: %w", err)
	}

	auditLogger, err := logger.New(cfg.LogPath)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize audit logger: %w", err)
	}
	defer auditLogger.Close()

	rules, err := risk.LoadRuleset(cfg.RulesetPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load ruleset: %w", err)
	}
	classifier, err := risk.New(rules)
	if err != nil {
		return 0, err
	}

	cmdStr := strings.Join(args, " ")
	verdict, err := classifier.Classify(cmdStr)
	if err != nil {
		return 0, err
	}

	event := logger.AuditEvent{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   cmdStr,
		ToolName:  "terminal",
		Status:    verdict.Status.String(),
		Reasons:   verdict.Reasons,
	}

	switch {
	case risk.IsBlocked(verdict):
		// RED never reaches the approval prompt; it is a hard refusal.
		fmt.Fprintln(os.Stderr, "\n❌ refused by shellgate")
		for _, reason := range verdict.Reasons {
			fmt.Fprintf(os.Stderr, "  - %s\n", reason)
		}
		event.UserAction = "refused"
		logEvent(auditLogger, event)
		return 1, nil

	case risk.RequiresApproval(verdict):
		g := gate.New()
		req, err := g.Request("terminal", cmdStr, "")
		if err != nil {
			return 0, err
		}
		event.CallID = req.ID

		result := approval.Ask(approval.Prompt{Command: cmdStr, Verdict: verdict})
		event.UserAction = result.UserAction

		decision := gate.Rejected
		if result.Approved {
			decision = gate.Approved
		}
		if _, err := g.Decide(req.ID, decision, result.UserAction); err != nil {
			return 0, err
		}

		if !result.Approved {
			fmt.Fprintln(os.Stderr, "\n❌ command denied")
			logEvent(auditLogger, event)
			return 1, nil
		}
		fmt.Fprintln(os.Stderr, "\n✅ approved — executing")
	}

	// The process starts only here: after a GREEN verdict or an explicit
	// approval. A rejected gate leaves no execution side effects.
	execCmd := exec.Command(args[0], args[1:]...)
	execCmd.Stdin = os.Stdin
	execCmd.Stdout = os.Stdout
	execCmd.Stderr = os.Stderr

	execErr := execCmd.Run()
	if execErr != nil {
		event.Error = execErr.Error()
	}
	logEvent(auditLogger, event)

	if execErr != nil {
		if exitErr, ok := execErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 0, execErr
	}
	return 0, nil
}

func logEvent(l *logger.AuditLogger, event logger.AuditEvent) {
	if err := l.Log(event); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to write audit log: %v\n", err)
	}
}
