package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shellgate/shellgate/internal/config"
	"github.com/shellgate/shellgate/internal/risk"
)

var checkCmd = &cobra.Command{
	Use:   "check -- <command> [args...]",
	Short: "Classify a command without running it",
	Long: `Classify a command and print the verdict.

Exit codes: 0 for GREEN, 2 for YELLOW, 1 for RED.

Example:
  shellgate check -- git status
  shellgate check -- "echo hi; rm -rf /"`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no command provided. Usage: shellgate check -- <command> [args...]")
	}

	cfg, err := config.Load(rulesetPath, logPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	rules, err := risk.LoadRuleset(cfg.RulesetPath)
	if err != nil {
		return fmt.Errorf("failed to load ruleset: %w", err)
	}
	classifier, err := risk.New(rules)
	if err != nil {
		return err
	}

	verdict, err := classifier.Classify(strings.Join(args, " "))
	if err != nil {
		return err
	}

	fmt.Printf("Verdict: %s\n", verdict.Status)
	for _, reason := range verdict.Reasons {
		fmt.Printf("  - %s\n", reason)
	}

	switch verdict.Status {
	case risk.Red:
		os.Exit(1)
	case risk.Yellow:
		os.Exit(2)
	}
	return nil
}
