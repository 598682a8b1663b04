package cli

import (
	"github.com/spf13/cobra"
)

var (
	rulesetPath string
	logPath     string
)

var rootCmd = &cobra.Command{
	Use:   "shellgate",
	Short: "shellgate - risk classification and approval gating for shell commands",
	Long: `shellgate decides whether a shell command may run unattended, must be
shown to the user for explicit confirmation, or must be refused outright.
Commands are parsed structurally (pipelines, lists, substitutions,
subshells) and every simple command is classified; the worst sub-verdict
wins.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rulesetPath, "rules", "", "Path to ruleset YAML file (default: ~/.shellgate/ruleset.yaml)")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.shellgate/audit.jsonl)")
}

func Execute() error {
	return rootCmd.Execute()
}
