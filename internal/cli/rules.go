package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shellgate/shellgate/internal/config"
	"github.com/shellgate/shellgate/internal/risk"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the effective ruleset as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(rulesetPath, logPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		rules, err := risk.LoadRuleset(cfg.RulesetPath)
		if err != nil {
			return fmt.Errorf("failed to load ruleset: %w", err)
		}
		out, err := yaml.Marshal(rules)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
