package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/loaders/gazetteer"
)

var flagRulesDoc string

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Run rule-based pre-annotation",
}

var rulesApplyCmd = &cobra.Command{
	Use:   "apply [gazetteer.csv]",
	Short: "Apply a gazetteer CSV of label,term rules",
	Long: `apply reads a CSV with label and term columns and annotates every
whole-word occurrence of each term. Terms containing regex
metacharacters are treated as patterns. Targets every document unless
--doc narrows to one.`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesApply,
}

var rulesPHICmd = &cobra.Command{
	Use:   "phi",
	Short: "Flag dates, phone numbers, emails and MRNs as PHI",
	Args:  cobra.NoArgs,
	RunE:  runRulesPHI,
}

func init() {
	rulesCmd.PersistentFlags().StringVar(&flagRulesDoc, "doc", "", "apply to one document instead of all")
	rulesCmd.AddCommand(rulesApplyCmd)
	rulesCmd.AddCommand(rulesPHICmd)
	rootCmd.AddCommand(rulesCmd)
}

func runRulesApply(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading gazetteer: %w", err)
	}
	rules, err := gazetteer.Parse(data)
	if err != nil {
		return fmt.Errorf("parsing gazetteer: %w", err)
	}

	ctx := context.Background()
	opts := driving.RuleOptions{CaseInsensitive: config.CaseInsensitive}

	var report driving.RuleReport
	if flagRulesDoc != "" {
		report, err = ruleService.Apply(ctx, flagRulesDoc, rules, opts)
	} else {
		report, err = ruleService.ApplyAll(ctx, rules, opts)
	}
	if err != nil {
		return fmt.Errorf("applying rules: %w", err)
	}
	printReport(cmd, report)
	return nil
}

func runRulesPHI(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var (
		report driving.RuleReport
		err    error
	)
	if flagRulesDoc != "" {
		report, err = ruleService.ApplyPHI(ctx, flagRulesDoc)
	} else {
		report, err = ruleService.ApplyPHIAll(ctx)
	}
	if err != nil {
		return fmt.Errorf("applying PHI rules: %w", err)
	}
	printReport(cmd, report)
	return nil
}

func printReport(cmd *cobra.Command, r driving.RuleReport) {
	cmd.Printf("Added %d annotation(s).\n", r.Added)
	if r.Skipped > 0 {
		cmd.Printf("Skipped %d rule(s) with unparsable patterns.\n", r.Skipped)
	}
}
