package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rewritelab/tnorm"
)

var (
	ruleFiles []string
	budget    int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:              "tnorm",
	Short:            "tnorm - normalize structured metadata expressions and audit rewrite rule sets",
	TraverseChildren: true, // Prioritize subcommands
	Run: func(cmd *cobra.Command, _ []string) {
		// display help when only 'tnorm' is entered
		_ = cmd.Help()
	},
}

func Execute() error {
	var err error
	logger, err = zap.NewProduction()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&ruleFiles, "rules", nil, "Additional rule set files (YAML), repeatable")
	rootCmd.PersistentFlags().IntVar(&budget, "budget", 0, "Rewrite step budget (0 selects the default)")

	rootCmd.AddCommand(normalizeCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(domainsCmd)
}

// newEngine builds one engine from the persistent flags. Domains whose rule
// files fail to load stay unavailable without aborting the command; each
// failure is logged once so a broken file is visible up front.
func newEngine(opts ...tnorm.Option) (*tnorm.Engine, error) {
	opts = append(opts,
		tnorm.WithBudget(budget),
		tnorm.WithRuleFiles(ruleFiles...),
	)
	engine, err := tnorm.New(opts...)
	if err != nil {
		return nil, err
	}
	for domain, loadErr := range engine.LoadFailures() {
		logger.Warn("domain unavailable",
			zap.String("domain", domain),
			zap.Error(loadErr))
	}
	return engine, nil
}
