package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "List the registered rule set domains",
	Run: func(cmd *cobra.Command, _ []string) {
		engine, err := newEngine()
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		for _, name := range engine.Domains() {
			rs, err := engine.Resolve(name)
			if err != nil {
				continue
			}
			fmt.Printf("%s (%s, %d rules)\n", name, rs.Order, len(rs.Rules))
		}

		for name, loadErr := range engine.LoadFailures() {
			fmt.Printf("%s (unavailable: %v)\n", name, loadErr)
		}
	},
}
