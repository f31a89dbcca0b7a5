package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rewritelab/tnorm"
	"github.com/rewritelab/tnorm/formatter"
	"github.com/rewritelab/tnorm/internal/rewriter"
)

var (
	rawInput       bool
	showTrace      bool
	normJsonOutput bool
	levelName      string
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <domain> <expression>",
	Short: "Reduce an expression to its canonical form under a domain's rules",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		domainName, expr := args[0], args[1]

		level, err := tnorm.ParseLevel(levelName)
		if err != nil {
			logger.Fatal("Invalid level", zap.Error(err))
		}

		maxLevel := tnorm.LevelObject
		if level == tnorm.LevelMeta {
			maxLevel = tnorm.LevelMeta
		}
		engine, err := newEngine(tnorm.WithMaxLevel(maxLevel))
		if err != nil {
			logger.Fatal("Failed to initialize engine", zap.Error(err))
		}

		var (
			result   *rewriter.Result
			rendered string
		)
		if rawInput {
			rendered, result, err = engine.NormalizeRaw(domainName, expr, level)
		} else {
			result, err = engine.Normalize(domainName, expr, level)
		}
		if err != nil {
			logger.Error("Normalization failed",
				zap.String("domain", domainName),
				zap.Error(err))
			os.Exit(1)
		}

		printResult(result, rendered)

		if result.Status == rewriter.BudgetExceeded {
			os.Exit(1)
		}
	},
}

func init() {
	normalizeCmd.Flags().BoolVar(&rawInput, "raw", false, "Treat the expression as a raw domain string (codec round trip)")
	normalizeCmd.Flags().BoolVar(&showTrace, "trace", false, "Print the applied rules in order")
	normalizeCmd.Flags().BoolVar(&normJsonOutput, "json", false, "Output the result in JSON format")
	normalizeCmd.Flags().StringVar(&levelName, "level", "object", "Self-application level (object or meta)")
}

func printResult(result *rewriter.Result, rendered string) {
	if !normJsonOutput {
		fmt.Print(formatter.FormatResult(result, showTrace))
		if rendered != "" {
			fmt.Println(rendered)
		}
		return
	}

	out := struct {
		Input    string   `json:"input"`
		Output   string   `json:"output"`
		Rendered string   `json:"rendered,omitempty"`
		Applied  []string `json:"applied"`
		Status   string   `json:"status"`
	}{
		Input:    result.Input.String(),
		Output:   result.Output.String(),
		Rendered: rendered,
		Applied:  result.Applied,
		Status:   result.Status.String(),
	}
	if out.Applied == nil {
		out.Applied = []string{}
	}
	d, err := json.Marshal(out)
	if err != nil {
		logger.Error("Error marshalling result to JSON", zap.Error(err))
		return
	}
	fmt.Println(string(d))
}
