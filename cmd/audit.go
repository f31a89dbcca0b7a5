package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rewritelab/tnorm/formatter"
	"github.com/rewritelab/tnorm/internal/verify"
)

var (
	auditJsonOutput bool
	auditOutPath    string
	watchRules      bool
)

var auditCmd = &cobra.Command{
	Use:   "audit [domains...]",
	Short: "Verify rule sets for confluence and termination",
	Long: `Audit computes every critical pair of each domain's rule set, checks the
pairs for joinability, and checks every rule strictly decreases the domain's
termination measure. Without arguments all registered domains are audited.`,
	Run: func(cmd *cobra.Command, args []string) {
		if watchRules && len(ruleFiles) == 0 {
			fmt.Println("error: --watch requires at least one --rules file")
			os.Exit(1)
		}

		ok := runAudit(args)

		if watchRules {
			if err := watchRuleFiles(args); err != nil {
				logger.Fatal("Watch failed", zap.Error(err))
			}
			return
		}
		if !ok {
			os.Exit(1)
		}
	},
}

func init() {
	auditCmd.Flags().BoolVar(&auditJsonOutput, "json", false, "Output reports in JSON format")
	auditCmd.Flags().StringVarP(&auditOutPath, "output", "o", "", "Output path (when using JSON)")
	auditCmd.Flags().BoolVar(&watchRules, "watch", false, "Re-run the audit when a rule file changes")
}

// runAudit verifies the requested domains and prints the reports. It returns
// true only when every audited domain is confluent and terminating.
func runAudit(domains []string) bool {
	engine, err := newEngine()
	if err != nil {
		logger.Error("Failed to initialize engine", zap.Error(err))
		return false
	}
	if len(domains) == 0 {
		domains = engine.Domains()
	}

	bar := progressbar.NewOptions(len(domains),
		progressbar.OptionSetDescription("auditing"),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	reports := make(map[string]*verify.Report, len(domains))
	for _, name := range domains {
		report, err := engine.Verify(name)
		if err != nil {
			logger.Error("Audit failed", zap.String("domain", name), zap.Error(err))
			return false
		}
		reports[name] = report
		_ = bar.Add(1)
	}
	fmt.Println()

	printReports(reports)

	for _, report := range reports {
		if report.Verdict != verify.VerdictConfluentTerminating {
			return false
		}
	}
	return true
}

func printReports(reports map[string]*verify.Report) {
	if !auditJsonOutput {
		fmt.Print(formatter.FormatReports(reports))
		return
	}

	d, err := json.Marshal(reports)
	if err != nil {
		logger.Error("Error marshalling reports to JSON", zap.Error(err))
		return
	}
	if auditOutPath == "" {
		fmt.Println(string(d))
		return
	}
	if err := os.WriteFile(auditOutPath, d, 0o644); err != nil {
		logger.Error("Error writing JSON output file", zap.Error(err))
	}
}

// watchRuleFiles blocks, re-running the audit whenever one of the rule
// files is written. Editors often fire several events per save, so changes
// settle for a moment before the re-run.
func watchRuleFiles(domains []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, path := range ruleFiles {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("error adding rule file to watcher: %w", err)
		}
	}
	logger.Info("Watching rule files", zap.Strings("files", ruleFiles))

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write {
				// wait for a while after file change to consider multiple changes as one
				time.Sleep(100 * time.Millisecond)
				runAudit(domains)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", zap.Error(err))
		}
	}
}
