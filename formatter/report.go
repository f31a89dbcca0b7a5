// Package formatter renders verification reports and normalization results
// for terminal consumption.
package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/rewritelab/tnorm/internal/rewriter"
	"github.com/rewritelab/tnorm/internal/verify"
)

var (
	passStyle   = color.New(color.FgGreen, color.Bold)
	failStyle   = color.New(color.FgRed, color.Bold)
	warnStyle   = color.New(color.FgHiYellow, color.Bold)
	domainStyle = color.New(color.FgCyan, color.Bold)
	ruleStyle   = color.New(color.FgYellow, color.Bold)
	termStyle   = color.New(color.FgHiBlue)
)

// FormatReport renders one domain's verification report: the verdict,
// every failing termination check, and every non-joinable or indeterminate
// critical pair, so a rule author can fix the set without re-running the
// analyzer interactively.
func FormatReport(r *verify.Report) string {
	var builder strings.Builder

	builder.WriteString(domainStyle.Sprintf("%s", r.Domain))
	builder.WriteString(fmt.Sprintf(" (%s, %d rules, %d critical pairs) ", r.Order, len(r.Rules), len(r.Pairs)))
	builder.WriteString(verdictStyle(r.Verdict).Sprintf("%s", r.Verdict))
	builder.WriteString("\n")

	for _, check := range r.Rules {
		if check.Decreases {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(failStyle.Sprint("non-decreasing: "))
		builder.WriteString(ruleStyle.Sprint(check.RuleID))
		builder.WriteString(fmt.Sprintf(" (measure %d -> %d)", check.LeftMeasure, check.RightMeasure))
		if check.Justification != "" {
			builder.WriteString(" claimed: " + check.Justification)
		}
		builder.WriteString("\n")
	}

	for i := range r.Pairs {
		pair := &r.Pairs[i]
		switch {
		case pair.Indeterminate:
			builder.WriteString("  ")
			builder.WriteString(warnStyle.Sprint("indeterminate: "))
			builder.WriteString(formatPair(pair))
		case !pair.Joinable:
			builder.WriteString("  ")
			builder.WriteString(failStyle.Sprint("non-joinable: "))
			builder.WriteString(formatPair(pair))
		}
	}

	return builder.String()
}

// FormatReports renders a set of per-domain reports sorted by domain name.
func FormatReports(reports map[string]*verify.Report) string {
	domains := make([]string, 0, len(reports))
	for name := range reports {
		domains = append(domains, name)
	}
	sort.Strings(domains)

	var builder strings.Builder
	for _, name := range domains {
		builder.WriteString(FormatReport(reports[name]))
	}
	return builder.String()
}

func formatPair(pair *verify.Pair) string {
	var builder strings.Builder
	builder.WriteString(ruleStyle.Sprintf("%s", pair.RuleA))
	builder.WriteString(" / ")
	builder.WriteString(ruleStyle.Sprintf("%s", pair.RuleB))
	builder.WriteString(fmt.Sprintf(" at %v\n", []int(pair.Position)))
	builder.WriteString("    peak:  " + termStyle.Sprint(pair.Peak.String()) + "\n")
	left := pair.Left.String()
	right := pair.Right.String()
	if pair.LeftNorm != nil && pair.RightNorm != nil {
		left += " -> " + pair.LeftNorm.String()
		right += " -> " + pair.RightNorm.String()
	}
	builder.WriteString("    left:  " + termStyle.Sprint(left) + "\n")
	builder.WriteString("    right: " + termStyle.Sprint(right) + "\n")
	return builder.String()
}

func verdictStyle(v verify.Verdict) *color.Color {
	switch v {
	case verify.VerdictConfluentTerminating:
		return passStyle
	case verify.VerdictIndeterminate:
		return warnStyle
	default:
		return failStyle
	}
}

// FormatResult renders a normalization result; with trace enabled it also
// lists the applied rules in order.
func FormatResult(result *rewriter.Result, trace bool) string {
	var builder strings.Builder
	builder.WriteString(termStyle.Sprint(result.Input.String()))
	builder.WriteString(" => ")
	builder.WriteString(termStyle.Sprint(result.Output.String()))
	builder.WriteString(" (")
	if result.Status == rewriter.Completed {
		builder.WriteString(passStyle.Sprintf("%s", result.Status))
	} else {
		builder.WriteString(failStyle.Sprintf("%s", result.Status))
	}
	builder.WriteString(fmt.Sprintf(", %d steps)\n", len(result.Applied)))

	if trace {
		for i, id := range result.Applied {
			builder.WriteString(fmt.Sprintf("  %2d. ", i+1))
			builder.WriteString(ruleStyle.Sprint(id))
			builder.WriteString("\n")
		}
	}
	return builder.String()
}
