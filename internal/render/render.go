// Package render produces Markdown and plain-text output from a report.
package render

import (
	"fmt"
	"strings"

	"github.com/dshills/atscritic/internal/report"
)

// Markdown renders a report as a Markdown document. Findings keep the order
// the rules produced them in.
func Markdown(r *report.Report) string {
	var b strings.Builder

	b.WriteString("# ATS Résumé Report\n\n")
	if r.Input.File != "" {
		fmt.Fprintf(&b, "**File:** %s\n", r.Input.File)
	}
	fmt.Fprintf(&b, "**Verdict:** %s\n", r.Summary.Verdict)
	fmt.Fprintf(&b, "**Score:** %d / 100\n", r.Summary.Score)
	fmt.Fprintf(&b, "**Findings:** %d critical, %d warnings, %d info\n\n",
		r.Summary.CriticalCount, r.Summary.WarnCount, r.Summary.InfoCount)

	if len(r.Findings) == 0 {
		b.WriteString("No issues found.\n\n")
	} else {
		b.WriteString("## Feedback\n\n")
		for i, f := range r.Findings {
			fmt.Fprintf(&b, "%d. **[%s]** %s _(-%d)_\n", i+1, f.Severity, f.Message, f.Penalty)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Stats\n\n")
	b.WriteString("| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Words | %d |\n", r.Stats.WordCount)
	fmt.Fprintf(&b, "| Measurable results | %d |\n", r.Stats.MeasurableCount)
	fmt.Fprintf(&b, "| Action verbs | %d |\n", r.Stats.VerbCount)
	fmt.Fprintf(&b, "| Weak phrases | %d |\n\n", len(r.Stats.WeakHits))

	if k := r.Keywords; k != nil {
		b.WriteString("## Keywords\n\n")
		if k.Matched == "" {
			fmt.Fprintf(&b, "No keyword set matches role %q.\n\n", k.Role)
		} else {
			fmt.Fprintf(&b, "**Role:** %s (matched %q)\n\n", k.Role, k.Matched)
			if len(k.Missing) > 0 {
				fmt.Fprintf(&b, "**Missing from skills:** %s\n\n", strings.Join(k.Missing, ", "))
			} else {
				b.WriteString("All suggested keywords are already listed.\n\n")
			}
		}
	}

	if len(r.Patches) > 0 {
		b.WriteString("## Suggested Rewrites\n\n")
		for _, p := range r.Patches {
			fmt.Fprintf(&b, "### %s line %d\n\n", p.Field, p.Line)
			b.WriteString("```diff\n")
			b.WriteString(strings.TrimRight(p.DiffUnified, "\n"))
			b.WriteString("\n```\n\n")
		}
	}

	return b.String()
}

// Text renders a report for a terminal: the score line followed by the
// feedback lines in order.
func Text(r *report.Report) string {
	var b strings.Builder
	if r.Input.File != "" {
		fmt.Fprintf(&b, "%s: ", r.Input.File)
	}
	fmt.Fprintf(&b, "ATS score %d/100 (%s)\n", r.Summary.Score, r.Summary.Verdict)
	for _, line := range r.Feedback {
		fmt.Fprintf(&b, "  - %s\n", line)
	}
	if k := r.Keywords; k != nil && len(k.Missing) > 0 {
		fmt.Fprintf(&b, "  keywords to add: %s\n", strings.Join(k.Missing, ", "))
	}
	return b.String()
}
