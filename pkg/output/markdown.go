package output

import (
	"fmt"
	"strings"

	"github.com/sambabib/depstale/pkg/analyzer"
)

// NoDependencies is the whole report body when nothing was checked.
const NoDependencies = "No dependencies to check."

// MarkdownHeading starts every non-empty report.
const MarkdownHeading = "## Outdated Packages\n"

// GenerateMarkdownReport renders one bullet per stale dependency
func GenerateMarkdownReport(report *analyzer.Report) string {
	if report.Checked == 0 {
		return NoDependencies
	}

	var b strings.Builder
	b.WriteString(MarkdownHeading)
	for _, s := range report.Stale {
		fmt.Fprintf(&b, "- **%s** ([npm](%s)) has not been updated in the last %d months. Last update: %s\n",
			s.Name, s.URL, report.ThresholdMonths, s.LastUpdate())
	}
	return b.String()
}
