package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sambabib/depstale/pkg/analyzer"
)

// PrintTextReport prints the stale dependencies in a tabular text format
func PrintTextReport(w io.Writer, report *analyzer.Report) error {
	if report.Checked == 0 {
		_, err := fmt.Fprintln(w, NoDependencies)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0) // minwidth, tabwidth, padding, padchar, flags

	fmt.Fprintln(tw, "NAME\tLATEST\tLAST UPDATE\tAGE (MONTHS)")
	fmt.Fprintln(tw, "----\t------\t-----------\t------------")
	for _, s := range report.Stale {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\n", s.Name, s.Version, s.LastUpdate(), s.AgeMonths)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d of %d dependencies not updated in the last %d months, %d could not be checked\n",
		len(report.Stale), report.Checked, report.ThresholdMonths, len(report.Skipped))
	return err
}
