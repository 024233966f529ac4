package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/sanitizer/internal/catalog"
)

// PrintCatalog lists catalog entries in catalog order.
func PrintCatalog(w io.Writer, c catalog.Catalog, noColor bool) error {
	if len(c) == 0 {
		fmt.Fprintln(w, "Catalog is empty")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("#", "SEVERITY", "CATEGORY", "PATTERN")
	for i, t := range c {
		if err := table.Append([]string{fmt.Sprint(i), colorSeverity(t.Severity, noColor), t.Category, t.Pattern}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d patterns, %d categories\n", len(c), len(c.Categories()))
	return nil
}

// PrintLint writes one line per lint issue.
func PrintLint(w io.Writer, issues []catalog.Issue) {
	if len(issues) == 0 {
		fmt.Fprintln(w, "Catalog is clean ✅")
		return
	}
	for _, is := range issues {
		fmt.Fprintf(w, "entry %d: %s: %s\n", is.Index, is.Kind, is.Message)
	}
	fmt.Fprintf(w, "\n%d issue(s)\n", len(issues))
}
