package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/redactyl/sanitizer/internal/policy"
	"github.com/redactyl/sanitizer/internal/scanner"
	"github.com/redactyl/sanitizer/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
	Thresholds   policy.Thresholds
}

var severityStyles = map[types.Severity]lipgloss.Style{
	types.SevCritical: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	types.SevHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	types.SevMed:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	types.SevLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
}

var actionStyles = map[policy.Action]lipgloss.Style{
	policy.Allow: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	policy.Warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	policy.Block: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

func colorSeverity(s types.Severity, noColor bool) string {
	st, ok := severityStyles[s]
	if noColor || !ok {
		return string(s)
	}
	return st.Render(string(s))
}

func colorAction(a policy.Action, noColor bool) string {
	if noColor {
		return a.String()
	}
	return actionStyles[a].Render(a.String())
}

// sortedUnsafe returns the outputs with threats, highest score first and
// then by path.
func sortedUnsafe(outs []scanner.Output) []scanner.Output {
	var res []scanner.Output
	for _, o := range outs {
		if !o.Safe {
			res = append(res, o)
		}
	}
	sort.SliceStable(res, func(i, j int) bool {
		if res[i].RiskScore != res[j].RiskScore {
			return res[i].RiskScore > res[j].RiskScore
		}
		return res[i].Path < res[j].Path
	})
	return res
}

// PrintTable renders one row per threat hit.
func PrintTable(w io.Writer, outs []scanner.Output, opts PrintOptions) error {
	unsafe := sortedUnsafe(outs)
	if len(unsafe) == 0 {
		fmt.Fprintln(w, "No threats found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("PATH", "SEVERITY", "CATEGORY", "PATTERN", "SCORE", "ACTION")
		for _, o := range unsafe {
			act := colorAction(policy.Decide(o.ScanResult, opts.Thresholds), opts.NoColor)
			score := fmt.Sprintf("%.1f", o.RiskScore)
			for _, t := range o.Threats {
				row := []string{o.Path, colorSeverity(t.Severity, opts.NoColor), t.Category, t.Pattern, score, act}
				if err := table.Append(row); err != nil {
					return err
				}
			}
		}
		if err := table.Render(); err != nil {
			return err
		}
	}
	printFooter(w, outs, opts)
	return nil
}

// PrintText renders a compact line per input with threats.
func PrintText(w io.Writer, outs []scanner.Output, opts PrintOptions) {
	unsafe := sortedUnsafe(outs)
	if len(unsafe) == 0 {
		fmt.Fprintln(w, "No threats found ✅")
	} else {
		fmt.Fprintf(w, "Unsafe inputs: %d\n", len(unsafe))
		for _, o := range unsafe {
			act := colorAction(policy.Decide(o.ScanResult, opts.Thresholds), opts.NoColor)
			fmt.Fprintf(w, "%-5s %6.1f  %s\n", act, o.RiskScore, o.Path)
			for _, t := range o.Threats {
				fmt.Fprintf(w, "    %-8s %-18s %q\n", colorSeverity(t.Severity, opts.NoColor), t.Category, t.Pattern)
			}
		}
	}
	printFooter(w, outs, opts)
}

func printFooter(w io.Writer, outs []scanner.Output, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	counts := map[types.Severity]int{}
	total := 0
	for _, o := range outs {
		for _, t := range o.Threats {
			counts[t.Severity]++
			total++
		}
	}
	parts := make([]string, 0, 4)
	for _, s := range []types.Severity{types.SevCritical, types.SevHigh, types.SevMed, types.SevLow} {
		parts = append(parts, fmt.Sprintf("%s: %d", s, counts[s]))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Threats: %d (%s)\n", total, strings.Join(parts, ", "))
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

// FailOff disables the severity gate.
const FailOff = "off"

// ParseFailOn validates a fail-on level. It accepts a known severity or
// "off", which returns the empty severity.
func ParseFailOn(s string) (types.Severity, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == FailOff {
		return "", nil
	}
	if sev := types.Severity(v); sev.Known() {
		return sev, nil
	}
	return "", fmt.Errorf("invalid fail-on level %q (want critical|high|medium|low|off)", s)
}

// ShouldFail reports whether any threat is at or above failOn. The empty
// severity, as returned by ParseFailOn for "off", never fails.
func ShouldFail(outs []scanner.Output, failOn types.Severity) bool {
	floor := failOn.Rank()
	if floor == 0 {
		return false
	}
	for _, o := range outs {
		for _, t := range o.Threats {
			if t.Severity.Rank() >= floor {
				return true
			}
		}
	}
	return false
}
