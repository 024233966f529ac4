package sanitizer

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/engine"
	"github.com/redactyl/sanitizer/internal/report"
)

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "patterns",
		Short: "List the threat patterns in the active catalog",
		Args:  cobra.NoArgs,
		RunE:  runPatterns,
	})
	rootCmd.AddCommand(&cobra.Command{
		Use:   "lint",
		Short: "Check the active catalog for duplicate, shadowed or unweighted patterns",
		Long: "lint compiles the catalog with the selected strategy and reports entries that can never be\n" +
			"reported under leftmost-first matching, duplicates, empty patterns and unknown severities.\n" +
			"It exits 1 when any issue is found.",
		Args: cobra.NoArgs,
		RunE: runLint,
	})
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(".")
	c, _, err := loadCatalog(lcfg, gcfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if flagJSON {
		if c == nil {
			c = catalog.Catalog{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}
	return report.PrintCatalog(out, c, flagNoColor || !isTerminal(out))
}

func runLint(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(".")
	c, src, err := loadCatalog(lcfg, gcfg)
	if err != nil {
		return err
	}
	strategy, err := engine.ParseStrategy(pickString(flagStrategy, lcfg.Strategy, gcfg.Strategy))
	if err != nil {
		return err
	}
	if _, err := engine.New(c, engine.Options{Strategy: strategy, SizeLimit: pickInt(flagSizeLimit, lcfg.SizeLimit, gcfg.SizeLimit)}); err != nil {
		return err
	}

	var issues []catalog.Issue
	// shadowing only applies to literal matching
	for _, is := range catalog.Lint(c) {
		if strategy == engine.StrategyRegex && is.Kind == catalog.IssueShadowed {
			continue
		}
		issues = append(issues, is)
	}

	out := cmd.OutOrStdout()
	if flagJSON {
		if issues == nil {
			issues = []catalog.Issue{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(issues); err != nil {
			return err
		}
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "Linted %s catalog (%s, %s)\n", src, plural(len(c), "pattern", "patterns"), strategy)
		report.PrintLint(out, issues)
	}
	if len(issues) > 0 {
		return &exitError{code: 1}
	}
	return nil
}
