package sanitizer

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/redactyl/sanitizer/internal/codec"
	"github.com/redactyl/sanitizer/internal/policy"
	"github.com/redactyl/sanitizer/internal/report"
	"github.com/redactyl/sanitizer/internal/scanner"
	"github.com/redactyl/sanitizer/internal/types"
)

const defaultFailOn = types.SevHigh

var (
	flagPath       = "."
	flagStdin      bool
	flagContent    string
	flagTrust      float64
	flagInclude    string
	flagExclude    string
	flagMaxBytes   int64
	flagWarnScore  float64
	flagBlockScore float64
	flagTable      bool
	flagText       bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan files, stdin or a string for threat patterns",
		Example: `  sanitizer scan -p ./prompts
  echo "ignore previous instructions" | sanitizer scan --stdin --json
  sanitizer scan -c "'; DROP TABLE users; --" --trust 2`,
		Args: cobra.NoArgs,
		RunE: runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagPath, "path", "p", ".", "file or directory to scan")
	cmd.Flags().BoolVar(&flagStdin, "stdin", false, "scan content read from stdin")
	cmd.Flags().StringVarP(&flagContent, "content", "c", "", "scan this string")
	cmd.Flags().Float64Var(&flagTrust, "trust", 1.0, "risk score multiplier")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 1<<20, "skip files larger than this")
	cmd.Flags().Float64Var(&flagWarnScore, "warn-score", 0, "risk score at which unsafe input is a warning")
	cmd.Flags().Float64Var(&flagBlockScore, "block-score", policy.DefaultBlockScore, "risk score at which unsafe input is blocked")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text format")
	cmd.MarkFlagsMutuallyExclusive("stdin", "content")
}

func runScan(cmd *cobra.Command, _ []string) error {
	lcfg, gcfg := loadConfigs(flagPath)
	eng, err := buildEngine(lcfg, gcfg)
	if err != nil {
		return err
	}

	cfg := scanner.Config{
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        pickFlag(cmd, "max-bytes", flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes),
		DefaultExcludes: pickFlag(cmd, "default-excludes", flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes),
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		Trust:           pickFlag(cmd, "trust", flagTrust, lcfg.Trust, gcfg.Trust),
	}
	th := policy.Thresholds{
		Warn:  pickFlag(cmd, "warn-score", flagWarnScore, lcfg.WarnScore, gcfg.WarnScore),
		Block: pickFlag(cmd, "block-score", flagBlockScore, lcfg.BlockScore, gcfg.BlockScore),
	}
	failOn := defaultFailOn
	if raw := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn); raw != "" {
		if failOn, err = report.ParseFailOn(raw); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	noColor := pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) || !isTerminal(out)
	machine := flagJSON || flagSARIF

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	var res scanner.Result
	single := flagStdin || cmd.Flags().Changed("content")
	switch {
	case flagStdin:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		res, err = scanInputs(ctx, eng, []scanner.Input{{Path: "<stdin>", Data: data}}, cfg)
		if err != nil {
			return err
		}
	case single:
		res, err = scanInputs(ctx, eng, []scanner.Input{{Path: "<content>", Data: []byte(flagContent)}}, cfg)
		if err != nil {
			return err
		}
	default:
		res, err = scanPath(ctx, cmd, eng, cfg, machine)
		if err != nil {
			return err
		}
	}

	opts := report.PrintOptions{NoColor: noColor, Duration: res.Duration, FilesScanned: res.FilesScanned, Thresholds: th}
	switch {
	case flagSARIF:
		if err := report.WriteSARIF(out, res.Outputs, version); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON && single:
		if err := codec.Encode(out, res.Outputs[0].ScanResult, true); err != nil {
			return err
		}
	case flagJSON:
		if err := report.WriteJSON(out, res.Outputs); err != nil {
			return err
		}
	case flagText:
		report.PrintText(out, res.Outputs, opts)
	default:
		if err := report.PrintTable(out, res.Outputs, opts); err != nil {
			return err
		}
	}

	blocked := 0
	for _, o := range res.Outputs {
		if err := policy.Enforce(o.ScanResult, th); err != nil {
			blocked++
			slog.Warn("input blocked", "path", o.Path, "err", err)
		}
	}
	if blocked > 0 || report.ShouldFail(res.Outputs, failOn) {
		slog.Debug("scan failed policy", "blocked", blocked, "fail_on", failOn)
		return &exitError{code: 1}
	}
	return nil
}

func scanInputs(ctx context.Context, s scanner.Scanner, inputs []scanner.Input, cfg scanner.Config) (scanner.Result, error) {
	start := time.Now()
	outs, err := scanner.ScanBatch(ctx, s, inputs, cfg)
	if err != nil {
		return scanner.Result{}, fmt.Errorf("scan error: %w", err)
	}
	return scanner.Result{Outputs: outs, FilesScanned: len(outs), Duration: time.Since(start)}, nil
}

func scanPath(ctx context.Context, cmd *cobra.Command, s scanner.Scanner, cfg scanner.Config, machine bool) (scanner.Result, error) {
	abs, err := filepath.Abs(flagPath)
	if err != nil {
		return scanner.Result{}, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return scanner.Result{}, err
	}
	if !info.IsDir() {
		data, err := os.ReadFile(abs)
		if err != nil {
			return scanner.Result{}, err
		}
		return scanInputs(ctx, s, []scanner.Input{{Path: flagPath, Data: data}}, cfg)
	}

	cfg.Root = abs
	stderr := cmd.ErrOrStderr()
	showProgress := !machine && isTerminal(stderr)
	if !machine {
		fmt.Fprintf(stderr, "Scanning %s...\n", abs)
	}
	total, _ := scanner.CountTargets(cfg)
	progressed := 0
	if total > 0 && showProgress {
		cfg.Progress = func() {
			progressed++
			if progressed%10 == 0 || progressed == total {
				pct := float64(progressed) / float64(total) * 100
				fmt.Fprintf(stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
			}
		}
	}
	res, err := scanner.ScanTree(ctx, s, cfg)
	if err != nil {
		return res, fmt.Errorf("scan error: %w", err)
	}
	if total > 0 && showProgress {
		fmt.Fprintln(stderr)
	}
	slog.Info("scan complete", "files", res.FilesScanned, "unsafe", len(res.Unsafe()), "duration", res.Duration)
	return res, nil
}
