package sanitizer

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/redactyl/sanitizer/internal/logging"
)

var (
	flagJSON            bool
	flagSARIF           bool
	flagThreads         int
	flagFailOn          string
	flagNoColor         bool
	flagDefaultExcludes bool
	flagCatalog         string
	flagStrategy        string
	flagSizeLimit       int
	flagLogLevel        string
	flagLogFile         string

	version = "0.1.0"

	closeLog io.Closer = io.NopCloser(nil)
)

// exitError carries a non-zero exit status without an error message.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// rootCmd is the base Cobra command for the sanitizer CLI.
var rootCmd = &cobra.Command{
	Use:           "sanitizer",
	Short:         "Scan text for prompt-injection and injection threat patterns",
	Long:          "sanitizer matches content against a threat pattern catalog and reports a bounded risk score per input.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		lcfg, gcfg := loadConfigs(flagPath)
		logger, closer, err := logging.NewLogger(logging.Options{
			Level:   pickString(flagLogLevel, lcfg.LogLevel, gcfg.LogLevel),
			File:    pickString(flagLogFile, lcfg.LogFile, gcfg.LogFile),
			NoColor: flagNoColor || !isTerminal(os.Stderr),
			Console: cmd.ErrOrStderr(),
		})
		if err != nil {
			return err
		}
		closeLog = closer
		logger.Debug("cli_start", "command", cmd.CommandPath(), "version", version)
		return nil
	},
}

// Execute runs the sanitizer CLI. It should be called by the main package.
// Errors exit with status 2; a tripped fail-on policy exits with 1.
func Execute() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	_ = closeLog.Close()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(rootCmd.ErrOrStderr(), "error:", err)
	return 2
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().StringVar(&flagFailOn, "fail-on", "", "exit 1 on threats at or above critical|high|medium|low (default high)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "pattern catalog file (JSON or YAML); built-in catalog when empty")
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "matching strategy: literal | regex")
	rootCmd.PersistentFlags().IntVar(&flagSizeLimit, "size-limit", 0, "compiled engine size limit in bytes (0 = 10 MiB)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug | info | warn | error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also write logs to this file (rotated)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "sanitizer", version)
		},
	})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
