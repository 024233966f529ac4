package sanitizer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/sanitizer/internal/config"
)

var (
	cfgOutput string
	cfgGlobal bool
	cfgForce  bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented .sanitizer.yml with the default options",
		Args:  cobra.NoArgs,
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", config.LocalNames[0], "output file path")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the user-wide config instead")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config files that would be used",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			abs, _ := filepath.Abs(".")
			if _, p, err := config.LoadLocal(abs); err == nil {
				fmt.Fprintln(out, "local: ", p)
			} else {
				fmt.Fprintln(out, "local:  (none)")
			}
			fmt.Fprintln(out, "global:", config.GlobalPath())
		},
	})
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := cfgOutput
	if cfgGlobal {
		path = config.GlobalPath()
		if path == "" {
			return fmt.Errorf("cannot determine config directory")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
	}
	if err := config.WriteTemplate(path, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
	return nil
}
