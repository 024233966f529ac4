package sanitizer

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/config"
	"github.com/redactyl/sanitizer/internal/engine"
)

// loadConfigs returns the local config found under root and the global
// config. Missing files yield zero values; malformed ones are logged.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	} else if !errors.Is(err, config.ErrNotFound) {
		slog.Warn("global config ignored", "err", err)
	}
	abs, _ := filepath.Abs(root)
	if c, p, err := config.LoadLocal(abs); err == nil {
		local = c
		slog.Debug("local config loaded", "path", p)
	} else if !errors.Is(err, config.ErrNotFound) {
		slog.Warn("local config ignored", "err", err)
	}
	return local, global
}

// loadCatalog reads the catalog named by flag or config, or the built-in one.
func loadCatalog(local, global config.FileConfig) (catalog.Catalog, string, error) {
	path := pickString(flagCatalog, local.Catalog, global.Catalog)
	if path == "" {
		return catalog.Default(), "built-in", nil
	}
	c, err := catalog.LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return c, path, nil
}

// buildEngine loads the catalog and compiles it with the selected strategy.
func buildEngine(local, global config.FileConfig) (engine.Engine, error) {
	c, src, err := loadCatalog(local, global)
	if err != nil {
		return nil, err
	}
	strategy, err := engine.ParseStrategy(pickString(flagStrategy, local.Strategy, global.Strategy))
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(c, engine.Options{
		Strategy:  strategy,
		SizeLimit: pickInt(flagSizeLimit, local.SizeLimit, global.SizeLimit),
	})
	if err != nil {
		return nil, err
	}
	slog.Info("engine ready", "catalog", src, "patterns", len(c), "strategy", eng.Strategy(), "fingerprint", eng.Fingerprint())
	return eng, nil
}

// pickFlag honours an explicitly set flag even when it equals the zero
// value or the flag default, then falls back to local and global config.
func pickFlag[T any](cmd *cobra.Command, name string, cli T, local, global *T) T {
	if cmd.Flags().Changed(name) {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return cli
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
