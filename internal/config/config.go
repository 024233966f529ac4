package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by LoadLocal and LoadGlobal when no file exists.
var ErrNotFound = errors.New("config not found")

// LocalNames are the repo-local file names, in lookup order.
var LocalNames = []string{".sanitizer.yml", ".sanitizer.yaml", "sanitizer.yml", "sanitizer.yaml"}

// FileConfig is the on-disk YAML configuration shape. Nil fields are unset.
type FileConfig struct {
	Catalog   *string  `yaml:"catalog"`
	Strategy  *string  `yaml:"strategy"`
	Trust     *float64 `yaml:"trust"`
	SizeLimit *int     `yaml:"size_limit"`

	Include         *string `yaml:"include"`
	Exclude         *string `yaml:"exclude"`
	MaxBytes        *int64  `yaml:"max_bytes"`
	Threads         *int    `yaml:"threads"`
	DefaultExcludes *bool   `yaml:"default_excludes"`

	NoColor    *bool    `yaml:"no_color"`
	FailOn     *string  `yaml:"fail_on"`
	WarnScore  *float64 `yaml:"warn_score"`
	BlockScore *float64 `yaml:"block_score"`

	LogLevel *string `yaml:"log_level"`
	LogFile  *string `yaml:"log_file"`
}

// LoadFile reads a YAML config file from the provided path. Unknown keys
// are rejected so typos surface early.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches root for one of LocalNames and returns the path used.
func LoadLocal(root string) (FileConfig, string, error) {
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			cfg, err := LoadFile(p)
			return cfg, p, err
		}
	}
	return FileConfig{}, "", ErrNotFound
}

// GlobalPath returns $XDG_CONFIG_HOME/sanitizer/config.yml, falling back
// to ~/.config. It is empty when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home == "" {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "sanitizer", "config.yml")
}

// LoadGlobal loads the user-wide config file.
func LoadGlobal() (FileConfig, error) {
	p := GlobalPath()
	if p == "" {
		return FileConfig{}, ErrNotFound
	}
	if _, err := os.Stat(p); err != nil {
		return FileConfig{}, ErrNotFound
	}
	return LoadFile(p)
}

// Template is written by `sanitizer config init`.
const Template = `# sanitizer configuration
# catalog: patterns.yaml     # JSON or YAML pattern catalog; built-in catalog when unset
strategy: literal            # literal | regex
trust: 1.0                   # risk score multiplier
# size_limit: 10485760       # compiled engine size limit in bytes

# include: "**/*.md,**/*.txt"
# exclude: "testdata/**"
max_bytes: 1048576
default_excludes: true
# threads: 8

fail_on: high                # critical | high | medium | low | off
warn_score: 0
block_score: 50

log_level: warn              # debug | info | warn | error
# log_file: sanitizer.log
`

// WriteTemplate writes Template to path, refusing to overwrite unless force.
func WriteTemplate(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	return os.WriteFile(path, []byte(Template), 0o644)
}
