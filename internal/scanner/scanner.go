// Package scanner runs many inputs through one shared engine: a working
// tree walk with glob and size filters, stdin, or caller-supplied inputs.
// Inputs are scanned concurrently by a bounded worker pool and results are
// returned in input order.
package scanner

import (
	"time"

	"github.com/redactyl/sanitizer/internal/types"
)

// Scanner is the read-only scanning surface of an engine. engine.Engine
// satisfies it.
type Scanner interface {
	Scan(content string, trust float64) types.ScanResult
}

// Input is one named piece of content.
type Input struct {
	Path string
	Data []byte
}

// Output pairs an input path with its verdict. It encodes as a flat object
// with path, safe, threats and risk_score.
type Output struct {
	Path string `json:"path"`
	types.ScanResult
}

// Config controls tree walks and batch scans.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	DefaultExcludes bool
	Threads         int
	// Trust is handed to the engine unchanged. The zero value scores every
	// input 0 while still reporting its threats; callers wanting unscaled
	// scores set 1.
	Trust float64
	// Progress is called once per scanned input. Calls are serialized.
	Progress func()
}

// Result contains per-input verdicts and basic scan statistics.
type Result struct {
	Outputs      []Output
	FilesScanned int
	Duration     time.Duration
}

// Unsafe returns the outputs that reported at least one threat.
func (r Result) Unsafe() []Output {
	var out []Output
	for _, o := range r.Outputs {
		if !o.Safe {
			out = append(out, o)
		}
	}
	return out
}
