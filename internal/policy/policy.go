// Package policy turns a scan verdict into an action for the caller.
package policy

import (
	"fmt"
	"strings"

	"github.com/redactyl/sanitizer/internal/types"
)

// Action is what a caller should do with scanned content.
type Action int

const (
	Allow Action = iota
	Warn
	Block
)

func (a Action) String() string {
	switch a {
	case Allow:
		return "allow"
	case Warn:
		return "warn"
	case Block:
		return "block"
	default:
		return "unknown"
	}
}

// MarshalText encodes the action by name in JSON and YAML output.
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAction maps a name back to an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "allow":
		return Allow, nil
	case "warn":
		return Warn, nil
	case "block":
		return Block, nil
	}
	return Allow, fmt.Errorf("unknown action %q", s)
}

// DefaultBlockScore is used when Thresholds.Block is not positive.
const DefaultBlockScore = 50

// Thresholds are risk-score cut-offs. Warn of 0 warns on any threat.
type Thresholds struct {
	Warn  float64 `yaml:"warn" json:"warn"`
	Block float64 `yaml:"block" json:"block"`
}

func (t Thresholds) withDefaults() Thresholds {
	if t.Block <= 0 {
		t.Block = DefaultBlockScore
	}
	if t.Warn < 0 {
		t.Warn = 0
	}
	return t
}

// Decide picks the action for r. Safe content is always allowed; otherwise
// the score is compared against Block first, then Warn.
func Decide(r types.ScanResult, t Thresholds) Action {
	if r.Safe {
		return Allow
	}
	t = t.withDefaults()
	switch {
	case r.RiskScore >= t.Block:
		return Block
	case r.RiskScore >= t.Warn:
		return Warn
	default:
		return Allow
	}
}

// BlockedError reports content rejected by Enforce.
type BlockedError struct {
	Score     float64
	Threshold float64
	Threats   []types.Threat
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("content blocked (score=%.2f, threshold=%.2f, threats=%d)", e.Score, e.Threshold, len(e.Threats))
}

// Enforce returns a *BlockedError when Decide yields Block, and nil otherwise.
func Enforce(r types.ScanResult, t Thresholds) error {
	if Decide(r, t) != Block {
		return nil
	}
	return &BlockedError{Score: r.RiskScore, Threshold: t.withDefaults().Block, Threats: r.Threats}
}
