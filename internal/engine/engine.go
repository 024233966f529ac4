package engine

import (
	"fmt"
	"strings"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/types"
)

// Strategy selects how catalog patterns are interpreted.
type Strategy string

const (
	// StrategyLiteral treats every pattern as a literal string.
	StrategyLiteral Strategy = "literal"
	// StrategyRegex treats every pattern as a regular expression.
	StrategyRegex Strategy = "regex"
)

const (
	// DefaultSizeLimit bounds the estimated compiled state of one engine.
	DefaultSizeLimit = 10 << 20
	// DefaultDFASizeLimit is the largest estimated DFA the literal strategy
	// will build before falling back to the NFA.
	DefaultDFASizeLimit = 1 << 20
)

// ParseStrategy maps a user-supplied name to a Strategy. The empty string
// selects the literal strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "literal", "aho", "aho-corasick":
		return StrategyLiteral, nil
	case "regex", "regexp", "regex-set":
		return StrategyRegex, nil
	default:
		return "", fmt.Errorf("unknown strategy %q (want literal|regex)", s)
	}
}

// Options controls engine construction. The zero value builds a literal
// engine with default limits.
type Options struct {
	Strategy     Strategy
	SizeLimit    int
	DFASizeLimit int
}

func (o Options) withDefaults() Options {
	if o.Strategy == "" {
		o.Strategy = StrategyLiteral
	}
	if o.SizeLimit <= 0 {
		o.SizeLimit = DefaultSizeLimit
	}
	if o.DFASizeLimit <= 0 {
		o.DFASizeLimit = DefaultDFASizeLimit
	}
	return o
}

// Engine scans content against a compiled catalog. Implementations are
// immutable after New returns and safe for concurrent use.
type Engine interface {
	// Scan reports every threat occurring in content and the resulting
	// risk score scaled by trust. It never fails.
	Scan(content string, trust float64) types.ScanResult

	// Strategy reports which matcher backs this engine.
	Strategy() Strategy

	// Catalog returns a copy of the catalog the engine was built from.
	Catalog() catalog.Catalog

	// Fingerprint identifies the strategy and catalog contents.
	Fingerprint() string
}

// New compiles c with the chosen strategy. The catalog is copied, so later
// changes by the caller do not reach the engine.
func New(c catalog.Catalog, opts Options) (Engine, error) {
	opts = opts.withDefaults()
	c = c.Clone()
	fp := fingerprint(opts.Strategy, c)
	switch opts.Strategy {
	case StrategyLiteral:
		return newLiteral(c, fp, opts)
	case StrategyRegex:
		return newRegexSet(c, fp, opts)
	default:
		return nil, &BuildError{Strategy: opts.Strategy, Index: -1, Err: fmt.Errorf("unknown strategy %q", opts.Strategy)}
	}
}
