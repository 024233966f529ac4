package core

import (
	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/codec"
	"github.com/redactyl/sanitizer/internal/engine"
	"github.com/redactyl/sanitizer/internal/types"
)

// Re-export selected internal types as a stable public API surface.
type (
	Threat     = types.Threat
	Severity   = types.Severity
	ScanResult = types.ScanResult
	Catalog    = catalog.Catalog
	Strategy   = engine.Strategy

	CatalogParseError  = catalog.ParseError
	EngineBuildError   = engine.BuildError
	SerializationError = codec.SerializationError
)

const (
	StrategyLiteral = engine.StrategyLiteral
	StrategyRegex   = engine.StrategyRegex
)

// Option adjusts engine construction.
type Option func(*engine.Options)

// WithStrategy selects the literal or regex matcher.
func WithStrategy(s Strategy) Option { return func(o *engine.Options) { o.Strategy = s } }

// WithSizeLimit overrides the compiled-size bound in bytes.
func WithSizeLimit(n int) Option { return func(o *engine.Options) { o.SizeLimit = n } }

// Sanitizer is a compiled catalog ready for concurrent scanning.
type Sanitizer struct {
	eng engine.Engine
}

// New parses a JSON pattern catalog and compiles it.
func New(patternsJSON []byte, opts ...Option) (*Sanitizer, error) {
	c, err := catalog.Parse(patternsJSON)
	if err != nil {
		return nil, err
	}
	return NewFromCatalog(c, opts...)
}

// NewFromCatalog compiles an already loaded catalog.
func NewFromCatalog(c Catalog, opts ...Option) (*Sanitizer, error) {
	var o engine.Options
	for _, opt := range opts {
		opt(&o)
	}
	eng, err := engine.New(c, o)
	if err != nil {
		return nil, err
	}
	return &Sanitizer{eng: eng}, nil
}

// Scan returns the verdict for content as a value.
func (s *Sanitizer) Scan(content string, trust float64) ScanResult {
	return s.eng.Scan(content, trust)
}

// Sanitize scans content and returns the verdict encoded as JSON with the
// fields safe, threats and risk_score.
func (s *Sanitizer) Sanitize(content string, trust float64) ([]byte, error) {
	return codec.Marshal(s.eng.Scan(content, trust))
}

// Strategy reports the matcher in use.
func (s *Sanitizer) Strategy() Strategy { return s.eng.Strategy() }

// Fingerprint identifies the compiled catalog.
func (s *Sanitizer) Fingerprint() string { return s.eng.Fingerprint() }

// Patterns returns a copy of the compiled catalog.
func (s *Sanitizer) Patterns() Catalog { return s.eng.Catalog() }

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() Catalog { return catalog.Default() }
