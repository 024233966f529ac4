package engine

import (
	"fmt"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/types"
)

// literalEngine finds non-overlapping occurrences left to right. When
// several patterns match at the same leftmost position the one declared
// first in the catalog wins.
type literalEngine struct {
	base
	ac ahocorasick.AhoCorasick
	// ids maps automaton pattern ids back to catalog indices. Empty
	// patterns are left out of the automaton and never match.
	ids []int
}

func newLiteral(c catalog.Catalog, fp string, opts Options) (eng Engine, err error) {
	var patterns []string
	var ids []int
	for i, t := range c {
		if t.Pattern == "" {
			continue
		}
		patterns = append(patterns, t.Pattern)
		ids = append(ids, i)
	}

	e := &literalEngine{base: base{strategy: StrategyLiteral, cat: c, fp: fp}, ids: ids}
	if len(patterns) == 0 {
		return e, nil
	}

	nfa, dfa := literalEstimate(patterns)
	if nfa > opts.SizeLimit {
		return nil, sizeLimitError(StrategyLiteral, nfa, opts.SizeLimit)
	}

	defer func() {
		if r := recover(); r != nil {
			eng, err = nil, &BuildError{Strategy: StrategyLiteral, Index: -1, Err: fmt.Errorf("automaton construction failed: %v", r)}
		}
	}()
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostFirstMatch,
		DFA:                  dfa <= opts.DFASizeLimit,
	})
	e.ac = builder.Build(patterns)
	return e, nil
}

func (e *literalEngine) Scan(content string, trust float64) types.ScanResult {
	if content == "" || len(e.ids) == 0 {
		return safeResult()
	}
	// FindAll resumes one byte after each match start, so it also yields
	// matches overlapping the previous one. Keep only those starting at or
	// after the end of the last kept match.
	matches := e.ac.FindAll(content)
	hits := make([]int, 0, len(matches))
	next := 0
	for _, m := range matches {
		if m.Start() < next {
			continue
		}
		hits = append(hits, e.ids[m.Pattern()])
		next = m.End()
	}
	return buildResult(e.cat, hits, trust)
}
