package engine

import (
	"regexp"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/types"
)

// regexSetEngine reports each pattern at most once, in catalog order, if it
// matches anywhere in the content. Positions and counts are not tracked.
type regexSetEngine struct {
	base
	res []*regexp.Regexp
}

func newRegexSet(c catalog.Catalog, fp string, opts Options) (Engine, error) {
	res := make([]*regexp.Regexp, 0, len(c))
	total := 0
	for i, t := range c {
		expr := "(?i)" + t.Pattern
		size, err := regexEstimate(expr)
		if err != nil {
			return nil, &BuildError{Strategy: StrategyRegex, Index: i, Err: err}
		}
		total += size
		if total > opts.SizeLimit {
			return nil, sizeLimitError(StrategyRegex, total, opts.SizeLimit)
		}
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, &BuildError{Strategy: StrategyRegex, Index: i, Err: err}
		}
		res = append(res, re)
	}
	return &regexSetEngine{base: base{strategy: StrategyRegex, cat: c, fp: fp}, res: res}, nil
}

func (e *regexSetEngine) Scan(content string, trust float64) types.ScanResult {
	if content == "" {
		return safeResult()
	}
	var hits []int
	for i, re := range e.res {
		if re.MatchString(content) {
			hits = append(hits, i)
		}
	}
	return buildResult(e.cat, hits, trust)
}
