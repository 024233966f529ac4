package engine

import "regexp/syntax"

// Rough per-unit costs used to estimate compiled size before building.
// They track the shape of the structures, not exact allocator behaviour.
const (
	nfaStateBytes      = 64
	nfaTransitionBytes = 8
	dfaStateBytes      = 256 * 4
	regexInstBytes     = 40
	regexRuneBytes     = 4
)

// literalEstimate sizes a trie-based automaton over patterns. The trie has
// at most one state per pattern byte plus the root.
func literalEstimate(patterns []string) (nfa, dfa int) {
	total := 0
	for _, p := range patterns {
		total += len(p)
	}
	states := total + 1
	nfa = states*nfaStateBytes + total*nfaTransitionBytes
	dfa = states * dfaStateBytes
	return nfa, dfa
}

// regexEstimate compiles expr to an RE2 program and sizes it by
// instruction count and rune-class payload.
func regexEstimate(expr string) (int, error) {
	re, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return 0, err
	}
	prog, err := syntax.Compile(re.Simplify())
	if err != nil {
		return 0, err
	}
	size := len(prog.Inst) * regexInstBytes
	for _, inst := range prog.Inst {
		size += len(inst.Rune) * regexRuneBytes
	}
	return size, nil
}
