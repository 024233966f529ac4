package catalog

import (
	"fmt"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// IssueKind classifies a lint finding.
type IssueKind string

const (
	IssueEmpty           IssueKind = "empty_pattern"
	IssueDuplicate       IssueKind = "duplicate"
	IssueShadowed        IssueKind = "shadowed"
	IssueUnknownSeverity IssueKind = "unknown_severity"
)

// Issue is an advisory finding about a catalog entry. Related is the index
// of the earlier entry involved, or -1.
type Issue struct {
	Index   int       `json:"index"`
	Kind    IssueKind `json:"kind"`
	Related int       `json:"related"`
	Message string    `json:"message"`
}

// Lint reports catalog entries that are unlikely to behave as intended
// under literal leftmost-first matching. It never fails; the catalog is
// still usable as-is.
//
// An entry is shadowed when an earlier entry is a case-insensitive prefix
// of it: wherever the later pattern starts, the earlier one matches at the
// same position and wins.
func Lint(c Catalog) []Issue {
	var issues []Issue

	lowered := make([]string, len(c))
	var dict [][]byte
	var owner []int
	first := map[string]int{}
	for i, t := range c {
		lowered[i] = asciiLower(t.Pattern)
		if !t.Severity.Known() {
			issues = append(issues, Issue{Index: i, Kind: IssueUnknownSeverity, Related: -1,
				Message: fmt.Sprintf("severity %q carries no weight", t.Severity)})
		}
		if t.Pattern == "" {
			issues = append(issues, Issue{Index: i, Kind: IssueEmpty, Related: -1, Message: "pattern is empty"})
			continue
		}
		// the matcher keeps one index per distinct string, so feed it the
		// first occurrence only
		if _, ok := first[lowered[i]]; ok {
			continue
		}
		first[lowered[i]] = i
		dict = append(dict, []byte(lowered[i]))
		owner = append(owner, i)
	}
	if len(dict) == 0 {
		return issues
	}

	m := ahocorasick.NewMatcher(dict)
	for j := range c {
		if c[j].Pattern == "" {
			continue
		}
		blocker := -1
		for _, hit := range m.MatchThreadSafe([]byte(lowered[j])) {
			i := owner[hit]
			if i >= j || !strings.HasPrefix(lowered[j], lowered[i]) {
				continue
			}
			if blocker == -1 || i < blocker {
				blocker = i
			}
		}
		if blocker == -1 {
			continue
		}
		if lowered[blocker] == lowered[j] {
			issues = append(issues, Issue{Index: j, Kind: IssueDuplicate, Related: blocker,
				Message: fmt.Sprintf("pattern %q repeats entry %d", c[j].Pattern, blocker)})
			continue
		}
		issues = append(issues, Issue{Index: j, Kind: IssueShadowed, Related: blocker,
			Message: fmt.Sprintf("pattern %q is never reported: entry %d (%q) is a prefix", c[j].Pattern, blocker, c[blocker].Pattern)})
	}
	return issues
}

// asciiLower folds only ASCII letters, matching the engine's case rules.
func asciiLower(s string) string {
	b := []byte(s)
	for i, ch := range b {
		if 'A' <= ch && ch <= 'Z' {
			b[i] = ch + ('a' - 'A')
		}
	}
	return string(b)
}
