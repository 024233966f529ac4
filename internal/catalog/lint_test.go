package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/sanitizer/internal/types"
)

func kinds(issues []Issue) map[int]IssueKind {
	out := map[int]IssueKind{}
	for _, is := range issues {
		out[is.Index] = is.Kind
	}
	return out
}

func TestLint_ShadowedByEarlierPrefix(t *testing.T) {
	c := Catalog{
		{Pattern: "ab", Category: "x", Severity: types.SevHigh},
		{Pattern: "ABC", Category: "x", Severity: types.SevCritical},
	}
	issues := Lint(c)
	require.Len(t, issues, 1)
	assert.Equal(t, IssueShadowed, issues[0].Kind)
	assert.Equal(t, 1, issues[0].Index)
	assert.Equal(t, 0, issues[0].Related)
}

func TestLint_LaterPrefixIsNotShadowed(t *testing.T) {
	// "abc" listed first still lets "ab" win wherever "abc" does not occur.
	c := Catalog{
		{Pattern: "abc", Category: "x", Severity: types.SevCritical},
		{Pattern: "ab", Category: "x", Severity: types.SevHigh},
	}
	assert.Empty(t, Lint(c))
}

func TestLint_SubstringIsNotShadowed(t *testing.T) {
	c := Catalog{
		{Pattern: "table", Category: "x", Severity: types.SevLow},
		{Pattern: "drop table", Category: "x", Severity: types.SevCritical},
	}
	assert.Empty(t, Lint(c))
}

func TestLint_DuplicatesEmptyAndUnknown(t *testing.T) {
	c := Catalog{
		{Pattern: "evil", Category: "a", Severity: types.SevHigh},
		{Pattern: "EVIL", Category: "b", Severity: types.SevLow},
		{Pattern: "", Category: "c", Severity: types.SevLow},
		{Pattern: "meh", Category: "d", Severity: "info"},
		{Pattern: "evil", Category: "e", Severity: types.SevMed},
	}
	got := kinds(Lint(c))
	assert.Equal(t, map[int]IssueKind{
		1: IssueDuplicate,
		2: IssueEmpty,
		3: IssueUnknownSeverity,
		4: IssueDuplicate,
	}, got)
}

func TestLint_EmptyCatalog(t *testing.T) {
	assert.Empty(t, Lint(nil))
}
