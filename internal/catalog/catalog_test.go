package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/sanitizer/internal/types"
)

func TestParse_Basic(t *testing.T) {
	c, err := Parse([]byte(`[
		{"pattern":"drop table","category":"sql","severity":"critical"},
		{"pattern":"ab","category":"x","severity":"unknown","extra":1}
	]`))
	require.NoError(t, err)
	require.Len(t, c, 2)
	assert.Equal(t, types.Threat{Pattern: "drop table", Category: "sql", Severity: types.SevCritical}, c[0])
	assert.Equal(t, types.Severity("unknown"), c[1].Severity)
	assert.Equal(t, []string{"drop table", "ab"}, c.Patterns())
}

func TestParse_EmptyArray(t *testing.T) {
	c, err := Parse([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		msg  string
	}{
		{name: "malformed", in: `[{"pattern":`, msg: "invalid JSON"},
		{name: "empty input", in: "  ", msg: "empty input"},
		{name: "null root", in: "null", msg: "got null"},
		{name: "object root", in: `{"pattern":"a"}`, msg: "invalid JSON"},
		{name: "missing pattern", in: `[{"category":"c","severity":"low"}]`, msg: "missing field `pattern`"},
		{name: "missing category", in: `[{"pattern":"p","severity":"low"}]`, msg: "missing field `category`"},
		{name: "null severity", in: `[{"pattern":"p","category":"c","severity":null}]`, msg: "missing field `severity`"},
		{name: "non-string severity", in: `[{"pattern":"p","category":"c","severity":3}]`, msg: "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "failed to parse patterns")
		})
	}
}

func TestParseYAML_SequenceAndMapping(t *testing.T) {
	seq := "- pattern: rm -rf\n  category: shell\n  severity: high\n"
	c, err := ParseYAML([]byte(seq))
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, "rm -rf", c[0].Pattern)

	doc := "patterns:\n  - pattern: a\n    category: x\n    severity: low\n  - pattern: b\n    category: y\n    severity: medium\n"
	c, err = ParseYAML([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, c.Patterns())
	assert.Equal(t, []string{"x", "y"}, c.Categories())
}

func TestParseYAML_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"missing severity": "- pattern: a\n  category: x\n",
		"no patterns key":  "rules: []\n",
		"scalar root":      "hello\n",
		"empty":            "",
		"broken":           "- pattern: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseYAML([]byte(in))
			var pe *ParseError
			require.ErrorAs(t, err, &pe)
		})
	}
}

func TestLoadFile_PicksFormatByExtension(t *testing.T) {
	dir := t.TempDir()
	jp := filepath.Join(dir, "patterns.json")
	yp := filepath.Join(dir, "patterns.yaml")
	require.NoError(t, os.WriteFile(jp, []byte(`[{"pattern":"a","category":"x","severity":"low"}]`), 0o644))
	require.NoError(t, os.WriteFile(yp, []byte("- pattern: b\n  category: y\n  severity: high\n"), 0o644))

	c, err := LoadFile(jp)
	require.NoError(t, err)
	assert.Equal(t, "a", c[0].Pattern)

	c, err = LoadFile(yp)
	require.NoError(t, err)
	assert.Equal(t, types.SevHigh, c[0].Severity)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDefault_IsValidAndClean(t *testing.T) {
	c := Default()
	require.NotEmpty(t, c)
	for i, th := range c {
		assert.NotEmpty(t, th.Pattern, "entry %d", i)
		assert.True(t, th.Severity.Known(), "entry %d severity %q", i, th.Severity)
	}
	assert.Empty(t, Lint(c))
}

func TestClone_Independent(t *testing.T) {
	c := Catalog{{Pattern: "a", Category: "x", Severity: types.SevLow}}
	cp := c.Clone()
	cp[0].Pattern = "changed"
	assert.Equal(t, "a", c[0].Pattern)
	assert.Nil(t, Catalog(nil).Clone())
}
