package sanitizer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `[
	{"pattern":"drop table","category":"sql","severity":"critical"},
	{"pattern":"rm -rf","category":"shell","severity":"high"},
	{"pattern":"act as","category":"jailbreak","severity":"low"}
]`

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execCLI runs the CLI in-process with an isolated global config dir.
func execCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	resetFlags(rootCmd)
	var out, errb bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errb)
	rootCmd.SetIn(strings.NewReader(stdin))
	code = run(args)
	return out.String(), errb.String(), code
}

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "patterns.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestCLI_ScanContent_JSONShapeAndExitCode(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, _, code := execCLI(t, "", "scan", "--catalog", cat, "--json", "-c", "please DROP TABLE users")
	assert.Equal(t, 1, code)
	assert.JSONEq(t, `{"safe":false,"threats":[{"pattern":"drop table","category":"sql","severity":"critical"}],"risk_score":10}`, out)
}

func TestCLI_ScanStdin_Clean(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, _, code := execCLI(t, "hello there", "scan", "--catalog", cat, "--json", "--stdin")
	assert.Equal(t, 0, code)
	assert.JSONEq(t, `{"safe":true,"threats":[],"risk_score":0}`, out)
}

func TestCLI_ZeroTrustStillFailsOnSeverity(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, _, code := execCLI(t, "", "scan", "--catalog", cat, "--json", "--trust", "0", "--fail-on", "critical", "-c", "drop table")
	assert.Equal(t, 1, code)
	var r map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, 0.0, r["risk_score"])
}

func TestCLI_BlockScoreTrips(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	_, _, code := execCLI(t, "", "scan", "--catalog", cat, "--fail-on", "off", "-c", "act as root")
	assert.Equal(t, 0, code)

	_, stderr, code := execCLI(t, "", "scan", "--catalog", cat, "--fail-on", "off", "--block-score", "1", "-c", "act as root")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "input blocked")
}

func TestCLI_ScanDirectory_JSON(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("rm -rf / now"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("fine"), 0o644))

	out, _, code := execCLI(t, "", "scan", "--catalog", cat, "--json", "--fail-on", "critical", "-p", dir)
	assert.Equal(t, 0, code)
	var arr []struct {
		Path      string  `json:"path"`
		Safe      bool    `json:"safe"`
		RiskScore float64 `json:"risk_score"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &arr), out)
	require.Len(t, arr, 2)
	byPath := map[string]bool{}
	for _, o := range arr {
		byPath[o.Path] = o.Safe
	}
	assert.False(t, byPath["a.txt"])
	assert.True(t, byPath["b.txt"])
}

func TestCLI_ScanDirectory_SARIF(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "q.sql"), []byte("DROP TABLE x"), 0o644))
	out, _, code := execCLI(t, "", "scan", "--catalog", cat, "--sarif", "-p", dir)
	assert.Equal(t, 1, code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	assert.Equal(t, "2.1.0", doc["version"])
}

func TestCLI_TextOutput(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, _, _ := execCLI(t, "", "scan", "--catalog", cat, "--text", "-c", "rm -rf /")
	assert.Contains(t, out, "Unsafe inputs: 1")
	assert.Contains(t, out, "<content>")
}

func TestCLI_RegexBuildErrorExits2(t *testing.T) {
	cat := writeCatalog(t, `[{"pattern":"(unclosed","category":"x","severity":"low"}]`)
	_, stderr, code := execCLI(t, "", "scan", "--catalog", cat, "--strategy", "regex", "-c", "x")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "failed to build regex engine")
}

func TestCLI_BadCatalogExits2(t *testing.T) {
	cat := writeCatalog(t, `[{"pattern":"a"}]`)
	_, stderr, code := execCLI(t, "", "scan", "--catalog", cat, "-c", "x")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "failed to parse patterns")
}

func TestCLI_Lint(t *testing.T) {
	_, _, code := execCLI(t, "", "lint")
	assert.Equal(t, 0, code, "built-in catalog should lint clean")

	cat := writeCatalog(t, `[
		{"pattern":"ab","category":"x","severity":"low"},
		{"pattern":"abc","category":"x","severity":"low"},
		{"pattern":"AB","category":"y","severity":"low"}
	]`)
	out, _, code := execCLI(t, "", "lint", "--catalog", cat)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "shadowed")
	assert.Contains(t, out, "duplicate")

	// shadowing does not apply to regex matching
	out, _, code = execCLI(t, "", "lint", "--catalog", cat, "--strategy", "regex", "--json")
	assert.Equal(t, 1, code)
	var issues []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &issues))
	require.Len(t, issues, 1)
	assert.Equal(t, "duplicate", issues[0]["kind"])
}

func TestCLI_Patterns(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, _, code := execCLI(t, "", "patterns", "--catalog", cat, "--json")
	assert.Equal(t, 0, code)
	var arr []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &arr))
	require.Len(t, arr, 3)
	assert.Equal(t, "rm -rf", arr[1]["pattern"])

	out, _, code = execCLI(t, "", "patterns")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "bypass safety")
}

func TestCLI_ConfigInitAndVersion(t *testing.T) {
	p := filepath.Join(t.TempDir(), ".sanitizer.yml")
	out, _, code := execCLI(t, "", "config", "init", "--output", p)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Wrote")
	_, err := os.Stat(p)
	require.NoError(t, err)

	_, stderr, code := execCLI(t, "", "config", "init", "--output", p)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "already exists")

	out, _, code = execCLI(t, "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, version)
}

func TestCLI_LocalConfigApplies(t *testing.T) {
	dir := t.TempDir()
	cat := writeCatalog(t, testCatalog)
	cfg := "catalog: " + cat + "\nfail_on: off\ntrust: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sanitizer.yml"), []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.txt"), []byte("rm -rf"), 0o644))

	out, _, code := execCLI(t, "", "scan", "--json", "-p", dir)
	assert.Equal(t, 0, code)
	var arr []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &arr), out)
	var score float64
	for _, o := range arr {
		if o["path"] == "x.txt" {
			score = o["risk_score"].(float64)
		}
	}
	assert.Equal(t, 15.0, score)
}

func TestCLI_InvalidFailOnExits2(t *testing.T) {
	cat := writeCatalog(t, testCatalog)
	out, stderr, code := execCLI(t, "", "scan", "--catalog", cat, "--json", "--fail-on", "hihg", "-c", "drop table")
	assert.Equal(t, 2, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, `invalid fail-on level "hihg"`)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".sanitizer.yml"), []byte("catalog: "+cat+"\nfail_on: none\n"), 0o644))
	_, stderr, code = execCLI(t, "", "scan", "-p", dir)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "invalid fail-on level")
}
