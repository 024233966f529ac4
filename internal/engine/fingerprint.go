package engine

import (
	"fmt"

	xxhash "github.com/cespare/xxhash/v2"

	"github.com/redactyl/sanitizer/internal/catalog"
)

// fingerprint hashes the strategy and every catalog field with NUL
// separators so reordering or editing any entry changes the result.
func fingerprint(s Strategy, c catalog.Catalog) string {
	d := xxhash.New()
	_, _ = d.WriteString(string(s))
	for _, t := range c {
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(t.Pattern)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(t.Category)
		_, _ = d.WriteString("\x00")
		_, _ = d.WriteString(string(t.Severity))
	}
	return fmt.Sprintf("%016x", d.Sum64())
}
