package catalog

import (
	"bytes"
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/redactyl/sanitizer/internal/types"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Catalog is an ordered, index-stable list of threat patterns.
type Catalog []types.Threat

// rawThreat uses pointers so a missing field can be told apart from an
// empty string.
type rawThreat struct {
	Pattern  *string `json:"pattern" yaml:"pattern"`
	Category *string `json:"category" yaml:"category"`
	Severity *string `json:"severity" yaml:"severity"`
}

type yamlDocument struct {
	Patterns []rawThreat `yaml:"patterns"`
}

// Parse decodes a JSON array of {pattern, category, severity} records.
// Unknown fields are ignored; missing, null or non-string required fields
// are errors.
func Parse(data []byte) (Catalog, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, parseErrorf(nil, "empty input")
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, parseErrorf(nil, "expected a sequence, got null")
	}
	var raw []rawThreat
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, parseErrorf(err, "invalid JSON")
	}
	return fromRaw(raw)
}

// ParseYAML decodes either a top-level YAML sequence of records or a
// mapping with a "patterns" sequence.
func ParseYAML(data []byte) (Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, parseErrorf(err, "invalid YAML")
	}
	if len(root.Content) == 0 {
		return nil, parseErrorf(nil, "empty input")
	}
	doc := root.Content[0]
	var raw []rawThreat
	switch doc.Kind {
	case yaml.SequenceNode:
		if err := doc.Decode(&raw); err != nil {
			return nil, parseErrorf(err, "invalid YAML")
		}
	case yaml.MappingNode:
		var d yamlDocument
		if err := doc.Decode(&d); err != nil {
			return nil, parseErrorf(err, "invalid YAML")
		}
		if d.Patterns == nil {
			return nil, parseErrorf(nil, "missing field `patterns`")
		}
		raw = d.Patterns
	default:
		return nil, parseErrorf(nil, "expected a sequence of patterns")
	}
	return fromRaw(raw)
}

// LoadFile reads a catalog from disk, choosing YAML for .yml/.yaml files and
// JSON otherwise.
func LoadFile(path string) (Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return ParseYAML(b)
	default:
		return Parse(b)
	}
}

// Default returns the built-in catalog shipped with the binary.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic("catalog: built-in catalog is invalid: " + err.Error())
	}
	return c
}

func fromRaw(raw []rawThreat) (Catalog, error) {
	out := make(Catalog, 0, len(raw))
	for i, r := range raw {
		switch {
		case r.Pattern == nil:
			return nil, parseErrorf(nil, "record %d: missing field `pattern`", i)
		case r.Category == nil:
			return nil, parseErrorf(nil, "record %d: missing field `category`", i)
		case r.Severity == nil:
			return nil, parseErrorf(nil, "record %d: missing field `severity`", i)
		}
		out = append(out, types.Threat{
			Pattern:  *r.Pattern,
			Category: *r.Category,
			Severity: types.Severity(*r.Severity),
		})
	}
	return out, nil
}

// Patterns returns the pattern strings in catalog order.
func (c Catalog) Patterns() []string {
	out := make([]string, len(c))
	for i, t := range c {
		out[i] = t.Pattern
	}
	return out
}

// Clone returns an independent copy.
func (c Catalog) Clone() Catalog {
	if c == nil {
		return nil
	}
	out := make(Catalog, len(c))
	copy(out, c)
	return out
}

// Categories returns the distinct categories in first-seen order.
func (c Catalog) Categories() []string {
	seen := map[string]bool{}
	var out []string
	for _, t := range c {
		if !seen[t.Category] {
			seen[t.Category] = true
			out = append(out, t.Category)
		}
	}
	return out
}
