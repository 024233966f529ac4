package report

import (
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/redactyl/sanitizer/internal/scanner"
	"github.com/redactyl/sanitizer/internal/types"
)

type sarif struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool       sarifTool      `json:"tool"`
	Results    []sarifResult  `json:"results"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string       `json:"id"`
	ShortDescription sarifMessage `json:"shortDescription"`
}

type sarifResult struct {
	RuleID     string         `json:"ruleId"`
	RuleIndex  int            `json:"ruleIndex"`
	Level      string         `json:"level"`
	Message    sarifMessage   `json:"message"`
	Locations  []sarifLoc     `json:"locations"`
	Properties map[string]any `json:"properties,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt `json:"artifactLocation"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMed:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes one SARIF 2.1.0 result per threat hit. Rules are the
// threat categories.
func WriteSARIF(w io.Writer, outs []scanner.Output, version string) error {
	seen := map[string]bool{}
	var cats []string
	for _, o := range outs {
		for _, t := range o.Threats {
			if !seen[t.Category] {
				seen[t.Category] = true
				cats = append(cats, t.Category)
			}
		}
	}
	sort.Strings(cats)
	ruleIndex := make(map[string]int, len(cats))
	rules := make([]sarifRule, 0, len(cats))
	for i, c := range cats {
		ruleIndex[c] = i
		rules = append(rules, sarifRule{ID: c, ShortDescription: sarifMessage{Text: c + " threat pattern"}})
	}

	run := sarifRun{
		Tool:    sarifTool{Driver: sarifDriver{Name: "sanitizer", Version: version, Rules: rules}},
		Results: []sarifResult{},
	}
	unsafe := 0
	for _, o := range outs {
		if !o.Safe {
			unsafe++
		}
		for _, t := range o.Threats {
			run.Results = append(run.Results, sarifResult{
				RuleID:    t.Category,
				RuleIndex: ruleIndex[t.Category],
				Level:     sevToLevel(t.Severity),
				Message:   sarifMessage{Text: fmt.Sprintf("%s pattern %q matched", t.Severity, t.Pattern)},
				Locations: []sarifLoc{{PhysicalLocation: sarifPhys{ArtifactLocation: sarifArt{URI: o.Path}}}},
				Properties: map[string]any{
					"pattern":   t.Pattern,
					"severity":  string(t.Severity),
					"riskScore": o.RiskScore,
				},
			})
		}
	}
	run.Properties = map[string]any{"inputsScanned": len(outs), "unsafeInputs": unsafe}

	doc := sarif{
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Version: "2.1.0",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteJSON writes the outputs as an indented JSON array.
func WriteJSON(w io.Writer, outs []scanner.Output) error {
	cp := make([]scanner.Output, len(outs))
	copy(cp, outs)
	for i := range cp {
		if cp[i].Threats == nil {
			cp[i].Threats = []types.Threat{}
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(cp)
}
