package types

// Severity is the declared risk level of a threat pattern. Values outside
// the recognized set are kept verbatim and weigh nothing.
type Severity string

const (
	SevCritical Severity = "critical"
	SevHigh     Severity = "high"
	SevMed      Severity = "medium"
	SevLow      Severity = "low"
)

// Weight returns the score contribution of one occurrence at this severity.
// Matching is exact: "Critical" is not "critical".
func (s Severity) Weight() float64 {
	switch s {
	case SevCritical:
		return 10
	case SevHigh:
		return 5
	case SevMed:
		return 3
	case SevLow:
		return 1
	default:
		return 0
	}
}

// Known reports whether s is one of the recognized severities.
func (s Severity) Known() bool { return s.Weight() > 0 }

// Rank orders severities for threshold checks (critical=4 ... low=1, unknown=0).
func (s Severity) Rank() int {
	switch s {
	case SevCritical:
		return 4
	case SevHigh:
		return 3
	case SevMed:
		return 2
	case SevLow:
		return 1
	default:
		return 0
	}
}

// Threat is a single catalog entry. The same shape is reported back as a hit
// when the pattern occurs in scanned content.
type Threat struct {
	Pattern  string   `json:"pattern" yaml:"pattern"`
	Category string   `json:"category" yaml:"category"`
	Severity Severity `json:"severity" yaml:"severity"`
}

// ScanResult is the verdict for one piece of content. Safe is true iff
// Threats is empty; RiskScore is always within [0, 100].
type ScanResult struct {
	Safe      bool     `json:"safe"`
	Threats   []Threat `json:"threats"`
	RiskScore float64  `json:"risk_score"`
}
