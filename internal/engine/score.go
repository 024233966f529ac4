package engine

import (
	"math"

	"github.com/redactyl/sanitizer/internal/catalog"
	"github.com/redactyl/sanitizer/internal/types"
)

// MaxRiskScore is the saturation point of the risk score.
const MaxRiskScore = 100.0

// clampScore scales the raw weight sum by trust and bounds it to
// [0, MaxRiskScore]. Negative or NaN products floor at zero; a zero sum
// times an infinite trust is NaN and therefore also zero.
func clampScore(raw, trust float64) float64 {
	s := raw * trust
	switch {
	case math.IsNaN(s) || s <= 0:
		return 0
	case s > MaxRiskScore:
		return MaxRiskScore
	}
	return s
}

// buildResult resolves catalog indices to threats and sums their weights.
// Zero-weight entries are still reported.
func buildResult(c catalog.Catalog, hits []int, trust float64) types.ScanResult {
	threats := make([]types.Threat, 0, len(hits))
	raw := 0.0
	for _, idx := range hits {
		t := c[idx]
		threats = append(threats, t)
		raw += t.Severity.Weight()
	}
	return types.ScanResult{
		Safe:      len(threats) == 0,
		Threats:   threats,
		RiskScore: clampScore(raw, trust),
	}
}

func safeResult() types.ScanResult {
	return types.ScanResult{Safe: true, Threats: []types.Threat{}, RiskScore: 0}
}
