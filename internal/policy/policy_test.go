package policy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redactyl/sanitizer/internal/types"
)

func unsafeResult(score float64) types.ScanResult {
	return types.ScanResult{
		Threats:   []types.Threat{{Pattern: "p", Category: "c", Severity: types.SevLow}},
		RiskScore: score,
	}
}

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		r    types.ScanResult
		th   Thresholds
		want Action
	}{
		{"safe", types.ScanResult{Safe: true, Threats: []types.Threat{}}, Thresholds{}, Allow},
		{"defaults warn", unsafeResult(10), Thresholds{}, Warn},
		{"defaults block", unsafeResult(50), Thresholds{}, Block},
		{"zero score still warns", unsafeResult(0), Thresholds{}, Warn},
		{"below warn", unsafeResult(4), Thresholds{Warn: 5, Block: 20}, Allow},
		{"at warn", unsafeResult(5), Thresholds{Warn: 5, Block: 20}, Warn},
		{"at block", unsafeResult(20), Thresholds{Warn: 5, Block: 20}, Block},
		{"saturated", unsafeResult(100), Thresholds{Block: 100}, Block},
		{"negative warn clamps", unsafeResult(0), Thresholds{Warn: -3}, Warn},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.r, tt.th))
		})
	}
}

func TestEnforce(t *testing.T) {
	assert.NoError(t, Enforce(unsafeResult(10), Thresholds{}))

	err := Enforce(unsafeResult(60), Thresholds{})
	var be *BlockedError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, 60.0, be.Score)
	assert.Equal(t, float64(DefaultBlockScore), be.Threshold)
	assert.Len(t, be.Threats, 1)
	assert.Contains(t, err.Error(), "score=60.00")
}

func TestAction_Names(t *testing.T) {
	for _, a := range []Action{Allow, Warn, Block} {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
		b, _ := a.MarshalText()
		assert.Equal(t, a.String(), string(b))
	}
	_, err := ParseAction("deny")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Action(9).String())
}
