// Package codec encodes scan results for callers on the far side of a
// process or language boundary. The wire shape is exactly three fields:
// safe, threats and risk_score.
package codec

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/redactyl/sanitizer/internal/types"
)

// SerializationError reports a result that could not be encoded.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("failed to serialize result: %v", e.Err)
}

func (e *SerializationError) Unwrap() error { return e.Err }

// normalize makes sure an empty threat list encodes as [] rather than null.
func normalize(r types.ScanResult) types.ScanResult {
	if r.Threats == nil {
		r.Threats = []types.Threat{}
	}
	return r
}

// Marshal encodes r as compact JSON.
func Marshal(r types.ScanResult) ([]byte, error) {
	b, err := json.Marshal(normalize(r))
	if err != nil {
		return nil, &SerializationError{Err: err}
	}
	return b, nil
}

// Encode writes r to w as JSON followed by a newline. When indent is true
// the output is pretty-printed for humans.
func Encode(w io.Writer, r types.ScanResult, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(normalize(r)); err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

// Unmarshal decodes a result previously produced by Marshal or Encode.
func Unmarshal(data []byte) (types.ScanResult, error) {
	var r types.ScanResult
	if err := json.Unmarshal(data, &r); err != nil {
		return r, err
	}
	return normalize(r), nil
}
