package core

import (
	"io"

	"github.com/redactyl/sanitizer/internal/codec"
)

// MarshalResult pretty-prints a result as JSON for humans or pipelines.
func MarshalResult(w io.Writer, r ScanResult) error {
	return codec.Encode(w, r, true)
}

// UnmarshalResult decodes result JSON, useful for ingestion tests.
func UnmarshalResult(r io.Reader) (ScanResult, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return ScanResult{}, err
	}
	return codec.Unmarshal(b)
}
