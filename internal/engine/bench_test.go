package engine

import (
	"fmt"
	"strings"
	"testing"

	"github.com/redactyl/sanitizer/internal/catalog"
)

func BenchmarkEngineScan(b *testing.B) {
	cat := catalog.Default()
	payload := strings.Repeat("harmless words and a DROP TABLE or two ", 64)

	for _, s := range []Strategy{StrategyLiteral, StrategyRegex} {
		eng, err := New(cat, Options{Strategy: s})
		if err != nil {
			b.Fatal(err)
		}
		b.Run(fmt.Sprintf("%s_%d", s, len(payload)), func(b *testing.B) {
			b.ReportAllocs()
			b.SetBytes(int64(len(payload)))
			for i := 0; i < b.N; i++ {
				_ = eng.Scan(payload, 1.0)
			}
		})
	}
}
