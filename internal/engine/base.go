package engine

import "github.com/redactyl/sanitizer/internal/catalog"

// base holds the state shared by both strategies. Nothing here is written
// after construction.
type base struct {
	strategy Strategy
	cat      catalog.Catalog
	fp       string
}

func (b *base) Strategy() Strategy { return b.strategy }

func (b *base) Catalog() catalog.Catalog { return b.cat.Clone() }

func (b *base) Fingerprint() string { return b.fp }
