// Package cache memoizes scan results by content hash so identical inputs
// in one batch are scanned once. Entries live in memory only.
package cache

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/redactyl/sanitizer/internal/types"
)

// Key identifies content by its xxhash digest and length.
type Key struct {
	Sum uint64
	Len int
}

// KeyOf hashes data.
func KeyOf(data []byte) Key {
	return Key{Sum: xxhash.Sum64(data), Len: len(data)}
}

// Memo is a concurrency-safe result table. A Memo must only hold results
// produced by one engine with one trust multiplier.
type Memo struct {
	mu      sync.Mutex
	entries map[Key]types.ScanResult
	hits    int
}

func New() *Memo {
	return &Memo{entries: map[Key]types.ScanResult{}}
}

// Get returns a copy of the stored result for k.
func (m *Memo) Get(k Key) (types.ScanResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[k]
	if !ok {
		return types.ScanResult{}, false
	}
	m.hits++
	r.Threats = append([]types.Threat(nil), r.Threats...)
	if r.Threats == nil {
		r.Threats = []types.Threat{}
	}
	return r, true
}

// Put stores r under k. The first stored result wins.
func (m *Memo) Put(k Key, r types.ScanResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[k]; ok {
		return
	}
	r.Threats = append([]types.Threat(nil), r.Threats...)
	m.entries[k] = r
}

// Len reports the number of distinct contents stored.
func (m *Memo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// Hits reports how many Get calls were served from the table.
func (m *Memo) Hits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}
