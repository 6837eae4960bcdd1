package bitvector

import (
	"sync"

	"github.com/hillbig/rsdic"
)

// Block is the production BitVector implementation: O(1) rank and
// O(log n) select for single-bit patterns, backed by rsdic.RSDic's
// superblock/block rank index (spec §4.A). Patterns longer than one bit
// (in practice just the tree navigator's leaf pattern "()" /
// "10")  are served by a lazily-built, cached occurrence vector: the
// first Rank/Select call for a given multi-bit pattern scans once to
// mark the positions where it occurs, after which repeat queries for
// that pattern are themselves O(1)/O(log n) via the same rsdic index.
type Block struct {
	bits *rsdic.RSDic
	n    int

	mu       sync.RWMutex
	patterns map[string]*rsdic.RSDic
}

var _ BitVector = (*Block)(nil)

// NewBlock builds a Block BitVector from a string of '0'/'1' characters.
func NewBlock(bits string) (*Block, error) {
	for i := 0; i < len(bits); i++ {
		if bits[i] != '0' && bits[i] != '1' {
			return nil, ErrBadPattern
		}
	}
	rs := rsdic.New()
	for i := 0; i < len(bits); i++ {
		rs.PushBack(bits[i] == '1')
	}
	return &Block{bits: rs, n: len(bits), patterns: map[string]*rsdic.RSDic{}}, nil
}

// NewBlockFromBools builds a Block BitVector directly from a bool slice.
func NewBlockFromBools(bits []bool) *Block {
	rs := rsdic.New()
	for _, b := range bits {
		rs.PushBack(b)
	}
	return &Block{bits: rs, n: len(bits), patterns: map[string]*rsdic.RSDic{}}
}

func (b *Block) Len() int { return b.n }

func (b *Block) at(i int) bool { return b.bits.Bit(uint64(i)) }

func (b *Block) At(i int) (bool, error) {
	if err := checkIndex(i, b.n); err != nil {
		return false, err
	}
	return b.at(i), nil
}

func (b *Block) String() string {
	return stringOf(b.n, b.at)
}

// occurrenceVector returns the cached rank/select index over the
// positions where pattern p occurs, building it on first use.
func (b *Block) occurrenceVector(p string) *rsdic.RSDic {
	b.mu.RLock()
	rs, ok := b.patterns[p]
	b.mu.RUnlock()
	if ok {
		return rs
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if rs, ok := b.patterns[p]; ok {
		return rs
	}

	built := rsdic.New()
	for idx := 0; idx < b.n; idx++ {
		built.PushBack(b.matchesAt(p, idx))
	}
	b.patterns[p] = built
	return built
}

func (b *Block) matchesAt(p string, idx int) bool {
	if idx+len(p) > b.n {
		return false
	}
	for k := 0; k < len(p); k++ {
		if b.at(idx+k) != (p[k] == '1') {
			return false
		}
	}
	return true
}

func (b *Block) Rank(p string, i int) (int, error) {
	if err := checkIndex(i, b.n); err != nil {
		return 0, err
	}
	if err := checkPattern(p); err != nil {
		return 0, err
	}
	if len(p) == 1 {
		return int(b.bits.Rank(uint64(i+1), p[0] == '1')), nil
	}
	rs := b.occurrenceVector(p)
	return int(rs.Rank(uint64(i+1), true)), nil
}

func (b *Block) Select(p string, k int) (int, error) {
	if err := checkPattern(p); err != nil {
		return 0, err
	}
	if len(p) == 1 {
		bit := p[0] == '1'
		total := int(b.bits.Rank(uint64(b.n), bit))
		if err := checkCount(k, total); err != nil {
			return 0, err
		}
		return int(b.bits.Select(uint64(k-1), bit)), nil
	}
	rs := b.occurrenceVector(p)
	total := int(rs.Rank(uint64(b.n), true))
	if err := checkCount(k, total); err != nil {
		return 0, err
	}
	return int(rs.Select(uint64(k-1), true)), nil
}
