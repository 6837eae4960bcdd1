package bitvector

import (
	"github.com/bits-and-blooms/bitset"
)

// Scanning is the reference BitVector implementation: O(n*|p|) rank and
// select by direct scanning, backed by a word-packed bitset.BitSet
// rather than a []bool, so it still costs one bit per position instead
// of one machine word. Useful for tests and for small vectors where the
// construction cost of the block index in Block would not pay for
// itself.
type Scanning struct {
	bits *bitset.BitSet
	n    int
}

var _ BitVector = (*Scanning)(nil)

// NewScanning builds a Scanning BitVector from a string of '0'/'1'
// characters.
func NewScanning(bits string) (*Scanning, error) {
	if err := checkPattern(bits); err != nil && len(bits) > 0 {
		return nil, err
	}
	bs := bitset.New(uint(len(bits)))
	for i := 0; i < len(bits); i++ {
		switch bits[i] {
		case '1':
			bs.Set(uint(i))
		case '0':
			// left clear
		default:
			return nil, ErrBadPattern
		}
	}
	return &Scanning{bits: bs, n: len(bits)}, nil
}

// NewScanningFromBools builds a Scanning BitVector directly from a bool
// slice (true == '1'), skipping the string round-trip.
func NewScanningFromBools(bits []bool) *Scanning {
	bs := bitset.New(uint(len(bits)))
	for i, b := range bits {
		if b {
			bs.Set(uint(i))
		}
	}
	return &Scanning{bits: bs, n: len(bits)}
}

func (s *Scanning) Len() int { return s.n }

func (s *Scanning) at(i int) bool { return s.bits.Test(uint(i)) }

func (s *Scanning) At(i int) (bool, error) {
	if err := checkIndex(i, s.n); err != nil {
		return false, err
	}
	return s.at(i), nil
}

func (s *Scanning) String() string {
	return stringOf(s.n, s.at)
}

func (s *Scanning) matchesAt(p string, idx int) bool {
	if idx+len(p) > s.n {
		return false
	}
	for k := 0; k < len(p); k++ {
		want := p[k] == '1'
		if s.at(idx+k) != want {
			return false
		}
	}
	return true
}

func (s *Scanning) Rank(p string, i int) (int, error) {
	if err := checkIndex(i, s.n); err != nil {
		return 0, err
	}
	if err := checkPattern(p); err != nil {
		return 0, err
	}
	cnt := 0
	for idx := 0; idx <= i; idx++ {
		if s.matchesAt(p, idx) {
			cnt++
		}
	}
	return cnt, nil
}

func (s *Scanning) Select(p string, k int) (int, error) {
	if err := checkPattern(p); err != nil {
		return 0, err
	}
	if k <= 0 {
		return 0, checkCount(k, s.n)
	}
	cnt := 0
	for idx := 0; idx < s.n; idx++ {
		if s.matchesAt(p, idx) {
			cnt++
			if cnt == k {
				return idx, nil
			}
		}
	}
	return 0, checkCount(k, cnt)
}
