package codec

import (
	"github.com/dgryski/go-boomphf"
	"github.com/zeebo/xxh3"
)

// frequencyTable counts byte occurrences in a training text and
// exposes them through a minimal perfect hash over the distinct
// symbols seen, rather than a map: both Huffman and Hu-Tucker
// construction do several passes over "weight of symbol s", and a
// boomphf.H built once over the support turns each of those into an
// O(1) array lookup by dense rank instead of a hash-map probe.
type frequencyTable struct {
	symbols []byte
	counts  []int
	phf     *boomphf.H
}

func hashSymbol(sym byte) uint64 {
	h := xxh3.New()
	var buf [1]byte
	buf[0] = sym
	h.Write(buf[:])
	return h.Sum64()
}

func hashSymbols(syms []byte) []uint64 {
	out := make([]uint64, len(syms))
	for i, s := range syms {
		out[i] = hashSymbol(s)
	}
	return out
}

func newFrequencyTable(text []byte) *frequencyTable {
	counts := make(map[byte]int, 256)
	for _, b := range text {
		counts[b]++
	}
	if len(counts) == 0 {
		return &frequencyTable{}
	}

	symbols := make([]byte, 0, len(counts))
	for sym := range counts {
		symbols = append(symbols, sym)
	}
	// a stable, deterministic order so PHF construction is reproducible
	for i := 1; i < len(symbols); i++ {
		for j := i; j > 0 && symbols[j-1] > symbols[j]; j-- {
			symbols[j-1], symbols[j] = symbols[j], symbols[j-1]
		}
	}

	hashes := hashSymbols(symbols)
	phf := boomphf.New(2.0, hashes)

	dense := make([]int, len(symbols))
	for i, sym := range symbols {
		idx := phf.Query(hashes[i]) - 1
		dense[idx] = counts[sym]
	}

	ft := &frequencyTable{symbols: symbols, counts: dense, phf: phf}
	return ft
}

func (ft *frequencyTable) weight(sym byte) (int, bool) {
	if ft.phf == nil {
		return 0, false
	}
	idx := ft.phf.Query(hashSymbol(sym))
	if idx == 0 {
		return 0, false
	}
	return ft.counts[idx-1], true
}
