package fulltext

import (
	"bytes"
	"sort"
)

type span struct {
	start, end int
}

// CompressedSA is a suffix array compressed down to, per distinct
// leading byte, the [start, end) range of sorted suffixes beginning
// with it, plus each sorted suffix's predecessor byte in the text.
// Those two tables are enough to answer substring counts via
// backward search without ever storing suffix offsets, at the cost
// of supporting no operation that needs to know *where* a match is
// (spec §4.G; mirrors the reference CSA, which likewise only
// implements Count).
type CompressedSA struct {
	offsets      map[int]span
	predecessors []int
}

// BuildCompressedSA builds the backward-search tables for text.
func BuildCompressedSA(text []byte) *CompressedSA {
	n := len(text)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(text[order[i]:], text[order[j]:]) < 0
	})

	offsets := map[int]span{}
	predecessors := make([]int, 0, n)
	p := noSymbol
	for idx, off := range order {
		if off == 0 {
			predecessors = append(predecessors, noSymbol)
		} else {
			predecessors = append(predecessors, int(text[off-1]))
		}

		c := int(text[off])
		if c != p {
			if prv, ok := offsets[p]; ok {
				offsets[p] = span{prv.start, idx}
			}
			p = c
			offsets[c] = span{idx, n}
		}
	}

	return &CompressedSA{offsets: offsets, predecessors: predecessors}
}

// Len returns the length of the indexed text.
func (csa *CompressedSA) Len() int { return len(csa.predecessors) }

func countPredecessor(preds []int, p int) int {
	cnt := 0
	for _, x := range preds {
		if x == p {
			cnt++
		}
	}
	return cnt
}

// Count returns the number of occurrences of value in the text, by
// backward search: narrow the suffix range one pattern byte at a
// time, from the last byte to the first, tightening each bound by
// counting predecessors that don't match the next byte to consume.
func (csa *CompressedSA) Count(value []byte) int {
	if len(value) == 0 {
		return len(csa.predecessors) + 1
	}

	s, e, soff, eoff := 1, 0, 0, 0
	for idx := len(value) - 1; idx >= 0; idx-- {
		c := int(value[idx])
		p := noSymbol
		if idx > 0 {
			p = int(value[idx-1])
		}

		sp, ok := csa.offsets[c]
		if !ok {
			return 0
		}
		s, e = sp.start, sp.end
		s += soff
		e -= eoff
		soff = countPredecessor(csa.predecessors[:s], p)
		eoff = countPredecessor(csa.predecessors[e:], p)
	}
	return e - s
}
