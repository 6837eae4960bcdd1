package fulltext

import (
	"bytes"
	"fmt"
	"sort"
)

// SuffixArray is the naive suffix array of a text: the text's
// suffixes' starting offsets, sorted lexicographically, searched by
// binary search over that order (spec §4.G).
type SuffixArray struct {
	text  []byte
	array []int
}

// BuildSuffixArray sorts the offsets of every suffix of text and
// returns the resulting SuffixArray.
func BuildSuffixArray(text []byte) *SuffixArray {
	order := make([]int, len(text))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return bytes.Compare(text[order[i]:], text[order[j]:]) < 0
	})
	return &SuffixArray{text: text, array: order}
}

// Len returns the length of the indexed text.
func (sa *SuffixArray) Len() int { return len(sa.text) }

// At returns the byte at text position i.
func (sa *SuffixArray) At(i int) (byte, error) {
	if i < 0 || i >= len(sa.text) {
		return 0, fmt.Errorf("fulltext: index %d out of range", i)
	}
	return sa.text[i], nil
}

func suffixSlice(text []byte, off, m int) []byte {
	if off > len(text) {
		off = len(text)
	}
	end := off + m
	if end > len(text) {
		end = len(text)
	}
	return text[off:end]
}

// search binary-searches the suffix array for the range of suffixes
// beginning with value, returning [start, end] inclusive; start > end
// means no suffix matches.
func (sa *SuffixArray) search(value []byte) (int, int) {
	n := sa.Len()
	if len(value) == 0 {
		return 0, n + 1
	}

	m := len(value)
	sp, st := 0, n-1
	for sp < st {
		idx := (sp + st) / 2
		off := sa.array[idx]
		if bytes.Compare(value, suffixSlice(sa.text, off, m)) > 0 {
			sp = idx + 1
		} else {
			st = idx
		}
	}

	ep, et := sp-1, n-1
	for ep < et {
		idx := (ep+et)/2 + ((ep + et) & 1)
		off := sa.array[idx]
		if bytes.Equal(value, suffixSlice(sa.text, off, m)) {
			ep = idx
		} else {
			et = idx - 1
		}
	}
	return sp, ep
}

// Count returns the number of occurrences of value in the text.
func (sa *SuffixArray) Count(value []byte) int {
	sp, ep := sa.search(value)
	return ep - sp + 1
}

// Indexes returns every text position at which value occurs, in
// suffix-array order (not sorted).
func (sa *SuffixArray) Indexes(value []byte) []int {
	sp, ep := sa.search(value)
	if sp > ep {
		return nil
	}
	out := make([]int, 0, ep-sp+1)
	for idx := sp; idx <= ep; idx++ {
		out = append(out, sa.array[idx])
	}
	return out
}

// Index returns the smallest text position at which value occurs.
func (sa *SuffixArray) Index(value []byte) (int, error) {
	positions := sa.Indexes(value)
	if len(positions) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, value)
	}
	sort.Ints(positions)
	return positions[0], nil
}
