// Package eliasfano implements the Elias-Fano representation of a
// monotone non-decreasing sequence of non-negative integers (spec
// §3/§4.C), giving random access through one select on its high-part
// bitvector (O(log n) with bitvector.Block). It is the structure the JSON
// semi-index (package jsonindex) uses to map a token's document-order
// rank to its source byte offset.
package eliasfano

import (
	"errors"
	"fmt"
	"math/bits"

	"succinct/bitvector"
)

var (
	// ErrNotMonotone is returned by New when the input is not
	// non-decreasing.
	ErrNotMonotone = errors.New("eliasfano: sequence is not non-decreasing")
	// ErrIndexOutOfRange is returned by At/Slice for an out-of-bounds index.
	ErrIndexOutOfRange = errors.New("eliasfano: index out of range")
)

// EliasFano is an immutable, monotone non-decreasing sequence of
// non-negative integers. Each value v is split into a high part
// v>>lowBits, unary-coded across a bitvector so that the k-th value's
// high part is recovered by select('1', k+1) - k, and a low part of
// the bottom lowBits bits, stored one per element in a plain uint64
// slice (not bit-packed). At is a single select call into the high
// stream's bitvector.Block, so it costs O(log n), not O(1).
type EliasFano struct {
	n       int
	lowBits uint
	lowMask uint64
	low     []uint64
	high    bitvector.BitVector
}

// New builds an EliasFano sequence from a non-decreasing slice of
// non-negative integers.
func New(values []uint64) (*EliasFano, error) {
	n := len(values)
	if n == 0 {
		return &EliasFano{high: bitvector.NewBlockFromBools(nil)}, nil
	}
	for i := 1; i < n; i++ {
		if values[i] < values[i-1] {
			return nil, fmt.Errorf("%w: values[%d]=%d < values[%d]=%d", ErrNotMonotone, i, values[i], i-1, values[i-1])
		}
	}

	max := values[n-1]
	lowBits := uint(0)
	if ratio := (max + 1) / uint64(n); ratio > 0 {
		lowBits = uint(bits.Len64(ratio)) - 1
	}
	lowMask := uint64(1)<<lowBits - 1

	low := make([]uint64, n)
	highLen := n
	maxHigh := int(max >> lowBits)
	highLen += maxHigh + 1
	highBits := make([]bool, highLen)

	prevHigh := 0
	pos := 0
	for i, v := range values {
		low[i] = v & lowMask
		h := int(v >> lowBits)
		pos += h - prevHigh
		highBits[pos] = true
		pos++
		prevHigh = h
	}

	return &EliasFano{
		n:       n,
		lowBits: lowBits,
		lowMask: lowMask,
		low:     low,
		high:    bitvector.NewBlockFromBools(highBits),
	}, nil
}

// Len returns the number of elements in the sequence.
func (ef *EliasFano) Len() int { return ef.n }

// At returns the i-th value (0-indexed).
func (ef *EliasFano) At(i int) (uint64, error) {
	if i < 0 || i >= ef.n {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	pos, err := ef.high.Select("1", i+1)
	if err != nil {
		return 0, err
	}
	high := uint64(pos - i)
	return high<<ef.lowBits | ef.low[i], nil
}

// Slice returns values[lo:hi], honoring Python-style half-open
// semantics; out-of-range endpoints are clamped rather than erroring,
// matching succinct/encoding.py's EliasFano.__getitem__ slice form.
func (ef *EliasFano) Slice(lo, hi int) ([]uint64, error) {
	if lo < 0 {
		lo = 0
	}
	if hi > ef.n {
		hi = ef.n
	}
	if hi < lo {
		hi = lo
	}
	out := make([]uint64, 0, hi-lo)
	for i := lo; i < hi; i++ {
		v, err := ef.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (ef *EliasFano) String() string {
	vals, _ := ef.Slice(0, ef.n)
	return fmt.Sprint(vals)
}
