// Package wavelet implements the wavelet tree (spec §4.F): a succinct
// sequence structure providing access/rank/select over an arbitrary
// alphabet by recursively splitting a text along a prefix code's bits,
// one bitvector.BitVector per code tree node. The shape of that code
// tree is supplied by a codec.Codec, so combining wavelet.New with
// codec.NewHuTucker gives the nH(S) + o(n) entropy bound from the
// references in the original succinct/wavelet.py.
package wavelet

import (
	"errors"
	"fmt"

	"succinct/bitvector"
	"succinct/codec"
)

// ErrIndexOutOfRange is returned by At/Rank for an out-of-bounds text
// position.
var ErrIndexOutOfRange = errors.New("wavelet: index out of range")

// ErrNotFound is returned by Select when the symbol does not occur
// in the text, or occurs fewer than k times for a k in [1, Len()]; a k
// outside that range gets bitvector.ErrCountOutOfRange instead.
var ErrNotFound = errors.New("wavelet: symbol not found")

// wnode is one node of the codec's code tree: bits accumulates, in
// construction order, the code bit routed through this node for every
// symbol occurrence that reaches it; bv is the frozen bitvector built
// from bits once construction completes.
type wnode struct {
	bits     []bool
	bv       bitvector.BitVector
	parent   *wnode
	children [2]*wnode
}

func childIndex(bit byte) int {
	if bit == '1' {
		return 1
	}
	return 0
}

// Tree is a wavelet tree over a text and a Codec describing its
// alphabet's binary encoding.
type Tree struct {
	codec codec.Codec
	root  *wnode
}

// New builds a wavelet tree over text using c to encode each byte. A
// nil c defaults to codec.FixedWidth{}, matching the reference
// implementation's default ASCII code.
func New(text []byte, c codec.Codec) (*Tree, error) {
	if c == nil {
		c = codec.FixedWidth{}
	}

	root := &wnode{}
	for _, sym := range text {
		code, err := c.Encode(sym)
		if err != nil {
			return nil, fmt.Errorf("wavelet: %w", err)
		}
		node := root
		for i := 0; i < len(code); i++ {
			bit := code[i] == '1'
			node.bits = append(node.bits, bit)
			idx := childIndex(code[i])
			child := node.children[idx]
			if child == nil {
				child = &wnode{parent: node}
				node.children[idx] = child
			}
			node = child
		}
	}
	freezeBits(root)

	return &Tree{codec: c, root: root}, nil
}

func freezeBits(node *wnode) {
	node.bv = bitvector.NewBlockFromBools(node.bits)
	node.bits = nil
	for _, child := range node.children {
		if child != nil {
			freezeBits(child)
		}
	}
}

// Len returns the number of symbols stored in the tree.
func (t *Tree) Len() int { return t.root.bv.Len() }

func (t *Tree) normalize(i int) (int, error) {
	n := t.Len()
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return i, nil
}

// At returns the symbol at text position i, supporting Python-style
// negative indices.
func (t *Tree) At(i int) (byte, error) {
	idx, err := t.normalize(i)
	if err != nil {
		return 0, err
	}

	var code []byte
	node := t.root
	for node.bv.Len() > 0 {
		bit, err := node.bv.At(idx)
		if err != nil {
			return 0, err
		}
		bitCh := byte('0')
		if bit {
			bitCh = '1'
		}
		code = append(code, bitCh)

		rank, err := node.bv.Rank(string(bitCh), idx)
		if err != nil {
			return 0, err
		}
		idx = rank - 1
		node = node.children[childIndex(bitCh)]
	}

	return t.codec.Decode(string(code))
}

// Slice returns the symbols at text positions in [lo, hi), clamped to
// [0, Len()).
func (t *Tree) Slice(lo, hi int) ([]byte, error) {
	n := t.Len()
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	out := make([]byte, 0, hi-lo)
	for i := lo; i < hi; i++ {
		sym, err := t.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

// Reversed returns the text's symbols in reverse order.
func (t *Tree) Reversed() ([]byte, error) {
	n := t.Len()
	out := make([]byte, 0, n)
	for i := n - 1; i >= 0; i-- {
		sym, err := t.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

// Rank returns the number of occurrences of symbol c at or before
// text position i.
func (t *Tree) Rank(c byte, i int) (int, error) {
	n := t.Len()
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}

	code, err := t.codec.Encode(c)
	if err != nil {
		// c is outside the codec's alphabet, so it can't occur.
		return 0, nil
	}

	idx, node, cnt := i, t.root, 0
	for d := 0; d < len(code) && node.bv.Len() > 0; d++ {
		bitCh := code[d]
		cnt, err = node.bv.Rank(string(bitCh), idx)
		if err != nil {
			return 0, err
		}
		if cnt == 0 {
			break
		}
		idx = cnt - 1
		node = node.children[childIndex(bitCh)]
	}
	return cnt, nil
}

// Select returns the text position of the k-th (1-indexed)
// occurrence of symbol c.
func (t *Tree) Select(c byte, k int) (int, error) {
	n := t.Len()
	if k <= 0 || k > n {
		return 0, fmt.Errorf("%w: count %d out of range", bitvector.ErrCountOutOfRange, k)
	}

	code, err := t.codec.Encode(c)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, c)
	}

	node := t.root
	for i := 0; i < len(code); i++ {
		child := node.children[childIndex(code[i])]
		if child == nil {
			return 0, fmt.Errorf("%w: %q", ErrNotFound, c)
		}
		node = child
	}

	cnt, idx := k, 0
	for i := len(code) - 1; i >= 0; i-- {
		node = node.parent
		idx, err = node.bv.Select(string(code[i]), cnt)
		if err != nil {
			return 0, fmt.Errorf("%w: %q occurs fewer than %d times", ErrNotFound, c, k)
		}
		cnt = idx + 1
	}
	return idx, nil
}
