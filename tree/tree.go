// Package tree implements the ordinal-tree Navigator and Node handles
// of spec §4.D, built entirely from the six BalancedParentheses
// primitives in package parens. A Navigator captures only structure
// (child/parent/sibling relationships); it carries no satellite data.
package tree

import (
	"errors"
	"fmt"

	"succinct/parens"
)

// ErrIndexOutOfRange is returned by Navigator indexing and Node.Child
// when the requested index has no corresponding node.
var ErrIndexOutOfRange = errors.New("tree: index out of range")

// Navigator exposes the ordinal tree of N nodes encoded by enc, a
// BalancedParentheses of length 2N. It is immutable: all queries read
// through to enc, which is itself immutable after construction.
type Navigator struct {
	enc *parens.BalancedParentheses
}

// New wraps a validated BalancedParentheses as a Navigator.
func New(enc *parens.BalancedParentheses) *Navigator {
	return &Navigator{enc: enc}
}

// Len returns the number of nodes in the tree.
func (nav *Navigator) Len() int { return nav.enc.Len() / 2 }

// Node returns the node whose opening paren is at BalancedParentheses
// position pos.
func (nav *Navigator) Node(pos int) (Node, error) {
	c, err := nav.enc.At(pos)
	if err != nil {
		return Node{}, err
	}
	if c != '(' {
		return Node{}, fmt.Errorf("%w: no node at position %d", parens.ErrDomain, pos)
	}
	return Node{nav: nav, pos: pos}, nil
}

// Root returns the tree's root node.
func (nav *Navigator) Root() Node {
	n, _ := nav.Node(0)
	return n
}

// At returns the node of preorder rank k (0-based); negative k counts
// from the end, as in Python slicing.
func (nav *Navigator) At(k int) (Node, error) {
	n := nav.Len()
	if k < 0 {
		k += n
	}
	if k < 0 || k >= n {
		return Node{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, k)
	}
	pos, err := nav.Select(k)
	if err != nil {
		return Node{}, err
	}
	return nav.Node(pos)
}

// Slice returns the nodes of preorder rank in [lo, hi), clamped to
// [0, Len()).
func (nav *Navigator) Slice(lo, hi int) ([]Node, error) {
	n := nav.Len()
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	if lo > hi {
		lo = hi
	}
	out := make([]Node, 0, hi-lo)
	for k := lo; k < hi; k++ {
		node, err := nav.At(k)
		if err != nil {
			return nil, err
		}
		out = append(out, node)
	}
	return out, nil
}

// Iterate returns the tree's nodes in preorder, or postorder when
// preorder is false.
func (nav *Navigator) Iterate(preorder bool) ([]Node, error) {
	n := nav.Len()
	out := make([]Node, n)
	for k := 0; k < n; k++ {
		var pos int
		var err error
		if preorder {
			pos, err = nav.Select(k)
		} else {
			pos, err = nav.PostSelect(k)
		}
		if err != nil {
			return nil, err
		}
		node, err := nav.Node(pos)
		if err != nil {
			return nil, err
		}
		out[k] = node
	}
	return out, nil
}

// Reversed returns the tree's nodes in reverse preorder.
func (nav *Navigator) Reversed() ([]Node, error) {
	nodes, err := nav.Iterate(true)
	if err != nil {
		return nil, err
	}
	out := make([]Node, len(nodes))
	for i, n := range nodes {
		out[len(nodes)-1-i] = n
	}
	return out, nil
}

// Select returns the BalancedParentheses position of preorder node k.
func (nav *Navigator) Select(k int) (int, error) {
	return nav.enc.Select("(", k+1)
}

// PostSelect returns the position of postorder node k.
func (nav *Navigator) PostSelect(k int) (int, error) {
	closePos, err := nav.enc.Select(")", k+1)
	if err != nil {
		return 0, err
	}
	return nav.enc.Open(closePos)
}

// LeafSelect returns the position of the k-th (0-based) leaf.
func (nav *Navigator) LeafSelect(k int) (int, error) {
	return nav.enc.Select("()", k+1)
}

// Rank returns the preorder rank of the node at pos.
func (nav *Navigator) Rank(pos int) (int, error) {
	r, err := nav.enc.Rank("(", pos)
	if err != nil {
		return 0, err
	}
	return r - 1, nil
}

// PostRank returns the postorder rank of the node at pos.
func (nav *Navigator) PostRank(pos int) (int, error) {
	closePos, err := nav.enc.Close(pos)
	if err != nil {
		return 0, err
	}
	r, err := nav.enc.Rank(")", closePos)
	if err != nil {
		return 0, err
	}
	return r - 1, nil
}

// LeafRank returns the number of leaves at or to the left of pos.
func (nav *Navigator) LeafRank(pos int) (int, error) {
	r, err := nav.enc.Rank("()", pos)
	if err != nil {
		return 0, err
	}
	return r - 1, nil
}

// ChildRank returns the number of siblings at or to the left of pos,
// inclusive (so a first child has ChildRank 1).
func (nav *Navigator) ChildRank(pos int) (int, error) {
	if pos == 0 {
		return 1, nil
	}
	c, err := nav.enc.At(pos - 1)
	if err != nil {
		return 0, err
	}
	if c == '(' {
		return 1, nil
	}
	node, err := nav.Node(pos)
	if err != nil {
		return 0, err
	}
	parent, ok, err := node.Parent()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: no parent at %d", parens.ErrDomain, pos)
	}
	cnt, err := nav.enc.CountMin(parent.pos+1, pos)
	if err != nil {
		return 0, err
	}
	return cnt + 1, nil
}

// LevelLeftmost returns the leftmost node at depth d, or ok=false if
// d is outside [1, root height + 1].
func (nav *Navigator) LevelLeftmost(d int) (Node, bool, error) {
	root := nav.Root()
	h, err := root.Height()
	if err != nil {
		return Node{}, false, err
	}
	if d < 1 || d > h+1 {
		return Node{}, false, nil
	}
	pos, err := nav.enc.FwdSearch(-1, d)
	if err != nil {
		return Node{}, false, nil
	}
	n, err := nav.Node(pos)
	if err != nil {
		return Node{}, false, err
	}
	return n, true, nil
}

// LevelRightmost returns the rightmost node at depth d, or ok=false
// if d is outside [1, root height + 1].
func (nav *Navigator) LevelRightmost(d int) (Node, bool, error) {
	root := nav.Root()
	h, err := root.Height()
	if err != nil {
		return Node{}, false, err
	}
	if d < 1 || d > h+1 {
		return Node{}, false, nil
	}
	j, err := nav.enc.BwdSearch(nav.enc.Len(), d-1)
	if err != nil {
		return Node{}, false, nil
	}
	pos, err := nav.enc.Open(j)
	if err != nil {
		return Node{}, false, err
	}
	n, err := nav.Node(pos)
	if err != nil {
		return Node{}, false, err
	}
	return n, true, nil
}
