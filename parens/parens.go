// Package parens views a BitVector as a balanced-parenthesis encoding of
// an ordinal tree (spec §3/§4.B): '1' is '(' and '0' is ')'. It exposes
// excess and the six min/max excess primitives the tree navigator is
// built from.
package parens

import (
	"errors"
	"fmt"

	"succinct/bitvector"
	"succinct/errutil"
)

var (
	ErrUnbalanced  = errors.New("parens: sequence is not balanced")
	ErrNotFound    = errors.New("parens: no matching position")
	ErrDomain      = errors.New("parens: domain error")
	ErrWrongSymbol = errors.New("parens: wrong symbol at position")
)

// BalancedParentheses wraps a BitVector already encoded with '(' == 1,
// ')' == 0, and layers the excess-arithmetic primitives on top of it.
// Because excess(i) is computed from the wrapped vector's Rank, the
// performance class of these primitives tracks the BitVector
// implementation supplied at construction — a bitvector.Block gives
// O(1) excess, which this type's own block index then builds on to give
// fwd/bwd-search and range min/max in O(sqrt n) instead of the O(n) a
// pure scan would cost.
type BalancedParentheses struct {
	bv bitvector.BitVector
	n  int

	blockSize     int
	blockMin      []int
	blockMinCount []int
	blockMax      []int
}

// New validates and wraps bv, whose length must be even, balanced, and
// end with the outer container's closing paren.
func New(bv bitvector.BitVector) (*BalancedParentheses, error) {
	bp := &BalancedParentheses{bv: bv, n: bv.Len()}
	if bp.n == 0 || bp.n%2 != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrUnbalanced, bp.n)
	}
	bp.buildBlocks()
	if err := bp.validate(); err != nil {
		return nil, err
	}
	return bp, nil
}

// NewFromString builds a BalancedParentheses from a literal "(...)"
// string, backed by a production bitvector.Block.
func NewFromString(s string) (*BalancedParentheses, error) {
	bits := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			bits[i] = '1'
		case ')':
			bits[i] = '0'
		default:
			return nil, fmt.Errorf("%w: unexpected rune %q", ErrDomain, s[i])
		}
	}
	bv, err := bitvector.NewBlock(string(bits))
	if err != nil {
		return nil, err
	}
	return New(bv)
}

func (bp *BalancedParentheses) buildBlocks() {
	n := bp.n
	size := 1
	for size*size < n {
		size++
	}
	bp.blockSize = size
	numBlocks := (n + size - 1) / size
	bp.blockMin = make([]int, numBlocks)
	bp.blockMax = make([]int, numBlocks)
	bp.blockMinCount = make([]int, numBlocks)

	for b := 0; b < numBlocks; b++ {
		lo := b * size
		hi := lo + size
		if hi > n {
			hi = n
		}
		min, max, cnt := bp.excessRaw(lo), bp.excessRaw(lo), 0
		for i := lo; i < hi; i++ {
			e := bp.excessRaw(i)
			if e < min {
				min, cnt = e, 0
			}
			if e == min {
				cnt++
			}
			if e > max {
				max = e
			}
		}
		bp.blockMin[b] = min
		bp.blockMax[b] = max
		bp.blockMinCount[b] = cnt
	}
}

// excessRaw computes excess(i) directly from the wrapped bitvector,
// without any bounds checking (used only during construction, on
// indices already known valid).
func (bp *BalancedParentheses) excessRaw(i int) int {
	ones, err := bp.bv.Rank("1", i)
	errutil.BugOn(err != nil, "excessRaw(%d) on a %d-bit vector: %v", i, bp.n, err)
	return 2*ones - (i + 1)
}

func (bp *BalancedParentheses) validate() error {
	if bp.excessRaw(bp.n-1) != 0 {
		return fmt.Errorf("%w: final excess %d", ErrUnbalanced, bp.excessRaw(bp.n-1))
	}
	prev := 0
	for i := 0; i < bp.n; i++ {
		e := bp.excessRaw(i)
		if e < 0 {
			return fmt.Errorf("%w: negative excess at %d", ErrUnbalanced, i)
		}
		if i > 0 && abs(e-prev) != 1 {
			return fmt.Errorf("%w: excess jump at %d", ErrUnbalanced, i)
		}
		prev = e
	}
	first, err := bp.bv.At(0)
	if err != nil || !first {
		return fmt.Errorf("%w: does not open with '('", ErrUnbalanced)
	}
	last, err := bp.bv.At(bp.n - 1)
	if err != nil || last {
		return fmt.Errorf("%w: does not close with ')'", ErrUnbalanced)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Len returns the number of positions (2N for an N-node tree).
func (bp *BalancedParentheses) Len() int { return bp.n }

// At returns '(' or ')' at position i.
func (bp *BalancedParentheses) At(i int) (byte, error) {
	if i < 0 || i >= bp.n {
		return 0, fmt.Errorf("%w: %d", ErrDomain, i)
	}
	bit, err := bp.bv.At(i)
	if err != nil {
		return 0, err
	}
	if bit {
		return '(', nil
	}
	return ')', nil
}

func (bp *BalancedParentheses) String() string {
	out := make([]byte, bp.n)
	for i := range out {
		c, _ := bp.At(i)
		out[i] = c
	}
	return string(out)
}

// Excess returns 2*rank('(', i) - (i+1).
func (bp *BalancedParentheses) Excess(i int) (int, error) {
	if i < 0 || i >= bp.n {
		return 0, fmt.Errorf("%w: %d", ErrDomain, i)
	}
	return bp.excessRaw(i), nil
}

// tobits converts a pattern written in '(' / ')' to the underlying
// bitvector's '1' / '0' alphabet, passing patterns already in that
// alphabet through unchanged.
func tobits(p string) string {
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '(', '1':
			out[i] = '1'
		default:
			out[i] = '0'
		}
	}
	return string(out)
}

// Rank returns the number of occurrences of p (written with '(' / ')'
// or '1' / '0') starting at or before i. It is the primitive the
// Navigator builds preorder/postorder/leaf rank on top of.
func (bp *BalancedParentheses) Rank(p string, i int) (int, error) {
	return bp.bv.Rank(tobits(p), i)
}

// Select returns the position of the k-th (1-indexed) occurrence of p.
func (bp *BalancedParentheses) Select(p string, k int) (int, error) {
	return bp.bv.Select(tobits(p), k)
}

// Open returns max{j < i : excess(j-1) == excess(i)}, defined only when
// position i holds ')'.
func (bp *BalancedParentheses) Open(i int) (int, error) {
	c, err := bp.At(i)
	if err != nil {
		return 0, err
	}
	if c != ')' {
		return 0, fmt.Errorf("%w: Open(%d) called on '('", ErrDomain, i)
	}
	j, err := bp.BwdSearch(i, 0)
	if err != nil {
		return 0, err
	}
	return j + 1, nil
}

// Close returns min{j > i : excess(j) == excess(i)-1}, defined only
// when position i holds '('.
func (bp *BalancedParentheses) Close(i int) (int, error) {
	c, err := bp.At(i)
	if err != nil {
		return 0, err
	}
	if c != '(' {
		return 0, fmt.Errorf("%w: Close(%d) called on ')'", ErrDomain, i)
	}
	return bp.FwdSearch(i, -1)
}

// Enclose returns the opening position of the nearest node enclosing i;
// undefined for the first and last positions.
func (bp *BalancedParentheses) Enclose(i int) (int, error) {
	if i == 0 || i == bp.n-1 {
		return 0, fmt.Errorf("%w: no node encloses the root", ErrDomain)
	}
	if c, err := bp.At(i); err != nil {
		return 0, err
	} else if c == ')' {
		o, err := bp.Open(i)
		if err != nil {
			return 0, err
		}
		i = o
	}
	j, err := bp.BwdSearch(i, -2)
	if err != nil {
		return 0, err
	}
	return j + 1, nil
}
