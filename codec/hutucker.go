package codec

import (
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix"
)

type htNode struct {
	sym    byte
	isLeaf bool
	count  int
	left   *htNode
	right  *htNode
}

// HuTucker is a Huffman-like prefix code that additionally preserves
// alphabet order: for symbols a<b, codeword(a) < codeword(b) in
// lexicographic order. Built via the Garsia-Wachs phase: merge the
// leftmost eligible adjacent pair to record optimal leaf depths, then
// re-lay the alphabet out, in order, at those depths.
type HuTucker struct {
	codes  map[byte]string
	decode *iradix.Tree
}

var _ Codec = (*HuTucker)(nil)

// NewHuTucker builds a Hu-Tucker codec from the byte frequencies of
// text. An empty text yields a codec with an empty support.
func NewHuTucker(text []byte) *HuTucker {
	ht := &HuTucker{codes: map[byte]string{}, decode: iradix.New()}
	if len(text) == 0 {
		return ht
	}

	freq := newFrequencyTable(text)
	alphabet := freq.symbols

	nodes := make([]*htNode, len(alphabet))
	for i, sym := range alphabet {
		cnt, _ := freq.weight(sym)
		nodes[i] = &htNode{sym: sym, isLeaf: true, count: cnt}
	}

	for len(nodes) > 1 {
		tgt := len(nodes) - 1
		for idx := 1; idx < len(nodes)-1; idx++ {
			if nodes[idx-1].count <= nodes[idx+1].count {
				tgt = idx
				break
			}
		}

		left, right := nodes[tgt-1], nodes[tgt]
		merged := &htNode{count: left.count + right.count, left: left, right: right}

		inserted := false
		for ins := tgt - 1; ins >= 1; ins-- {
			if nodes[ins-1].count >= merged.count {
				nodes = insertNode(nodes, ins, merged)
				inserted = true
				break
			}
		}
		if !inserted {
			nodes = insertNode(nodes, 0, merged)
		}
		nodes = removeNode(nodes, left)
		nodes = removeNode(nodes, right)
	}

	depths := leafDepths(nodes[0])

	root := &htNode{}
	type pathFrame struct {
		n     *htNode
		depth int
	}
	paths := []pathFrame{{root, 0}}
	for _, sym := range alphabet {
		for {
			p := paths[len(paths)-1]
			paths = paths[:len(paths)-1]
			if depths[sym] == p.depth {
				p.n.isLeaf, p.n.sym = true, sym
				break
			}
			p.n.left, p.n.right = &htNode{}, &htNode{}
			paths = append(paths,
				pathFrame{p.n.right, p.depth + 1},
				pathFrame{p.n.left, p.depth + 1},
			)
		}
	}

	ht.assignCodes(root, "")
	return ht
}

func leafDepths(root *htNode) map[byte]int {
	depths := map[byte]int{}
	type frame struct {
		n     *htNode
		depth int
	}
	stack := []frame{{root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if f.n.isLeaf {
			depths[f.n.sym] = f.depth
			continue
		}
		stack = append(stack, frame{f.n.right, f.depth + 1}, frame{f.n.left, f.depth + 1})
	}
	return depths
}

func insertNode(nodes []*htNode, at int, n *htNode) []*htNode {
	out := make([]*htNode, 0, len(nodes)+1)
	out = append(out, nodes[:at]...)
	out = append(out, n)
	out = append(out, nodes[at:]...)
	return out
}

func removeNode(nodes []*htNode, target *htNode) []*htNode {
	for i, n := range nodes {
		if n == target {
			return append(nodes[:i], nodes[i+1:]...)
		}
	}
	return nodes
}

func (ht *HuTucker) assignCodes(n *htNode, code string) {
	if n.isLeaf {
		if code == "" {
			code = "0"
		}
		ht.codes[n.sym] = code
		tree, _, _ := ht.decode.Insert([]byte(code), n.sym)
		ht.decode = tree
		return
	}
	ht.assignCodes(n.left, code+"0")
	ht.assignCodes(n.right, code+"1")
}

func (ht *HuTucker) Encode(sym byte) (string, error) {
	code, ok := ht.codes[sym]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return code, nil
}

func (ht *HuTucker) Decode(code string) (byte, error) {
	val, ok := ht.decode.Get([]byte(code))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return val.(byte), nil
}
