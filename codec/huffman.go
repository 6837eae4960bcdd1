package codec

import (
	"container/heap"
	"fmt"

	iradix "github.com/hashicorp/go-immutable-radix"
)

// huffmanNode is a node of the Huffman merge tree; leaves carry a
// symbol, internal nodes carry two children.
type huffmanNode struct {
	sym      byte
	isLeaf   bool
	count    int
	children [2]*huffmanNode
}

type huffmanHeap []*huffmanNode

func (h huffmanHeap) Len() int            { return len(h) }
func (h huffmanHeap) Less(i, j int) bool  { return h[i].count < h[j].count }
func (h huffmanHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *huffmanHeap) Push(x any)         { *h = append(*h, x.(*huffmanNode)) }
func (h *huffmanHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Huffman is a frequency-optimal prefix code built from a training
// text by repeatedly merging the two smallest-weight subtrees.
type Huffman struct {
	codes  map[byte]string
	decode *iradix.Tree
}

var _ Codec = (*Huffman)(nil)

// NewHuffman builds a Huffman codec from the byte frequencies of
// text. An empty text yields a codec with an empty support.
func NewHuffman(text []byte) *Huffman {
	h := &Huffman{codes: map[byte]string{}, decode: iradix.New()}
	if len(text) == 0 {
		return h
	}

	freq := newFrequencyTable(text)
	hp := make(huffmanHeap, 0, len(freq.symbols))
	for _, sym := range freq.symbols {
		cnt, _ := freq.weight(sym)
		hp = append(hp, &huffmanNode{sym: sym, isLeaf: true, count: cnt})
	}
	heap.Init(&hp)

	for hp.Len() > 1 {
		left := heap.Pop(&hp).(*huffmanNode)
		right := heap.Pop(&hp).(*huffmanNode)
		heap.Push(&hp, &huffmanNode{
			count:    left.count + right.count,
			children: [2]*huffmanNode{left, right},
		})
	}

	if hp.Len() == 1 {
		h.assignCodes(hp[0], "")
	}
	return h
}

func (h *Huffman) assignCodes(n *huffmanNode, code string) {
	if n.isLeaf {
		if code == "" {
			code = "0"
		}
		h.codes[n.sym] = code
		tree, _, _ := h.decode.Insert([]byte(code), n.sym)
		h.decode = tree
		return
	}
	h.assignCodes(n.children[0], code+"0")
	h.assignCodes(n.children[1], code+"1")
}

func (h *Huffman) Encode(sym byte) (string, error) {
	code, ok := h.codes[sym]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownSymbol, sym)
	}
	return code, nil
}

func (h *Huffman) Decode(code string) (byte, error) {
	val, ok := h.decode.Get([]byte(code))
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownCode, code)
	}
	return val.(byte), nil
}
