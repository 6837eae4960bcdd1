// Package jsonindex implements semi-indexed JSON documents (spec
// §4.H): a succinct tree over the document's structural skeleton
// (brackets, braces, colons, commas) paired with an EliasFano index
// mapping tree positions back to byte offsets in the original text.
// Values are never eagerly parsed — a Node only materializes the
// slice of source bytes it spans, so large documents can be queried
// (package query) without ever deserializing the parts that aren't
// visited.
//
// Grounded on succinct/json.py's Document/Index/Node hierarchy.
package jsonindex

import (
	"errors"
	"fmt"

	"succinct/bitvector"
	"succinct/eliasfano"
	"succinct/parens"
	"succinct/tree"
)

// ErrMalformed is returned when the source text's bracket/brace
// nesting is not well-formed.
var ErrMalformed = errors.New("jsonindex: malformed json")

// Index maps succinct tree node positions back to byte offsets in
// the original source text.
type Index struct {
	src []byte
	enc *eliasfano.EliasFano
}

// Len returns the number of succinct tree positions indexed: each
// structural token occupies two adjacent tree positions; Lookup maps
// the first to the token's own byte offset and the second to the byte
// immediately after it.
func (idx *Index) Len() int { return idx.enc.Len() * 2 }

// Lookup returns the byte offset in the source text corresponding to
// succinct tree position pos.
func (idx *Index) Lookup(pos int) (int, error) {
	off, err := idx.enc.At(pos / 2)
	if err != nil {
		return 0, err
	}
	return int(off) + pos%2, nil
}

// Slice returns the source text between the byte offsets
// corresponding to tree positions [lo, hi).
func (idx *Index) Slice(lo, hi int) ([]byte, error) {
	s, err := idx.Lookup(lo)
	if err != nil {
		return nil, err
	}
	e := len(idx.src)
	if hi < idx.Len() {
		e, err = idx.Lookup(hi)
		if err != nil {
			return nil, err
		}
	}
	if s > len(idx.src) {
		s = len(idx.src)
	}
	if e > len(idx.src) {
		e = len(idx.src)
	}
	if e < s {
		e = s
	}
	return idx.src[s:e], nil
}

// buildSkeleton walks src and records, for every structural token
// ('[' '{' ']' '}' ':' ','), its byte offset and the pair of
// balanced-parenthesis bits it contributes.
//
// A container's bracket contributes two open (or two close) bits,
// not one: the first represents the container itself, the second an
// implicit "value slot" that immediately follows it — so a container
// with no separators inside still has exactly one child to render.
// A separator contributes a close bit then an open bit: the close
// ends the preceding slot, the open starts the next one. Because
// Index.Lookup maps a token's two tree positions to its own byte
// offset and the byte right after it, a slot's span always begins
// one byte past whatever token opened it and ends exactly at
// whatever token closes it — which is precisely the value's text.
//
// Every other byte — whitespace, string contents, numeric and
// keyword literals — contributes nothing: its text is recovered by
// scanning from its enclosing slot's position instead.
func buildSkeleton(src []byte) (bits []bool, positions []uint64, err error) {
	n := len(src)
	for i := 0; i < n; {
		c := src[i]
		switch {
		case c == '[' || c == '{':
			positions = append(positions, uint64(i))
			bits = append(bits, true, true)
			i++
		case c == ']' || c == '}':
			positions = append(positions, uint64(i))
			bits = append(bits, false, false)
			i++
		case c == ':' || c == ',':
			positions = append(positions, uint64(i))
			bits = append(bits, false, true)
			i++
		case c == '"':
			j := i + 1
			for j < n && src[j] != '"' {
				if src[j] == '\\' && j+1 < n {
					j += 2
					continue
				}
				j++
			}
			if j >= n {
				return nil, nil, fmt.Errorf("%w: unterminated string", ErrMalformed)
			}
			i = j + 1
		default:
			i++
		}
	}
	if len(bits) > 0 && (len(bits) < 2 || bits[len(bits)-2] || bits[len(bits)-1]) {
		return nil, nil, ErrMalformed
	}
	return bits, positions, nil
}

// Document is a lazily-loaded succinct representation of a JSON
// document: its skeleton tree and index are built once, on first
// access, and its values are rendered to Node on demand.
type Document struct {
	src    []byte
	nav    *tree.Navigator
	idx    *Index
	loaded bool
	// bare holds the document's only value when src contains no
	// structural tokens at all (a top-level primitive), since a
	// zero-node tree has no BalancedParentheses encoding.
	bare bool
}

// NewDocument wraps src for semi-indexed access without parsing it.
func NewDocument(src []byte) *Document {
	return &Document{src: src}
}

func (d *Document) load() error {
	if d.loaded {
		return nil
	}
	bits, positions, err := buildSkeleton(d.src)
	if err != nil {
		return err
	}
	if len(bits) == 0 {
		d.bare = true
		d.loaded = true
		return nil
	}
	enc, err := eliasfano.New(positions)
	if err != nil {
		return err
	}
	bp, err := parens.New(bitvector.NewBlockFromBools(bits))
	if err != nil {
		return err
	}
	d.nav = tree.New(bp)
	d.idx = &Index{src: d.src, enc: enc}
	d.loaded = true
	return nil
}

// Root returns the document's root value.
func (d *Document) Root() (Node, error) {
	if err := d.load(); err != nil {
		return nil, err
	}
	if d.bare {
		return &Primitive{base{doc: d, bareSpan: trimSpace(d.src)}}, nil
	}
	return d.render(d.nav.Root())
}

// render classifies a succinct tree node by the first non-whitespace
// byte at its source position: '[' and '{' get container nodes,
// everything else is a primitive (string, number, boolean, or null).
func (d *Document) render(n tree.Node) (Node, error) {
	pos, err := d.idx.Lookup(n.Pos())
	if err != nil {
		return nil, err
	}
	for pos < len(d.src) && isSpace(d.src[pos]) {
		pos++
	}
	if pos >= len(d.src) {
		return nil, fmt.Errorf("%w: truncated value", ErrMalformed)
	}

	switch d.src[pos] {
	case '[':
		cn, err := d.containerNode(n)
		if err != nil {
			return nil, err
		}
		return &List{base{doc: d, node: cn}}, nil
	case '{':
		cn, err := d.containerNode(n)
		if err != nil {
			return nil, err
		}
		return &Object{base{doc: d, node: cn}}, nil
	default:
		return &Primitive{base{doc: d, node: n}}, nil
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// containerNode skips a leading separator position: a child
// iteration can land on the comma preceding a container, which sits
// at an odd tree position one before the container's own even
// opening position.
func (d *Document) containerNode(n tree.Node) (tree.Node, error) {
	p := n.Pos()
	if p%2 == 0 {
		return n, nil
	}
	return d.nav.Node(p + 1)
}
