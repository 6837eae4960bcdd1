package jsonindex

import (
	"bytes"
	"errors"
	"fmt"

	"succinct/tree"
)

// ErrKeyNotFound names a missing object key. Object.Get does not
// return it: Get reports a missing key with ok == false and a nil error.
var ErrKeyNotFound = errors.New("jsonindex: key not found")

// ErrIndexOutOfRange is returned by List.At for an index outside
// [-Len(), Len()).
var ErrIndexOutOfRange = errors.New("jsonindex: index out of range")

// Node is a lazily-rendered JSON value. Every node keeps only its
// position in the succinct tree; its text is read from the source
// document on demand, never eagerly parsed.
type Node interface {
	// Text returns the node's exact source text, trimmed of
	// surrounding whitespace.
	Text() (string, error)
}

// base implements the span lookup shared by Primitive, List, and
// Object: a node's text is exactly the source bytes between its own
// opening token and its matching closing token.
type base struct {
	doc  *Document
	node tree.Node
	// bareSpan is set instead of node for a document with no
	// structural tokens at all (a top-level primitive with no
	// enclosing container), which has no tree position to speak of.
	bareSpan []byte
}

func (b base) span() ([]byte, error) {
	if b.bareSpan != nil {
		return b.bareSpan, nil
	}
	size, err := b.node.Size()
	if err != nil {
		return nil, err
	}
	closePos := b.node.Pos() + 2*size - 1
	return b.doc.idx.Slice(b.node.Pos(), closePos)
}

func (b base) Text() (string, error) {
	text, err := b.span()
	if err != nil {
		return "", err
	}
	return string(bytes.TrimSpace(text)), nil
}

func trimSpace(b []byte) []byte { return bytes.TrimSpace(b) }

// Primitive is a JSON string, number, boolean, or null value.
type Primitive struct{ base }

// List is a JSON array; its children are the value slot nodes
// directly inside its brackets, one per element.
type List struct{ base }

// Len returns the number of elements in the list.
func (l *List) Len() (int, error) {
	n, err := l.node.Degree()
	if err != nil || n != 1 {
		return n, err
	}
	// "[]" still has one value slot; with no text in it, it holds no element.
	slot, err := l.node.Child(0)
	if err != nil {
		return 0, err
	}
	if text, err := (base{doc: l.doc, node: slot}).Text(); err != nil || text == "" {
		return 0, err
	}
	return 1, nil
}

// At returns the element at index i, supporting negative indices as
// in Python.
func (l *List) At(i int) (Node, error) {
	n, err := l.Len()
	if err != nil {
		return nil, err
	}
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return nil, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	child, err := l.node.Child(i)
	if err != nil {
		return nil, err
	}
	return l.doc.render(child)
}

// Slice returns the elements at indices [lo, hi), clamped to
// [0, Len()).
func (l *List) Slice(lo, hi int) ([]Node, error) {
	n, err := l.Len()
	if err != nil {
		return nil, err
	}
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
	for i := lo; i < hi; i++ {
		el, err := l.At(i)
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}
	return out, nil
}

// PySlice returns the elements at [start, end), interpreting nil
// bounds and negative indices the way Python list slicing does.
func (l *List) PySlice(start, end *int) ([]Node, error) {
	n, err := l.Len()
	if err != nil {
		return nil, err
	}
	lo, hi := 0, n
	if start != nil {
		lo = *start
		if lo < 0 {
			lo += n
		}
		if lo < 0 {
			lo = 0
		}
		if lo > n {
			lo = n
		}
	}
	if end != nil {
		hi = *end
		if hi < 0 {
			hi += n
		}
		if hi < 0 {
			hi = 0
		}
		if hi > n {
			hi = n
		}
	}
	return l.Slice(lo, hi)
}

// Object is a JSON object; its children alternate key slot, value
// slot, one pair per member.
type Object struct{ base }

// Values returns the object's member values, in document order.
func (o *Object) Values() ([]Node, error) {
	children, err := o.pairs()
	if err != nil {
		return nil, err
	}
	out := make([]Node, 0, len(children)/2)
	for i := 0; i+1 < len(children); i += 2 {
		val, err := o.doc.render(children[i+1])
		if err != nil {
			return nil, err
		}
		out = append(out, val)
	}
	return out, nil
}

func (o *Object) pairs() ([]tree.Node, error) {
	return o.node.Children()
}

func (o *Object) keyText(keyNode tree.Node) (string, error) {
	size, err := keyNode.Size()
	if err != nil {
		return "", err
	}
	closePos := keyNode.Pos() + 2*size - 1
	text, err := o.doc.idx.Slice(keyNode.Pos(), closePos)
	if err != nil {
		return "", err
	}
	text = trimSpace(text)
	if len(text) >= 2 && text[0] == '"' && text[len(text)-1] == '"' {
		text = text[1 : len(text)-1]
	}
	return string(text), nil
}

// Keys returns the object's member keys, in document order.
func (o *Object) Keys() ([]string, error) {
	children, err := o.pairs()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(children)/2)
	for i := 0; i+1 < len(children); i += 2 {
		key, err := o.keyText(children[i])
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Get returns the value stored under key, or ok == false if the
// object has no such member.
func (o *Object) Get(key string) (val Node, ok bool, err error) {
	children, err := o.pairs()
	if err != nil {
		return nil, false, err
	}
	for i := 0; i+1 < len(children); i += 2 {
		k, err := o.keyText(children[i])
		if err != nil {
			return nil, false, err
		}
		if k != key {
			continue
		}
		val, err := o.doc.render(children[i+1])
		if err != nil {
			return nil, false, err
		}
		return val, true, nil
	}
	return nil, false, nil
}
