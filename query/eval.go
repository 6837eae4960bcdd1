package query

import (
	"errors"
	"fmt"
	"strconv"

	"succinct/jsonindex"
)

// ErrType is returned when a filter is applied to a value it cannot
// operate on (indexing a string, iterating a number, ...), unless the
// filter was marked optional ("?"), in which case the offending node
// is silently dropped instead.
var ErrType = errors.New("query: type error")

// result is one value flowing through a query pipeline: either a
// document-backed jsonindex.Node, or a literal computed by the query
// itself (a primitive filter's value, a slice's sub-list, or null).
// Evaluation is eager: every stage runs to completion over the whole
// stream before the next stage starts, unlike the reference
// implementation's lazy generators. Go has no generator sugar and jq
// result sets are bounded by document size, so nothing is gained by
// threading laziness through every stage by hand, and an eager
// pipeline sidesteps a subtlety in the reference's indexer handling
// where the index-expression stream and the value stream would
// otherwise have to be torn off the same generator.
type result struct {
	node jsonindex.Node
	lit  any
	null bool
}

func nodeResult(n jsonindex.Node) result { return result{node: n} }
func litResult(v any) result             { return result{lit: v} }
func nullResult() result                 { return result{null: true} }

func (identityExpr) eval(in []result) ([]result, error) {
	return in, nil
}

func (e *primitiveExpr) eval(in []result) ([]result, error) {
	return []result{litResult(e.lit.value)}, nil
}

func (e *propertiesExpr) eval(in []result) ([]result, error) {
	stream := in
	for _, step := range e.steps {
		var next []result
		for _, r := range stream {
			obj, ok := r.node.(*jsonindex.Object)
			if !ok {
				if step.optional {
					continue
				}
				return nil, fmt.Errorf("%w: cannot index %s with %q", ErrType, kindName(r), step.key)
			}
			val, found, err := obj.Get(step.key)
			if err != nil {
				return nil, err
			}
			if !found {
				next = append(next, nullResult())
				continue
			}
			next = append(next, nodeResult(val))
		}
		stream = next
	}
	return stream, nil
}

func (e *iteratorExpr) eval(in []result) ([]result, error) {
	var out []result
	for _, r := range in {
		switch v := r.node.(type) {
		case *jsonindex.List:
			n, err := v.Len()
			if err != nil {
				return nil, err
			}
			for i := 0; i < n; i++ {
				el, err := v.At(i)
				if err != nil {
					return nil, err
				}
				out = append(out, nodeResult(el))
			}
		case *jsonindex.Object:
			vals, err := v.Values()
			if err != nil {
				return nil, err
			}
			for _, val := range vals {
				out = append(out, nodeResult(val))
			}
		default:
			if e.optional {
				continue
			}
			return nil, fmt.Errorf("%w: cannot iterate over %s", ErrType, kindName(r))
		}
	}
	return out, nil
}

func (e *concatenatorExpr) eval(in []result) ([]result, error) {
	var out []result
	for _, part := range e.parts {
		res, err := part.eval(in)
		if err != nil {
			return nil, err
		}
		out = append(out, res...)
	}
	return out, nil
}

// indexItemValues evaluates one index item into the list of index
// values ("bar","foo" for .["bar","foo"], {.bar, .foo} evaluated per
// node for .[.bar,.foo]) to apply against the node stream.
func indexItemValues(item indexItem, stream []result) ([]result, error) {
	switch {
	case item.lit != nil:
		return []result{litResult(item.lit.value)}, nil
	case item.slice != nil:
		return []result{{lit: item.slice}}, nil
	default:
		return item.sub.eval(stream)
	}
}

func (e *indexerExpr) eval(in []result) ([]result, error) {
	var out []result
	for _, item := range e.items {
		values, err := indexItemValues(item, in)
		if err != nil {
			return nil, err
		}
		for _, iv := range values {
			for _, r := range in {
				res, ok, err := applyIndex(r, iv, e.optional)
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, res)
				}
			}
		}
	}
	return out, nil
}

func applyIndex(r result, item result, optional bool) (result, bool, error) {
	if sl, ok := item.lit.(*sliceSpec); ok {
		list, ok := r.node.(*jsonindex.List)
		if !ok {
			if optional {
				return result{}, false, nil
			}
			return result{}, false, fmt.Errorf("%w: cannot slice %s", ErrType, kindName(r))
		}
		els, err := list.PySlice(sl.start, sl.end)
		if err != nil {
			return result{}, false, err
		}
		lits := make([]result, len(els))
		for i, el := range els {
			lits[i] = nodeResult(el)
		}
		return result{lit: lits}, true, nil
	}

	switch v := r.node.(type) {
	case *jsonindex.Object:
		key, ok := asString(item)
		if !ok {
			if optional {
				return result{}, false, nil
			}
			return result{}, false, fmt.Errorf("%w: cannot index object with %v", ErrType, item.lit)
		}
		val, found, err := v.Get(key)
		if err != nil {
			return result{}, false, err
		}
		if !found {
			return nullResult(), true, nil
		}
		return nodeResult(val), true, nil

	case *jsonindex.List:
		idx, ok := asInt(item)
		if !ok {
			if optional {
				return result{}, false, nil
			}
			return result{}, false, fmt.Errorf("%w: cannot index list with %v", ErrType, item.lit)
		}
		el, err := v.At(idx)
		if err != nil {
			return nullResult(), true, nil
		}
		return nodeResult(el), true, nil

	default:
		if optional {
			return result{}, false, nil
		}
		return result{}, false, fmt.Errorf("%w: cannot index %s", ErrType, kindName(r))
	}
}

func asString(r result) (string, bool) {
	if r.node != nil {
		text, err := r.node.Text()
		if err != nil {
			return "", false
		}
		return unquote(text), true
	}
	s, ok := r.lit.(string)
	return s, ok
}

func asInt(r result) (int, bool) {
	if r.node != nil {
		// A node-valued index (".[.foo]" where .foo resolves to a
		// numeric primitive) parses its source text as a number,
		// matching the reference's item = int(str(item)).
		text, err := r.node.Text()
		if err != nil {
			return 0, false
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return 0, false
		}
		i := int(v)
		if v != float64(i) {
			i++
		}
		return i, true
	}
	switch v := r.lit.(type) {
	case int64:
		return int(v), true
	case float64:
		// A non-integral float index rounds up by truncating and
		// adding one, matching the reference mkint, not math.Ceil
		// (which would round a negative fraction the wrong way).
		i := int(v)
		if v != float64(i) {
			i++
		}
		return i, true
	case int:
		return v, true
	}
	return 0, false
}

func kindName(r result) string {
	switch v := r.node.(type) {
	case *jsonindex.List:
		return "list"
	case *jsonindex.Object:
		return "object"
	case *jsonindex.Primitive:
		return "primitive"
	default:
		_ = v
		return "value"
	}
}
