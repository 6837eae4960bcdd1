// Package query implements a small jq-like filter language over
// semi-indexed JSON documents (spec §4.H, §6): identity, property,
// indexer, slice, iterator, pipe, and comma filters, evaluated
// directly against a jsonindex.Document without ever fully parsing
// it.
//
// Grounded on succinct/json.py's Query class and its lark grammar;
// hand-rolled here since no parser-combinator library appears
// anywhere in the example pack, unlike jsonindex's other dependents.
package query

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/zeebo/xxh3"

	"succinct/jsonindex"
)

// Query is a compiled filter, ready to run against any document.
type Query struct {
	src    string
	stages []expr
}

// Compile parses jq into a Query. The same Query may be run against
// many documents.
func Compile(jq string) (*Query, error) {
	stages, err := parseQuery(jq)
	if err != nil {
		return nil, err
	}
	return &Query{src: jq, stages: stages}, nil
}

// String returns the original filter text.
func (q *Query) String() string { return q.src }

// Execute runs the query against root, returning every result value
// rendered as JSON text, in order.
func (q *Query) Execute(root jsonindex.Node) ([]string, error) {
	stream := []result{nodeResult(root)}
	for _, stage := range q.stages {
		var err error
		stream, err = stage.eval(stream)
		if err != nil {
			return nil, err
		}
	}
	out := make([]string, len(stream))
	for i, r := range stream {
		text, err := render(r)
		if err != nil {
			return nil, err
		}
		out[i] = text
	}
	return out, nil
}

func render(r result) (string, error) {
	if r.null {
		return "null", nil
	}
	if r.node != nil {
		text, err := r.node.Text()
		if err != nil {
			return "", err
		}
		return text, nil
	}
	if list, ok := r.lit.([]result); ok {
		var buf bytes.Buffer
		buf.WriteByte('[')
		for i, el := range list {
			if i > 0 {
				buf.WriteByte(',')
			}
			text, err := render(el)
			if err != nil {
				return "", err
			}
			buf.WriteString(text)
		}
		buf.WriteByte(']')
		return buf.String(), nil
	}
	encoded, err := json.Marshal(r.lit)
	if err != nil {
		return "", fmt.Errorf("query: cannot render %v: %w", r.lit, err)
	}
	return string(encoded), nil
}

// cache memoizes compiled queries by a fast non-cryptographic hash of
// their source text, the same technique codec's frequency table uses
// for symbol lookups: a query engine run as a long-lived service
// reuses a handful of filters across many documents, and hashing
// avoids re-lexing and re-parsing identical filter text on every
// call.
type cache struct {
	mu sync.RWMutex
	m  map[uint64]*Query
}

// NewCache returns an empty compiled-query cache.
func NewCache() *cache {
	return &cache{m: map[uint64]*Query{}}
}

// Compile returns a cached Query for jq, compiling and storing it on
// first use.
func (c *cache) Compile(jq string) (*Query, error) {
	h := xxh3.HashString(jq)

	c.mu.RLock()
	q, ok := c.m[h]
	c.mu.RUnlock()
	if ok {
		return q, nil
	}

	q, err := Compile(jq)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.m[h] = q
	c.mu.Unlock()
	return q, nil
}

// ErrEmpty is returned by Run for an empty source document.
var ErrEmpty = errors.New("query: empty source document")

// Run compiles and executes jq against the JSON text in src in one
// step, mirroring succinct/json.py's query() helper.
func Run(src []byte, jq string) ([]string, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, ErrEmpty
	}
	q, err := Compile(jq)
	if err != nil {
		return nil, err
	}
	doc := jsonindex.NewDocument(src)
	root, err := doc.Root()
	if err != nil {
		return nil, err
	}
	return q.Execute(root)
}
