package query

// expr is one stage of a compiled query pipeline. It mirrors one of
// the Query.execute expression kinds in the reference implementation:
// identity, primitive, properties, indexer, iterator, or concatenator.
type expr interface {
	eval(in []result) ([]result, error)
}

// identityExpr passes its input stream through unchanged: the "."
// filter.
type identityExpr struct{}

// primitiveExpr yields a single literal value, ignoring its input
// stream: a bare "null", "true", "false", string, or number filter.
type primitiveExpr struct {
	lit literal
}

// propertyStep is one ".key" or .["key"] hop in a properties chain.
type propertyStep struct {
	key      string
	optional bool
}

// propertiesExpr extracts nested object values: ".foo.bar".
type propertiesExpr struct {
	steps []propertyStep
}

// indexItem is one comma-separated item inside ".[ ... ]": a literal
// key/index, a slice, or a nested sub-query evaluated per input node
// (as in ".[.bar, .foo]").
type indexItem struct {
	lit   *literal
	slice *sliceSpec
	sub   expr
}

// sliceSpec is a [start:end) array/string slice with Python-style
// open bounds and negative-index semantics.
type sliceSpec struct {
	start, end *int
}

// indexerExpr extracts container elements by key, index, or slice:
// ".[<item>(, <item>)*]".
type indexerExpr struct {
	items    []indexItem
	optional bool
}

// iteratorExpr expands every element of a list, or every value of an
// object: ".[]".
type iteratorExpr struct {
	optional bool
}

// concatenatorExpr runs each sub-expression over the same input
// stream and concatenates their outputs, in order: "a, b".
type concatenatorExpr struct {
	parts []expr
}

// literal is a parsed JSON scalar: nil, bool, int64, float64, or
// string.
type literal struct {
	value any
}
