// Package fulltext implements full-text indexes over byte strings
// (spec §4.G): SuffixArray, a naive suffix array supporting indexed
// access and substring search, and CompressedSA, a suffix-array
// variant that answers substring counts via FM-index-style backward
// search without ever materializing the array itself.
package fulltext

import "errors"

// ErrNotFound is returned by SuffixArray.Index when the queried
// substring does not occur in the text.
var ErrNotFound = errors.New("fulltext: substring not found")

// noSymbol represents the absence of a predecessor character: either
// "no byte precedes this suffix" (the suffix starting at text
// position 0) or "no byte precedes this pattern position" (the first
// character of a search pattern).
const noSymbol = -1
