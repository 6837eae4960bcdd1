// Package codec implements the bijections between a symbol alphabet
// and prefix-free binary codewords that package wavelet builds its
// tree shape from (spec §4.E): FixedWidth (7-bit ASCII), Huffman
// (frequency-optimal), and HuTucker (Huffman-like but alphabet-order
// preserving, via the Garsia-Wachs algorithm).
package codec

import "errors"

// ErrUnknownSymbol is returned by Encode for a symbol outside the
// codec's support.
var ErrUnknownSymbol = errors.New("codec: unknown symbol")

// ErrUnknownCode is returned by Decode for a codeword outside the
// codec's support.
var ErrUnknownCode = errors.New("codec: unknown code")

// Codec maps alphabet symbols to prefix-free binary codewords,
// written as strings of '0'/'1'.
type Codec interface {
	Encode(sym byte) (string, error)
	Decode(code string) (byte, error)
}
