package codec

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

const codecText = "this is the winter of our discontent"

func roundTrip(t *testing.T, c Codec, text string) {
	t.Helper()
	var decoded []byte
	for i := 0; i < len(text); i++ {
		code, err := c.Encode(text[i])
		require.NoError(t, err)
		sym, err := c.Decode(code)
		require.NoError(t, err)
		decoded = append(decoded, sym)
	}
	require.Equal(t, text, string(decoded))
}

func TestFixedWidthRoundTrip(t *testing.T) {
	roundTrip(t, FixedWidth{}, codecText)
}

func TestFixedWidthRejectsNonASCII(t *testing.T) {
	var fw FixedWidth
	_, err := fw.Encode(0xFF)
	require.ErrorIs(t, err, ErrUnknownSymbol)

	_, err = fw.Decode("1")
	require.ErrorIs(t, err, ErrUnknownCode)
	_, err = fw.Decode("22222222")
	require.ErrorIs(t, err, ErrUnknownCode)
}

func TestHuffmanEmpty(t *testing.T) {
	h := NewHuffman(nil)
	_, err := h.Encode('a')
	require.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestHuffmanRoundTrip(t *testing.T) {
	roundTrip(t, NewHuffman([]byte(codecText)), codecText)
}

// TestHuffmanCompression mirrors HuffmanCodecTests.test_compression: a
// symbol with strictly higher frequency never gets a strictly longer
// codeword than a less frequent one.
func TestHuffmanCompression(t *testing.T) {
	h := NewHuffman([]byte(codecText))

	freq := map[byte]int{}
	for i := 0; i < len(codecText); i++ {
		freq[codecText[i]]++
	}

	type entry struct {
		sym byte
		cnt int
	}
	table := make([]entry, 0, len(freq))
	for sym, cnt := range freq {
		table = append(table, entry{sym, cnt})
	}
	sort.Slice(table, func(i, j int) bool { return table[i].cnt < table[j].cnt })

	for i, e := range table {
		code, err := h.Encode(e.sym)
		require.NoError(t, err)
		for _, nxt := range table[i:] {
			if nxt.cnt > e.cnt {
				nxtCode, err := h.Encode(nxt.sym)
				require.NoError(t, err)
				require.GreaterOrEqual(t, len(code), len(nxtCode))
			}
		}
	}
}

func TestHuffmanUnknownCode(t *testing.T) {
	h := NewHuffman([]byte(codecText))
	_, err := h.Decode("11111111111111")
	require.ErrorIs(t, err, ErrUnknownCode)
}

func TestHuTuckerEmpty(t *testing.T) {
	ht := NewHuTucker(nil)
	_, err := ht.Encode('A')
	require.ErrorIs(t, err, ErrUnknownSymbol)
}

func TestHuTuckerRoundTrip(t *testing.T) {
	roundTrip(t, NewHuTucker([]byte(codecText)), codecText)
	roundTrip(t, NewHuTucker([]byte("AAABBCDDDDEEEEE")), "AAABBCDDDDEEEEE")
}

// TestHuTuckerPreservesAlphabetOrder is the defining property of the
// Hu-Tucker code (spec §4.E): codewords sort in the same order as the
// symbols they encode.
func TestHuTuckerPreservesAlphabetOrder(t *testing.T) {
	text := "AAABBCDDDDEEEEE"
	ht := NewHuTucker([]byte(text))

	alphabet := []byte("ABCDE")
	for i := 0; i < len(alphabet); i++ {
		for j := i + 1; j < len(alphabet); j++ {
			ci, err := ht.Encode(alphabet[i])
			require.NoError(t, err)
			cj, err := ht.Encode(alphabet[j])
			require.NoError(t, err)
			require.Less(t, ci, cj)
		}
	}
}

func TestHuTuckerUnknownCode(t *testing.T) {
	ht := NewHuTucker([]byte("AAABBCDDDDEEEEE"))
	_, err := ht.Decode("000000000000")
	require.ErrorIs(t, err, ErrUnknownCode)
}
