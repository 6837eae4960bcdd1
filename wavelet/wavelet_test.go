package wavelet

import (
	"testing"

	"github.com/stretchr/testify/require"

	"succinct/codec"
)

const wtText = "to be or not to be"

func build(t *testing.T, text string) *Tree {
	t.Helper()
	tree, err := New([]byte(text), nil)
	require.NoError(t, err)
	return tree
}

func TestAccess(t *testing.T) {
	tree := build(t, wtText)

	sym, err := tree.At(0)
	require.NoError(t, err)
	require.Equal(t, wtText[0], sym)

	sym, err = tree.At(-1)
	require.NoError(t, err)
	require.Equal(t, wtText[len(wtText)-1], sym)

	slice, err := tree.Slice(1, 3)
	require.NoError(t, err)
	require.Equal(t, wtText[1:3], string(slice))

	rev, err := tree.Reversed()
	require.NoError(t, err)

	reversedWant := make([]byte, len(wtText))
	for i := range wtText {
		reversedWant[i] = wtText[len(wtText)-1-i]
	}
	require.Equal(t, string(reversedWant), string(rev))

	for i := 0; i < len(wtText); i++ {
		sym, err := tree.At(i)
		require.NoError(t, err)
		require.Equal(t, wtText[i], sym)
	}
}

func TestRank(t *testing.T) {
	tree := build(t, wtText)

	for _, c := range []byte(wtText) {
		for i := 0; i < len(wtText); i++ {
			want := 0
			for j := 0; j <= i; j++ {
				if wtText[j] == c {
					want++
				}
			}
			got, err := tree.Rank(c, i)
			require.NoError(t, err)
			require.Equal(t, want, got, "rank(%q, %d)", c, i)
		}
	}
}

func TestSelect(t *testing.T) {
	tree := build(t, wtText)

	for _, c := range []byte(wtText) {
		cnt := 0
		for i := 0; i < len(wtText); i++ {
			if wtText[i] != c {
				continue
			}
			cnt++
			got, err := tree.Select(c, cnt)
			require.NoError(t, err)
			require.Equal(t, i, got, "select(%q, %d)", c, cnt)
		}
	}
}

func TestBoundaries(t *testing.T) {
	tree := build(t, wtText)

	_, err := tree.At(len(wtText))
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.At(-len(wtText) - 1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	_, err = tree.Rank('t', -1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = tree.Rank('t', len(wtText))
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	got, err := tree.Rank('x', len(wtText)-1)
	require.NoError(t, err)
	require.Equal(t, 0, got)

	_, err = tree.Select('t', 0)
	require.Error(t, err)
	_, err = tree.Select('t', 4)
	require.Error(t, err)
	_, err = tree.Select('x', 1)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestEmptyText(t *testing.T) {
	tree := build(t, "")
	require.Equal(t, 0, tree.Len())
}

func TestWithHuffmanCodec(t *testing.T) {
	tree, err := New([]byte(wtText), codec.NewHuffman([]byte(wtText)))
	require.NoError(t, err)

	for i := 0; i < len(wtText); i++ {
		sym, err := tree.At(i)
		require.NoError(t, err)
		require.Equal(t, wtText[i], sym)
	}
}
