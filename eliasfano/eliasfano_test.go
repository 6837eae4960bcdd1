package eliasfano_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"succinct/eliasfano"
)

func TestLiteralSequence(t *testing.T) {
	values := []uint64{2, 3, 5, 7, 11, 13, 24, 100}
	ef, err := eliasfano.New(values)
	require.NoError(t, err)
	require.Equal(t, len(values), ef.Len())

	for i, want := range values {
		got, err := ef.At(i)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestSlice(t *testing.T) {
	values := []uint64{0, 1, 1, 4, 8, 8, 8, 20}
	ef, err := eliasfano.New(values)
	require.NoError(t, err)

	got, err := ef.Slice(2, 6)
	require.NoError(t, err)
	require.Equal(t, values[2:6], got)

	got, err = ef.Slice(-5, 1000)
	require.NoError(t, err)
	require.Equal(t, values, got)
}

func TestRejectsNonMonotone(t *testing.T) {
	_, err := eliasfano.New([]uint64{1, 2, 1})
	require.Error(t, err)
}

func TestEmpty(t *testing.T) {
	ef, err := eliasfano.New(nil)
	require.NoError(t, err)
	require.Equal(t, 0, ef.Len())
	_, err = ef.At(0)
	require.Error(t, err)
}

func TestOutOfRange(t *testing.T) {
	ef, err := eliasfano.New([]uint64{1, 2, 3})
	require.NoError(t, err)
	_, err = ef.At(-1)
	require.Error(t, err)
	_, err = ef.At(3)
	require.Error(t, err)
}

func TestRandomMonotoneSequences(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for trial := 0; trial < 30; trial++ {
		n := 1 + r.Intn(200)
		values := make([]uint64, n)
		v := uint64(0)
		for i := range values {
			v += uint64(r.Intn(50))
			values[i] = v
		}

		ef, err := eliasfano.New(values)
		require.NoError(t, err)
		for i, want := range values {
			got, err := ef.At(i)
			require.NoError(t, err)
			require.Equal(t, want, got, "index %d", i)
		}
	}
}
