package query

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func check(t *testing.T, src, jq string, want []string) {
	t.Helper()
	got, err := Run([]byte(src), jq)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestComment(t *testing.T) {
	check(t, `[]`, ". # ignore this", []string{"[]"})
}

func TestIdentity(t *testing.T) {
	check(t, `[0,1,2]`, ".", []string{"[0,1,2]"})
	check(t, `{"foo":0,"bar":1}`, ".", []string{`{"foo":0,"bar":1}`})
}

func TestProperties(t *testing.T) {
	check(t, `{}`, ".foo", []string{"null"})
	check(t, `{"foo":"val"}`, ".foo", []string{`"val"`})
	check(t, `{"foo":"val"}`, ".bar", []string{"null"})
	check(t, `{"foo":{"bar":[0,1,2]}}`, ".foo.bar", []string{"[0,1,2]"})

	_, err := Run([]byte(`[0,1,2]`), ".foo")
	require.ErrorIs(t, err, ErrType)

	got, err := Run([]byte(`[0,1,2]`), ".foo?")
	require.NoError(t, err)
	require.Empty(t, got)

	check(t, `{"foo":true,"bar":false}`, ".bar, .foo", []string{"false", "true"})
}

func TestIndexer(t *testing.T) {
	check(t, `{}`, ".", []string{"{}"})
	check(t, `{"foo":"val"}`, `.["foo"]`, []string{`"val"`})
	check(t, `{"foo":"val"}`, `.["bar"]`, []string{"null"})
	check(t, `{"foo":{"bar":[0,1,2]}}`, `.["foo"] | .["bar"]`, []string{"[0,1,2]"})

	_, err := Run([]byte(`[0,1,2]`), `.["foo"]`)
	require.ErrorIs(t, err, ErrType)
	got, err := Run([]byte(`[0,1,2]`), `.["foo"]?`)
	require.NoError(t, err)
	require.Empty(t, got)

	check(t, `{"foo":true,"bar":false}`, `.["bar","foo"]`, []string{"false", "true"})
	check(t, `{"foo":true,"bar":false}`, `.["bar"], .["foo"]`, []string{"false", "true"})

	check(t, `[]`, ".", []string{"[]"})
	check(t, `[true,false,10]`, ".[0]", []string{"true"})
	check(t, `[true,false,10]`, ".[-1]", []string{"10"})
	check(t, `[true,false,10]`, ".[:]", []string{"[true,false,10]"})
	check(t, `[true,false,10]`, ".[1:]", []string{"[false,10]"})
	check(t, `[true,false,10]`, ".[:2]", []string{"[true,false]"})
	check(t, `[true,false,10]`, ".[1:-1]", []string{"[false]"})

	_, err = Run([]byte(`{"foo":true}`), ".[0]")
	require.ErrorIs(t, err, ErrType)
	got, err = Run([]byte(`{"foo":true}`), ".[0]?")
	require.NoError(t, err)
	require.Empty(t, got)

	check(t, `[0,1,2]`, ".[1,0]", []string{"1", "0"})
	check(t, `[0,1,2]`, ".[1], .[0]", []string{"1", "0"})
}

func TestIterator(t *testing.T) {
	check(t, `[0,1,2]`, ".[]", []string{"0", "1", "2"})
	check(t, `[[0,1,2],[3,4,5]]`, ".[]", []string{"[0,1,2]", "[3,4,5]"})
	check(t, `{"foo":true,"bar":false}`, ".[]", []string{"true", "false"})

	_, err := Run([]byte(`{"foo":true}`), ".foo | .[]")
	require.ErrorIs(t, err, ErrType)
	got, err := Run([]byte(`{"foo":true}`), ".foo | .[]?")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestPipe(t *testing.T) {
	check(t, `{"foo":true}`, ". | .foo", []string{"true"})
	check(t, `{"foo":true}`, ".foo | .", []string{"true"})
	check(t, `[{"foo":1},{"foo":2}]`, ".[] | .foo", []string{"1", "2"})
	check(t, `{"foo":[0,1,2]}`, ".foo | .[0]", []string{"0"})
	check(t, `{"foo":[0,1,2],"bar":[3,4,5]}`, ".foo, .bar | .[-1]", []string{"2", "5"})
	check(t, `[{"foo":true},{"bar":false}]`, ".[] | .foo, .bar", []string{"true", "null", "null", "false"})
	check(t, `{"foo":"bar","bar":"foo"}`, ".[.bar, .foo]", []string{`"bar"`, `"foo"`})
}

func TestCache(t *testing.T) {
	c := NewCache()
	q1, err := c.Compile(".foo")
	require.NoError(t, err)
	q2, err := c.Compile(".foo")
	require.NoError(t, err)
	require.Same(t, q1, q2)
}
