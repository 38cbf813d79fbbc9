package canonical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestStringifyKeyOrderInvariance(t *testing.T) {
	a := decode(t, `{"a":1,"b":2}`)
	b := decode(t, `{"b":2,"a":1}`)

	sa, err := Stringify(a)
	require.NoError(t, err)
	sb, err := Stringify(b)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	assert.Equal(t, `{"a":1,"b":2}`, sa)
}

func TestStringifyNested(t *testing.T) {
	a := decode(t, `{"z":{"q":true,"p":[3,2,1]},"a":null}`)
	b := decode(t, `{"a":null,"z":{"p":[3,2,1],"q":true}}`)

	sa, err := Stringify(a)
	require.NoError(t, err)
	sb, err := Stringify(b)
	require.NoError(t, err)

	assert.Equal(t, sa, sb)
	// Array order must be preserved, keys sorted at every level.
	assert.Equal(t, `{"a":null,"z":{"p":[3,2,1],"q":true}}`, sa)
}

func TestStringifyDeterministic(t *testing.T) {
	v := decode(t, `{"items":[{"id":2},{"id":1}],"name":"shelf"}`)

	first, err := Stringify(v)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Stringify(v)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestStringifyNil(t *testing.T) {
	s, err := Stringify(nil)
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestStringifyScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"string", "hello", `"hello"`},
		{"number", float64(42), `42`},
		{"bool", true, `true`},
		{"array", []any{float64(1), "a"}, `[1,"a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Stringify(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStringifyStructInput(t *testing.T) {
	type record struct {
		B int    `json:"b"`
		A string `json:"a"`
	}
	got, err := Stringify(record{B: 2, A: "x"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":"x","b":2}`, got)
}
