package kv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStorage(t *testing.T) {
	getHeaders := func() *Storage {
		return New().
			Add("Foo", "bar").
			Add("Hello", "World").
			Add("Lorem", "ipsum").
			Add("hello", "Pavlo")
	}

	t.Run("order and duplicates", func(t *testing.T) {
		kv := getHeaders()

		want := []Pair{
			{"Foo", "bar"},
			{"Hello", "World"},
			{"Lorem", "ipsum"},
			{"hello", "Pavlo"},
		}

		require.Equal(t, want, kv.Expose())
		require.Equal(t, len(want), kv.Len())
	})

	t.Run("get is case-insensitive", func(t *testing.T) {
		kv := getHeaders()

		value, found := kv.Get("HELLO")
		require.True(t, found)
		require.Equal(t, "World", value)
		require.Equal(t, "World", kv.Value("hello"))
		require.Equal(t, "fallback", kv.ValueOr("missing", "fallback"))
		require.True(t, kv.Has("LOREM"))
		require.False(t, kv.Has("missing"))
	})

	t.Run("values preserve order", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, []string{"World", "Pavlo"}, kv.Values("Hello"))
		require.Nil(t, kv.Values("missing"))
	})

	t.Run("keys are unique", func(t *testing.T) {
		kv := getHeaders()
		require.Equal(t, []string{"Foo", "Hello", "Lorem"}, kv.Keys())
	})

	t.Run("clone is deep", func(t *testing.T) {
		kv := getHeaders()
		cloned := kv.Clone()
		kv.Clear()

		require.True(t, kv.Empty())
		require.Equal(t, 4, cloned.Len())
		require.Equal(t, "bar", cloned.Value("foo"))
	})

	t.Run("from pairs", func(t *testing.T) {
		kv := NewFromPairs([]Pair{{"a", "b"}, {"c", "d"}})
		require.Equal(t, "b", kv.Value("A"))
		require.Equal(t, 2, kv.Len())
	})
}
