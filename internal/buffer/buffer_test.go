package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func pushSegment(t *testing.T, buff Buffer, text string) Buffer {
	ok := buff.Append([]byte(text))
	require.True(t, ok)
	segment := buff.Finish()
	require.Equal(t, text, string(segment))
	return buff
}

func TestBuffer(t *testing.T) {
	t.Run("no growth", func(t *testing.T) {
		buff := New(10, 20)
		buff = pushSegment(t, buff, "Hello")
		buff = pushSegment(t, buff, "Here")
	})

	t.Run("with growth", func(t *testing.T) {
		buff := New(10, 20)
		// "Hello, World!" is 13 characters long, so the underlying slice
		// must grow to fit the second segment
		buff = pushSegment(t, buff, "Hello, ")
		buff = pushSegment(t, buff, "World!")
	})

	t.Run("overflow over the limit", func(t *testing.T) {
		buff := New(10, 20)
		buff = pushSegment(t, buff, "Hello, ")
		buff = pushSegment(t, buff, "World!")
		buff = pushSegment(t, buff, "Lorem ")
		// at this point, 19 elements of the underlying slice are taken
		ok := buff.Append([]byte("overflow"))
		require.False(t, ok)
	})

	t.Run("segment length", func(t *testing.T) {
		buff := New(10, 20)
		require.True(t, buff.Append([]byte("Hello, ")))
		require.True(t, buff.Append([]byte("World!")))
		require.Equal(t, 13, buff.SegmentLength())
	})

	t.Run("preview", func(t *testing.T) {
		buff := New(10, 20)
		buff = pushSegment(t, buff, "first")
		require.True(t, buff.Append([]byte("second")))
		require.Equal(t, "second", string(buff.Preview()))
		require.Equal(t, "second", string(buff.Finish()))
	})

	t.Run("truncate", func(t *testing.T) {
		testTrunc(t, 1)
		testTrunc(t, 5)
	})

	t.Run("clear", func(t *testing.T) {
		buff := New(10, 20)
		buff = pushSegment(t, buff, "some segment")
		buff.Clear()
		require.Equal(t, 0, buff.SegmentLength())
		buff = pushSegment(t, buff, "another one")
	})
}

func testTrunc(t *testing.T, n int) {
	buff := New(10, 20)
	require.True(t, buff.Append([]byte("Hello, world!")))
	segment := buff.Finish()
	require.True(t, buff.Append([]byte("Hi?")))
	buff.Trunc(n)
	require.Equal(t, "Hello, world!", string(segment))

	orig := "Hi?"
	if n > len(orig) {
		n = len(orig)
	}

	require.Equal(t, orig[:len(orig)-n], string(buff.Finish()))
}

func BenchmarkBuffer(b *testing.B) {
	buff := New(1024, 4096)
	smallString := []byte(strings.Repeat("a", 1023))
	bigString := []byte(strings.Repeat("a", 4095))

	b.Run("no overflow", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(smallString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(smallString)
			buff.Clear()
		}
	})

	b.Run("with overflow", func(b *testing.B) {
		b.ReportAllocs()
		b.SetBytes(int64(len(bigString)))
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			_ = buff.Append(bigString)
			buff.Clear()
			buff.memory = buff.memory[0:0:1024]
		}
	})
}
