package proto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromBytes(t *testing.T) {
	for raw, want := range map[string]Proto{
		"HTTP/1.0": HTTP10,
		"HTTP/1.1": HTTP11,
		"HTTP/2.0": Unknown,
		"HTTP/0.9": Unknown,
		"HTTP/1.2": Unknown,
		"HTTP/1.":  Unknown,
		"HTTP/11":  Unknown,
		"HTTP/111": Unknown,
		"ICAP/1.0": Unknown,
		"":         Unknown,
	} {
		require.Equalf(t, want, FromBytes([]byte(raw)), "%q", raw)
	}
}

func TestString(t *testing.T) {
	require.Equal(t, "HTTP/1.0", HTTP10.String())
	require.Equal(t, "HTTP/1.1", HTTP11.String())
	require.Empty(t, Unknown.String())
}
