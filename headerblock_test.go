package respstream

import (
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/respstream/config"
	"github.com/indigo-web/respstream/internal/buffer"
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/status"
	"github.com/stretchr/testify/require"
)

func parseBlock(cfg *config.Config, lines ...string) (*kv.Storage, error) {
	hb := headerBlock{cfg: &cfg.Headers}
	storage := kv.NewPrealloc(cfg.Headers.Number.Default)
	buff := buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal)
	hb.begin(storage, &buff)

	for _, line := range lines {
		if err := hb.line([]byte(line)); err != nil {
			return nil, err
		}
	}

	return storage, hb.end()
}

func TestHeaderBlock(t *testing.T) {
	cfg := config.Default()

	t.Run("ordinary fields", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Server: indigo", "Content-Length: 13")
		require.NoError(t, err)
		require.Equal(t, "indigo", headers.Value("server"))
		require.Equal(t, "13", headers.Value("content-length"))
	})

	t.Run("duplicates keep order", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Set-Cookie: a=1", "Via: proxy", "Set-Cookie: b=2")
		require.NoError(t, err)
		require.Equal(t, []string{"a=1", "b=2"}, headers.Values("set-cookie"))
	})

	t.Run("surrounding whitespace is stripped", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Foo:   bar\t ")
		require.NoError(t, err)
		require.Equal(t, "bar", headers.Value("foo"))
	})

	t.Run("empty value", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Foo:")
		require.NoError(t, err)
		require.True(t, headers.Has("foo"))
		require.Empty(t, headers.Value("foo"))
	})

	t.Run("continuation lines fold", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Foo: pip", " apo")
		require.NoError(t, err)
		require.Equal(t, "pip apo", headers.Value("foo"))

		headers, err = parseBlock(cfg, "Foo: pip", "\t\t apo  ", "  pa", "Bar: baz")
		require.NoError(t, err)
		require.Equal(t, "pip apo pa", headers.Value("foo"))
		require.Equal(t, "baz", headers.Value("bar"))
	})

	t.Run("continuation of an empty value", func(t *testing.T) {
		headers, err := parseBlock(cfg, "Foo:", " apo")
		require.NoError(t, err)
		require.Equal(t, "apo", headers.Value("foo"))
	})

	t.Run("malformed lines", func(t *testing.T) {
		for _, line := range []string{"no colon here", ": empty key", "   : folded nothing"} {
			_, err := parseBlock(cfg, line)
			require.ErrorIs(t, err, status.ErrBadHeader, line)
		}
	})

	t.Run("continuation before any field", func(t *testing.T) {
		_, err := parseBlock(cfg, " lonely")
		require.ErrorIs(t, err, status.ErrBadHeader)
	})

	t.Run("too many fields", func(t *testing.T) {
		tight := config.Default()
		tight.Headers.Number.Maximal = 2

		_, err := parseBlock(tight, "A: 1", "B: 2")
		require.NoError(t, err)

		_, err = parseBlock(tight, "A: 1", "B: 2", "C: 3")
		require.ErrorIs(t, err, status.ErrTooManyHeaders)
	})

	t.Run("overlong key", func(t *testing.T) {
		key := strings.Repeat("k", cfg.Headers.MaxKeyLength+1)
		_, err := parseBlock(cfg, key+": value")
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("overlong value", func(t *testing.T) {
		_, err := parseBlock(cfg, "Foo: "+strings.Repeat("v", cfg.Headers.MaxValueLength+1))
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("folding cannot exceed the value limit", func(t *testing.T) {
		half := strings.Repeat("v", cfg.Headers.MaxValueLength/2+1)
		_, err := parseBlock(cfg, "Foo: "+half, " "+half)
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("out of buffer space", func(t *testing.T) {
		tight := config.Default()
		tight.Headers.Space.Default = 8
		tight.Headers.Space.Maximal = 16

		_, err := parseBlock(tight, "Foo: 123456789012345678")
		require.ErrorIs(t, err, status.ErrHeaderFieldsTooLarge)
	})

	t.Run("random fields survive verbatim", func(t *testing.T) {
		var lines []string
		want := kv.New()
		for i := 0; i < 20; i++ {
			key, value := uniuri.New(), uniuri.NewLen(40)
			lines = append(lines, key+": "+value)
			want.Add(key, value)
		}

		headers, err := parseBlock(cfg, lines...)
		require.NoError(t, err)
		require.Equal(t, want.Expose(), headers.Expose())
	})
}
