package respstream

import (
	"io"
	"strings"
	"testing"

	"github.com/indigo-web/chunkedbody"
	"github.com/indigo-web/respstream/config"
	"github.com/indigo-web/respstream/internal/buffer"
	"github.com/indigo-web/respstream/internal/respgen"
	"github.com/indigo-web/respstream/kv"
)

func BenchmarkChunked(b *testing.B) {
	stream := respgen.Chunked(16, strings.Repeat("a", 512))
	cfg := config.Default()

	b.Run("respstream", func(b *testing.B) {
		hb := headerBlock{cfg: &cfg.Headers}
		parser := chunkedParser{cfg: &cfg.Body}
		trailers := kv.New()
		b.SetBytes(int64(len(stream)))
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			buff := buffer.New(cfg.Headers.Space.Default, cfg.Headers.Space.Maximal)
			parser.reset(&hb, trailers.Clear())

			var cur cursor
			cur.feed(stream)

			for {
				ev, err := parser.next(&cur, &buff)
				if err != nil {
					b.Fatal(err)
				}
				if ev.Kind == 0 {
					b.Fatal("ran out of input mid-stream")
				}
				if ev.Kind == EventLastChunk {
					break
				}
			}
		}
	})

	b.Run("chunkedbody", func(b *testing.B) {
		parser := chunkedbody.NewParser(chunkedbody.DefaultSettings())
		b.SetBytes(int64(len(stream)))
		b.ReportAllocs()
		b.ResetTimer()

		for i := 0; i < b.N; i++ {
			data := stream

			for len(data) > 0 {
				chunk, extra, err := parser.Parse(data, false)
				switch err {
				case nil:
					data = extra
				case io.EOF:
					data = nil
				default:
					b.Fatal(err)
				}

				_ = chunk
			}
		}
	})
}
