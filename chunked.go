package respstream

import (
	"bytes"
	"fmt"

	"github.com/indigo-web/respstream/config"
	"github.com/indigo-web/respstream/internal/buffer"
	"github.com/indigo-web/respstream/internal/hexconv"
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/status"
	"github.com/indigo-web/utils/uf"
)

type chunkedState uint8

const (
	eChunkSize chunkedState = iota + 1
	eChunkData
	eTrailer
)

// a chunk size of 15 hex digits is a petabyte-scale chunk already
const maxHexDigits = 15

// chunkedParser decodes a chunked transfer coding stream, surfacing chunk
// extensions and trailer fields instead of discarding them.
//
// Chunks are delivered whole: a chunk and its terminating line break are
// consumed atomically, so the produced event sequence does not depend on
// how the input was fragmented.
type chunkedParser struct {
	cfg      *config.Body
	hb       *headerBlock
	trailers *kv.Storage
	state    chunkedState
	size     int
	ext      string
}

func (c *chunkedParser) reset(hb *headerBlock, trailers *kv.Storage) {
	c.hb = hb
	c.trailers = trailers
	c.state = eChunkSize
	c.size = 0
	c.ext = ""
}

// next produces at most one event. The zero event asks for more input, an
// EventLastChunk one means the stream is over.
func (c *chunkedParser) next(cur *cursor, buff *buffer.Buffer) (Event, error) {
	for {
		switch c.state {
		case eChunkSize:
			line, st := cur.line(maxHexDigits + 1 + c.cfg.MaxChunkExtLength)
			switch st {
			case scanMore:
				return Event{}, nil
			case scanOverflow:
				if bytes.IndexByte(cur.window(), ';') != -1 {
					return Event{}, status.ErrTooLargeChunkExts
				}

				return Event{}, status.ErrBadChunk
			}

			size, ext, err := c.parseSizeLine(line, buff)
			if err != nil {
				return Event{}, err
			}

			c.size, c.ext = size, ext
			if size == 0 {
				c.state = eTrailer
				c.hb.begin(c.trailers, buff)
				continue
			}

			c.state = eChunkData

		case eChunkData:
			window := cur.window()
			if len(window) <= c.size {
				return Event{}, nil
			}

			var total int
			switch window[c.size] {
			case '\n':
				total = c.size + 1
			case '\r':
				if len(window) < c.size+2 {
					return Event{}, nil
				}
				if window[c.size+1] != '\n' {
					return Event{}, status.ErrBadChunk
				}
				total = c.size + 2
			default:
				return Event{}, status.ErrBadChunk
			}

			data, _ := cur.take(total)
			ev := Event{Kind: EventChunk, Data: data[:c.size], Extension: c.ext}
			c.state = eChunkSize
			c.ext = ""

			return ev, nil

		case eTrailer:
			line, st := cur.line(c.hb.lineLimit())
			switch st {
			case scanMore:
				return Event{}, nil
			case scanOverflow:
				return Event{}, status.ErrHeaderFieldsTooLarge
			}

			if len(line) == 0 {
				if err := c.hb.end(); err != nil {
					return Event{}, err
				}

				return Event{Kind: EventLastChunk, Extension: c.ext, Trailers: c.trailers}, nil
			}

			if err := c.hb.line(line); err != nil {
				return Event{}, err
			}
		}
	}
}

func (c *chunkedParser) parseSizeLine(line []byte, buff *buffer.Buffer) (int, string, error) {
	var (
		size int
		i    int
	)

	for ; i < len(line); i++ {
		v := hexconv.Parse(line[i])
		if v == 0 {
			break
		}
		if i == maxHexDigits {
			return 0, "", status.ErrBadChunk
		}

		size = size<<4 | int(v-1)
	}

	if i == 0 {
		if len(line) == 0 {
			return 0, "", status.ErrBadChunk
		}

		return 0, "", illegalChunkChar(line[0])
	}

	rest := line[i:]
	switch {
	case len(rest) == 0:
		return size, "", nil
	case rest[0] == ';':
		if len(rest) > c.cfg.MaxChunkExtLength {
			return 0, "", status.ErrTooLargeChunkExts
		}
		if !buff.Append(rest[1:]) {
			return 0, "", status.ErrTooLargeChunkExts
		}

		return size, uf.B2S(buff.Finish()), nil
	default:
		return 0, "", illegalChunkChar(rest[0])
	}
}

func illegalChunkChar(char byte) error {
	return status.NewError(status.BadRequest, fmt.Sprintf("Illegal character %q in chunk start", char))
}
