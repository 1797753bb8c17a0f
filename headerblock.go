package respstream

import (
	"bytes"

	"github.com/indigo-web/respstream/config"
	"github.com/indigo-web/respstream/internal/buffer"
	"github.com/indigo-web/respstream/internal/strutil"
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/status"
	"github.com/indigo-web/utils/uf"
)

// headerBlock parses header lines into ordered fields. Serves both the
// leading header block of a response and the trailer section of a chunked
// body, with the same limits in effect for either.
//
// A field is flushed into the storage only when the next line proves it has
// no continuations left: lines starting with whitespace fold into the value
// of the field above, joined with a single space.
type headerBlock struct {
	cfg        *config.Headers
	storage    *kv.Storage
	buff       *buffer.Buffer
	pendingKey []byte
	hasPending bool
}

func (h *headerBlock) begin(storage *kv.Storage, buff *buffer.Buffer) {
	h.storage = storage
	h.buff = buff
	h.pendingKey = nil
	h.hasPending = false
}

// line consumes a single non-empty header line with its terminator already
// stripped.
func (h *headerBlock) line(line []byte) error {
	if isWS(line[0]) {
		return h.continuation(line)
	}

	if err := h.flush(); err != nil {
		return err
	}

	colon := bytes.IndexByte(line, ':')
	if colon < 1 {
		return status.ErrBadHeader
	}

	key := strutil.RStripWS(uf.B2S(line[:colon]))
	if len(key) == 0 {
		return status.ErrBadHeader
	}
	if len(key) > h.cfg.MaxKeyLength {
		return status.ErrHeaderFieldsTooLarge
	}

	value := strutil.StripWS(uf.B2S(line[colon+1:]))
	if len(value) > h.cfg.MaxValueLength {
		return status.ErrHeaderFieldsTooLarge
	}

	if !h.buff.Append(uf.S2B(key)) {
		return status.ErrHeaderFieldsTooLarge
	}
	h.pendingKey = h.buff.Finish()
	h.hasPending = true

	if !h.buff.Append(uf.S2B(value)) {
		return status.ErrHeaderFieldsTooLarge
	}

	return nil
}

func (h *headerBlock) continuation(line []byte) error {
	if !h.hasPending {
		return status.ErrBadHeader
	}

	folded := strutil.StripWS(uf.B2S(line))
	if len(folded) == 0 {
		return nil
	}

	if h.buff.SegmentLength() > 0 && !h.buff.AppendByte(' ') {
		return status.ErrHeaderFieldsTooLarge
	}
	if !h.buff.Append(uf.S2B(folded)) {
		return status.ErrHeaderFieldsTooLarge
	}
	if h.buff.SegmentLength() > h.cfg.MaxValueLength {
		return status.ErrHeaderFieldsTooLarge
	}

	return nil
}

// end consumes the empty line terminating the block.
func (h *headerBlock) end() error {
	return h.flush()
}

func (h *headerBlock) flush() error {
	if !h.hasPending {
		return nil
	}

	if h.storage.Len() >= h.cfg.Number.Maximal {
		return status.ErrTooManyHeaders
	}

	h.storage.Add(uf.B2S(h.pendingKey), uf.B2S(h.buff.Finish()))
	h.hasPending = false

	return nil
}

// lineLimit bounds a single header line, the trailing whitespace of folded
// lines aside.
func (h *headerBlock) lineLimit() int {
	return h.cfg.MaxKeyLength + h.cfg.MaxValueLength + len(": ") + 2
}

func isWS(char byte) bool {
	return char == ' ' || char == '\t'
}
