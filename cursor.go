package respstream

import "bytes"

type scanState uint8

const (
	scanMore scanState = iota
	scanLine
	scanOverflow
)

// cursor accumulates pushed byte spans and hands out complete tokens.
//
// Spans are adopted as-is: while a span stays the sole source of pending
// bytes, nothing is copied at all. Only when a new span arrives before the
// previous one is drained does the leftover get copied into cursor-owned
// memory, as resumption requires it. Consumed regions are never written to
// again, so every slice the cursor ever handed out stays intact.
type cursor struct {
	pending []byte
	// owned tells whether pending points into cursor-allocated memory
	// rather than into the span pushed last.
	owned bool
}

// feed appends a span to the unconsumed tail.
func (c *cursor) feed(data []byte) {
	switch {
	case len(data) == 0:
	case len(c.pending) == 0:
		c.pending, c.owned = data, false
	case c.owned:
		c.pending = append(c.pending, data...)
	default:
		merged := make([]byte, 0, len(c.pending)+len(data))
		c.pending = append(append(merged, c.pending...), data...)
		c.owned = true
	}
}

func (c *cursor) buffered() int {
	return len(c.pending)
}

// window exposes the unconsumed bytes without consuming them.
func (c *cursor) window() []byte {
	return c.pending
}

// take consumes exactly n bytes, failing if fewer are available so far.
func (c *cursor) take(n int) ([]byte, bool) {
	if len(c.pending) < n {
		return nil, false
	}

	taken := c.pending[:n:n]
	c.pending = c.pending[n:]

	return taken, true
}

// takeUpTo consumes at most n bytes, however many are available.
func (c *cursor) takeUpTo(n int) []byte {
	n = min(n, len(c.pending))
	taken := c.pending[:n:n]
	c.pending = c.pending[n:]

	return taken
}

// line consumes a whole line, stripping the terminator, be it CRLF or a
// bare LF. Returns scanMore while no terminator is in sight yet, unless the
// unterminated prefix already exceeds limit bytes, which is scanOverflow.
// Nothing is consumed in either of the two cases.
func (c *cursor) line(limit int) ([]byte, scanState) {
	lf := bytes.IndexByte(c.pending, '\n')
	if lf == -1 {
		// +1 tolerates a carriage return pending its line feed
		if len(c.pending) > limit+1 {
			return nil, scanOverflow
		}

		return nil, scanMore
	}

	line := c.pending[:lf:lf]
	if lf > 0 && line[lf-1] == '\r' {
		line = line[:lf-1]
	}

	c.pending = c.pending[lf+1:]

	return line, scanLine
}

// skipLine drops everything up to and including the nearest line
// terminator, or all pending bytes if there is none yet.
func (c *cursor) skipLine() bool {
	lf := bytes.IndexByte(c.pending, '\n')
	if lf == -1 {
		c.pending, c.owned = nil, false
		return false
	}

	c.pending = c.pending[lf+1:]

	return true
}
