// Package respstream implements an incremental HTTP/1.x response stream
// parser. A parser instance owns one connection's worth of pipelined
// responses: bytes are pushed in as they arrive, events are polled out one
// at a time, and the end of the underlying stream is a first-class signal
// rather than an exception.
package respstream

import (
	"github.com/indigo-web/respstream/config"
	"github.com/indigo-web/respstream/internal/buffer"
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/method"
	"github.com/indigo-web/respstream/mime"
	"github.com/indigo-web/respstream/status"
	"github.com/indigo-web/utils/uf"
)

// Context describes the request whose response is expected next. A HEAD
// response carries no body no matter its headers, which cannot be told from
// the response alone.
type Context struct {
	Method method.Method
}

type parserState uint8

const (
	sStatusLine parserState = iota + 1
	sHeaders
	sBodyFixed
	sBodyChunked
	sBodyCloseDelim
	sEnd
	sDiscard
	sClosed
)

// Parser reconstructs response messages out of an arbitrarily fragmented
// byte stream. One instance serves exactly one connection and is not safe
// for concurrent use.
type Parser struct {
	cfg      *config.Config
	cur      cursor
	contexts []Context

	state   parserState
	hb      headerBlock
	chunked chunkedParser

	// per-response storage. Events escape to the caller, so it is never
	// recycled between responses.
	buff      *buffer.Buffer
	head      *Head
	remaining int64

	completed bool
}

// New creates a parser for a single connection's response stream. A nil
// cfg stands for config.Default().
func New(cfg *config.Config) *Parser {
	if cfg == nil {
		cfg = config.Default()
	}

	p := &Parser{cfg: cfg, state: sStatusLine}
	p.hb.cfg = &cfg.Headers
	p.chunked.cfg = &cfg.Body

	return p
}

// Expect enqueues the context of a request whose response is yet to
// arrive. Contexts are consumed in FIFO order, one per response; interim
// 1xx responses leave theirs in place for the response that follows.
func (p *Parser) Expect(ctx Context) {
	p.contexts = append(p.contexts, ctx)
}

// Push supplies bytes received from the connection. The slice is adopted,
// not copied, so the caller must not reuse its memory afterwards. Push never
// produces events on its own: poll for them afterwards.
func (p *Parser) Push(data []byte) {
	if p.state == sClosed {
		return
	}

	p.cur.feed(data)
}

// Complete signals that the connection will deliver no more bytes. It is
// the regular terminator for close-delimited entities and for the idle
// stream; anything else mid-parse resolves to an error on further polls.
func (p *Parser) Complete() {
	p.completed = true
}

// Poll produces the next event, at most one per call. EventNeedMore means
// nothing can be produced until the next Push; past the end of the stream
// every call yields EventStreamEnd.
func (p *Parser) Poll() Event {
	for {
		ev, done := p.step()
		if done {
			return ev
		}
	}
}

func (p *Parser) step() (Event, bool) {
	switch p.state {
	case sStatusLine:
		return p.stepStatusLine()
	case sHeaders:
		return p.stepHeaders()
	case sBodyFixed:
		return p.stepFixed()
	case sBodyChunked:
		return p.stepChunked()
	case sBodyCloseDelim:
		return p.stepCloseDelimited()
	case sEnd:
		return p.finishMessage(), true
	case sDiscard:
		return p.stepDiscard()
	default:
		return Event{Kind: EventStreamEnd}, true
	}
}

func (p *Parser) stepStatusLine() (Event, bool) {
	line, st := p.cur.line(statusLinePrefix + p.cfg.StatusLine.MaxReasonLength)
	switch st {
	case scanMore:
		if !p.completed {
			return Event{Kind: EventNeedMore}, true
		}
		if p.cur.buffered() == 0 {
			p.state = sClosed
			return Event{Kind: EventStreamEnd}, true
		}

		// the stream broke off mid-line
		return p.headErrorPending(status.ErrTruncatedHead), true
	case scanOverflow:
		// the verdict does not depend on the line's tail anymore
		_, err := parseStatusLine(p.cur.window(), p.cfg.StatusLine.MaxReasonLength)
		return p.headErrorPending(err), true
	}

	sl, err := parseStatusLine(line, p.cfg.StatusLine.MaxReasonLength)
	if err != nil {
		return p.headError(err), true
	}
	if err = p.beginMessage(sl); err != nil {
		return p.headError(err), true
	}

	return Event{}, false
}

func (p *Parser) beginMessage(sl statusLine) error {
	space := p.cfg.Headers.Space
	buff := buffer.New(space.Default, space.Maximal)
	p.buff = &buff

	var reason string
	if len(sl.reason) > 0 {
		if !p.buff.Append(sl.reason) {
			return status.ErrHeaderFieldsTooLarge
		}
		reason = uf.B2S(p.buff.Finish())
	}

	p.head = &Head{
		Proto:         sl.proto,
		Status:        status.Resolve(sl.code, reason, p.cfg.Statuses),
		Headers:       kv.NewPrealloc(p.cfg.Headers.Number.Default),
		ContentLength: -1,
	}
	p.hb.begin(p.head.Headers, p.buff)
	p.state = sHeaders

	return nil
}

func (p *Parser) stepHeaders() (Event, bool) {
	line, st := p.cur.line(p.hb.lineLimit())
	switch st {
	case scanMore:
		if !p.completed {
			return Event{Kind: EventNeedMore}, true
		}

		return p.headErrorPending(status.ErrTruncatedHead), true
	case scanOverflow:
		return p.headErrorPending(status.ErrHeaderFieldsTooLarge), true
	}

	if len(line) > 0 {
		if err := p.hb.line(line); err != nil {
			return p.headError(err), true
		}

		return Event{}, false
	}

	if err := p.hb.end(); err != nil {
		return p.headError(err), true
	}

	return p.finishHead(), true
}

// finishHead completes the head, decides the framing and emits the head
// event. The queued context is consumed here, unless the response is an
// interim one.
func (p *Parser) finishHead() Event {
	head := p.head
	head.Framing, head.ContentLength = decideFraming(
		p.peekContext().Method, head.Status.Code, head.Headers,
	)
	head.CloseAfter = decideClose(head.Proto, head.Framing, head.ContentLength, head.Headers)
	head.ContentType, head.Charset = mime.Resolve(
		head.Headers.Value("Content-Type"), p.cfg.MediaTypes,
	)

	if head.Status.Class != status.Informational {
		p.popContext()
	}

	switch head.Framing {
	case FixedLength:
		if head.ContentLength == 0 {
			p.state = sEnd
		} else {
			p.remaining = head.ContentLength
			p.state = sBodyFixed
		}
	case Chunked:
		p.chunked.reset(&p.hb, kv.New())
		p.state = sBodyChunked
	case CloseDelimited:
		p.state = sBodyCloseDelim
	default:
		p.state = sEnd
	}

	return Event{Kind: EventHead, Head: head}
}

func (p *Parser) stepFixed() (Event, bool) {
	if p.cur.buffered() == 0 {
		if !p.completed {
			return Event{Kind: EventNeedMore}, true
		}

		return p.bodyError(status.ErrEntityStreamTruncation), true
	}

	n := p.remaining
	if avail := int64(p.cur.buffered()); avail < n {
		n = avail
	}

	data := p.cur.takeUpTo(int(n))
	p.remaining -= int64(len(data))
	if p.remaining == 0 {
		p.state = sEnd
	}

	return Event{Kind: EventData, Data: data}, true
}

func (p *Parser) stepChunked() (Event, bool) {
	ev, err := p.chunked.next(&p.cur, p.buff)
	if err != nil {
		return p.bodyError(err), true
	}
	if ev.Kind == 0 {
		if !p.completed {
			return Event{Kind: EventNeedMore}, true
		}

		// whatever is left is a partial token of the truncated body, not
		// the start of a next response
		p.cur.takeUpTo(p.cur.buffered())

		return p.bodyError(status.ErrEntityStreamTruncation), true
	}
	if ev.Kind == EventLastChunk {
		p.state = sEnd
	}

	return ev, true
}

func (p *Parser) stepCloseDelimited() (Event, bool) {
	if n := p.cur.buffered(); n > 0 {
		return Event{Kind: EventData, Data: p.cur.takeUpTo(n)}, true
	}
	if p.completed {
		p.state = sEnd
		return Event{}, false
	}

	return Event{Kind: EventNeedMore}, true
}

// finishMessage emits the end-of-response marker and re-arms for the next
// pipelined response, unless the connection is flagged to close.
func (p *Parser) finishMessage() Event {
	closing := p.head != nil && p.head.CloseAfter
	p.abandonMessage()

	if closing {
		p.state = sClosed
	} else {
		p.state = sStatusLine
	}

	return Event{Kind: EventEnd}
}

func (p *Parser) stepDiscard() (Event, bool) {
	if p.cur.skipLine() {
		p.state = sStatusLine
		return Event{}, false
	}
	if p.completed {
		p.state = sClosed
		return Event{Kind: EventStreamEnd}, true
	}

	return Event{Kind: EventNeedMore}, true
}

// headError reports a response whose head never parsed, the offending line
// already consumed. The connection's fate follows the configured policy.
func (p *Parser) headError(err error) Event {
	p.abandonMessage()
	if p.cfg.Connection.OnHeadError == config.DiscardLine {
		p.state = sStatusLine
	} else {
		p.state = sClosed
	}

	return Event{Kind: EventHeadError, Err: err}
}

// headErrorPending is headError for when the offending bytes are still
// pending and have to be discarded up to the next line boundary first.
func (p *Parser) headErrorPending(err error) Event {
	p.abandonMessage()
	if p.cfg.Connection.OnHeadError == config.DiscardLine {
		p.state = sDiscard
	} else {
		p.state = sClosed
	}

	return Event{Kind: EventHeadError, Err: err}
}

// bodyError dooms the current response only. The next poll scans for the
// following response right away, so a stray tail of a broken body surfaces
// as a head error then.
func (p *Parser) bodyError(err error) Event {
	p.abandonMessage()
	p.state = sStatusLine

	return Event{Kind: EventBodyError, Err: err}
}

func (p *Parser) abandonMessage() {
	p.head = nil
	p.buff = nil
}

func (p *Parser) peekContext() Context {
	if len(p.contexts) == 0 {
		return Context{}
	}

	return p.contexts[0]
}

func (p *Parser) popContext() {
	if len(p.contexts) > 0 {
		p.contexts = p.contexts[1:]
	}
}
