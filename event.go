package respstream

import (
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/mime"
	"github.com/indigo-web/respstream/proto"
	"github.com/indigo-web/respstream/status"
)

// EventKind discriminates the events a parser emits.
type EventKind uint8

const (
	// EventNeedMore signals that no event can be produced until more input
	// arrives. Never surfaced to the application layer by a driving loop.
	EventNeedMore EventKind = iota + 1
	// EventHead carries the parsed head of the next response.
	EventHead
	// EventData carries a piece of a fixed-length or close-delimited body.
	EventData
	// EventChunk carries a whole chunk of a chunked body along with its
	// extensions, if any.
	EventChunk
	// EventLastChunk terminates the chunk sequence, carrying the extensions
	// of the zero-length chunk and the trailer fields following it.
	EventLastChunk
	// EventEnd marks the clean completion of the current response. The next
	// event belongs to the following one.
	EventEnd
	// EventHeadError reports a response whose head never parsed. No head was
	// emitted for it, and none will be.
	EventHeadError
	// EventBodyError reports a broken body stream. The head emitted earlier
	// stays valid, only the entity is doomed.
	EventBodyError
	// EventStreamEnd marks the end of the whole stream. Polling past it
	// yields it again.
	EventStreamEnd
)

func (e EventKind) String() string {
	switch e {
	case EventNeedMore:
		return "NeedMore"
	case EventHead:
		return "Head"
	case EventData:
		return "Data"
	case EventChunk:
		return "Chunk"
	case EventLastChunk:
		return "LastChunk"
	case EventEnd:
		return "End"
	case EventHeadError:
		return "HeadError"
	case EventBodyError:
		return "BodyError"
	case EventStreamEnd:
		return "StreamEnd"
	default:
		return "???"
	}
}

// Event is a single output of Parser.Poll. Kind defines which of the other
// fields are meaningful.
//
// Data of EventData and EventChunk aliases the spans pushed by the caller
// (or the parser's own retention buffer when a token arrived in pieces), so
// it stays valid for as long as the pushed memory does. Everything reachable
// from Head, Extension and Trailers is held in parser-owned per-response
// storage and never expires.
type Event struct {
	Kind EventKind
	// Head is set for EventHead.
	Head *Head
	// Data is set for EventData and EventChunk.
	Data []byte
	// Extension is set for EventChunk and EventLastChunk. Semicolon-joined
	// name=value pairs as they appeared on the wire, without the leading
	// semicolon.
	Extension string
	// Trailers is set for EventLastChunk.
	Trailers *kv.Storage
	// Err is set for EventHeadError and EventBodyError. Head errors are
	// always status.HTTPError carrying a suggested status code.
	Err error
}

// Head is the parsed status line and header block of a single response.
type Head struct {
	Proto proto.Proto
	// Status is resolved against the custom and builtin status tables. The
	// code and the received reason phrase are preserved even for codes known
	// to neither.
	Status status.Status
	// Headers holds every header field in receive order, duplicates
	// preserved. Fields the parser structures additionally (Content-Type,
	// Content-Length, Transfer-Encoding, Connection) are retained here
	// verbatim as well.
	Headers *kv.Storage
	// ContentType and Charset are resolved from the Content-Type field via
	// the media type registry.
	ContentType mime.MIME
	Charset     mime.Charset
	// ContentLength is the value of the Content-Length field, or -1 if there
	// is none (or it never parsed as a non-negative integer).
	ContentLength int64
	// Framing is the entity delimiting mode, decided once per response.
	Framing Framing
	// CloseAfter reports whether the connection is expected to close once
	// this response is over.
	CloseAfter bool
}
