package respstream

import (
	"strings"

	"github.com/indigo-web/respstream/internal/strutil"
	"github.com/indigo-web/respstream/kv"
	"github.com/indigo-web/respstream/method"
	"github.com/indigo-web/respstream/proto"
	"github.com/indigo-web/respstream/status"
	"github.com/indigo-web/utils/strcomp"
)

// Framing tells how the end of a response entity is delimited.
type Framing uint8

const (
	// NoEntity responses carry no body bytes at all, whatever their headers
	// claim: responses to HEAD requests and those with 1xx, 204 or 304
	// codes.
	NoEntity Framing = iota + 1
	// FixedLength bodies span exactly Content-Length bytes.
	FixedLength
	// Chunked bodies are self-delimiting chunk sequences.
	Chunked
	// CloseDelimited bodies last until the peer closes the connection.
	CloseDelimited
)

func (f Framing) String() string {
	switch f {
	case NoEntity:
		return "NoEntity"
	case FixedLength:
		return "FixedLength"
	case Chunked:
		return "Chunked"
	case CloseDelimited:
		return "CloseDelimited"
	default:
		return "???"
	}
}

// decideFraming picks the entity delimiting mode. The priority is fixed:
// bodiless responses first, then chunked transfer encoding, then
// Content-Length, and the connection close as the fallback. The reported
// length is -1 unless a valid Content-Length is present, no matter the mode.
func decideFraming(m method.Method, code status.Code, headers *kv.Storage) (Framing, int64) {
	length := contentLength(headers)

	switch {
	case m == method.HEAD, status.ClassOf(code) == status.Informational,
		code == status.NoContent, code == status.NotModified:
		return NoEntity, length
	case chunkedTransfer(headers):
		return Chunked, length
	case length >= 0:
		return FixedLength, length
	default:
		return CloseDelimited, length
	}
}

// decideClose computes whether the connection is expected to close once the
// response is over. Close-delimited entities imply closing unconditionally.
func decideClose(p proto.Proto, framing Framing, length int64, headers *kv.Storage) bool {
	if framing == CloseDelimited {
		return true
	}

	if connectionHas(headers, "close") {
		return true
	}

	if p == proto.HTTP10 {
		// HTTP/1.0 closes by default. A known entity length or an explicit
		// keep-alive keeps it open.
		return length < 0 && !connectionHas(headers, "keep-alive")
	}

	return false
}

// chunkedTransfer reports whether the rightmost transfer coding is chunked.
// Codings before it are somebody else's business and stay on the headers
// untouched.
func chunkedTransfer(headers *kv.Storage) bool {
	values := headers.Values("Transfer-Encoding")
	if len(values) == 0 {
		return false
	}

	return strcomp.EqualFold(strutil.LastToken(values[len(values)-1]), "chunked")
}

// contentLength returns the value of the first Content-Length field parsing
// as a non-negative integer, or -1 if there is no such field.
func contentLength(headers *kv.Storage) int64 {
	for _, value := range headers.Values("Content-Length") {
		if n, ok := parseDecimal(value); ok {
			return n
		}
	}

	return -1
}

func parseDecimal(raw string) (n int64, ok bool) {
	if len(raw) == 0 {
		return 0, false
	}

	for i := 0; i < len(raw); i++ {
		char := raw[i]
		if char < '0' || char > '9' {
			return 0, false
		}

		n = n*10 + int64(char-'0')
		if n < 0 {
			return 0, false
		}
	}

	return n, true
}

func connectionHas(headers *kv.Storage, token string) bool {
	for _, value := range headers.Values("Connection") {
		if hasToken(value, token) {
			return true
		}
	}

	return false
}

// hasToken reports whether a comma-separated list contains the token,
// case-insensitively.
func hasToken(list, token string) bool {
	for len(list) > 0 {
		var item string
		if comma := strings.IndexByte(list, ','); comma != -1 {
			item, list = list[:comma], list[comma+1:]
		} else {
			item, list = list, ""
		}

		if strcomp.EqualFold(strutil.StripWS(item), token) {
			return true
		}
	}

	return false
}
