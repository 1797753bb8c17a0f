package respstream

import (
	"fmt"

	"github.com/indigo-web/respstream/proto"
	"github.com/indigo-web/respstream/status"
	"github.com/indigo-web/utils/uf"
)

// statusLinePrefix is the longest possible status line prefix before the
// reason phrase: the protocol token, the three-digit code and two spaces.
const statusLinePrefix = len("HTTP/1.1 200 ")

type statusLine struct {
	proto  proto.Proto
	code   status.Code
	reason []byte
}

// parseStatusLine decomposes a status line with its terminator already
// stripped. It also accepts an unterminated prefix longer than
// statusLinePrefix+maxReason bytes, for which it necessarily fails: such a
// line cannot complete legally no matter its continuation, and the verdict
// must not wait for one.
func parseStatusLine(line []byte, maxReason int) (statusLine, error) {
	p := proto.Unknown
	if len(line) >= proto.TokenLength {
		p = proto.FromBytes(line[:proto.TokenLength])
	}
	if p == proto.Unknown {
		if startsWithScheme(line) {
			return statusLine{}, status.ErrUnsupportedProtocol
		}

		return statusLine{}, status.ErrBadMessageStart
	}

	rest := line[proto.TokenLength:]
	if len(rest) == 0 || rest[0] != ' ' {
		return statusLine{}, status.ErrBadMessageStart
	}
	rest = rest[1:]

	var code status.Code
	for i := 0; i < 3; i++ {
		if i >= len(rest) || rest[i] < '0' || rest[i] > '9' {
			return statusLine{}, status.ErrBadStatusCode
		}

		code = code*10 + status.Code(rest[i]-'0')
	}

	reason := rest[3:]
	switch {
	case len(reason) == 0:
		// the reason phrase is optional, with or without the space
	case reason[0] == ' ':
		reason = reason[1:]
	default:
		// a fourth digit lands here, too
		return statusLine{}, status.ErrBadStatusCode
	}

	if len(reason) > maxReason {
		return statusLine{}, status.NewError(status.BadRequest, fmt.Sprintf(
			"Response reason phrase exceeds the configured limit of %d characters", maxReason,
		))
	}

	return statusLine{proto: p, code: code, reason: reason}, nil
}

func startsWithScheme(line []byte) bool {
	const scheme = "HTTP/"
	return len(line) >= len(scheme) && uf.B2S(line[:len(scheme)]) == scheme
}
