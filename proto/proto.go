package proto

import "github.com/indigo-web/utils/uf"

type Proto uint8

const (
	Unknown Proto = 0
	HTTP10  Proto = 1 << iota
	HTTP11

	HTTP1 = HTTP10 | HTTP11
)

func (p Proto) String() string {
	lut := [...]string{HTTP10: "HTTP/1.0", HTTP11: "HTTP/1.1"}
	if int(p) >= len(lut) {
		return ""
	}

	return lut[p]
}

// TokenLength is the length of a protocol token, e.g. HTTP/1.1.
const TokenLength = len("HTTP/x.x")

const (
	majorVersionOffset = len("HTTP/x") - 1
	dotOffset          = len("HTTP/x.") - 1
	minorVersionOffset = len("HTTP/x.x") - 1
	httpScheme         = "HTTP/"
)

var majorMinorVersionLUT = [10][10]Proto{
	1: {0: HTTP10, 1: HTTP11},
}

// FromBytes parses a protocol token. Only HTTP/1.0 and HTTP/1.1 are
// recognized, anything else results in Unknown.
func FromBytes(raw []byte) Proto {
	if len(raw) != TokenLength || uf.B2S(raw[:majorVersionOffset]) != httpScheme ||
		raw[dotOffset] != '.' {
		return Unknown
	}

	return Parse(raw[majorVersionOffset]-'0', raw[minorVersionOffset]-'0')
}

func Parse(major, minor uint8) Proto {
	if major > 9 || minor > 9 {
		return Unknown
	}

	return majorMinorVersionLUT[major][minor]
}
