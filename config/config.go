package config

import (
	"github.com/indigo-web/respstream/mime"
	"github.com/indigo-web/respstream/status"
)

// HeadErrorPolicy tells the parser what to do with the stream once the head
// of a response turned out to be malformed.
type HeadErrorPolicy uint8

const (
	// CloseConnection gives the stream up for good. Every further poll
	// reports the end of the stream.
	CloseConnection HeadErrorPolicy = iota + 1
	// DiscardLine skips the rest of the offending line and expects the next
	// response right after it.
	DiscardLine
)

type (
	HeadersNumber struct {
		Default, Maximal int
	}

	HeadersSpace struct {
		Default, Maximal int
	}
)

type (
	StatusLine struct {
		// MaxReasonLength limits the length of the reason phrase. Responses
		// with longer ones are reported malformed.
		MaxReasonLength int
	}

	Headers struct {
		// Number is responsible for the headers storage size.
		// Default value is the number of preallocated seats.
		// Maximal value is maximum number of headers allowed to be presented
		Number HeadersNumber
		// MaxKeyLength limits the length of a single header key.
		MaxKeyLength int
		// MaxValueLength limits the length of a single header value, folded
		// continuation lines included.
		MaxValueLength int
		// Space limits the amount of memory occupied by the head of a single
		// response, trailers included.
		Space HeadersSpace
	}

	Body struct {
		// MaxChunkExtLength limits the total length of extensions of a single
		// chunk, the leading semicolon included.
		MaxChunkExtLength int
	}

	Connection struct {
		// OnHeadError defines the recovery strategy for malformed response
		// heads. Entity stream errors never consult it, as they doom the
		// affected response only.
		OnHeadError HeadErrorPolicy
	}
)

// Config holds settings used across various parts of the parser, mainly
// restrictions, limitations and pre-allocations.
//
// You must ALWAYS modify defaults (returned via Default()) and NEVER try to
// initialize the config manually, because most likely this will result in
// ambiguous errors.
type Config struct {
	StatusLine StatusLine
	Headers    Headers
	Body       Body
	Connection Connection
	// Statuses extends or overrides the builtin status code table.
	Statuses status.Registry `test:"nullable"`
	// MediaTypes defines charset policies for media types of interest.
	MediaTypes mime.Registry `test:"nullable"`
}

// Default returns default config. Those are initially well-balanced, however
// maximal defaults are pretty permitting.
func Default() *Config {
	return &Config{
		StatusLine: StatusLine{
			// reason phrases are normally a few words at most, yet some
			// servers use them to carry diagnostics.
			MaxReasonLength: 1 * 1024,
		},
		Headers: Headers{
			Number: HeadersNumber{
				Default: 10,
				Maximal: 50,
			},
			MaxKeyLength:   100,      // basically no reasons for a longer one
			MaxValueLength: 8 * 1024, // fits even the most talkative Set-Cookie
			Space: HeadersSpace{
				Default: 1 * 1024,  // 1kb for headers must be fairly enough in most cases.
				Maximal: 16 * 1024, // However, there also might be extremely long cookies.
			},
		},
		Body: Body{
			MaxChunkExtLength: 1 * 1024,
		},
		Connection: Connection{
			OnHeadError: CloseConnection,
		},
	}
}
