package mime

import (
	"strings"

	"github.com/indigo-web/respstream/internal/strutil"
	"github.com/indigo-web/utils/strcomp"
)

// Entry defines the charset policy for a single media type.
type Entry struct {
	// MIME the entry applies to.
	MIME MIME
	// Charset is the entry's charset. If Open is false, it is always in
	// effect. Otherwise, it serves as the fallback for when the message
	// carries no charset parameter.
	Charset Charset
	// Open lets the charset parameter of the Content-Type header take
	// effect.
	Open bool
}

// Registry is an ordered media type table. The first matching entry wins.
type Registry []Entry

// Lookup finds the first entry for the media type, case-insensitively.
func (r Registry) Lookup(m MIME) (Entry, bool) {
	for _, entry := range r {
		if strcomp.EqualFold(entry.MIME, m) {
			return entry, true
		}
	}

	return Entry{}, false
}

// Resolve splits a Content-Type header value into the media type and the
// effective charset. Fixed registry entries ignore the charset parameter
// entirely, open ones honor it and fall back to the entry's own charset.
// Media types no entry covers behave as open entries defaulting to
// DefaultCharset.
func Resolve(contentType string, registry Registry) (MIME, Charset) {
	value, params := strutil.CutHeader(contentType)
	if len(value) == 0 {
		return Unset, ""
	}

	entry, registered := registry.Lookup(value)
	if registered && !entry.Open {
		return value, entry.Charset
	}

	if charset := charsetParam(params); len(charset) > 0 {
		return value, charset
	}

	if registered {
		return value, entry.Charset
	}

	return value, DefaultCharset[value]
}

// charsetParam extracts the value of the charset parameter, unquoted.
// Empty string stands for "not present".
func charsetParam(params string) Charset {
	for len(params) > 0 {
		var param string
		param, params = strutil.CutHeader(params)

		key, value, found := strings.Cut(param, "=")
		if found && strcomp.EqualFold(strutil.StripWS(key), "charset") {
			return strutil.Unquote(strutil.StripWS(value))
		}
	}

	return ""
}
