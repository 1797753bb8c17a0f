package strutil

import "strings"

// LStripWS strips leading spaces and horizontal tabs.
func LStripWS(str string) string {
	for i := 0; i < len(str); i++ {
		switch str[i] {
		case ' ', '\t':
		default:
			return str[i:]
		}
	}

	return ""
}

// RStripWS strips trailing spaces and horizontal tabs.
func RStripWS(str string) string {
	for i := len(str); i > 0; i-- {
		switch str[i-1] {
		case ' ', '\t':
		default:
			return str[:i]
		}
	}

	return ""
}

// StripWS strips both leading and trailing spaces and horizontal tabs.
func StripWS(str string) string {
	return LStripWS(RStripWS(str))
}

// CutHeader splits a header value into the value itself and its parameters,
// e.g. text/html; charset=utf8 results in ("text/html", "charset=utf8").
func CutHeader(header string) (value, params string) {
	sep := strings.IndexByte(header, ';')
	if sep == -1 {
		return RStripWS(header), ""
	}

	return RStripWS(header[:sep]), LStripWS(header[sep+1:])
}

// Unquote removes the surrounding double quotes, if any.
func Unquote(str string) string {
	if len(str) > 1 && str[0] == '"' && str[len(str)-1] == '"' {
		return str[1 : len(str)-1]
	}

	return str
}

// LastToken returns the last entry of a comma-separated list, stripped of
// the optional whitespace around it.
func LastToken(list string) string {
	if sep := strings.LastIndexByte(list, ','); sep != -1 {
		list = list[sep+1:]
	}

	return StripWS(list)
}
