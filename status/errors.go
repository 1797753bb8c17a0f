package status

// HTTPError carries, besides the text itself, the status code the error
// deserves to be answered (or, for client-side parsing, reported) with.
type HTTPError struct {
	Message string
	Code    Code
}

func NewError(code Code, message string) error {
	return HTTPError{
		Code:    code,
		Message: message,
	}
}

func (h HTTPError) Error() string {
	return h.Message
}

var (
	ErrBadMessageStart     = NewError(BadRequest, "Illegal HTTP message start")
	ErrUnsupportedProtocol = NewError(BadRequest, "the server-side HTTP version is not supported")
	ErrBadStatusCode       = NewError(BadRequest, "Illegal response status code")
	ErrTruncatedHead       = NewError(BadRequest, "unexpected end of stream inside the response head")

	ErrBadHeader            = NewError(BadRequest, "malformed header line")
	ErrHeaderFieldsTooLarge = NewError(RequestHeaderFieldsTooLarge, "too large headers section")
	ErrTooManyHeaders       = NewError(RequestHeaderFieldsTooLarge, "too many headers")

	ErrBadChunk               = NewError(BadRequest, "malformed chunk-encoded data")
	ErrTooLargeChunkExts      = NewError(BadRequest, "too large chunk extensions")
	ErrEntityStreamTruncation = NewError(BadRequest, "Entity stream truncation")
)
