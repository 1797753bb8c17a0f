package respgen

import (
	"strconv"
	"strings"

	"github.com/indigo-web/respstream/kv"
)

func Headers(n int) *kv.Storage {
	hdrs := kv.NewPrealloc(n)

	for i := 0; i < n-1; i++ {
		hdrs.Add("some-random-header-name-nobody-cares-about"+strconv.Itoa(i), strings.Repeat("b", 100))
	}

	return hdrs.Add("Server", "indigo")
}

func HeadersBlock(hdrs *kv.Storage) (buff []byte) {
	for _, pair := range hdrs.Expose() {
		buff = append(buff, pair.Key+": "+pair.Value+"\r\n"...)
	}

	return buff
}

// Generate renders a complete response carrying a fixed-length body.
func Generate(body string, hdrs *kv.Storage) (response []byte) {
	response = append(response, "HTTP/1.1 200 OK\r\n"...)
	response = append(response, HeadersBlock(hdrs)...)
	response = append(response, "Content-Length: "+strconv.Itoa(len(body))+"\r\n\r\n"...)

	return append(response, body...)
}

// GenerateChunked renders a complete response carrying the given chunked
// stream as its body.
func GenerateChunked(stream []byte, hdrs *kv.Storage) (response []byte) {
	response = append(response, "HTTP/1.1 200 OK\r\n"...)
	response = append(response, HeadersBlock(hdrs)...)
	response = append(response, "Transfer-Encoding: chunked\r\n\r\n"...)

	return append(response, stream...)
}

// Chunked renders a raw chunked transfer encoding stream of n copies of the
// payload, terminated by a zero-length chunk.
func Chunked(n int, payload string) (stream []byte) {
	size := strconv.FormatInt(int64(len(payload)), 16)

	for i := 0; i < n; i++ {
		stream = append(stream, size+"\r\n"+payload+"\r\n"...)
	}

	return append(stream, "0\r\n\r\n"...)
}
