package respstream

import (
	"fmt"
	"testing"

	"github.com/indigo-web/respstream/mime"
	"github.com/indigo-web/respstream/status"
	"github.com/stretchr/testify/require"
)

func collectEntity(p *Parser, raw string) *Entity {
	p.Push([]byte(raw))

	e := new(Entity)
	for e.Consume(p.Poll()) {
	}

	return e
}

func TestEntity(t *testing.T) {
	t.Run("fixed body", func(t *testing.T) {
		e := collectEntity(expectGET(New(nil), 1), "HTTP/1.1 200 OK\r\nContent-Length: 5\r\n\r\nhello")

		require.True(t, e.Done())
		require.NoError(t, e.Err())
		require.Equal(t, "hello", e.String())
		require.NotNil(t, e.Head())
		require.Nil(t, e.Trailers())
	})

	t.Run("json body", func(t *testing.T) {
		body := `{"name":"indigo","tags":["http","parser"]}`
		raw := fmt.Sprintf(
			"HTTP/1.1 200 OK\r\nContent-Type: application/json\r\nContent-Length: %d\r\n\r\n%s",
			len(body), body,
		)
		e := collectEntity(expectGET(New(nil), 1), raw)

		require.True(t, e.Done())
		require.Equal(t, mime.JSON, e.Head().ContentType)

		var model struct {
			Name string   `json:"name"`
			Tags []string `json:"tags"`
		}
		require.NoError(t, e.JSON(&model))
		require.Equal(t, "indigo", model.Name)
		require.Equal(t, []string{"http", "parser"}, model.Tags)
	})

	t.Run("chunked body with trailers", func(t *testing.T) {
		raw := "HTTP/1.1 200 OK\r\nTransfer-Encoding: chunked\r\n\r\n" + chunkedStream
		e := collectEntity(expectGET(New(nil), 1), raw)

		require.True(t, e.Done())
		require.Equal(t, "abc"+"0123456789ABCDEF"+"0123456789ABCDEF", e.String())
		require.NotNil(t, e.Trailers())
		require.Equal(t, "pip apo", e.Trailers().Value("trailer-two"))
	})

	t.Run("broken body", func(t *testing.T) {
		p := expectGET(New(nil), 1)
		p.Push([]byte("HTTP/1.1 200 OK\r\nContent-Length: 10\r\n\r\nhell"))
		p.Complete()

		e := new(Entity)
		for e.Consume(p.Poll()) {
		}

		require.False(t, e.Done())
		require.ErrorIs(t, e.Err(), status.ErrEntityStreamTruncation)
		require.Equal(t, "hell", e.String())
		require.NotNil(t, e.Head())
	})

	t.Run("reset", func(t *testing.T) {
		p := expectGET(New(nil), 2)
		raw := "HTTP/1.1 200 OK\r\nContent-Length: 3\r\n\r\none" +
			"HTTP/1.1 200 OK\r\nContent-Length: 3\r\n\r\ntwo"
		p.Push([]byte(raw))

		e := new(Entity)
		for e.Consume(p.Poll()) {
		}
		require.Equal(t, "one", e.String())

		e.Reset()
		for e.Consume(p.Poll()) {
		}
		require.True(t, e.Done())
		require.Equal(t, "two", e.String())
	})
}
