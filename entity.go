package respstream

import (
	"github.com/indigo-web/respstream/kv"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Entity accumulates the body of a single response out of the parser's
// event stream. It suits consumers with no use for streaming: assertions,
// small API payloads and the like.
type Entity struct {
	head     *Head
	data     []byte
	trailers *kv.Storage
	err      error
	done     bool
}

// Consume folds a single event in. It reports whether the response is
// still incomplete, so a driving loop may poll until it returns false.
func (e *Entity) Consume(ev Event) bool {
	switch ev.Kind {
	case EventHead:
		e.head = ev.Head
	case EventData, EventChunk:
		e.data = append(e.data, ev.Data...)
	case EventLastChunk:
		e.trailers = ev.Trailers
	case EventEnd:
		e.done = true
		return false
	case EventBodyError, EventHeadError:
		e.err = ev.Err
		return false
	case EventStreamEnd:
		return false
	}

	return true
}

// Head returns the head of the collected response, nil until one arrived.
func (e *Entity) Head() *Head {
	return e.head
}

// Done reports whether the response completed cleanly.
func (e *Entity) Done() bool {
	return e.done
}

// Err returns the error the response ended with, if any.
func (e *Entity) Err() error {
	return e.err
}

// Bytes returns the accumulated body.
func (e *Entity) Bytes() []byte {
	return e.data
}

func (e *Entity) String() string {
	return string(e.data)
}

// JSON decodes the accumulated body into the model.
func (e *Entity) JSON(model any) error {
	return json.Unmarshal(e.data, model)
}

// Trailers returns the trailer fields of a chunked body, nil for other
// framings and for bodies still in flight.
func (e *Entity) Trailers() *kv.Storage {
	return e.trailers
}

// Reset prepares the entity for the next response. The accumulated body is
// reused, so slices returned by Bytes earlier become invalid.
func (e *Entity) Reset() {
	e.head = nil
	e.data = e.data[:0]
	e.trailers = nil
	e.err = nil
	e.done = false
}
