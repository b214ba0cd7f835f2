/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package jsonwriter

import (
	"io"
	"reflect"

	"github.com/json-iterator/go"
)

const initialStreamBufSize = 512

// config used by streams created in this package. Map keys are sorted to make output stable.
var config = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
}.Froze()

// Stream writes JSON encoding to an io.Writer. Writes are buffered until Flush is called or the
// buffer fills up.
type Stream struct {
	stream *jsoniter.Stream
}

// NewStream creates a stream for writing data in JSON encoding.
func NewStream(w io.Writer) *Stream {
	return &Stream{
		stream: jsoniter.NewStream(config, w, initialStreamBufSize),
	}
}

// Error returns error occurred during use of the stream.
func (stream *Stream) Error() error {
	return stream.stream.Error
}

// setError records err unless an error was recorded before.
func (stream *Stream) setError(err error) {
	if stream.stream.Error == nil {
		stream.stream.Error = err
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (stream *Stream) Flush() error {
	if err := stream.stream.Error; err != nil {
		return err
	}
	return stream.stream.Flush()
}

// WriteRawString writes raw string into output.
func (stream *Stream) WriteRawString(s string) { stream.stream.WriteRaw(s) }

// WriteMore writes a ",".
func (stream *Stream) WriteMore() { stream.stream.WriteRaw(",") }

// WriteArrayStart writes a "[".
func (stream *Stream) WriteArrayStart() { stream.stream.WriteRaw("[") }

// WriteArrayEnd writes a "]".
func (stream *Stream) WriteArrayEnd() { stream.stream.WriteRaw("]") }

// WriteEmptyArray writes "[]".
func (stream *Stream) WriteEmptyArray() { stream.stream.WriteEmptyArray() }

// WriteObjectStart writes a "{".
func (stream *Stream) WriteObjectStart() { stream.stream.WriteRaw("{") }

// WriteObjectField writes a "field:".
func (stream *Stream) WriteObjectField(field string) {
	stream.stream.WriteString(field)
	stream.stream.WriteRaw(":")
}

// WriteObjectEnd writes a "}".
func (stream *Stream) WriteObjectEnd() { stream.stream.WriteRaw("}") }

// WriteEmptyObject writes "{}".
func (stream *Stream) WriteEmptyObject() { stream.stream.WriteEmptyObject() }

// WriteBool encodes a boolean value.
func (stream *Stream) WriteBool(b bool) { stream.stream.WriteBool(b) }

// WriteNil writes "null".
func (stream *Stream) WriteNil() { stream.stream.WriteNil() }

// WriteString writes s as a JSON string literal.
func (stream *Stream) WriteString(s string) { stream.stream.WriteString(s) }

// WriteInt writes an int.
func (stream *Stream) WriteInt(i int) { stream.stream.WriteInt(i) }

// WriteInt64 writes an int64.
func (stream *Stream) WriteInt64(i int64) { stream.stream.WriteInt64(i) }

// WriteUint writes an uint.
func (stream *Stream) WriteUint(i uint) { stream.stream.WriteUint(i) }

// WriteFloat64 writes a float64 without losing precision.
func (stream *Stream) WriteFloat64(f float64) { stream.stream.WriteFloat64(f) }

// WriteInterface writes a value of an arbitrary type. Types implementing ValueMarshaler are written
// with MarshalJSONTo; everything else goes through json-iterator which honors json.Marshaler and
// struct tags.
func (stream *Stream) WriteInterface(v interface{}) {
	if stream.stream.Error != nil {
		return
	}

	switch v := v.(type) {
	case nil:
		stream.WriteNil()
	case ValueMarshaler:
		stream.WriteValue(v)
	case string:
		stream.WriteString(v)
	case bool:
		stream.WriteBool(v)
	case int:
		stream.WriteInt(v)
	case int32:
		stream.WriteInt64(int64(v))
	case int64:
		stream.WriteInt64(v)
	case float64:
		stream.WriteFloat64(v)
	default:
		stream.stream.WriteVal(v)
	}
}

// isNilPointer reports whether v holds a nil pointer. encoding/json writes null for such values
// instead of calling their marshaler.
func isNilPointer(v interface{}) bool {
	value := reflect.ValueOf(v)
	return value.Kind() == reflect.Ptr && value.IsNil()
}
