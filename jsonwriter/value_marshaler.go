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
	"bytes"
	"encoding/json"
	"reflect"
)

// ValueMarshaler is the interface implemented by types that can marshal themselves to JSON into a stream.
type ValueMarshaler interface {
	MarshalJSONTo(stream *Stream) error
}

// WriteValue writes a value that implements ValueMarshaler.
func (stream *Stream) WriteValue(marshaler ValueMarshaler) {
	if stream.stream.Error != nil {
		return
	}

	if isNilPointer(marshaler) {
		stream.WriteNil()
		return
	}

	if err := marshaler.MarshalJSONTo(stream); err != nil {
		stream.setError(&json.MarshalerError{
			Type: reflect.TypeOf(marshaler),
			Err:  err,
		})
	}
}

// Marshal returns the JSON encoding of v that implements ValueMarshaler. It is useful for
// implementing MarshalJSON on types that already implement ValueMarshaler.
func Marshal(v ValueMarshaler) ([]byte, error) {
	if isNilPointer(v) {
		return []byte("null"), nil
	}

	var (
		buf    bytes.Buffer
		stream = NewStream(&buf)
	)

	// Don't wrap the error in a json.MarshalerError. Let encoding/json do that.
	if err := v.MarshalJSONTo(stream); err != nil {
		return nil, err
	}

	if err := stream.Flush(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
