/**
 * Copyright (c) 2018, The Artemis Authors.
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

package executor

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/jsonwriter"
)

// resultMarshaler implements jsonwriter.ValueMarshaler to encode ExecutionResult to JSON.
type resultMarshaler struct {
	result *ExecutionResult
}

// NewExecutionResultMarshaler creates marshaler to write JSON encoding for given ExecutionResult
// with jsonwriter.
func NewExecutionResultMarshaler(result *ExecutionResult) jsonwriter.ValueMarshaler {
	return resultMarshaler{result}
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (marshaler resultMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	result := marshaler.result
	stream.WriteObjectStart()

	// "errors" goes first to make it clear.
	if result.Errors.HaveOccurred() {
		stream.WriteObjectField("errors")
		stream.WriteValue(ErrorsMarshaler(result.Errors))
		if result.Data != nil {
			stream.WriteMore()
		}
	}

	if result.Data != nil {
		stream.WriteObjectField("data")
		stream.WriteValue(result.Data)
	}

	stream.WriteObjectEnd()

	return nil
}

// errorsMarshaler writes a graphql.Errors as a JSON array.
type errorsMarshaler struct {
	errs graphql.Errors
}

// ErrorsMarshaler creates marshaler that writes errs as the "errors" entry of a response.
func ErrorsMarshaler(errs graphql.Errors) jsonwriter.ValueMarshaler {
	return errorsMarshaler{errs}
}

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (marshaler errorsMarshaler) MarshalJSONTo(stream *jsonwriter.Stream) error {
	errs := marshaler.errs.Errors
	if len(errs) == 0 {
		stream.WriteEmptyArray()
		return nil
	}

	stream.WriteArrayStart()
	for i, err := range errs {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteInterface(err)
	}
	stream.WriteArrayEnd()

	return nil
}

var _ jsonwriter.ValueMarshaler = (*ResultNode)(nil)

// MarshalJSONTo implements jsonwriter.ValueMarshaler.
func (node *ResultNode) MarshalJSONTo(stream *jsonwriter.Stream) error {
	switch node.Kind {
	case ResultKindNil:
		stream.WriteNil()

	case ResultKindList:
		elements := node.ListValue()
		if len(elements) == 0 {
			stream.WriteEmptyArray()
			break
		}
		stream.WriteArrayStart()
		for i, element := range elements {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteValue(element)
		}
		stream.WriteArrayEnd()

	case ResultKindObject:
		object := node.ObjectValue()
		if len(object.Keys) == 0 {
			stream.WriteEmptyObject()
			break
		}
		stream.WriteObjectStart()
		for i, key := range object.Keys {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectField(key)
			stream.WriteValue(object.FieldValues[i])
		}
		stream.WriteObjectEnd()

	case ResultKindLeaf:
		stream.WriteInterface(node.Value)
	}

	return stream.Error()
}

// MarshalJSON implements json.Marshaler interface for ResultNode.
func (node *ResultNode) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(node)
}
