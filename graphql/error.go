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

package graphql

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unsafe"

	"github.com/botobag/bookshelf/graphql/ast"
	"github.com/botobag/bookshelf/graphql/token"

	"github.com/json-iterator/go"
)

// Op describes an operation, usually as the package and method, such as "parser.Parse".
type Op string

// ErrKind defines the kind of error this is.
type ErrKind uint8

// Enumeration of ErrKind
const (
	ErrKindOther      ErrKind = iota // Unclassified error. This value is not printed in the error message.
	ErrKindCoercion                  // Failed to coerce input or result values for desired GraphQL type.
	ErrKindSyntax                    // Syntax error in the GraphQL source
	ErrKindValidation                // The document failed validation against the schema.
	ErrKindExecution                 // An error occurred when executing a query.
	ErrKindInternal                  // Internal error
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOther:
		return "other error"
	case ErrKindCoercion:
		return "coercion error"
	case ErrKindSyntax:
		return "syntax error"
	case ErrKindValidation:
		return "validation error"
	case ErrKindExecution:
		return "execution error"
	case ErrKindInternal:
		return "internal error"
	}
	return "unknown error kind"
}

// ErrorExtensions is serialized under the "extensions" key of an error.
type ErrorExtensions map[string]interface{}

// ErrorLocation points to the beginning of a syntax element. Both values start from 1.
type ErrorLocation struct {
	Line   uint
	Column uint
}

// ErrorLocationOfASTNode returns the location of the first token of node.
func ErrorLocationOfASTNode(node ast.Node) ErrorLocation {
	return ErrorLocationOfToken(node.StartToken())
}

// ErrorLocationOfToken returns the location of tok.
func ErrorLocationOfToken(tok *token.Token) ErrorLocation {
	info := tok.LocationInfo()
	return ErrorLocation{
		Line:   info.Line,
		Column: info.Column,
	}
}

// ErrorLocationsOfASTNodes returns locations of each node in nodes.
func ErrorLocationsOfASTNodes(nodes ...ast.Node) []ErrorLocation {
	if len(nodes) == 0 {
		return nil
	}
	locations := make([]ErrorLocation, len(nodes))
	for i, node := range nodes {
		locations[i] = ErrorLocationOfASTNode(node)
	}
	return locations
}

// ErrorWithLocations is implemented by errors that know where they happened in a document. NewError
// pulls locations from an underlying error that implements it.
type ErrorWithLocations interface {
	Locations() []ErrorLocation
}

// ResponsePath is the list of keys from the root of a response to a field. Each key is either a
// field name (string) or a list index (int).
type ResponsePath struct {
	keys []interface{}
}

// Empty returns true if the path doesn't contain any key.
func (path ResponsePath) Empty() bool {
	return len(path.keys) == 0
}

// Keys returns the keys in path.
func (path ResponsePath) Keys() []interface{} {
	return path.keys
}

// WithFieldName returns a new path with name appended.
func (path ResponsePath) WithFieldName(name string) ResponsePath {
	return path.with(name)
}

// WithIndex returns a new path with index appended.
func (path ResponsePath) WithIndex(index int) ResponsePath {
	return path.with(index)
}

func (path ResponsePath) with(key interface{}) ResponsePath {
	keys := make([]interface{}, len(path.keys), len(path.keys)+1)
	copy(keys, path.keys)
	return ResponsePath{append(keys, key)}
}

// String formats path like "author.books[1].name".
func (path ResponsePath) String() string {
	var b strings.Builder
	for _, key := range path.keys {
		switch key := key.(type) {
		case string:
			if b.Len() > 0 {
				b.WriteByte('.')
			}
			b.WriteString(key)
		case int:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

// MarshalJSON serializes path keys to JSON.
func (path ResponsePath) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(&path)
}

type responsePathEncoder struct{}

func (responsePathEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*ResponsePath)(ptr).Empty()
}

func (responsePathEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	path := (*ResponsePath)(ptr)
	stream.WriteArrayStart()
	for i, key := range path.keys {
		if i > 0 {
			stream.WriteMore()
		}
		switch key := key.(type) {
		case string:
			stream.WriteString(key)
		case int:
			stream.WriteInt(key)
		default:
			stream.Error = fmt.Errorf(`unsupported type "%T" of key in response path`, key)
			return
		}
	}
	stream.WriteArrayEnd()
}

// An Error describes a failure found while parsing, validating or executing a request. It carries
// the fields of a GraphQL response error plus Op and Kind for programmers.
type Error struct {
	// Message describes the error; required in a response error.
	Message string

	// Locations within the document that correspond to this error
	Locations []ErrorLocation

	// Path of the response field which experienced the error; only set during execution.
	Path ResponsePath

	// Extensions contains vendor data added to the response error.
	Extensions ErrorExtensions

	// The underlying error that triggered this one
	Err error

	// Op is the operation being performed.
	Op Op

	// Kind is the class of error.
	Kind ErrKind
}

var _ error = (*Error)(nil)

// NewError builds an *Error from a message and a list of optional arguments which are recognized
// by their type: ErrorLocation, []ErrorLocation, ResponsePath, ErrorExtensions, error, Op and
// ErrKind. Locations, path, extensions and kind missing from the arguments are inherited from the
// underlying error. It panics on an argument of other types.
func NewError(message string, args ...interface{}) *Error {
	e := &Error{
		Message: message,
	}

	for _, arg := range args {
		switch arg := arg.(type) {
		case ErrorLocation:
			e.Locations = []ErrorLocation{arg}
		case []ErrorLocation:
			e.Locations = arg
		case ResponsePath:
			e.Path = arg
		case ErrorExtensions:
			e.Extensions = arg
		case error:
			e.Err = arg
		case Op:
			e.Op = arg
		case ErrKind:
			e.Kind = arg
		case nil:
		default:
			panic(fmt.Sprintf("graphql.NewError: unknown argument type %T", arg))
		}
	}

	switch prev := e.Err.(type) {
	case *Error:
		if len(e.Locations) == 0 && len(prev.Locations) > 0 {
			e.Locations = append([]ErrorLocation(nil), prev.Locations...)
		}
		if e.Path.Empty() {
			e.Path = prev.Path
		}
		if e.Extensions == nil {
			e.Extensions = prev.Extensions
		}
		if e.Kind == ErrKindOther {
			e.Kind = prev.Kind
		}
	case ErrorWithLocations:
		if len(e.Locations) == 0 {
			e.Locations = prev.Locations()
		}
	}

	return e
}

// WrapError builds an Error with message from an underlying error.
func WrapError(err error, message string) *Error {
	return NewError(message, err)
}

// WrapErrorf is like WrapError with a format specifier.
func WrapErrorf(err error, format string, args ...interface{}) *Error {
	return NewError(fmt.Sprintf(format, args...), err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Error implements Go's error interface.
func (e *Error) Error() string {
	var b strings.Builder
	e.printError(&b, nil)
	return b.String()
}

func (e *Error) printError(b *strings.Builder, next *Error) {
	initialLen := b.Len()
	pad := func(str string) {
		if b.Len() != initialLen {
			b.WriteString(str)
		}
	}

	if len(e.Op) > 0 {
		b.WriteString(string(e.Op))
	}

	if len(e.Message) > 0 {
		pad(": ")
		b.WriteString(e.Message)
	}

	// Don't repeat what the next error in the chain is going to print.
	if len(e.Locations) > 0 && (next == nil || !reflect.DeepEqual(next.Locations, e.Locations)) {
		if b.Len() == initialLen {
			b.WriteString("At ")
		} else {
			b.WriteString(" at ")
		}
		b.WriteString(fmt.Sprintf("%+v", e.Locations))
	}

	if !e.Path.Empty() && (next == nil || !reflect.DeepEqual(next.Path, e.Path)) {
		if b.Len() == initialLen {
			b.WriteString("For ")
		} else {
			b.WriteString(" for ")
		}
		b.WriteString("response field in the path ")
		b.WriteString(e.Path.String())
	}

	if e.Kind != ErrKindOther && (next == nil || next.Kind != e.Kind) {
		pad(": ")
		b.WriteString(e.Kind.String())
	}

	if len(e.Extensions) > 0 && (next == nil || !reflect.DeepEqual(next.Extensions, e.Extensions)) {
		pad(" (additional info: ")
		b.WriteString(fmt.Sprintf("%v)", e.Extensions))
	}

	if e.Err != nil {
		if prev, ok := e.Err.(*Error); ok {
			pad(":\n  ")
			prev.printError(b, e)
		} else if e.Err.Error() != e.Message {
			pad(": ")
			b.WriteString(e.Err.Error())
		}
	}
}

// MarshalJSON implements json.Marshaler.
func (e *Error) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(e)
}

type errorEncoder struct{}

func (errorEncoder) IsEmpty(ptr unsafe.Pointer) bool {
	return (*Error)(ptr) == nil
}

func (errorEncoder) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	err := (*Error)(ptr)
	stream.WriteObjectStart()

	stream.WriteObjectField("message")
	stream.WriteString(err.Message)

	if len(err.Locations) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("locations")
		stream.WriteArrayStart()
		for i, location := range err.Locations {
			if i > 0 {
				stream.WriteMore()
			}
			stream.WriteObjectStart()
			stream.WriteObjectField("line")
			stream.WriteUint(location.Line)
			stream.WriteMore()
			stream.WriteObjectField("column")
			stream.WriteUint(location.Column)
			stream.WriteObjectEnd()
		}
		stream.WriteArrayEnd()
	}

	if !err.Path.Empty() {
		stream.WriteMore()
		stream.WriteObjectField("path")
		stream.WriteVal(&err.Path)
	}

	if len(err.Extensions) > 0 {
		stream.WriteMore()
		stream.WriteObjectField("extensions")
		stream.WriteVal(map[string]interface{}(err.Extensions))
	}

	stream.WriteObjectEnd()
}

func init() {
	jsoniter.RegisterTypeEncoder("graphql.Error", errorEncoder{})
	jsoniter.RegisterTypeEncoder("graphql.ResponsePath", responsePathEncoder{})
}
