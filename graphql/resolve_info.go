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
	"context"
	"reflect"
	"strings"

	"github.com/botobag/bookshelf/graphql/ast"

	"github.com/json-iterator/go"
)

// ArgumentValues contains the coerced argument values given to a field. It is immutable.
type ArgumentValues struct {
	values map[string]interface{}
}

var noArgumentValues = ArgumentValues{
	values: map[string]interface{}{},
}

// NoArgumentValues represents an empty argument value set.
func NoArgumentValues() ArgumentValues {
	return noArgumentValues
}

// NewArgumentValues creates an ArgumentValues from values.
func NewArgumentValues(values map[string]interface{}) ArgumentValues {
	if len(values) == 0 {
		return noArgumentValues
	}
	return ArgumentValues{values}
}

// Lookup returns the value of the named argument and whether it was given (or defaulted).
func (args ArgumentValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = args.values[name]
	return
}

// Get returns the value of the named argument or nil.
func (args ArgumentValues) Get(name string) interface{} {
	return args.values[name]
}

// MarshalJSON serializes the values; it is mostly useful in tests.
func (args ArgumentValues) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(args.values)
}

// VariableValues contains the coerced variable values of an operation. It is immutable.
type VariableValues struct {
	values map[string]interface{}
}

var noVariableValues = VariableValues{
	values: map[string]interface{}{},
}

// NoVariableValues represents an empty variable value set.
func NoVariableValues() VariableValues {
	return noVariableValues
}

// NewVariableValues creates a VariableValues from values.
func NewVariableValues(values map[string]interface{}) VariableValues {
	if len(values) == 0 {
		return noVariableValues
	}
	return VariableValues{values}
}

// Lookup returns the value of the named variable and whether it was provided.
func (vars VariableValues) Lookup(name string) (value interface{}, ok bool) {
	value, ok = vars.values[name]
	return
}

// Get returns the value of the named variable or nil.
func (vars VariableValues) Get(name string) interface{} {
	return vars.values[name]
}

// ResolveInfo exposes execution state to a FieldResolver.
type ResolveInfo interface {
	// Schema being executed
	Schema() *Schema

	// Operation being executed
	Operation() *ast.OperationDefinition

	// Object that contains the field being resolved
	Object() *Object

	// Field being resolved
	Field() *Field

	// All nodes in the document that select the field under the same response key
	FieldNodes() []*ast.Field

	// Path to the field in the response
	Path() ResponsePath

	// Coerced arguments of the field
	Args() ArgumentValues

	// Coerced variables of the operation
	VariableValues() VariableValues

	// Value given to ExecuteParams.RootValue
	RootValue() interface{}

	// Value given to ExecuteParams.AppContext
	AppContext() interface{}
}

// DefaultFieldResolver resolves a field by looking it up from the source value. It handles
// map[string]interface{} by key and structs (or pointers to structs) by a field tagged with
// `graphql:"name"` or named like the field, ignoring case. A method with no parameter named like
// the field is called when no such struct field exists.
type DefaultFieldResolver struct{}

// Resolve implements FieldResolver.
func (DefaultFieldResolver) Resolve(ctx context.Context, source interface{}, info ResolveInfo) (interface{}, error) {
	name := info.Field().Name()

	if m, ok := source.(map[string]interface{}); ok {
		return m[name], nil
	}

	v := reflect.ValueOf(source)
	if !v.IsValid() {
		return nil, nil
	}

	if method := methodByFieldName(v, name); method.IsValid() {
		return callFieldMethod(method)
	}

	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil, nil
		}
		v = v.Elem()
	}

	if v.Kind() != reflect.Struct {
		return nil, nil
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		structField := t.Field(i)
		if structField.PkgPath != "" {
			// Unexported
			continue
		}
		tag := structField.Tag.Get("graphql")
		if tag == name || (tag == "" && strings.EqualFold(structField.Name, name)) {
			return v.Field(i).Interface(), nil
		}
	}

	return nil, nil
}

func methodByFieldName(v reflect.Value, name string) reflect.Value {
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		method := t.Method(i)
		if strings.EqualFold(method.Name, name) && method.Type.NumIn() == 1 {
			return v.Method(i)
		}
	}
	return reflect.Value{}
}

var errorInterface = reflect.TypeOf((*error)(nil)).Elem()

func callFieldMethod(method reflect.Value) (interface{}, error) {
	results := method.Call(nil)
	switch len(results) {
	case 1:
		return results[0].Interface(), nil
	case 2:
		if results[1].Type().Implements(errorInterface) && !results[1].IsNil() {
			return nil, results[1].Interface().(error)
		}
		return results[0].Interface(), nil
	}
	return nil, nil
}
