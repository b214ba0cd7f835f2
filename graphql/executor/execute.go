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

package executor

import (
	"errors"
	"fmt"
	"io"
	"reflect"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	values "github.com/botobag/bookshelf/graphql/internal/value"
	"github.com/botobag/bookshelf/jsonwriter"
)

// ExecutionResult contains result from executing an operation. Data is nil when the execution
// did not start, for example because of invalid variable values.
type ExecutionResult struct {
	Data   *ResultNode
	Errors graphql.Errors
}

// MarshalJSONTo writes the JSON encoding of result followed by a newline to w.
func (result *ExecutionResult) MarshalJSONTo(w io.Writer) error {
	stream := jsonwriter.NewStream(w)
	stream.WriteValue(NewExecutionResultMarshaler(result))
	stream.WriteRawString("\n")
	return stream.Flush()
}

// MarshalJSON implements json.Marshaler interface for ExecutionResult.
func (result ExecutionResult) MarshalJSON() ([]byte, error) {
	return jsonwriter.Marshal(NewExecutionResultMarshaler(&result))
}

// errNullPropagation is returned when a non-null field resolved to null. The error that caused it
// has already been recorded; the caller nulls out the nearest nullable ancestor.
var errNullPropagation = errors.New("null propagation")

// executeFields executes the grouped fields on source and returns an object result. Fields are
// resolved one by one in the order they appear in the selection set and each field is completed
// (including its sub-selections) before its next sibling.
func (ctx *executionContext) executeFields(
	parentType *graphql.Object,
	source interface{},
	path graphql.ResponsePath,
	fields *fieldGroups) (*ResultNode, error) {

	object := &ObjectResultValue{
		Keys:        make([]string, 0, len(fields.keys)),
		FieldValues: make([]*ResultNode, 0, len(fields.keys)),
	}

	for _, key := range fields.keys {
		fieldNodes := fields.nodes[key]
		fieldDef := graphql.FieldDefOf(parentType, fieldNodes[0].Name.Value())
		if fieldDef == nil {
			// Validation rejects unknown fields. Skip it if validation was bypassed.
			continue
		}

		result, err := ctx.executeField(parentType, fieldDef, source, fieldNodes, path.WithFieldName(key))
		if err != nil {
			return nil, err
		}

		object.Keys = append(object.Keys, key)
		object.FieldValues = append(object.FieldValues, result)
	}

	return &ResultNode{
		Kind:  ResultKindObject,
		Value: object,
	}, nil
}

// executeField resolves the field on source and completes its value. Errors are recorded and turn
// the field into null, unless the field is non-null in which case errNullPropagation is returned.
func (ctx *executionContext) executeField(
	parentType *graphql.Object,
	fieldDef *graphql.Field,
	source interface{},
	fieldNodes []*ast.Field,
	path graphql.ResponsePath) (*ResultNode, error) {

	fieldNode := fieldNodes[0]
	args, err := values.ArgumentValues(fieldDef.Args(), fieldNode.Arguments, fieldNode, ctx.variableValues)
	if err != nil {
		return ctx.handleFieldError(err, fieldDef.Type(), fieldNodes, path)
	}

	info := &resolveInfo{
		ctx:        ctx,
		object:     parentType,
		field:      fieldDef,
		fieldNodes: fieldNodes,
		path:       path,
		args:       args,
	}

	value, err := ctx.resolveFieldValue(fieldDef.Resolver(), source, info)
	if err != nil {
		return ctx.handleFieldError(err, fieldDef.Type(), fieldNodes, path)
	}

	result, err := ctx.completeValue(fieldDef.Type(), info, path, value)
	if err != nil {
		return ctx.handleFieldError(err, fieldDef.Type(), fieldNodes, path)
	}

	return result, nil
}

// resolveFieldValue calls resolver. A panic in resolver is turned into an error.
func (ctx *executionContext) resolveFieldValue(
	resolver graphql.FieldResolver,
	source interface{},
	info *resolveInfo) (value interface{}, err error) {

	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("%v", r)
		}
	}()

	return resolver.Resolve(ctx.ctx, source, info)
}

// handleFieldError records err at path and decides how the failure affects the result: a
// nullable position becomes null; a non-null position propagates to its parent.
func (ctx *executionContext) handleFieldError(
	err error,
	returnType graphql.Type,
	fieldNodes []*ast.Field,
	path graphql.ResponsePath) (*ResultNode, error) {

	if err != errNullPropagation {
		ctx.errs.Append(locatedError(err, fieldNodes, path))
	}

	if graphql.IsNonNullType(returnType) {
		return nil, errNullPropagation
	}

	return nullResult(), nil
}

// locatedError attaches the locations of fieldNodes and path to err unless err already knows where
// it happened.
func locatedError(err error, fieldNodes []*ast.Field, path graphql.ResponsePath) *graphql.Error {
	message := err.Error()
	if e, ok := err.(*graphql.Error); ok {
		if len(e.Locations) > 0 && !e.Path.Empty() {
			return e
		}
		message = e.Message
	}

	e := graphql.NewError(message, err, path)
	if len(e.Locations) == 0 {
		nodes := make([]ast.Node, len(fieldNodes))
		for i, node := range fieldNodes {
			nodes[i] = node
		}
		e.Locations = graphql.ErrorLocationsOfASTNodes(nodes...)
	}
	if e.Kind == graphql.ErrKindOther {
		e.Kind = graphql.ErrKindExecution
	}
	return e
}

// completeValue implements the "CompleteValue" algorithm: it turns the value returned by a
// resolver into a ResultNode of returnType.
func (ctx *executionContext) completeValue(
	returnType graphql.Type,
	info *resolveInfo,
	path graphql.ResponsePath,
	value interface{}) (*ResultNode, error) {

	if nonNullType, ok := returnType.(*graphql.NonNull); ok {
		result, err := ctx.completeValue(nonNullType.InnerType(), info, path, value)
		if err != nil {
			return nil, err
		}
		if result.IsNil() {
			return nil, graphql.NewError(fmt.Sprintf("Cannot return null for non-nullable field %s.%s.",
				info.object.Name(), info.field.Name()))
		}
		return result, nil
	}

	if isNilValue(value) {
		return nullResult(), nil
	}

	switch returnType := returnType.(type) {
	case *graphql.List:
		return ctx.completeListValue(returnType, info, path, value)

	case graphql.LeafType:
		return completeLeafValue(returnType, value)

	case *graphql.Object:
		return ctx.completeObjectValue(returnType, info, path, value)
	}

	return nil, graphql.NewError(fmt.Sprintf(`Cannot complete value of unexpected type "%s".`, returnType),
		graphql.ErrKindInternal)
}

func (ctx *executionContext) completeListValue(
	returnType *graphql.List,
	info *resolveInfo,
	path graphql.ResponsePath,
	value interface{}) (*ResultNode, error) {

	v := reflect.ValueOf(value)
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return nil, graphql.NewError(fmt.Sprintf("Expected Iterable, but did not find one for field %s.%s.",
			info.object.Name(), info.field.Name()))
	}

	var (
		elementType = returnType.ElementType()
		n           = v.Len()
		elements    = make([]*ResultNode, n)
	)
	for i := 0; i < n; i++ {
		elementPath := path.WithIndex(i)
		element, err := ctx.completeValue(elementType, info, elementPath, v.Index(i).Interface())
		if err != nil {
			element, err = ctx.handleFieldError(err, elementType, info.fieldNodes, elementPath)
			if err != nil {
				return nil, err
			}
		}
		elements[i] = element
	}

	return &ResultNode{
		Kind:  ResultKindList,
		Value: elements,
	}, nil
}

func completeLeafValue(returnType graphql.LeafType, value interface{}) (*ResultNode, error) {
	coerced, err := returnType.CoerceResultValue(value)
	if err != nil {
		return nil, err
	}
	if coerced == nil {
		return nil, graphql.NewError(fmt.Sprintf(`Expected a value of type "%s" but received: %s`,
			returnType, graphql.Inspect(value)))
	}
	return &ResultNode{
		Kind:  ResultKindLeaf,
		Value: coerced,
	}, nil
}

func (ctx *executionContext) completeObjectValue(
	returnType *graphql.Object,
	info *resolveInfo,
	path graphql.ResponsePath,
	value interface{}) (*ResultNode, error) {

	var (
		fields           = newFieldGroups()
		visitedFragments = map[string]bool{}
	)
	for _, fieldNode := range info.fieldNodes {
		if len(fieldNode.SelectionSet) > 0 {
			ctx.collectFields(returnType, fieldNode.SelectionSet, fields, visitedFragments)
		}
	}

	return ctx.executeFields(returnType, value, path, fields)
}

// isNilValue returns true for nil and for nil pointers, slices, maps and interfaces.
func isNilValue(value interface{}) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
