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

// Package value coerces input values given in variables and literals to their input types.
package value

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
)

// inputPath records where a nested input value was found, e.g. value[1].
type inputPath []int

func (path inputPath) String() string {
	if len(path) == 0 {
		return ""
	}
	var buf strings.Builder
	buf.WriteString(" at value")
	for _, index := range path {
		buf.WriteByte('[')
		buf.WriteString(strconv.Itoa(index))
		buf.WriteByte(']')
	}
	return buf.String()
}

// Coerce coerces a Go value (typically decoded from JSON variables) to the input type t.
func Coerce(value interface{}, t graphql.Type) (interface{}, error) {
	return coerce(value, t, nil)
}

func coerce(value interface{}, t graphql.Type, path inputPath) (interface{}, error) {
	if nonNull, ok := t.(*graphql.NonNull); ok {
		if value == nil {
			return nil, graphql.NewCoercionError("Expected non-nullable type %s not to be null%s.",
				t, path)
		}
		return coerce(value, nonNull.InnerType(), path)
	}

	if value == nil {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.List:
		v := reflect.ValueOf(value)
		if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
			item, err := coerce(value, t.ElementType(), path)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}

		result := make([]interface{}, v.Len())
		for i := range result {
			item, err := coerce(v.Index(i).Interface(), t.ElementType(), append(path, i))
			if err != nil {
				return nil, err
			}
			result[i] = item
		}
		return result, nil

	case *graphql.Scalar:
		result, err := t.CoerceVariableValue(value)
		if err != nil {
			return nil, graphql.NewCoercionError("Expected type %s%s; %s", t.Name(), path, messageOf(err))
		}
		return result, nil
	}

	return nil, graphql.NewCoercionError("Expected an input type but got %s%s.", t, path)
}

func messageOf(err error) string {
	if e, ok := err.(*graphql.Error); ok {
		return e.Message
	}
	return err.Error()
}

// FromAST produces a Go value from a literal for the input type t. Variables are looked up from
// variables. It returns an error when the literal is not valid for t.
func FromAST(node ast.Value, t graphql.Type, variables graphql.VariableValues) (interface{}, error) {
	if node == nil {
		return nil, fmt.Errorf("missing value for %s", t)
	}

	if variable, ok := node.(*ast.Variable); ok {
		value, provided := variables.Lookup(variable.Name.Value())
		if (!provided || value == nil) && graphql.IsNonNullType(t) {
			return nil, fmt.Errorf(`variable "$%s" of %s must not be null`, variable.Name.Value(), t)
		}
		// Variables were coerced already.
		return value, nil
	}

	if nonNull, ok := t.(*graphql.NonNull); ok {
		if ast.IsNullValue(node) {
			return nil, fmt.Errorf("expected non-null value of %s", t)
		}
		return FromAST(node, nonNull.InnerType(), variables)
	}

	if ast.IsNullValue(node) {
		return nil, nil
	}

	switch t := t.(type) {
	case *graphql.List:
		list, ok := node.(*ast.ListValue)
		if !ok {
			item, err := FromAST(node, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			return []interface{}{item}, nil
		}

		result := make([]interface{}, len(list.Values))
		for i, itemNode := range list.Values {
			item, err := FromAST(itemNode, t.ElementType(), variables)
			if err != nil {
				return nil, err
			}
			result[i] = item
		}
		return result, nil

	case *graphql.Scalar:
		return t.CoerceLiteralValue(node)
	}

	return nil, fmt.Errorf("%s is not an input type", t)
}

// CoerceVariableValues coerces the inputs of an operation against the variable definitions.
func CoerceVariableValues(
	schema *graphql.Schema,
	definitions []*ast.VariableDefinition,
	inputs map[string]interface{}) (graphql.VariableValues, graphql.Errors) {

	var errs graphql.Errors
	coerced := map[string]interface{}{}

	for _, definition := range definitions {
		name := definition.Variable.Name.Value()
		location := graphql.ErrorLocationOfASTNode(definition)

		t := schema.TypeFromAST(definition.Type)
		if !graphql.IsInputType(t) {
			errs.Emplace(fmt.Sprintf(`Variable "$%s" expected value of type "%s" which cannot be used `+
				`as an input type.`, name, definition.Type), location, graphql.ErrKindCoercion)
			continue
		}

		input, provided := inputs[name]
		switch {
		case !provided && definition.DefaultValue != nil:
			value, err := FromAST(definition.DefaultValue, t, graphql.NoVariableValues())
			if err == nil {
				coerced[name] = value
			}

		case (!provided || input == nil) && graphql.IsNonNullType(t):
			var message string
			if provided {
				message = fmt.Sprintf(`Variable "$%s" of non-null type "%s" must not be null.`, name, t)
			} else {
				message = fmt.Sprintf(`Variable "$%s" of required type "%s" was not provided.`, name, t)
			}
			errs.Emplace(message, location, graphql.ErrKindCoercion)

		case provided:
			if input == nil {
				coerced[name] = nil
				continue
			}
			value, err := Coerce(input, t)
			if err != nil {
				errs.Emplace(fmt.Sprintf(`Variable "$%s" got invalid value %s; %s`,
					name, graphql.Inspect(input), messageOf(err)), location, graphql.ErrKindCoercion)
				continue
			}
			coerced[name] = value
		}
	}

	if errs.HaveOccurred() {
		return graphql.NoVariableValues(), errs
	}
	return graphql.NewVariableValues(coerced), graphql.NoErrors()
}

// ArgumentValues coerces the arguments given in nodes against definitions. The returned error is a
// *graphql.Error located at the offending node.
func ArgumentValues(
	definitions []*graphql.Argument,
	nodes ast.Arguments,
	parent ast.Node,
	variables graphql.VariableValues) (graphql.ArgumentValues, error) {

	if len(definitions) == 0 {
		return graphql.NoArgumentValues(), nil
	}

	coerced := map[string]interface{}{}
	for _, definition := range definitions {
		name := definition.Name()
		t := definition.Type()
		node := nodes.Get(name)

		if node == nil {
			if definition.HasDefaultValue() {
				coerced[name] = definition.DefaultValue()
			} else if graphql.IsNonNullType(t) {
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%s" was not provided.`, name, t),
					graphql.ErrorLocationOfASTNode(parent), graphql.ErrKindCoercion)
			}
			continue
		}

		if variable, ok := node.Value.(*ast.Variable); ok {
			variableName := variable.Name.Value()
			value, provided := variables.Lookup(variableName)
			switch {
			case provided && value == nil && graphql.IsNonNullType(t):
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`, name, t),
					graphql.ErrorLocationOfASTNode(node.Value), graphql.ErrKindCoercion)
			case provided:
				coerced[name] = value
			case definition.HasDefaultValue():
				coerced[name] = definition.DefaultValue()
			case graphql.IsNonNullType(t):
				return graphql.NoArgumentValues(), graphql.NewError(
					fmt.Sprintf(`Argument "%s" of required type "%s" was provided the variable "$%s" `+
						`which was not provided a runtime value.`, name, t, variableName),
					graphql.ErrorLocationOfASTNode(node.Value), graphql.ErrKindCoercion)
			}
			continue
		}

		if ast.IsNullValue(node.Value) && graphql.IsNonNullType(t) {
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" of non-null type "%s" must not be null.`, name, t),
				graphql.ErrorLocationOfASTNode(node.Value), graphql.ErrKindCoercion)
		}

		value, err := FromAST(node.Value, t, variables)
		if err != nil {
			return graphql.NoArgumentValues(), graphql.NewError(
				fmt.Sprintf(`Argument "%s" has invalid value %s.`, name, ast.PrintValue(node.Value)),
				graphql.ErrorLocationOfASTNode(node.Value), graphql.ErrKindCoercion)
		}
		coerced[name] = value
	}

	return graphql.NewArgumentValues(coerced), nil
}
