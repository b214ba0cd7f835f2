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

package rules

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	messages "github.com/botobag/bookshelf/graphql/internal/validator"
	"github.com/botobag/bookshelf/graphql/validator"
)

// ValuesOfCorrectType implements the "Values of Correct Type" validation rule on argument values
// and default values of variables.
//
// See https://facebook.github.io/graphql/June2018/#sec-Values-of-Correct-Type.
type ValuesOfCorrectType struct{}

// checkValue reports the literal parts of value that cannot be coerced to t. Variables are checked
// by VariablesInAllowedPosition.
func checkValue(ctx *validator.ValidationContext, value ast.Value, t graphql.Type) {
	if t == nil {
		return
	}

	if _, ok := value.(*ast.Variable); ok {
		return
	}

	// Errors are reported at the full type expected by the location (e.g., "String!").
	expectedType := t
	if nonNull, ok := t.(*graphql.NonNull); ok {
		if ast.IsNullValue(value) {
			ctx.ReportError(
				messages.BadValueMessage(expectedType.String(), ast.PrintValue(value), ""),
				graphql.ErrorLocationOfASTNode(value),
			)
			return
		}
		t = nonNull.InnerType()
	} else if ast.IsNullValue(value) {
		return
	}

	switch t := t.(type) {
	case *graphql.List:
		if list, ok := value.(*ast.ListValue); ok {
			for _, item := range list.Values {
				checkValue(ctx, item, t.ElementType())
			}
		} else {
			checkValue(ctx, value, t.ElementType())
		}

	case *graphql.Scalar:
		if _, err := t.CoerceLiteralValue(value); err != nil {
			var reason string
			if e, ok := err.(*graphql.Error); ok {
				reason = e.Message
			} else {
				reason = err.Error()
			}
			ctx.ReportError(
				messages.BadValueMessage(expectedType.String(), ast.PrintValue(value), reason),
				graphql.ErrorLocationOfASTNode(value),
			)
		}
	}
}

// CheckFieldArgument implements validator.FieldArgumentRule.
func (rule ValuesOfCorrectType) CheckFieldArgument(
	ctx *validator.ValidationContext,
	field *validator.FieldInfo,
	argDef *graphql.Argument,
	arg *ast.Argument) validator.NextCheckAction {

	if argDef != nil {
		checkValue(ctx, arg.Value, argDef.Type())
	}
	return validator.ContinueCheck
}

// CheckDirectiveArgument implements validator.DirectiveArgumentRule.
func (rule ValuesOfCorrectType) CheckDirectiveArgument(
	ctx *validator.ValidationContext,
	directive *validator.DirectiveInfo,
	argDef *graphql.Argument,
	arg *ast.Argument) validator.NextCheckAction {

	if argDef != nil {
		checkValue(ctx, arg.Value, argDef.Type())
	}
	return validator.ContinueCheck
}

// CheckVariable implements validator.VariableRule.
func (rule ValuesOfCorrectType) CheckVariable(
	ctx *validator.ValidationContext,
	t graphql.Type,
	variable *ast.VariableDefinition) validator.NextCheckAction {

	if variable.DefaultValue != nil && graphql.IsInputType(t) {
		checkValue(ctx, variable.DefaultValue, t)
	}
	return validator.ContinueCheck
}
