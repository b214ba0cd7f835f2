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
	"github.com/botobag/bookshelf/internal/util"
)

// KnownArgumentNames implements the "Argument Names" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Argument-Names.
type KnownArgumentNames struct{}

// CheckFieldArgument implements validator.FieldArgumentRule.
func (rule KnownArgumentNames) CheckFieldArgument(
	ctx *validator.ValidationContext,
	field *validator.FieldInfo,
	argDef *graphql.Argument,
	arg *ast.Argument) validator.NextCheckAction {

	if argDef != nil || field.Def() == nil {
		return validator.ContinueCheck
	}

	argName := arg.Name.Value()
	ctx.ReportError(
		messages.UnknownArgMessage(
			argName,
			field.Name(),
			field.ParentType().String(),
			util.SuggestionList(argName, field.KnownArgNames()),
		),
		graphql.ErrorLocationOfASTNode(arg),
	)
	return validator.ContinueCheck
}

// CheckDirectiveArgument implements validator.DirectiveArgumentRule.
func (rule KnownArgumentNames) CheckDirectiveArgument(
	ctx *validator.ValidationContext,
	directive *validator.DirectiveInfo,
	argDef *graphql.Argument,
	arg *ast.Argument) validator.NextCheckAction {

	if argDef != nil || directive.Def() == nil {
		return validator.ContinueCheck
	}

	argName := arg.Name.Value()
	ctx.ReportError(
		messages.UnknownDirectiveArgMessage(
			argName,
			directive.Name(),
			util.SuggestionList(argName, directive.KnownArgNames()),
		),
		graphql.ErrorLocationOfASTNode(arg),
	)
	return validator.ContinueCheck
}
