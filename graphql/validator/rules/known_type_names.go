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

// KnownTypeNames implements the "Fragment Spread Type Existence" validation rule and checks the
// types of variables.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragment-Spread-Type-Existence.
type KnownTypeNames struct{}

func checkTypeName(ctx *validator.ValidationContext, t ast.Type) {
	namedType := ast.NamedTypeOf(t)
	if namedType == nil {
		return
	}

	typeName := namedType.Name.Value()
	if ctx.Schema().TypeNamed(typeName) == nil {
		ctx.ReportError(
			messages.UnknownTypeMessage(typeName, util.SuggestionList(typeName, ctx.ExistingTypeNames())),
			graphql.ErrorLocationOfASTNode(namedType),
		)
	}
}

// CheckVariable implements validator.VariableRule.
func (rule KnownTypeNames) CheckVariable(
	ctx *validator.ValidationContext,
	t graphql.Type,
	variable *ast.VariableDefinition) validator.NextCheckAction {

	checkTypeName(ctx, variable.Type)
	return validator.ContinueCheck
}

// CheckFragment implements validator.FragmentRule.
func (rule KnownTypeNames) CheckFragment(
	ctx *validator.ValidationContext,
	fragmentInfo *validator.FragmentInfo) validator.NextCheckAction {

	checkTypeName(ctx, fragmentInfo.Definition().TypeCondition)
	return validator.ContinueCheck
}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule KnownTypeNames) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) validator.NextCheckAction {

	if fragment.TypeCondition != nil {
		checkTypeName(ctx, fragment.TypeCondition)
	}
	return validator.ContinueCheck
}
