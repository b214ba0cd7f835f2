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

// FragmentsOnCompositeTypes implements the "Fragments on Composite Types" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragments-On-Composite-Types.
type FragmentsOnCompositeTypes struct{}

// CheckFragment implements validator.FragmentRule.
func (rule FragmentsOnCompositeTypes) CheckFragment(
	ctx *validator.ValidationContext,
	fragmentInfo *validator.FragmentInfo) validator.NextCheckAction {

	typeCondition := fragmentInfo.TypeCondition()
	if typeCondition != nil && !graphql.IsCompositeType(typeCondition) {
		definition := fragmentInfo.Definition()
		ctx.ReportError(
			messages.FragmentOnNonCompositeErrorMessage(fragmentInfo.Name(), definition.TypeCondition.String()),
			graphql.ErrorLocationOfASTNode(definition.TypeCondition),
		)
	}
	return validator.ContinueCheck
}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule FragmentsOnCompositeTypes) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) validator.NextCheckAction {

	if fragment.TypeCondition != nil && typeCondition != nil && !graphql.IsCompositeType(typeCondition) {
		ctx.ReportError(
			messages.InlineFragmentOnNonCompositeErrorMessage(fragment.TypeCondition.String()),
			graphql.ErrorLocationOfASTNode(fragment.TypeCondition),
		)
	}
	return validator.ContinueCheck
}
