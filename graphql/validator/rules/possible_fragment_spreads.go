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

// PossibleFragmentSpreads implements the "Fragment spread is possible" validation rule. Without
// abstract types, a fragment is only possible on the very type of its condition.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragment-spread-is-possible.
type PossibleFragmentSpreads struct{}

func isPossibleSpread(parentType graphql.Type, fragmentType graphql.Type) bool {
	if !graphql.IsCompositeType(parentType) || !graphql.IsCompositeType(fragmentType) {
		// Reported by other rules.
		return true
	}
	return parentType == fragmentType
}

// CheckInlineFragment implements validator.InlineFragmentRule.
func (rule PossibleFragmentSpreads) CheckInlineFragment(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	typeCondition graphql.Type,
	fragment *ast.InlineFragment) validator.NextCheckAction {

	if !isPossibleSpread(parentType, typeCondition) {
		ctx.ReportError(
			messages.TypeIncompatibleAnonSpreadMessage(parentType.String(), typeCondition.String()),
			graphql.ErrorLocationOfASTNode(fragment),
		)
	}
	return validator.ContinueCheck
}

// CheckFragmentSpread implements validator.FragmentSpreadRule.
func (rule PossibleFragmentSpreads) CheckFragmentSpread(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	fragmentInfo *validator.FragmentInfo,
	fragmentSpread *ast.FragmentSpread) validator.NextCheckAction {

	if fragmentInfo == nil {
		return validator.ContinueCheck
	}

	fragmentType := fragmentInfo.TypeCondition()
	if !isPossibleSpread(parentType, fragmentType) {
		ctx.ReportError(
			messages.TypeIncompatibleSpreadMessage(
				fragmentSpread.Name.Value(), parentType.String(), fragmentType.String()),
			graphql.ErrorLocationOfASTNode(fragmentSpread),
		)
	}
	return validator.ContinueCheck
}
