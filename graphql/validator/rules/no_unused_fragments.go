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
	messages "github.com/botobag/bookshelf/graphql/internal/validator"
	"github.com/botobag/bookshelf/graphql/validator"
)

// NoUnusedFragments implements the "Fragments must be used" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragments-Must-Be-Used.
type NoUnusedFragments struct{}

// CheckFragment implements validator.FragmentRule.
func (rule NoUnusedFragments) CheckFragment(
	ctx *validator.ValidationContext,
	fragmentInfo *validator.FragmentInfo) validator.NextCheckAction {

	if !ctx.IsFragmentUsed(fragmentInfo.Name()) {
		ctx.ReportError(
			messages.UnusedFragmentMessage(fragmentInfo.Name()),
			graphql.ErrorLocationOfASTNode(fragmentInfo.Definition()),
		)
	}
	return validator.SkipCheckForChildNodes
}
