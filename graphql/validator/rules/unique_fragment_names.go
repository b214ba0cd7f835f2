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

// UniqueFragmentNames implements the "Fragment Name Uniqueness" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Fragment-Name-Uniqueness.
type UniqueFragmentNames struct{}

// CheckFragment implements validator.FragmentRule.
func (rule UniqueFragmentNames) CheckFragment(
	ctx *validator.ValidationContext,
	fragmentInfo *validator.FragmentInfo) validator.NextCheckAction {

	fragmentName := fragmentInfo.Definition().Name
	name := fragmentName.Value()
	if known, exists := ctx.KnownFragmentNames[name]; exists {
		ctx.ReportError(
			messages.DuplicateFragmentNameMessage(name),
			graphql.ErrorLocationsOfASTNodes(known, fragmentName),
		)
	} else {
		ctx.KnownFragmentNames[name] = fragmentName
	}

	// Fragment spreads and fields are not of interest.
	return validator.SkipCheckForChildNodes
}
