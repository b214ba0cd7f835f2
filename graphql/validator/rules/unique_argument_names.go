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

// UniqueArgumentNames implements the "Argument Uniqueness" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Argument-Uniqueness.
type UniqueArgumentNames struct{}

func checkUniqueArguments(ctx *validator.ValidationContext, args ast.Arguments) {
	if len(args) < 2 {
		return
	}

	known := map[string]ast.Name{}
	for _, arg := range args {
		name := arg.Name.Value()
		if seen, exists := known[name]; exists {
			ctx.ReportError(
				messages.DuplicateArgMessage(name),
				graphql.ErrorLocationsOfASTNodes(seen, arg.Name),
			)
		} else {
			known[name] = arg.Name
		}
	}
}

// CheckField implements validator.FieldRule.
func (rule UniqueArgumentNames) CheckField(
	ctx *validator.ValidationContext,
	field *validator.FieldInfo) validator.NextCheckAction {

	checkUniqueArguments(ctx, field.Node().Arguments)
	return validator.ContinueCheck
}

// CheckDirective implements validator.DirectiveRule.
func (rule UniqueArgumentNames) CheckDirective(
	ctx *validator.ValidationContext,
	directive *validator.DirectiveInfo) validator.NextCheckAction {

	checkUniqueArguments(ctx, directive.Node().Arguments)
	return validator.ContinueCheck
}
