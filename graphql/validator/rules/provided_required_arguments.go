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

// ProvidedRequiredArguments implements the "Required Arguments" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Required-Arguments.
type ProvidedRequiredArguments struct{}

// CheckField implements validator.FieldRule.
func (rule ProvidedRequiredArguments) CheckField(
	ctx *validator.ValidationContext,
	field *validator.FieldInfo) validator.NextCheckAction {

	def := field.Def()
	if def == nil {
		return validator.ContinueCheck
	}

	node := field.Node()
	for _, argDef := range def.Args() {
		if argDef.IsRequired() && node.Arguments.Get(argDef.Name()) == nil {
			ctx.ReportError(
				messages.MissingFieldArgMessage(field.Name(), argDef.Name(), argDef.Type().String()),
				graphql.ErrorLocationOfASTNode(node),
			)
		}
	}

	return validator.ContinueCheck
}

// CheckDirective implements validator.DirectiveRule.
func (rule ProvidedRequiredArguments) CheckDirective(
	ctx *validator.ValidationContext,
	directive *validator.DirectiveInfo) validator.NextCheckAction {

	def := directive.Def()
	if def == nil {
		return validator.ContinueCheck
	}

	node := directive.Node()
	for _, argDef := range def.Args() {
		if argDef.IsRequired() && node.Arguments.Get(argDef.Name()) == nil {
			ctx.ReportError(
				messages.MissingDirectiveArgMessage(directive.Name(), argDef.Name(), argDef.Type().String()),
				graphql.ErrorLocationOfASTNode(node),
			)
		}
	}

	return validator.ContinueCheck
}
