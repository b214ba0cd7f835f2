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

// VariablesAreInputTypes implements the "Variables are Input Types" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Variables-Are-Input-Types.
type VariablesAreInputTypes struct{}

// CheckVariable implements validator.VariableRule.
func (rule VariablesAreInputTypes) CheckVariable(
	ctx *validator.ValidationContext,
	t graphql.Type,
	variable *ast.VariableDefinition) validator.NextCheckAction {

	// Unknown types are reported by KnownTypeNames.
	if t != nil && !graphql.IsInputType(t) {
		ctx.ReportError(
			messages.NonInputTypeOnVarMessage(variable.Variable.Name.Value(), variable.Type.String()),
			graphql.ErrorLocationOfASTNode(variable.Type),
		)
	}
	return validator.ContinueCheck
}
