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

// NoUnusedVariables implements the "All Variables Used" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-All-Variables-Used.
type NoUnusedVariables struct{}

// CheckOperation implements validator.OperationRule.
func (rule NoUnusedVariables) CheckOperation(
	ctx *validator.ValidationContext,
	operation *ast.OperationDefinition) validator.NextCheckAction {

	if len(operation.VariableDefinitions) == 0 {
		return validator.ContinueCheck
	}

	used := map[string]bool{}
	for _, usage := range ctx.RecursiveVariableUsages(operation) {
		used[usage.Node.Name.Value()] = true
	}

	for _, definition := range operation.VariableDefinitions {
		name := definition.Variable.Name.Value()
		if !used[name] {
			ctx.ReportError(
				messages.UnusedVariableMessage(name, operation.Name.Value()),
				graphql.ErrorLocationOfASTNode(definition),
			)
		}
	}

	return validator.ContinueCheck
}
