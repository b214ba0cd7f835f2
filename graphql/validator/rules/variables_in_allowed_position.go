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

// VariablesInAllowedPosition implements the "All Variable Usages are Allowed" validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-All-Variable-Usages-are-Allowed.
type VariablesInAllowedPosition struct{}

// CheckOperation implements validator.OperationRule.
func (rule VariablesInAllowedPosition) CheckOperation(
	ctx *validator.ValidationContext,
	operation *ast.OperationDefinition) validator.NextCheckAction {

	definitions := map[string]*ast.VariableDefinition{}
	for _, definition := range operation.VariableDefinitions {
		definitions[definition.Variable.Name.Value()] = definition
	}

	for _, usage := range ctx.RecursiveVariableUsages(operation) {
		if usage.Type == nil {
			continue
		}

		name := usage.Node.Name.Value()
		definition, exists := definitions[name]
		if !exists {
			continue
		}

		// A variable of an unknown type is reported by KnownTypeNames.
		variableType := ctx.TypeFromAST(definition.Type)
		if variableType == nil {
			continue
		}

		if !allowedVariableUsage(variableType, definition.DefaultValue, usage.Type, usage.HasLocationDefaultValue) {
			ctx.ReportError(
				messages.BadVarPosMessage(name, variableType.String(), usage.Type.String()),
				graphql.ErrorLocationsOfASTNodes(definition, usage.Node),
			)
		}
	}

	return validator.ContinueCheck
}

// allowedVariableUsage returns true if a variable of the given type can be used at a location of
// the given type. A nullable variable is allowed in a non-null position when either the variable or
// the location provides a non-null default value.
func allowedVariableUsage(
	variableType graphql.Type,
	variableDefaultValue ast.Value,
	locationType graphql.Type,
	hasLocationDefaultValue bool) bool {

	if nonNullLocation, ok := locationType.(*graphql.NonNull); ok && !graphql.IsNonNullType(variableType) {
		hasNonNullVariableDefaultValue := variableDefaultValue != nil && !ast.IsNullValue(variableDefaultValue)
		if !hasNonNullVariableDefaultValue && !hasLocationDefaultValue {
			return false
		}
		return graphql.IsTypeSubTypeOf(variableType, nonNullLocation.InnerType())
	}
	return graphql.IsTypeSubTypeOf(variableType, locationType)
}
