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

// Package validator holds the messages reported by the validation rules so that the rules and
// their tests agree on them.
package validator

import (
	"fmt"
	"strings"

	"github.com/botobag/bookshelf/internal/util"
)

// AnonOperationNotAloneMessage is reported by rules.LoneAnonymousOperation.
func AnonOperationNotAloneMessage() string {
	return "This anonymous operation must be the only defined operation."
}

// DuplicateOperationNameMessage is reported by rules.UniqueOperationNames.
func DuplicateOperationNameMessage(operationName string) string {
	return fmt.Sprintf(`There can be only one operation named "%s".`, operationName)
}

// DuplicateFragmentNameMessage is reported by rules.UniqueFragmentNames.
func DuplicateFragmentNameMessage(fragmentName string) string {
	return fmt.Sprintf(`There can be only one fragment named "%s".`, fragmentName)
}

// UnknownFragmentMessage is reported by rules.KnownFragmentNames.
func UnknownFragmentMessage(fragmentName string) string {
	return fmt.Sprintf(`Unknown fragment "%s".`, fragmentName)
}

// UnusedFragmentMessage is reported by rules.NoUnusedFragments.
func UnusedFragmentMessage(fragmentName string) string {
	return fmt.Sprintf(`Fragment "%s" is never used.`, fragmentName)
}

// CycleErrorMessage is reported by rules.NoFragmentCycles.
func CycleErrorMessage(fragmentName string, spreadNames []string) string {
	if len(spreadNames) == 0 {
		return fmt.Sprintf(`Cannot spread fragment "%s" within itself.`, fragmentName)
	}
	quoted := make([]string, len(spreadNames))
	for i, name := range spreadNames {
		quoted[i] = `"` + name + `"`
	}
	return fmt.Sprintf(`Cannot spread fragment "%s" within itself via %s.`,
		fragmentName, strings.Join(quoted, ", "))
}

// UnknownTypeMessage is reported by rules.KnownTypeNames.
func UnknownTypeMessage(typeName string, suggestedTypes []string) string {
	message := fmt.Sprintf(`Unknown type "%s".`, typeName)
	if len(suggestedTypes) > 0 {
		message += " Did you mean " + util.QuotedOrList(suggestedTypes) + "?"
	}
	return message
}

// InlineFragmentOnNonCompositeErrorMessage is reported by rules.FragmentsOnCompositeTypes.
func InlineFragmentOnNonCompositeErrorMessage(typeName string) string {
	return fmt.Sprintf(`Fragment cannot condition on non composite type "%s".`, typeName)
}

// FragmentOnNonCompositeErrorMessage is reported by rules.FragmentsOnCompositeTypes.
func FragmentOnNonCompositeErrorMessage(fragmentName string, typeName string) string {
	return fmt.Sprintf(`Fragment "%s" cannot condition on non composite type "%s".`, fragmentName, typeName)
}

// TypeIncompatibleSpreadMessage is reported by rules.PossibleFragmentSpreads.
func TypeIncompatibleSpreadMessage(fragmentName string, parentType string, fragmentType string) string {
	return fmt.Sprintf(`Fragment "%s" cannot be spread here as objects of type "%s" can never be of type "%s".`,
		fragmentName, parentType, fragmentType)
}

// TypeIncompatibleAnonSpreadMessage is reported by rules.PossibleFragmentSpreads.
func TypeIncompatibleAnonSpreadMessage(parentType string, fragmentType string) string {
	return fmt.Sprintf(`Fragment cannot be spread here as objects of type "%s" can never be of type "%s".`,
		parentType, fragmentType)
}

// UndefinedFieldMessage is reported by rules.FieldsOnCorrectType.
func UndefinedFieldMessage(fieldName string, parentTypeName string, suggestedFieldNames []string) string {
	message := fmt.Sprintf(`Cannot query field "%s" on type "%s".`, fieldName, parentTypeName)
	if len(suggestedFieldNames) > 0 {
		message += " Did you mean " + util.QuotedOrList(suggestedFieldNames) + "?"
	}
	return message
}

// NoSubselectionAllowedMessage is reported by rules.ScalarLeafs.
func NoSubselectionAllowedMessage(fieldName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" must not have a selection since type "%s" has no subfields.`,
		fieldName, typeName)
}

// RequiredSubselectionMessage is reported by rules.ScalarLeafs.
func RequiredSubselectionMessage(fieldName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" of type "%s" must have a selection of subfields. Did you mean "%s { ... }"?`,
		fieldName, typeName, fieldName)
}

// UnknownArgMessage is reported by rules.KnownArgumentNames for field arguments.
func UnknownArgMessage(argName string, fieldName string, typeName string, suggestedArgs []string) string {
	message := fmt.Sprintf(`Unknown argument "%s" on field "%s" of type "%s".`, argName, fieldName, typeName)
	if len(suggestedArgs) > 0 {
		message += " Did you mean " + util.QuotedOrList(suggestedArgs) + "?"
	}
	return message
}

// UnknownDirectiveArgMessage is reported by rules.KnownArgumentNames for directive arguments.
func UnknownDirectiveArgMessage(argName string, directiveName string, suggestedArgs []string) string {
	message := fmt.Sprintf(`Unknown argument "%s" on directive "@%s".`, argName, directiveName)
	if len(suggestedArgs) > 0 {
		message += " Did you mean " + util.QuotedOrList(suggestedArgs) + "?"
	}
	return message
}

// DuplicateArgMessage is reported by rules.UniqueArgumentNames.
func DuplicateArgMessage(argName string) string {
	return fmt.Sprintf(`There can be only one argument named "%s".`, argName)
}

// MissingFieldArgMessage is reported by rules.ProvidedRequiredArguments.
func MissingFieldArgMessage(fieldName string, argName string, typeName string) string {
	return fmt.Sprintf(`Field "%s" argument "%s" of type "%s" is required, but it was not provided.`,
		fieldName, argName, typeName)
}

// MissingDirectiveArgMessage is reported by rules.ProvidedRequiredArguments.
func MissingDirectiveArgMessage(directiveName string, argName string, typeName string) string {
	return fmt.Sprintf(`Directive "@%s" argument "%s" of type "%s" is required, but it was not provided.`,
		directiveName, argName, typeName)
}

// BadValueMessage is reported by rules.ValuesOfCorrectType. reason is optional.
func BadValueMessage(typeName string, valueName string, reason string) string {
	if len(reason) > 0 {
		return fmt.Sprintf(`Expected type %s, found %s; %s`, typeName, valueName, reason)
	}
	return fmt.Sprintf(`Expected type %s, found %s.`, typeName, valueName)
}

// UnknownDirectiveMessage is reported by rules.KnownDirectives.
func UnknownDirectiveMessage(directiveName string) string {
	return fmt.Sprintf(`Unknown directive "%s".`, directiveName)
}

// MisplacedDirectiveMessage is reported by rules.KnownDirectives.
func MisplacedDirectiveMessage(directiveName string, location string) string {
	return fmt.Sprintf(`Directive "%s" may not be used on %s.`, directiveName, location)
}

// DuplicateDirectiveMessage is reported by rules.UniqueDirectivesPerLocation.
func DuplicateDirectiveMessage(directiveName string) string {
	return fmt.Sprintf(`The directive "%s" can only be used once at this location.`, directiveName)
}

// DuplicateVariableMessage is reported by rules.UniqueVariableNames.
func DuplicateVariableMessage(variableName string) string {
	return fmt.Sprintf(`There can be only one variable named "%s".`, variableName)
}

// NonInputTypeOnVarMessage is reported by rules.VariablesAreInputTypes.
func NonInputTypeOnVarMessage(variableName string, typeName string) string {
	return fmt.Sprintf(`Variable "$%s" cannot be non-input type "%s".`, variableName, typeName)
}

// UndefinedVarMessage is reported by rules.NoUndefinedVariables.
func UndefinedVarMessage(variableName string, operationName string) string {
	if len(operationName) > 0 {
		return fmt.Sprintf(`Variable "$%s" is not defined by operation "%s".`, variableName, operationName)
	}
	return fmt.Sprintf(`Variable "$%s" is not defined.`, variableName)
}

// UnusedVariableMessage is reported by rules.NoUnusedVariables.
func UnusedVariableMessage(variableName string, operationName string) string {
	if len(operationName) > 0 {
		return fmt.Sprintf(`Variable "$%s" is never used in operation "%s".`, variableName, operationName)
	}
	return fmt.Sprintf(`Variable "$%s" is never used.`, variableName)
}

// BadVarPosMessage is reported by rules.VariablesInAllowedPosition.
func BadVarPosMessage(variableName string, variableType string, expectedType string) string {
	return fmt.Sprintf(`Variable "$%s" of type "%s" used in position expecting type "%s".`,
		variableName, variableType, expectedType)
}

// FieldsConflictMessage is reported by rules.OverlappingFieldsCanBeMerged.
func FieldsConflictMessage(responseKey string, reason string) string {
	return fmt.Sprintf(`Fields "%s" conflict because %s. Use different aliases on the fields to fetch both `+
		`if this was intentional.`, responseKey, reason)
}
