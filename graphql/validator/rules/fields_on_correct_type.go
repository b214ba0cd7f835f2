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
	"github.com/botobag/bookshelf/internal/util"
)

// FieldsOnCorrectType implements the "Field Selections on Objects, Interfaces, and Unions Types"
// validation rule.
//
// See https://facebook.github.io/graphql/June2018/#sec-Field-Selections-on-Objects-Interfaces-and-Unions-Types.
type FieldsOnCorrectType struct{}

// CheckField implements validator.FieldRule.
func (rule FieldsOnCorrectType) CheckField(
	ctx *validator.ValidationContext,
	field *validator.FieldInfo) validator.NextCheckAction {

	// A GraphQL document is only valid if all fields selected are defined by the parent type, or are
	// an allowed meta field such as __typename.

	parentType, ok := field.ParentType().(*graphql.Object)
	if !ok || parentType == nil {
		// If we're unable to resolve parent type statically, we cannot correctly reason the field type.
		return validator.ContinueCheck
	}

	if field.Def() != nil {
		return validator.ContinueCheck
	}

	fieldName := field.Name()
	ctx.ReportError(
		messages.UndefinedFieldMessage(
			fieldName,
			parentType.Name(),
			util.SuggestionList(fieldName, parentType.FieldNames()),
		),
		graphql.ErrorLocationOfASTNode(field.Node()),
	)

	// Selections of an unknown field cannot be checked.
	return validator.SkipCheckForChildNodes
}
