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
	"fmt"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	messages "github.com/botobag/bookshelf/graphql/internal/validator"
	"github.com/botobag/bookshelf/graphql/validator"
)

// OverlappingFieldsCanBeMerged implements the "Field Selection Merging" validation rule. Fields in
// the same selection set (after expanding fragments) sharing a response key must select the same
// field with the same arguments, and their subfields must be mergeable as well. Return types need
// no comparison: the same field of the same object type always has the same type.
//
// See https://facebook.github.io/graphql/June2018/#sec-Field-Selection-Merging.
type OverlappingFieldsCanBeMerged struct{}

// CheckSelectionSet implements validator.SelectionSetRule.
func (rule OverlappingFieldsCanBeMerged) CheckSelectionSet(
	ctx *validator.ValidationContext,
	parentType graphql.Type,
	selectionSet ast.SelectionSet) validator.NextCheckAction {

	fields := collectFieldsByResponseKey(ctx, selectionSet)
	for _, responseKey := range fields.keys {
		nodes := fields.nodes[responseKey]
	search:
		for i := 0; i < len(nodes); i++ {
			for j := i + 1; j < len(nodes); j++ {
				if reason, conflict := findFieldConflict(ctx, nodes[i], nodes[j]); conflict {
					ctx.ReportError(
						messages.FieldsConflictMessage(responseKey, reason),
						graphql.ErrorLocationsOfASTNodes(nodes[i], nodes[j]),
					)
					break search
				}
			}
		}
	}

	return validator.ContinueCheck
}

// fieldsByResponseKey groups fields by response key in the order the keys are first seen.
type fieldsByResponseKey struct {
	keys  []string
	nodes map[string][]*ast.Field
}

func collectFieldsByResponseKey(ctx *validator.ValidationContext, selectionSet ast.SelectionSet) *fieldsByResponseKey {
	fields := &fieldsByResponseKey{
		nodes: map[string][]*ast.Field{},
	}
	fields.collect(ctx, selectionSet, map[string]bool{})
	return fields
}

func (fields *fieldsByResponseKey) collect(
	ctx *validator.ValidationContext,
	selectionSet ast.SelectionSet,
	visitedFragments map[string]bool) {

	for _, selection := range selectionSet {
		switch selection := selection.(type) {
		case *ast.Field:
			responseKey := selection.ResponseKey()
			if _, exists := fields.nodes[responseKey]; !exists {
				fields.keys = append(fields.keys, responseKey)
			}
			fields.nodes[responseKey] = append(fields.nodes[responseKey], selection)

		case *ast.InlineFragment:
			fields.collect(ctx, selection.SelectionSet, visitedFragments)

		case *ast.FragmentSpread:
			name := selection.Name.Value()
			if visitedFragments[name] {
				continue
			}
			visitedFragments[name] = true
			if fragment := ctx.Fragment(name); fragment != nil {
				fields.collect(ctx, fragment.SelectionSet, visitedFragments)
			}
		}
	}
}

// findFieldConflict determines whether two fields with the same response key can be merged. It
// returns the reason if they cannot.
func findFieldConflict(ctx *validator.ValidationContext, a *ast.Field, b *ast.Field) (string, bool) {
	if a == b {
		return "", false
	}

	if a.Name.Value() != b.Name.Value() {
		return fmt.Sprintf("%s and %s are different fields", a.Name.Value(), b.Name.Value()), true
	}

	if !sameArguments(a.Arguments, b.Arguments) {
		return "they have differing arguments", true
	}

	if len(a.SelectionSet) == 0 || len(b.SelectionSet) == 0 {
		return "", false
	}

	subfieldsA := collectFieldsByResponseKey(ctx, a.SelectionSet)
	subfieldsB := collectFieldsByResponseKey(ctx, b.SelectionSet)
	for _, responseKey := range subfieldsA.keys {
		for _, subfieldA := range subfieldsA.nodes[responseKey] {
			for _, subfieldB := range subfieldsB.nodes[responseKey] {
				if reason, conflict := findFieldConflict(ctx, subfieldA, subfieldB); conflict {
					return fmt.Sprintf(`subfields "%s" conflict because %s`, responseKey, reason), true
				}
			}
		}
	}

	return "", false
}

func sameArguments(a ast.Arguments, b ast.Arguments) bool {
	if len(a) != len(b) {
		return false
	}
	for _, argA := range a {
		argB := b.Get(argA.Name.Value())
		if argB == nil || ast.PrintValue(argA.Value) != ast.PrintValue(argB.Value) {
			return false
		}
	}
	return true
}
