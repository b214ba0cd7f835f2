/**
 * Copyright (c) 2018, The Artemis Authors.
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

package executor

import (
	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
	values "github.com/botobag/bookshelf/graphql/internal/value"
)

// fieldGroups groups field nodes by their response keys, keeping keys in the order they first
// appear in the selection set.
type fieldGroups struct {
	keys  []string
	nodes map[string][]*ast.Field
}

func newFieldGroups() *fieldGroups {
	return &fieldGroups{
		nodes: map[string][]*ast.Field{},
	}
}

func (groups *fieldGroups) add(field *ast.Field) {
	key := field.ResponseKey()
	nodes, exists := groups.nodes[key]
	if !exists {
		groups.keys = append(groups.keys, key)
	}
	groups.nodes[key] = append(nodes, field)
}

// collectFields adds all of the fields in selectionSet to groups. Fragments are expanded when their
// type condition matches runtimeType and each named fragment is expanded at most once.
func (ctx *executionContext) collectFields(
	runtimeType *graphql.Object,
	selectionSet ast.SelectionSet,
	groups *fieldGroups,
	visitedFragments map[string]bool) {

	for _, selection := range selectionSet {
		if !ctx.shouldIncludeNode(selection) {
			continue
		}

		switch selection := selection.(type) {
		case *ast.Field:
			groups.add(selection)

		case *ast.InlineFragment:
			if !doesTypeConditionSatisfy(selection.TypeCondition, runtimeType) {
				continue
			}
			ctx.collectFields(runtimeType, selection.SelectionSet, groups, visitedFragments)

		case *ast.FragmentSpread:
			name := selection.Name.Value()
			if visitedFragments[name] {
				continue
			}
			visitedFragments[name] = true

			fragment := ctx.operation.FragmentDef(name)
			if fragment == nil || !doesTypeConditionSatisfy(fragment.TypeCondition, runtimeType) {
				continue
			}
			ctx.collectFields(runtimeType, fragment.SelectionSet, groups, visitedFragments)
		}
	}
}

// shouldIncludeNode determines if a field should be included based on the @include and @skip
// directives, where @skip has higher precedence than @include. A directive whose argument cannot
// be coerced is reported and the node is excluded.
func (ctx *executionContext) shouldIncludeNode(node ast.Selection) bool {
	directives := node.GetDirectives()
	if len(directives) == 0 {
		return true
	}

	if skip := directives.Get(graphql.SkipDirective().Name()); skip != nil {
		value, ok := ctx.directiveCondition(graphql.SkipDirective(), skip)
		if !ok || value {
			return false
		}
	}

	if include := directives.Get(graphql.IncludeDirective().Name()); include != nil {
		value, ok := ctx.directiveCondition(graphql.IncludeDirective(), include)
		if !ok || !value {
			return false
		}
	}

	return true
}

// directiveCondition evaluates the "if" argument of @skip or @include.
func (ctx *executionContext) directiveCondition(
	directive *graphql.Directive,
	node *ast.Directive) (value bool, ok bool) {

	args, err := values.ArgumentValues(directive.Args(), node.Arguments, node, ctx.variableValues)
	if err != nil {
		ctx.errs.Append(err)
		return false, false
	}
	value, ok = args.Get("if").(bool)
	return
}

// doesTypeConditionSatisfy returns true if a fragment with typeCondition applies to runtimeType.
// Objects are the only composite types so the condition has to name runtimeType exactly.
func doesTypeConditionSatisfy(typeCondition *ast.NamedType, runtimeType *graphql.Object) bool {
	if typeCondition == nil {
		return true
	}
	return typeCondition.Name.Value() == runtimeType.Name()
}
