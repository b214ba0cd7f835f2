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

package validator

import (
	"fmt"

	"github.com/botobag/bookshelf/graphql"
	"github.com/botobag/bookshelf/graphql/ast"
)

// rules contains a collection of actions to be performed on nodes for validation. Each rule is
// identified by its index in the list given to buildRules, which is also the index to the
// skipping state in ValidationContext.
type rules struct {
	numRules               int
	operationRules         []indexedRule
	variableRules          []indexedRule
	fragmentRules          []indexedRule
	selectionSetRules      []indexedRule
	fieldRules             []indexedRule
	fieldArgumentRules     []indexedRule
	inlineFragmentRules    []indexedRule
	fragmentSpreadRules    []indexedRule
	directivesRules        []indexedRule
	directiveRules         []indexedRule
	directiveArgumentRules []indexedRule
}

type indexedRule struct {
	index int
	rule  interface{}
}

func buildRules(rs ...interface{}) *rules {
	rules := &rules{
		numRules: len(rs),
	}

	for i, rule := range rs {
		r := indexedRule{i, rule}
		isRule := false

		if _, ok := rule.(OperationRule); ok {
			rules.operationRules = append(rules.operationRules, r)
			isRule = true
		}
		if _, ok := rule.(VariableRule); ok {
			rules.variableRules = append(rules.variableRules, r)
			isRule = true
		}
		if _, ok := rule.(FragmentRule); ok {
			rules.fragmentRules = append(rules.fragmentRules, r)
			isRule = true
		}
		if _, ok := rule.(SelectionSetRule); ok {
			rules.selectionSetRules = append(rules.selectionSetRules, r)
			isRule = true
		}
		if _, ok := rule.(FieldRule); ok {
			rules.fieldRules = append(rules.fieldRules, r)
			isRule = true
		}
		if _, ok := rule.(FieldArgumentRule); ok {
			rules.fieldArgumentRules = append(rules.fieldArgumentRules, r)
			isRule = true
		}
		if _, ok := rule.(InlineFragmentRule); ok {
			rules.inlineFragmentRules = append(rules.inlineFragmentRules, r)
			isRule = true
		}
		if _, ok := rule.(FragmentSpreadRule); ok {
			rules.fragmentSpreadRules = append(rules.fragmentSpreadRules, r)
			isRule = true
		}
		if _, ok := rule.(DirectivesRule); ok {
			rules.directivesRules = append(rules.directivesRules, r)
			isRule = true
		}
		if _, ok := rule.(DirectiveRule); ok {
			rules.directiveRules = append(rules.directiveRules, r)
			isRule = true
		}
		if _, ok := rule.(DirectiveArgumentRule); ok {
			rules.directiveArgumentRules = append(rules.directiveArgumentRules, r)
			isRule = true
		}

		if !isRule {
			panic(fmt.Sprintf(`"%T" is not a validation rule`, rule))
		}
	}

	return rules
}

// run invokes check for each rule in rs that is not being skipped and updates its skipping state
// with the result. node is the key to re-enable rules that skip the children of the node.
func run(ctx *ValidationContext, rs []indexedRule, node ast.Node, check func(rule interface{}) NextCheckAction) {
	for _, r := range rs {
		if ctx.skippingRules[r.index] != nil {
			continue
		}

		switch check(r.rule) {
		case ContinueCheck:
			/* Nothing to do */

		case SkipCheckForChildNodes:
			ctx.skippingRules[r.index] = node

		case StopCheck:
			ctx.skippingRules[r.index] = StopCheck
		}
	}
}

// leaveNode re-enables the rules that skipped the child nodes of the given node.
func leaveNode(ctx *ValidationContext, node ast.Node) {
	for i, skipping := range ctx.skippingRules {
		if skippingNode, ok := skipping.(ast.Node); ok && skippingNode == node {
			ctx.skippingRules[i] = nil
		}
	}
}

func walk(ctx *ValidationContext) {
	for _, definition := range ctx.Document().Definitions {
		switch definition := definition.(type) {
		case *ast.OperationDefinition:
			walkOperationDefinition(ctx, definition)

		case *ast.FragmentDefinition:
			walkFragmentDefinition(ctx, definition)
		}
	}
}

func walkOperationDefinition(ctx *ValidationContext, operation *ast.OperationDefinition) {
	ctx.currentOperation = operation

	run(ctx, ctx.rules.operationRules, operation, func(rule interface{}) NextCheckAction {
		return rule.(OperationRule).CheckOperation(ctx, operation)
	})

	for _, variable := range operation.VariableDefinitions {
		t := ctx.TypeFromAST(variable.Type)
		run(ctx, ctx.rules.variableRules, variable, func(rule interface{}) NextCheckAction {
			return rule.(VariableRule).CheckVariable(ctx, t, variable)
		})
		walkDirectives(ctx, variable, variable.Directives, graphql.DirectiveLocationVariableDefinition)
		leaveNode(ctx, variable)
	}

	var location graphql.DirectiveLocation
	switch operation.Operation {
	case ast.OperationTypeQuery:
		location = graphql.DirectiveLocationQuery
	case ast.OperationTypeMutation:
		location = graphql.DirectiveLocationMutation
	case ast.OperationTypeSubscription:
		location = graphql.DirectiveLocationSubscription
	}
	walkDirectives(ctx, operation, operation.Directives, location)

	walkSelectionSet(ctx, operation, rootTypeOf(ctx.schema, operation), operation.SelectionSet)

	leaveNode(ctx, operation)
	ctx.currentOperation = nil
}

func walkFragmentDefinition(ctx *ValidationContext, fragment *ast.FragmentDefinition) {
	info := ctx.FragmentInfo(fragment.Name.Value())
	if info == nil || info.def != fragment {
		// Duplicated definition.
		info = &FragmentInfo{
			def:           fragment,
			typeCondition: ctx.TypeFromAST(fragment.TypeCondition),
		}
	}

	run(ctx, ctx.rules.fragmentRules, fragment, func(rule interface{}) NextCheckAction {
		return rule.(FragmentRule).CheckFragment(ctx, info)
	})

	walkDirectives(ctx, fragment, fragment.Directives, graphql.DirectiveLocationFragmentDefinition)

	walkSelectionSet(ctx, fragment, info.typeCondition, fragment.SelectionSet)

	leaveNode(ctx, fragment)
}

// walkSelectionSet visits the selection set owned by owner. parentType is the named type the
// selection set selects from.
func walkSelectionSet(
	ctx *ValidationContext,
	owner ast.Node,
	parentType graphql.Type,
	selectionSet ast.SelectionSet) {

	if len(selectionSet) == 0 {
		return
	}

	run(ctx, ctx.rules.selectionSetRules, owner, func(rule interface{}) NextCheckAction {
		return rule.(SelectionSetRule).CheckSelectionSet(ctx, parentType, selectionSet)
	})

	for _, selection := range selectionSet {
		switch selection := selection.(type) {
		case *ast.Field:
			walkField(ctx, parentType, selection)

		case *ast.InlineFragment:
			walkInlineFragment(ctx, parentType, selection)

		case *ast.FragmentSpread:
			walkFragmentSpread(ctx, parentType, selection)
		}
	}
}

func walkField(ctx *ValidationContext, parentType graphql.Type, field *ast.Field) {
	info := &FieldInfo{
		parentType: parentType,
		def:        graphql.FieldDefOf(parentType, field.Name.Value()),
		node:       field,
	}

	run(ctx, ctx.rules.fieldRules, field, func(rule interface{}) NextCheckAction {
		return rule.(FieldRule).CheckField(ctx, info)
	})

	for _, arg := range field.Arguments {
		var argDef *graphql.Argument
		if info.def != nil {
			argDef = info.def.Arg(arg.Name.Value())
		}
		run(ctx, ctx.rules.fieldArgumentRules, arg, func(rule interface{}) NextCheckAction {
			return rule.(FieldArgumentRule).CheckFieldArgument(ctx, info, argDef, arg)
		})
		leaveNode(ctx, arg)
	}

	walkDirectives(ctx, field, field.Directives, graphql.DirectiveLocationField)

	var fieldType graphql.Type
	if info.def != nil {
		if named := graphql.NamedTypeOf(info.def.Type()); named != nil {
			fieldType = named
		}
	}
	walkSelectionSet(ctx, field, fieldType, field.SelectionSet)

	leaveNode(ctx, field)
}

func walkInlineFragment(ctx *ValidationContext, parentType graphql.Type, fragment *ast.InlineFragment) {
	typeCondition := parentType
	if fragment.TypeCondition != nil {
		typeCondition = ctx.TypeFromAST(fragment.TypeCondition)
	}

	run(ctx, ctx.rules.inlineFragmentRules, fragment, func(rule interface{}) NextCheckAction {
		return rule.(InlineFragmentRule).CheckInlineFragment(ctx, parentType, typeCondition, fragment)
	})

	walkDirectives(ctx, fragment, fragment.Directives, graphql.DirectiveLocationInlineFragment)

	walkSelectionSet(ctx, fragment, typeCondition, fragment.SelectionSet)

	leaveNode(ctx, fragment)
}

func walkFragmentSpread(ctx *ValidationContext, parentType graphql.Type, spread *ast.FragmentSpread) {
	info := ctx.FragmentInfo(spread.Name.Value())

	run(ctx, ctx.rules.fragmentSpreadRules, spread, func(rule interface{}) NextCheckAction {
		return rule.(FragmentSpreadRule).CheckFragmentSpread(ctx, parentType, info, spread)
	})

	walkDirectives(ctx, spread, spread.Directives, graphql.DirectiveLocationFragmentSpread)

	leaveNode(ctx, spread)
}

// walkDirectives visits the directives applied on owner.
func walkDirectives(
	ctx *ValidationContext,
	owner ast.Node,
	directives ast.Directives,
	location graphql.DirectiveLocation) {

	if len(directives) == 0 {
		return
	}

	run(ctx, ctx.rules.directivesRules, owner, func(rule interface{}) NextCheckAction {
		return rule.(DirectivesRule).CheckDirectives(ctx, directives, location)
	})

	for _, directive := range directives {
		info := &DirectiveInfo{
			def:      ctx.schema.Directive(directive.Name.Value()),
			node:     directive,
			location: location,
		}

		run(ctx, ctx.rules.directiveRules, directive, func(rule interface{}) NextCheckAction {
			return rule.(DirectiveRule).CheckDirective(ctx, info)
		})

		for _, arg := range directive.Arguments {
			var argDef *graphql.Argument
			if info.def != nil {
				argDef = info.def.Arg(arg.Name.Value())
			}
			run(ctx, ctx.rules.directiveArgumentRules, arg, func(rule interface{}) NextCheckAction {
				return rule.(DirectiveArgumentRule).CheckDirectiveArgument(ctx, info, argDef, arg)
			})
			leaveNode(ctx, arg)
		}

		leaveNode(ctx, directive)
	}
}
